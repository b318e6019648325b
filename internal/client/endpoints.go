package client

import "strconv"

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathForgotPassword = "/auth/forgot-password"
	pathPrescriptions  = "/prescriptions"
	pathAppointments   = "/appointments"
	pathDoctors        = "/doctors"
	pathNotifications  = "/notifications"
	pathProfile        = "/user/profile"
	pathHealthStats    = "/health/stats"
	pathOCR            = "/ocr/process"
)

// Query keys accepted by the list endpoints.
const (
	queryStatus     = "status"
	querySearch     = "search"
	queryUpcoming   = "upcoming"
	querySpecialty  = "specialty"
	queryLocation   = "location"
	queryUnreadOnly = "unreadOnly"
	queryType       = "type"
)

func resourcePath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

func notificationReadPath(id int64) string {
	return resourcePath(pathNotifications, id) + "/read"
}
