package model

// Envelope is the wrapper every endpoint returns. When Success is false the
// Error field is set and no resource field should be trusted.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type AuthResponse struct {
	Envelope
	User  User   `json:"user"`
	Token string `json:"token"`
}

type PrescriptionListResponse struct {
	Envelope
	Prescriptions []Prescription `json:"prescriptions"`
	Total         int            `json:"total"`
}

type PrescriptionResponse struct {
	Envelope
	Prescription Prescription `json:"prescription"`
}

type AppointmentListResponse struct {
	Envelope
	Appointments []Appointment `json:"appointments"`
	Total        int           `json:"total"`
}

type AppointmentResponse struct {
	Envelope
	Appointment Appointment `json:"appointment"`
}

type DoctorListResponse struct {
	Envelope
	Doctors []Doctor `json:"doctors"`
	Total   int      `json:"total"`
}

type DoctorResponse struct {
	Envelope
	Doctor Doctor `json:"doctor"`
}

type NotificationListResponse struct {
	Envelope
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type NotificationResponse struct {
	Envelope
	Notification Notification `json:"notification"`
}

type ProfileResponse struct {
	Envelope
	Profile UserProfile `json:"profile"`
}

type StatsResponse struct {
	Envelope
	Stats HealthStats `json:"stats"`
}

type OCRResponse struct {
	Envelope
	ExtractedData OCRResult `json:"extractedData"`
	Confidence    float64   `json:"confidence"`
}

func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

func Failure(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
