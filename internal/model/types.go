package model

import "time"

const (
	PrescriptionActive    = "Active"
	PrescriptionExpired   = "Expired"
	PrescriptionCancelled = "Cancelled"
)

const (
	AppointmentPending   = "Pending"
	AppointmentConfirmed = "Confirmed"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

const (
	AppointmentInPerson     = "In-Person"
	AppointmentTelemedicine = "Telemedicine"
)

const (
	NotificationMedication  = "medication"
	NotificationAppointment = "appointment"
	NotificationRefill      = "refill"
	NotificationGeneral     = "general"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DateLayout is the wire format of calendar dates (prescription date,
// appointment date, date of birth).
const DateLayout = "2006-01-02"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type Prescription struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Medication   string     `json:"medication"`
	Doctor       string     `json:"doctor"`
	Pharmacy     string     `json:"pharmacy"`
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	Dosage       string     `json:"dosage"`
	Quantity     string     `json:"quantity"`
	Refills      int        `json:"refills"`
	Instructions string     `json:"instructions"`
	Strength     string     `json:"strength"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type Appointment struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	DoctorName string     `json:"doctorName"`
	Specialty  string     `json:"specialty"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	Duration   int        `json:"duration"`
	Status     string     `json:"status"`
	Type       string     `json:"type"`
	Location   string     `json:"location"`
	Notes      string     `json:"notes"`
	Phone      string     `json:"phone"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type TimeSlots struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

type Doctor struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Specialty        string      `json:"specialty"`
	Rating           float64     `json:"rating"`
	Experience       int         `json:"experience"`
	Location         string      `json:"location"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	Bio              string      `json:"bio"`
	Education        string      `json:"education"`
	Languages        []string    `json:"languages"`
	AcceptsInsurance bool        `json:"acceptsInsurance"`
	AvailableSlots   []TimeSlots `json:"availableSlots"`
	Image            string      `json:"image"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type Insurance struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policyNumber"`
	GroupNumber  string `json:"groupNumber"`
}

type UserProfile struct {
	ID               int64             `json:"id"`
	Email            string            `json:"email"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Phone            string            `json:"phone"`
	DateOfBirth      string            `json:"dateOfBirth"`
	Address          string            `json:"address"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Insurance        *Insurance        `json:"insurance,omitempty"`
	MedicalHistory   []string          `json:"medicalHistory"`
	Allergies        []string          `json:"allergies"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type Notification struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	Priority     string    `json:"priority"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"createdAt"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

type PrescriptionStats struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	Expired          int `json:"expired"`
	RefillsAvailable int `json:"refillsAvailable"`
}

type AppointmentStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type MedicationStats struct {
	DailyMedications    int `json:"dailyMedications"`
	AsNeededMedications int `json:"asNeededMedications"`
	TotalDosesThisWeek  int `json:"totalDosesThisWeek"`
	MissedDoses         int `json:"missedDoses"`
}

type HealthMetrics struct {
	LastCheckup         string `json:"lastCheckup"`
	NextAppointment     string `json:"nextAppointment"`
	ActivePrescriptions int    `json:"activePrescriptions"`
	HealthScore         int    `json:"healthScore"`
}

type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type HealthStats struct {
	Prescriptions  PrescriptionStats `json:"prescriptions"`
	Appointments   AppointmentStats  `json:"appointments"`
	Medications    MedicationStats   `json:"medications"`
	HealthMetrics  HealthMetrics     `json:"healthMetrics"`
	RecentActivity []Activity        `json:"recentActivity"`
}

// OCRResult mirrors the fields of a prescription label. Refills stays a
// string because it is read off the label verbatim.
type OCRResult struct {
	Medication   string `json:"medication"`
	Strength     string `json:"strength"`
	Dosage       string `json:"dosage"`
	Quantity     string `json:"quantity"`
	Doctor       string `json:"doctor"`
	Pharmacy     string `json:"pharmacy"`
	Date         string `json:"date"`
	Refills      string `json:"refills"`
	Instructions string `json:"instructions"`
}
