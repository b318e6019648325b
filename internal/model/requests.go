package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt accepts either a JSON number or a numeric string. Label scans hand
// back refills as text, and the app forwards them unchanged.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*f = FlexInt(parsed)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

func IntPtr(v int) *FlexInt {
	f := FlexInt(v)
	return &f
}

func StringPtr(v string) *string {
	return &v
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type NewPrescription struct {
	Medication   string   `json:"medication"`
	Doctor       string   `json:"doctor"`
	Pharmacy     string   `json:"pharmacy,omitempty"`
	Date         string   `json:"date,omitempty"`
	Dosage       string   `json:"dosage"`
	Quantity     string   `json:"quantity,omitempty"`
	Refills      *FlexInt `json:"refills,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Strength     string   `json:"strength,omitempty"`
}

type NewAppointment struct {
	DoctorName string   `json:"doctorName"`
	Specialty  string   `json:"specialty"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Duration   *FlexInt `json:"duration,omitempty"`
	Type       string   `json:"type,omitempty"`
	Location   string   `json:"location,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Phone      string   `json:"phone,omitempty"`
}

type NewNotification struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	Type         string `json:"type,omitempty"`
	Priority     string `json:"priority,omitempty"`
	ScheduledFor string `json:"scheduledFor,omitempty"`
}

// PrescriptionPatch carries only the fields a caller supplied. Identity and
// ownership fields are not patchable.
type PrescriptionPatch struct {
	Medication   *string  `json:"medication,omitempty"`
	Doctor       *string  `json:"doctor,omitempty"`
	Pharmacy     *string  `json:"pharmacy,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Dosage       *string  `json:"dosage,omitempty"`
	Quantity     *string  `json:"quantity,omitempty"`
	Refills      *FlexInt `json:"refills,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
	Strength     *string  `json:"strength,omitempty"`
}

func (p PrescriptionPatch) IsEmpty() bool {
	return p.Medication == nil && p.Doctor == nil && p.Pharmacy == nil && p.Date == nil &&
		p.Status == nil && p.Dosage == nil && p.Quantity == nil && p.Refills == nil &&
		p.Instructions == nil && p.Strength == nil
}

func (p PrescriptionPatch) Apply(rx *Prescription) {
	setString(&rx.Medication, p.Medication)
	setString(&rx.Doctor, p.Doctor)
	setString(&rx.Pharmacy, p.Pharmacy)
	setString(&rx.Date, p.Date)
	setString(&rx.Status, p.Status)
	setString(&rx.Dosage, p.Dosage)
	setString(&rx.Quantity, p.Quantity)
	setString(&rx.Instructions, p.Instructions)
	setString(&rx.Strength, p.Strength)
	if p.Refills != nil {
		rx.Refills = int(*p.Refills)
	}
}

type AppointmentPatch struct {
	DoctorName *string  `json:"doctorName,omitempty"`
	Specialty  *string  `json:"specialty,omitempty"`
	Date       *string  `json:"date,omitempty"`
	Time       *string  `json:"time,omitempty"`
	Duration   *FlexInt `json:"duration,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Type       *string  `json:"type,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
}

func (p AppointmentPatch) IsEmpty() bool {
	return p.DoctorName == nil && p.Specialty == nil && p.Date == nil && p.Time == nil &&
		p.Duration == nil && p.Status == nil && p.Type == nil && p.Location == nil &&
		p.Notes == nil && p.Phone == nil
}

func (p AppointmentPatch) Apply(a *Appointment) {
	setString(&a.DoctorName, p.DoctorName)
	setString(&a.Specialty, p.Specialty)
	setString(&a.Date, p.Date)
	setString(&a.Time, p.Time)
	setString(&a.Status, p.Status)
	setString(&a.Type, p.Type)
	setString(&a.Location, p.Location)
	setString(&a.Notes, p.Notes)
	setString(&a.Phone, p.Phone)
	if p.Duration != nil {
		a.Duration = int(*p.Duration)
	}
}

type ProfilePatch struct {
	FirstName        *string           `json:"firstName,omitempty"`
	LastName         *string           `json:"lastName,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	DateOfBirth      *string           `json:"dateOfBirth,omitempty"`
	Address          *string           `json:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Insurance        *Insurance        `json:"insurance,omitempty"`
	MedicalHistory   *[]string         `json:"medicalHistory,omitempty"`
	Allergies        *[]string         `json:"allergies,omitempty"`
}

func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.DateOfBirth == nil &&
		p.Address == nil && p.EmergencyContact == nil && p.Insurance == nil &&
		p.MedicalHistory == nil && p.Allergies == nil
}

func (p ProfilePatch) Apply(profile *UserProfile) {
	setString(&profile.FirstName, p.FirstName)
	setString(&profile.LastName, p.LastName)
	setString(&profile.Phone, p.Phone)
	setString(&profile.DateOfBirth, p.DateOfBirth)
	setString(&profile.Address, p.Address)
	if p.EmergencyContact != nil {
		contact := *p.EmergencyContact
		profile.EmergencyContact = &contact
	}
	if p.Insurance != nil {
		insurance := *p.Insurance
		profile.Insurance = &insurance
	}
	if p.MedicalHistory != nil {
		profile.MedicalHistory = append([]string{}, (*p.MedicalHistory)...)
	}
	if p.Allergies != nil {
		profile.Allergies = append([]string{}, (*p.Allergies)...)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

type PrescriptionFilter struct {
	Status string
	Search string
}

type AppointmentFilter struct {
	Status   string
	Upcoming bool
}

type DoctorFilter struct {
	Specialty string
	Search    string
	Location  string
}

type NotificationFilter struct {
	UnreadOnly bool
	Type       string
}
