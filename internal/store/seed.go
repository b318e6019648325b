package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const (
	DemoEmail       = "john.doe@email.com"
	DemoSecondEmail = "jane.smith@email.com"
	DemoPassword    = "password123"
)

// SeedDemoData loads the demo accounts, records, and doctor directory. It is
// a no-op once the primary demo account exists. Appointment dates and doctor
// slots are laid out relative to now so the upcoming views are never empty.
func SeedDemoData(ctx context.Context, repo Repository, passwordHash string, now time.Time) error {
	if _, err := repo.AccountByEmail(ctx, DemoEmail); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check demo account: %w", err)
	}

	john, _, err := repo.CreateAccount(ctx, Account{
		Email:        DemoEmail,
		FirstName:    "John",
		LastName:     "Doe",
		Phone:        "+1 (555) 123-4567",
		PasswordHash: passwordHash,
		CreatedAt:    mustTime("2024-01-01T00:00:00Z"),
	}, model.UserProfile{
		FirstName:   "John",
		LastName:    "Doe",
		Phone:       "+1 (555) 123-4567",
		DateOfBirth: "1985-06-15",
		Address:     "123 Main St, Anytown, ST 12345",
		EmergencyContact: &model.EmergencyContact{
			Name:         "Jane Doe",
			Relationship: "Spouse",
			Phone:        "+1 (555) 987-6543",
		},
		Insurance: &model.Insurance{
			Provider:     "Blue Cross Blue Shield",
			PolicyNumber: "BC123456789",
			GroupNumber:  "GRP001",
		},
		MedicalHistory: []string{"Hypertension", "Type 2 Diabetes"},
		Allergies:      []string{"Penicillin", "Shellfish"},
		CreatedAt:      mustTime("2024-01-01T00:00:00Z"),
		UpdatedAt:      mustTime("2024-01-15T10:30:00Z"),
	})
	if err != nil {
		return fmt.Errorf("seed demo account: %w", err)
	}

	_, _, err = repo.CreateAccount(ctx, Account{
		Email:        DemoSecondEmail,
		FirstName:    "Jane",
		LastName:     "Smith",
		Phone:        "+1 (555) 987-6543",
		PasswordHash: passwordHash,
		CreatedAt:    mustTime("2024-01-02T00:00:00Z"),
	}, model.UserProfile{
		FirstName:      "Jane",
		LastName:       "Smith",
		Phone:          "+1 (555) 987-6543",
		MedicalHistory: []string{},
		Allergies:      []string{},
		CreatedAt:      mustTime("2024-01-02T00:00:00Z"),
		UpdatedAt:      mustTime("2024-01-02T00:00:00Z"),
	})
	if err != nil {
		return fmt.Errorf("seed second account: %w", err)
	}

	for _, rx := range demoPrescriptions(john.ID) {
		if _, err := repo.CreatePrescription(ctx, rx); err != nil {
			return fmt.Errorf("seed prescription: %w", err)
		}
	}
	for _, appt := range demoAppointments(john.ID, now) {
		if _, err := repo.CreateAppointment(ctx, appt); err != nil {
			return fmt.Errorf("seed appointment: %w", err)
		}
	}
	for _, doctor := range demoDoctors(now) {
		if _, err := repo.CreateDoctor(ctx, doctor); err != nil {
			return fmt.Errorf("seed doctor: %w", err)
		}
	}
	for _, n := range demoNotifications(john.ID) {
		if _, err := repo.CreateNotification(ctx, n); err != nil {
			return fmt.Errorf("seed notification: %w", err)
		}
	}
	return nil
}

func demoPrescriptions(userID int64) []model.Prescription {
	return []model.Prescription{
		{
			UserID:       userID,
			Medication:   "Amoxicillin 500mg",
			Doctor:       "Dr. Smith",
			Pharmacy:     "CVS Pharmacy",
			Date:         "2024-01-15",
			Status:       model.PrescriptionActive,
			Dosage:       "3 times daily",
			Quantity:     "30 tablets",
			Refills:      2,
			Instructions: "Take with food. Complete the full course.",
			Strength:     "500mg",
			CreatedAt:    mustTime("2024-01-15T10:00:00Z"),
		},
		{
			UserID:       userID,
			Medication:   "Lisinopril 10mg",
			Doctor:       "Dr. Johnson",
			Pharmacy:     "Walgreens",
			Date:         "2024-01-10",
			Status:       model.PrescriptionActive,
			Dosage:       "Once daily",
			Quantity:     "90 tablets",
			Refills:      5,
			Instructions: "Take in the morning with water.",
			Strength:     "10mg",
			CreatedAt:    mustTime("2024-01-10T14:30:00Z"),
		},
		{
			UserID:       userID,
			Medication:   "Metformin 500mg",
			Doctor:       "Dr. Brown",
			Pharmacy:     "CVS Pharmacy",
			Date:         "2024-01-05",
			Status:       model.PrescriptionExpired,
			Dosage:       "Twice daily",
			Quantity:     "60 tablets",
			Refills:      0,
			Instructions: "Take with meals to reduce stomach upset.",
			Strength:     "500mg",
			CreatedAt:    mustTime("2024-01-05T09:15:00Z"),
		},
	}
}

func demoAppointments(userID int64, now time.Time) []model.Appointment {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(model.DateLayout)
	}
	return []model.Appointment{
		{
			UserID:     userID,
			DoctorName: "Dr. Sarah Johnson",
			Specialty:  "Cardiologist",
			Date:       day(7),
			Time:       "10:00 AM",
			Duration:   30,
			Status:     model.AppointmentConfirmed,
			Type:       model.AppointmentInPerson,
			Location:   "Heart Care Center, 123 Medical Ave",
			Notes:      "Regular checkup and blood pressure monitoring",
			Phone:      "+1 (555) 123-4567",
			CreatedAt:  now.AddDate(0, 0, -14),
		},
		{
			UserID:     userID,
			DoctorName: "Dr. Michael Brown",
			Specialty:  "General Practitioner",
			Date:       day(12),
			Time:       "2:30 PM",
			Duration:   45,
			Status:     model.AppointmentPending,
			Type:       model.AppointmentTelemedicine,
			Location:   "Video Call",
			Notes:      "Follow-up on recent lab results",
			Phone:      "+1 (555) 987-6543",
			CreatedAt:  now.AddDate(0, 0, -12),
		},
		{
			UserID:     userID,
			DoctorName: "Dr. Emily Davis",
			Specialty:  "Dermatologist",
			Date:       day(-30),
			Time:       "11:15 AM",
			Duration:   30,
			Status:     model.AppointmentCompleted,
			Type:       model.AppointmentInPerson,
			Location:   "Skin Health Clinic, 456 Wellness Blvd",
			Notes:      "Skin examination and mole check",
			Phone:      "+1 (555) 456-7890",
			CreatedAt:  now.AddDate(0, 0, -45),
		},
	}
}

func demoDoctors(now time.Time) []model.Doctor {
	slot := func(offset int, times ...string) model.TimeSlots {
		return model.TimeSlots{Date: now.AddDate(0, 0, offset).Format(model.DateLayout), Times: times}
	}
	return []model.Doctor{
		{
			Name:             "Dr. Sarah Johnson",
			Specialty:        "Cardiologist",
			Rating:           4.9,
			Experience:       15,
			Location:         "Heart Care Center, 123 Medical Ave",
			Phone:            "+1 (555) 123-4567",
			Email:            "sarah.johnson@heartcare.com",
			Bio:              "Dr. Johnson is a board-certified cardiologist with over 15 years of experience in treating heart conditions.",
			Education:        "MD from Harvard Medical School",
			Languages:        []string{"English", "Spanish"},
			AcceptsInsurance: true,
			AvailableSlots: []model.TimeSlots{
				slot(1, "9:00 AM", "10:00 AM", "11:00 AM", "2:00 PM", "3:00 PM"),
				slot(2, "9:30 AM", "10:30 AM", "1:30 PM", "2:30 PM"),
				slot(3, "9:00 AM", "11:00 AM", "3:00 PM", "4:00 PM"),
			},
			Image: "https://images.pexels.com/photos/5327585/pexels-photo-5327585.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			Name:             "Dr. Michael Brown",
			Specialty:        "General Practitioner",
			Rating:           4.7,
			Experience:       12,
			Location:         "Family Health Clinic, 456 Wellness Blvd",
			Phone:            "+1 (555) 987-6543",
			Email:            "michael.brown@familyhealth.com",
			Bio:              "Dr. Brown provides comprehensive primary care services for patients of all ages.",
			Education:        "MD from Johns Hopkins University",
			Languages:        []string{"English"},
			AcceptsInsurance: true,
			AvailableSlots: []model.TimeSlots{
				slot(1, "8:00 AM", "9:00 AM", "1:00 PM", "4:00 PM"),
				slot(2, "8:30 AM", "10:00 AM", "2:00 PM", "3:30 PM"),
				slot(4, "9:00 AM", "10:30 AM", "2:30 PM"),
			},
			Image: "https://images.pexels.com/photos/5452293/pexels-photo-5452293.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			Name:             "Dr. Emily Davis",
			Specialty:        "Dermatologist",
			Rating:           4.8,
			Experience:       10,
			Location:         "Skin Health Clinic, 789 Beauty Lane",
			Phone:            "+1 (555) 456-7890",
			Email:            "emily.davis@skinhealth.com",
			Bio:              "Dr. Davis specializes in medical and cosmetic dermatology with a focus on skin cancer prevention.",
			Education:        "MD from Stanford University",
			Languages:        []string{"English", "French"},
			AcceptsInsurance: true,
			AvailableSlots: []model.TimeSlots{
				slot(2, "10:00 AM", "11:00 AM", "2:00 PM", "3:00 PM"),
				slot(3, "9:00 AM", "1:00 PM", "2:00 PM"),
				slot(5, "10:30 AM", "11:30 AM", "3:30 PM"),
			},
			Image: "https://images.pexels.com/photos/5327656/pexels-photo-5327656.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			Name:             "Dr. James Wilson",
			Specialty:        "Orthopedist",
			Rating:           4.6,
			Experience:       18,
			Location:         "Bone & Joint Center, 321 Sports Ave",
			Phone:            "+1 (555) 234-5678",
			Email:            "james.wilson@bonecenter.com",
			Bio:              "Dr. Wilson is an orthopedic surgeon specializing in sports medicine and joint replacement.",
			Education:        "MD from Mayo Clinic",
			Languages:        []string{"English"},
			AcceptsInsurance: true,
			AvailableSlots: []model.TimeSlots{
				slot(1, "11:00 AM", "1:00 PM", "3:00 PM"),
				slot(3, "9:30 AM", "2:30 PM", "4:00 PM"),
				slot(4, "10:00 AM", "1:30 PM"),
			},
			Image: "https://images.pexels.com/photos/6749778/pexels-photo-6749778.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			Name:             "Dr. Lisa Chen",
			Specialty:        "Pediatrician",
			Rating:           4.9,
			Experience:       8,
			Location:         "Children's Health Center, 654 Kids Way",
			Phone:            "+1 (555) 345-6789",
			Email:            "lisa.chen@childrenshealth.com",
			Bio:              "Dr. Chen is a pediatrician dedicated to providing comprehensive care for children from infancy through adolescence.",
			Education:        "MD from UCLA",
			Languages:        []string{"English", "Mandarin"},
			AcceptsInsurance: true,
			AvailableSlots: []model.TimeSlots{
				slot(2, "8:00 AM", "9:00 AM", "10:00 AM", "2:00 PM"),
				slot(3, "8:30 AM", "11:00 AM", "1:30 PM"),
				slot(5, "9:00 AM", "10:30 AM", "3:00 PM"),
			},
			Image: "https://images.pexels.com/photos/5452201/pexels-photo-5452201.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
	}
}

func demoNotifications(userID int64) []model.Notification {
	return []model.Notification{
		{
			UserID:       userID,
			Title:        "Prescription Reminder",
			Message:      "Time to take your Amoxicillin 500mg",
			Type:         model.NotificationMedication,
			Priority:     model.PriorityHigh,
			CreatedAt:    mustTime("2024-01-25T08:00:00Z"),
			ScheduledFor: mustTime("2024-01-25T08:00:00Z"),
		},
		{
			UserID:       userID,
			Title:        "Appointment Reminder",
			Message:      "You have an appointment with Dr. Johnson tomorrow at 10:00 AM",
			Type:         model.NotificationAppointment,
			Priority:     model.PriorityMedium,
			CreatedAt:    mustTime("2024-01-24T18:00:00Z"),
			ScheduledFor: mustTime("2024-01-24T18:00:00Z"),
		},
		{
			UserID:       userID,
			Title:        "Refill Available",
			Message:      "Your Lisinopril prescription is ready for refill",
			Type:         model.NotificationRefill,
			Priority:     model.PriorityLow,
			Read:         true,
			CreatedAt:    mustTime("2024-01-23T12:00:00Z"),
			ScheduledFor: mustTime("2024-01-23T12:00:00Z"),
		},
	}
}

func mustTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t
}
