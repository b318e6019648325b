package records

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const recentActivityLimit = 5

var everyHours = regexp.MustCompile(`every\s+(\d+)\s*(?:hours?|hrs?|h)\b`)

// Stats summarizes a user's records. Nothing here is cached; each call reads
// the current prescriptions and appointments.
func (s *Service) Stats(ctx context.Context, userID int64) (model.HealthStats, error) {
	prescriptions, err := s.repo.ListPrescriptions(ctx, userID)
	if err != nil {
		return model.HealthStats{}, err
	}
	appointments, err := s.repo.ListAppointments(ctx, userID)
	if err != nil {
		return model.HealthStats{}, err
	}

	var stats model.HealthStats
	stats.Prescriptions.Total = len(prescriptions)
	for _, rx := range prescriptions {
		switch rx.Status {
		case model.PrescriptionActive:
			stats.Prescriptions.Active++
			if rx.Refills > 0 {
				stats.Prescriptions.RefillsAvailable++
			}
			perDay, asNeeded := dosesPerDay(rx.Dosage)
			if asNeeded {
				stats.Medications.AsNeededMedications++
			} else {
				stats.Medications.DailyMedications++
				stats.Medications.TotalDosesThisWeek += perDay * 7
			}
		case model.PrescriptionExpired:
			stats.Prescriptions.Expired++
		}
	}

	today := s.today()
	stats.Appointments.Total = len(appointments)
	s.sortAppointments(appointments)
	for _, appt := range appointments {
		switch {
		case appt.Status == model.AppointmentCompleted:
			stats.Appointments.Completed++
			if appt.Date > stats.HealthMetrics.LastCheckup {
				stats.HealthMetrics.LastCheckup = appt.Date
			}
		case appt.Status == model.AppointmentCancelled:
			stats.Appointments.Cancelled++
		case isUpcoming(appt, today):
			stats.Appointments.Upcoming++
			if stats.HealthMetrics.NextAppointment == "" {
				stats.HealthMetrics.NextAppointment = appt.Date
			}
		}
	}

	stats.HealthMetrics.ActivePrescriptions = stats.Prescriptions.Active
	stats.HealthMetrics.HealthScore = healthScore(stats.Prescriptions.Expired, stats.Appointments.Cancelled)
	stats.RecentActivity = recentActivity(prescriptions, appointments)
	return stats, nil
}

func healthScore(expired, cancelled int) int {
	score := 100 - 10*expired - 5*cancelled
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// dosesPerDay reads a frequency out of free-form dosage text such as
// "Twice daily" or "Every 8 hours". Unrecognized text counts as once a day.
func dosesPerDay(dosage string) (int, bool) {
	text := strings.ToLower(dosage)
	if strings.Contains(text, "as needed") || strings.Contains(text, "prn") {
		return 0, true
	}
	if m := everyHours.FindStringSubmatch(text); m != nil {
		if hours, err := strconv.Atoi(m[1]); err == nil && hours > 0 && hours <= 24 {
			return 24 / hours, false
		}
	}
	switch {
	case strings.Contains(text, "four times"), strings.Contains(text, "4 times"):
		return 4, false
	case strings.Contains(text, "three times"), strings.Contains(text, "3 times"):
		return 3, false
	case strings.Contains(text, "twice"), strings.Contains(text, "two times"), strings.Contains(text, "2 times"):
		return 2, false
	default:
		return 1, false
	}
}

type activityEvent struct {
	at       time.Time
	activity model.Activity
}

func recentActivity(prescriptions []model.Prescription, appointments []model.Appointment) []model.Activity {
	events := make([]activityEvent, 0, len(prescriptions)+len(appointments))
	for _, rx := range prescriptions {
		events = append(events, activityEvent{at: rx.CreatedAt, activity: model.Activity{
			Type:        "prescription_added",
			Description: "Added " + rx.Medication,
			Date:        rx.CreatedAt.Format(model.DateLayout),
		}})
	}
	for _, appt := range appointments {
		events = append(events, activityEvent{at: appt.CreatedAt, activity: model.Activity{
			Type:        "appointment_booked",
			Description: "Booked appointment with " + appt.DoctorName,
			Date:        appt.CreatedAt.Format(model.DateLayout),
		}})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].at.After(events[j].at) })

	if len(events) > recentActivityLimit {
		events = events[:recentActivityLimit]
	}
	out := make([]model.Activity, 0, len(events))
	for _, e := range events {
		out = append(out, e.activity)
	}
	return out
}
