package records

import (
	"context"
	"sort"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const defaultDuration = 30

func (s *Service) ListAppointments(ctx context.Context, userID int64, filter model.AppointmentFilter) ([]model.Appointment, error) {
	all, err := s.repo.ListAppointments(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(filter.Status)
	today := s.today()
	out := make([]model.Appointment, 0, len(all))
	for _, appt := range all {
		if status != "" && !strings.EqualFold(appt.Status, status) {
			continue
		}
		if filter.Upcoming && !isUpcoming(appt, today) {
			continue
		}
		out = append(out, appt)
	}

	s.sortAppointments(out)
	return out, nil
}

// isUpcoming reports whether appt is on or after today and still open.
func isUpcoming(appt model.Appointment, today string) bool {
	if appt.Status == model.AppointmentCompleted || appt.Status == model.AppointmentCancelled {
		return false
	}
	return appt.Date >= today
}

func (s *Service) sortAppointments(appts []model.Appointment) {
	loc := s.now().Location()
	sort.SliceStable(appts, func(i, j int) bool {
		a, aok := appointmentStart(appts[i].Date, appts[i].Time, loc)
		b, bok := appointmentStart(appts[j].Date, appts[j].Time, loc)
		if aok && bok && !a.Equal(b) {
			return a.Before(b)
		}
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].ID < appts[j].ID
	})
}

func (s *Service) GetAppointment(ctx context.Context, userID, id int64) (model.Appointment, error) {
	appt, err := s.repo.GetAppointment(ctx, userID, id)
	if err != nil {
		return model.Appointment{}, translate(err)
	}
	return appt, nil
}

func (s *Service) CreateAppointment(ctx context.Context, userID int64, in model.NewAppointment) (model.Appointment, error) {
	now := s.now()
	appt := model.Appointment{
		UserID:     userID,
		DoctorName: strings.TrimSpace(in.DoctorName),
		Specialty:  strings.TrimSpace(in.Specialty),
		Date:       strings.TrimSpace(in.Date),
		Time:       strings.TrimSpace(in.Time),
		Duration:   defaultDuration,
		Status:     model.AppointmentPending,
		Type:       model.AppointmentInPerson,
		Location:   strings.TrimSpace(in.Location),
		Notes:      strings.TrimSpace(in.Notes),
		Phone:      strings.TrimSpace(in.Phone),
		CreatedAt:  now,
	}
	if appt.DoctorName == "" || appt.Specialty == "" || appt.Date == "" || appt.Time == "" {
		return model.Appointment{}, ErrRequiredFields
	}
	if err := validateDate("date", appt.Date); err != nil {
		return model.Appointment{}, err
	}
	if err := validateClock("time", appt.Time); err != nil {
		return model.Appointment{}, err
	}
	if in.Duration != nil {
		appt.Duration = int(*in.Duration)
	}
	if err := validateDuration(appt.Duration); err != nil {
		return model.Appointment{}, err
	}
	if strings.TrimSpace(in.Type) != "" {
		kind, err := canonical("type", in.Type, model.AppointmentInPerson, model.AppointmentTelemedicine)
		if err != nil {
			return model.Appointment{}, err
		}
		appt.Type = kind
	}

	start, _ := appointmentStart(appt.Date, appt.Time, now.Location())
	if !start.After(now) {
		return model.Appointment{}, ErrAppointmentInPast
	}

	return s.repo.CreateAppointment(ctx, appt)
}

func (s *Service) UpdateAppointment(ctx context.Context, userID, id int64, patch model.AppointmentPatch) (model.Appointment, error) {
	appt, err := s.repo.UpdateAppointment(ctx, userID, id, func(appt *model.Appointment) error {
		if patch.IsEmpty() {
			return ErrNoUpdateFields
		}
		if err := validateAppointmentPatch(&patch); err != nil {
			return err
		}
		patch.Apply(appt)
		now := s.now()
		if patch.Date != nil || patch.Time != nil {
			start, _ := appointmentStart(appt.Date, appt.Time, now.Location())
			if !start.After(now) {
				return ErrAppointmentInPast
			}
		}
		appt.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return model.Appointment{}, translate(err)
	}
	return appt, nil
}

// CancelAppointment keeps the record and marks it Cancelled.
func (s *Service) CancelAppointment(ctx context.Context, userID, id int64) (model.Appointment, error) {
	appt, err := s.repo.UpdateAppointment(ctx, userID, id, func(appt *model.Appointment) error {
		appt.Status = model.AppointmentCancelled
		now := s.now()
		appt.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return model.Appointment{}, translate(err)
	}
	return appt, nil
}

func validateAppointmentPatch(patch *model.AppointmentPatch) error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"doctorName", patch.DoctorName},
		{"specialty", patch.Specialty},
		{"date", patch.Date},
		{"time", patch.Time},
	} {
		if err := requireNonBlank(f.name, f.value); err != nil {
			return err
		}
	}
	if patch.Date != nil {
		if err := validateDate("date", *patch.Date); err != nil {
			return err
		}
	}
	if patch.Time != nil {
		if err := validateClock("time", *patch.Time); err != nil {
			return err
		}
	}
	if patch.Duration != nil {
		if err := validateDuration(int(*patch.Duration)); err != nil {
			return err
		}
	}
	if patch.Status != nil {
		status, err := canonical("status", *patch.Status,
			model.AppointmentPending, model.AppointmentConfirmed, model.AppointmentCompleted, model.AppointmentCancelled)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if patch.Type != nil {
		kind, err := canonical("type", *patch.Type, model.AppointmentInPerson, model.AppointmentTelemedicine)
		if err != nil {
			return err
		}
		patch.Type = &kind
	}
	return nil
}
