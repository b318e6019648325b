package records

import (
	"context"
	"sort"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func (s *Service) ListPrescriptions(ctx context.Context, userID int64, filter model.PrescriptionFilter) ([]model.Prescription, error) {
	all, err := s.repo.ListPrescriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(filter.Status)
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]model.Prescription, 0, len(all))
	for _, rx := range all {
		if status != "" && !strings.EqualFold(rx.Status, status) {
			continue
		}
		if search != "" && !containsAny(search, rx.Medication, rx.Doctor, rx.Pharmacy) {
			continue
		}
		out = append(out, rx)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Service) GetPrescription(ctx context.Context, userID, id int64) (model.Prescription, error) {
	rx, err := s.repo.GetPrescription(ctx, userID, id)
	if err != nil {
		return model.Prescription{}, translate(err)
	}
	return rx, nil
}

func (s *Service) CreatePrescription(ctx context.Context, userID int64, in model.NewPrescription) (model.Prescription, error) {
	rx := model.Prescription{
		UserID:       userID,
		Medication:   strings.TrimSpace(in.Medication),
		Doctor:       strings.TrimSpace(in.Doctor),
		Pharmacy:     strings.TrimSpace(in.Pharmacy),
		Date:         strings.TrimSpace(in.Date),
		Status:       model.PrescriptionActive,
		Dosage:       strings.TrimSpace(in.Dosage),
		Quantity:     strings.TrimSpace(in.Quantity),
		Instructions: strings.TrimSpace(in.Instructions),
		Strength:     strings.TrimSpace(in.Strength),
		CreatedAt:    s.now(),
	}
	if rx.Medication == "" || rx.Doctor == "" || rx.Dosage == "" {
		return model.Prescription{}, ErrRequiredFields
	}
	if rx.Date == "" {
		rx.Date = s.today()
	} else if err := validateDate("date", rx.Date); err != nil {
		return model.Prescription{}, err
	}
	if in.Refills != nil {
		rx.Refills = int(*in.Refills)
	}
	if err := validateRefills(rx.Refills); err != nil {
		return model.Prescription{}, err
	}

	return s.repo.CreatePrescription(ctx, rx)
}

func (s *Service) UpdatePrescription(ctx context.Context, userID, id int64, patch model.PrescriptionPatch) (model.Prescription, error) {
	rx, err := s.repo.UpdatePrescription(ctx, userID, id, func(rx *model.Prescription) error {
		if patch.IsEmpty() {
			return ErrNoUpdateFields
		}
		if err := validatePrescriptionPatch(&patch); err != nil {
			return err
		}
		patch.Apply(rx)
		now := s.now()
		rx.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return model.Prescription{}, translate(err)
	}
	return rx, nil
}

func (s *Service) DeletePrescription(ctx context.Context, userID, id int64) error {
	return translate(s.repo.DeletePrescription(ctx, userID, id))
}

func validatePrescriptionPatch(patch *model.PrescriptionPatch) error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"medication", patch.Medication},
		{"doctor", patch.Doctor},
		{"dosage", patch.Dosage},
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
	if patch.Status != nil {
		status, err := canonical("status", *patch.Status, model.PrescriptionActive, model.PrescriptionExpired, model.PrescriptionCancelled)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if patch.Refills != nil {
		if err := validateRefills(int(*patch.Refills)); err != nil {
			return err
		}
	}
	return nil
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
