package records

import (
	"context"
	"sort"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func (s *Service) ListDoctors(ctx context.Context, filter model.DoctorFilter) ([]model.Doctor, error) {
	all, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	specialty := strings.ToLower(strings.TrimSpace(filter.Specialty))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	location := strings.ToLower(strings.TrimSpace(filter.Location))
	out := make([]model.Doctor, 0, len(all))
	for _, doctor := range all {
		if specialty != "" && !containsAny(specialty, doctor.Specialty) {
			continue
		}
		if search != "" && !containsAny(search, doctor.Name, doctor.Specialty, doctor.Location) {
			continue
		}
		if location != "" && !containsAny(location, doctor.Location) {
			continue
		}
		out = append(out, doctor)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (model.Doctor, error) {
	doctor, err := s.repo.GetDoctor(ctx, id)
	if err != nil {
		return model.Doctor{}, translate(err)
	}
	return doctor, nil
}
