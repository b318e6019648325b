package records

import (
	"context"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func (s *Service) GetProfile(ctx context.Context, userID int64) (model.UserProfile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return model.UserProfile{}, translate(err)
	}
	return profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, patch model.ProfilePatch) (model.UserProfile, error) {
	profile, err := s.repo.UpdateProfile(ctx, userID, func(profile *model.UserProfile) error {
		if patch.IsEmpty() {
			return ErrNoUpdateFields
		}
		if err := requireNonBlank("firstName", patch.FirstName); err != nil {
			return err
		}
		if err := requireNonBlank("lastName", patch.LastName); err != nil {
			return err
		}
		if patch.DateOfBirth != nil && strings.TrimSpace(*patch.DateOfBirth) != "" {
			if err := validateDate("dateOfBirth", *patch.DateOfBirth); err != nil {
				return err
			}
		}
		patch.Apply(profile)
		profile.MedicalHistory = cleanList(profile.MedicalHistory)
		profile.Allergies = cleanList(profile.Allergies)
		profile.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return model.UserProfile{}, translate(err)
	}
	return profile, nil
}

// cleanList trims entries and drops blanks.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
