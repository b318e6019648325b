package api

import (
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const msgProfileNotFound = "User profile not found"

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.records.GetProfile(r.Context(), identityFromContext(r.Context()).UserID)
	if err != nil {
		s.writeRecordsError(w, r, err, msgProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.ProfileResponse{Envelope: model.OK(""), Profile: profile})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfilePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	profile, err := s.records.UpdateProfile(r.Context(), identityFromContext(r.Context()).UserID, patch)
	if err != nil {
		s.writeRecordsError(w, r, err, msgProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.ProfileResponse{
		Envelope: model.OK("Profile updated successfully"),
		Profile:  profile,
	})
}
