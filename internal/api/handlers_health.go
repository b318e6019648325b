package api

import (
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func (s *Server) healthStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.records.Stats(r.Context(), identityFromContext(r.Context()).UserID)
	if err != nil {
		s.writeRecordsError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, model.StatsResponse{Envelope: model.OK(""), Stats: stats})
}
