package api

import (
	"net/http"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const msgDoctorNotFound = "Doctor not found"

func (s *Server) listDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	doctors, err := s.records.ListDoctors(r.Context(), model.DoctorFilter{
		Specialty: strings.TrimSpace(query.Get("specialty")),
		Search:    strings.TrimSpace(query.Get("search")),
		Location:  strings.TrimSpace(query.Get("location")),
	})
	if err != nil {
		s.writeRecordsError(w, r, err, msgDoctorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.DoctorListResponse{
		Envelope: model.OK(""),
		Doctors:  doctors,
		Total:    len(doctors),
	})
}

func (s *Server) getDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgDoctorNotFound)
		return
	}

	doctor, err := s.records.GetDoctor(r.Context(), id)
	if err != nil {
		s.writeRecordsError(w, r, err, msgDoctorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.DoctorResponse{Envelope: model.OK(""), Doctor: doctor})
}
