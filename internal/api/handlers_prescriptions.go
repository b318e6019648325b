package api

import (
	"net/http"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const msgPrescriptionNotFound = "Prescription not found"

func (s *Server) listPrescriptions(w http.ResponseWriter, r *http.Request) {
	who := identityFromContext(r.Context())
	query := r.URL.Query()

	prescriptions, err := s.records.ListPrescriptions(r.Context(), who.UserID, model.PrescriptionFilter{
		Status: strings.TrimSpace(query.Get("status")),
		Search: strings.TrimSpace(query.Get("search")),
	})
	if err != nil {
		s.writeRecordsError(w, r, err, msgPrescriptionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.PrescriptionListResponse{
		Envelope:      model.OK(""),
		Prescriptions: prescriptions,
		Total:         len(prescriptions),
	})
}

func (s *Server) getPrescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgPrescriptionNotFound)
		return
	}

	rx, err := s.records.GetPrescription(r.Context(), identityFromContext(r.Context()).UserID, id)
	if err != nil {
		s.writeRecordsError(w, r, err, msgPrescriptionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.PrescriptionResponse{Envelope: model.OK(""), Prescription: rx})
}

func (s *Server) createPrescription(w http.ResponseWriter, r *http.Request) {
	var req model.NewPrescription
	if !decodeJSON(w, r, &req) {
		return
	}

	rx, err := s.records.CreatePrescription(r.Context(), identityFromContext(r.Context()).UserID, req)
	if err != nil {
		s.writeRecordsError(w, r, err, msgPrescriptionNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, model.PrescriptionResponse{
		Envelope:     model.OK("Prescription saved successfully"),
		Prescription: rx,
	})
}

func (s *Server) updatePrescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgPrescriptionNotFound)
		return
	}
	var patch model.PrescriptionPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	rx, err := s.records.UpdatePrescription(r.Context(), identityFromContext(r.Context()).UserID, id, patch)
	if err != nil {
		s.writeRecordsError(w, r, err, msgPrescriptionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.PrescriptionResponse{
		Envelope:     model.OK("Prescription updated successfully"),
		Prescription: rx,
	})
}

func (s *Server) deletePrescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgPrescriptionNotFound)
		return
	}

	if err := s.records.DeletePrescription(r.Context(), identityFromContext(r.Context()).UserID, id); err != nil {
		s.writeRecordsError(w, r, err, msgPrescriptionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.OK("Prescription deleted successfully"))
}
