package api

import (
	"net/http"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const msgAppointmentNotFound = "Appointment not found"

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.records.ListAppointments(r.Context(), identityFromContext(r.Context()).UserID, model.AppointmentFilter{
		Status:   strings.TrimSpace(r.URL.Query().Get("status")),
		Upcoming: queryBool(r, "upcoming"),
	})
	if err != nil {
		s.writeRecordsError(w, r, err, msgAppointmentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.AppointmentListResponse{
		Envelope:     model.OK(""),
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgAppointmentNotFound)
		return
	}

	appt, err := s.records.GetAppointment(r.Context(), identityFromContext(r.Context()).UserID, id)
	if err != nil {
		s.writeRecordsError(w, r, err, msgAppointmentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.AppointmentResponse{Envelope: model.OK(""), Appointment: appt})
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req model.NewAppointment
	if !decodeJSON(w, r, &req) {
		return
	}

	appt, err := s.records.CreateAppointment(r.Context(), identityFromContext(r.Context()).UserID, req)
	if err != nil {
		s.writeRecordsError(w, r, err, msgAppointmentNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, model.AppointmentResponse{
		Envelope:    model.OK("Appointment booked successfully"),
		Appointment: appt,
	})
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgAppointmentNotFound)
		return
	}
	var patch model.AppointmentPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	appt, err := s.records.UpdateAppointment(r.Context(), identityFromContext(r.Context()).UserID, id, patch)
	if err != nil {
		s.writeRecordsError(w, r, err, msgAppointmentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.AppointmentResponse{
		Envelope:    model.OK("Appointment updated successfully"),
		Appointment: appt,
	})
}

func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgAppointmentNotFound)
		return
	}

	if _, err := s.records.CancelAppointment(r.Context(), identityFromContext(r.Context()).UserID, id); err != nil {
		s.writeRecordsError(w, r, err, msgAppointmentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.OK("Appointment cancelled successfully"))
}
