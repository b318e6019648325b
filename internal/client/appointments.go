package client

import (
	"context"
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type AppointmentFilters struct {
	Status   string
	Upcoming bool
}

func (f AppointmentFilters) params() Params {
	return Params{}.
		Add(queryStatus, f.Status).
		AddFlag(queryUpcoming, f.Upcoming)
}

type AppointmentsAPI struct {
	client *Client
}

func (a *AppointmentsAPI) GetAll(ctx context.Context, filters AppointmentFilters) (model.AppointmentListResponse, error) {
	var resp model.AppointmentListResponse
	err := a.client.Do(ctx, Request{Path: pathAppointments, Query: filters.params()}, &resp)
	return resp, err
}

func (a *AppointmentsAPI) GetByID(ctx context.Context, id int64) (model.AppointmentResponse, error) {
	var resp model.AppointmentResponse
	err := a.client.Do(ctx, Request{Path: resourcePath(pathAppointments, id)}, &resp)
	return resp, err
}

func (a *AppointmentsAPI) Create(ctx context.Context, in model.NewAppointment) (model.AppointmentResponse, error) {
	var resp model.AppointmentResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPost, Path: pathAppointments, Body: in}, &resp)
	return resp, err
}

func (a *AppointmentsAPI) Update(ctx context.Context, id int64, patch model.AppointmentPatch) (model.AppointmentResponse, error) {
	var resp model.AppointmentResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPut, Path: resourcePath(pathAppointments, id), Body: patch}, &resp)
	return resp, err
}

// Cancel marks the appointment Cancelled. The record is kept.
func (a *AppointmentsAPI) Cancel(ctx context.Context, id int64) (model.Envelope, error) {
	var resp model.Envelope
	err := a.client.Do(ctx, Request{Method: http.MethodDelete, Path: resourcePath(pathAppointments, id)}, &resp)
	return resp, err
}
