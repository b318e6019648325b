package client

import (
	"context"
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type PrescriptionFilters struct {
	Status string
	Search string
}

func (f PrescriptionFilters) params() Params {
	return Params{}.
		Add(queryStatus, f.Status).
		Add(querySearch, f.Search)
}

type PrescriptionsAPI struct {
	client *Client
}

func (a *PrescriptionsAPI) GetAll(ctx context.Context, filters PrescriptionFilters) (model.PrescriptionListResponse, error) {
	var resp model.PrescriptionListResponse
	err := a.client.Do(ctx, Request{Path: pathPrescriptions, Query: filters.params()}, &resp)
	return resp, err
}

func (a *PrescriptionsAPI) GetByID(ctx context.Context, id int64) (model.PrescriptionResponse, error) {
	var resp model.PrescriptionResponse
	err := a.client.Do(ctx, Request{Path: resourcePath(pathPrescriptions, id)}, &resp)
	return resp, err
}

func (a *PrescriptionsAPI) Create(ctx context.Context, in model.NewPrescription) (model.PrescriptionResponse, error) {
	var resp model.PrescriptionResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPost, Path: pathPrescriptions, Body: in}, &resp)
	return resp, err
}

func (a *PrescriptionsAPI) Update(ctx context.Context, id int64, patch model.PrescriptionPatch) (model.PrescriptionResponse, error) {
	var resp model.PrescriptionResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPut, Path: resourcePath(pathPrescriptions, id), Body: patch}, &resp)
	return resp, err
}

func (a *PrescriptionsAPI) Delete(ctx context.Context, id int64) (model.Envelope, error) {
	var resp model.Envelope
	err := a.client.Do(ctx, Request{Method: http.MethodDelete, Path: resourcePath(pathPrescriptions, id)}, &resp)
	return resp, err
}
