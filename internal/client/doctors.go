package client

import (
	"context"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type DoctorFilters struct {
	Specialty string
	Search    string
	Location  string
}

func (f DoctorFilters) params() Params {
	return Params{}.
		Add(querySpecialty, f.Specialty).
		Add(querySearch, f.Search).
		Add(queryLocation, f.Location)
}

type DoctorsAPI struct {
	client *Client
}

func (a *DoctorsAPI) GetAll(ctx context.Context, filters DoctorFilters) (model.DoctorListResponse, error) {
	var resp model.DoctorListResponse
	err := a.client.Do(ctx, Request{Path: pathDoctors, Query: filters.params()}, &resp)
	return resp, err
}

func (a *DoctorsAPI) GetByID(ctx context.Context, id int64) (model.DoctorResponse, error) {
	var resp model.DoctorResponse
	err := a.client.Do(ctx, Request{Path: resourcePath(pathDoctors, id)}, &resp)
	return resp, err
}
