package client

import (
	"context"
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type UserAPI struct {
	client *Client
}

func (a *UserAPI) GetProfile(ctx context.Context) (model.ProfileResponse, error) {
	var resp model.ProfileResponse
	err := a.client.Do(ctx, Request{Path: pathProfile}, &resp)
	return resp, err
}

func (a *UserAPI) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.ProfileResponse, error) {
	var resp model.ProfileResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPut, Path: pathProfile, Body: patch}, &resp)
	return resp, err
}

type HealthAPI struct {
	client *Client
}

func (a *HealthAPI) GetStats(ctx context.Context) (model.StatsResponse, error) {
	var resp model.StatsResponse
	err := a.client.Do(ctx, Request{Path: pathHealthStats}, &resp)
	return resp, err
}
