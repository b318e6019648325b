package client

import (
	"context"
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type NotificationFilters struct {
	UnreadOnly bool
	Type       string
}

func (f NotificationFilters) params() Params {
	return Params{}.
		AddFlag(queryUnreadOnly, f.UnreadOnly).
		Add(queryType, f.Type)
}

type NotificationsAPI struct {
	client *Client
}

func (a *NotificationsAPI) GetAll(ctx context.Context, filters NotificationFilters) (model.NotificationListResponse, error) {
	var resp model.NotificationListResponse
	err := a.client.Do(ctx, Request{Path: pathNotifications, Query: filters.params()}, &resp)
	return resp, err
}

func (a *NotificationsAPI) MarkAsRead(ctx context.Context, id int64) (model.NotificationResponse, error) {
	var resp model.NotificationResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPut, Path: notificationReadPath(id)}, &resp)
	return resp, err
}

func (a *NotificationsAPI) Create(ctx context.Context, in model.NewNotification) (model.NotificationResponse, error) {
	var resp model.NotificationResponse
	err := a.client.Do(ctx, Request{Method: http.MethodPost, Path: pathNotifications, Body: in}, &resp)
	return resp, err
}
