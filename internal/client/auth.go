package client

import (
	"context"
	"net/http"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type AuthAPI struct {
	client *Client
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := a.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   model.LoginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return resp, err
	}
	a.remember(resp)
	return resp, nil
}

func (a *AuthAPI) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := a.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathRegister,
		Body:   req,
	}, &resp)
	if err != nil {
		return resp, err
	}
	a.remember(resp)
	return resp, nil
}

func (a *AuthAPI) ForgotPassword(ctx context.Context, email string) (model.Envelope, error) {
	var resp model.Envelope
	err := a.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathForgotPassword,
		Body:   model.ForgotPasswordRequest{Email: email},
	}, &resp)
	return resp, err
}

// Logout forgets the session token. The server keeps no session state.
func (a *AuthAPI) Logout() error {
	return a.client.tokens.Clear()
}

// remember stores the session token of a successful response. A store
// failure leaves the caller signed in for this process only.
func (a *AuthAPI) remember(resp model.AuthResponse) {
	if !resp.Success || resp.Token == "" {
		return
	}
	if err := a.client.tokens.Set(resp.Token); err != nil {
		a.client.logger.Warn("session token not persisted", "error", err)
	}
}
