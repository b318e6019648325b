package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/auth"
	"github.com/healthscript/healthscript-backend/internal/model"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := s.accounts.Login(r.Context(), req)
	if err != nil {
		s.writeAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AuthResponse{
		Envelope: model.OK("Login successful"),
		User:     session.User,
		Token:    session.Token,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := s.accounts.Register(r.Context(), req)
	if err != nil {
		s.writeAuthError(w, r, err)
		return
	}
	s.logger.Info("account registered", "user_id", session.User.ID)
	writeJSON(w, http.StatusCreated, model.AuthResponse{
		Envelope: model.OK("Account created successfully"),
		User:     session.User,
		Token:    session.Token,
	})
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.accounts.ForgotPassword(r.Context(), req); err != nil {
		if errors.Is(err, auth.ErrMissingCredentials) {
			writeError(w, http.StatusBadRequest, "Email is required")
			return
		}
		s.writeAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.OK("If an account exists for this email, a password reset link has been sent"))
}

func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, auth.ErrMissingRegistration),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, sentence(err.Error()))
	default:
		s.internalError(w, r, err)
	}
}

// sentence upper-cases the first letter of an error message for display.
func sentence(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
