package store

import (
	"context"
	"errors"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Account is a login identity. The password hash never leaves the server.
type Account struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

func (a Account) User() model.User {
	return model.User{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.FirstName + " " + a.LastName,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
	}
}

// Repository is the persistence contract behind every resource handler.
// Update methods run the mutate callback inside a single transaction: the
// record is re-read, mutated, and written back, or nothing changes when
// mutate returns an error. Records owned by a user are always looked up by
// (userID, id); a record owned by someone else reads as ErrNotFound.
type Repository interface {
	CreateAccount(ctx context.Context, account Account, profile model.UserProfile) (Account, model.UserProfile, error)
	AccountByEmail(ctx context.Context, email string) (Account, error)

	ListPrescriptions(ctx context.Context, userID int64) ([]model.Prescription, error)
	GetPrescription(ctx context.Context, userID, id int64) (model.Prescription, error)
	CreatePrescription(ctx context.Context, rx model.Prescription) (model.Prescription, error)
	UpdatePrescription(ctx context.Context, userID, id int64, mutate func(*model.Prescription) error) (model.Prescription, error)
	DeletePrescription(ctx context.Context, userID, id int64) error

	ListAppointments(ctx context.Context, userID int64) ([]model.Appointment, error)
	GetAppointment(ctx context.Context, userID, id int64) (model.Appointment, error)
	CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, userID, id int64, mutate func(*model.Appointment) error) (model.Appointment, error)

	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (model.Doctor, error)
	CreateDoctor(ctx context.Context, doctor model.Doctor) (model.Doctor, error)

	ListNotifications(ctx context.Context, userID int64) ([]model.Notification, error)
	CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error)
	UpdateNotification(ctx context.Context, userID, id int64, mutate func(*model.Notification) error) (model.Notification, error)

	GetProfile(ctx context.Context, userID int64) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, mutate func(*model.UserProfile) error) (model.UserProfile, error)

	Close() error
}

var (
	_ Repository = (*Memory)(nil)
	_ Repository = (*SQL)(nil)
)
