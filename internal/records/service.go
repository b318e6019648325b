package records

import (
	"errors"
	"sync"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/store"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrRequiredFields    = errors.New("required fields are missing")
	ErrNoUpdateFields    = errors.New("no valid fields to update")
	ErrAppointmentInPast = errors.New("appointment date must be in the future")
	ErrInvalidInput      = errors.New("invalid input")
)

// FieldError reports a single rejected field. It matches ErrInvalidInput
// under errors.Is and its message is safe to show to the caller.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Broadcaster is told about notification changes after they are stored.
type Broadcaster interface {
	NotificationCreated(n model.Notification)
	NotificationRead(n model.Notification)
}

type Service struct {
	repo store.Repository

	mu          sync.RWMutex
	clock       func() time.Time
	broadcaster Broadcaster
}

func NewService(repo store.Repository) *Service {
	return &Service{
		repo:  repo,
		clock: time.Now,
	}
}

func (s *Service) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// SetClock replaces the time source used for defaults, timestamps, and the
// upcoming/future checks.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = now
}

func (s *Service) now() time.Time {
	s.mu.RLock()
	clock := s.clock
	s.mu.RUnlock()
	return clock()
}

func (s *Service) currentBroadcaster() Broadcaster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.broadcaster
}

func (s *Service) today() string {
	return s.now().Format(model.DateLayout)
}

func translate(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
