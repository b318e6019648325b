package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/store"
)

const (
	minPasswordLength = 6
	// bcrypt refuses input longer than 72 bytes.
	maxPasswordLength = 72
)

var (
	ErrMissingRegistration = errors.New("all required fields must be provided")
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrWeakPassword        = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Session is what a successful login or registration hands back.
type Session struct {
	User    model.User
	Token   string
	Profile model.UserProfile
}

type Service struct {
	repo   store.Repository
	tokens *TokenService
	now    func() time.Time
}

func NewService(repo store.Repository, tokens *TokenService) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
	}
}

func (s *Service) Tokens() *TokenService {
	return s.tokens
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (Session, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if firstName == "" || lastName == "" || email == "" || req.Password == "" {
		return Session{}, ErrMissingRegistration
	}
	if !ValidEmail(email) {
		return Session{}, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return Session{}, ErrWeakPassword
	}
	if len(req.Password) > maxPasswordLength {
		return Session{}, ErrPasswordTooLong
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	account, profile, err := s.repo.CreateAccount(ctx, store.Account{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		CreatedAt:    now,
	}, model.UserProfile{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          strings.TrimSpace(req.Phone),
		MedicalHistory: []string{},
		Allergies:      []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return Session{}, ErrEmailTaken
	}
	if err != nil {
		return Session{}, err
	}

	token, _, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{User: account.User(), Token: token, Profile: profile}, nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return Session{}, ErrMissingCredentials
	}

	account, err := s.repo.AccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !CheckPassword(account.PasswordHash, req.Password) {
		return Session{}, ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{User: account.User(), Token: token}, nil
}

// ForgotPassword only validates the address. The reply is identical whether
// or not an account exists.
func (s *Service) ForgotPassword(_ context.Context, req model.ForgotPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return ErrMissingCredentials
	}
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}
