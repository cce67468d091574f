package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/sanitizer"
	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

// Service manages user identities and password authentication.
type Service struct {
	storage    Storage
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time

	// dummyHash is compared against on unknown emails so a miss costs the
	// same as a wrong password.
	dummyHash []byte
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBcryptCost sets the bcrypt cost for new hashes. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a user service backed by storage.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), s.bcryptCost)

	return s
}

// CreateUser stores a new inactive user. Validation failures, including an
// email that is already registered, are returned as validator.ValidationErrors
// joined with ErrValidation (and ErrEmailAlreadyExists for duplicates).
func (s *Service) CreateUser(ctx context.Context, email, password string, opts ...UserOption) (*User, error) {
	p := &userParams{}
	for _, opt := range opts {
		opt(p)
	}
	return s.create(ctx, email, password, p)
}

// CreateSuperuser stores a user with every elevated flag set. It fails with
// ErrConfig when the caller explicitly asks for is_staff or is_superuser to be
// false.
func (s *Service) CreateSuperuser(ctx context.Context, email, password string, opts ...UserOption) (*User, error) {
	p := &userParams{}
	for _, opt := range opts {
		opt(p)
	}

	if !boolOr(p.isStaff, true) {
		return nil, errors.Join(ErrConfig, errors.New("superuser must have is_staff=true"))
	}
	if !boolOr(p.isSuperuser, true) {
		return nil, errors.Join(ErrConfig, errors.New("superuser must have is_superuser=true"))
	}

	t := true
	p.isStaff, p.isSuperuser, p.isSeller, p.isCustomer = &t, &t, &t, &t

	return s.create(ctx, email, password, p)
}

func (s *Service) create(ctx context.Context, email, password string, p *userParams) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.Required("password", password),
	); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    sanitizer.NormalizeName(p.firstName),
		LastName:     sanitizer.NormalizeName(p.lastName),
		PasswordHash: string(hash),
		IsActive:     p.isActive,
		IsStaff:      boolOr(p.isStaff, false),
		IsSuperuser:  boolOr(p.isSuperuser, false),
		IsSeller:     boolOr(p.isSeller, false),
		IsCustomer:   boolOr(p.isCustomer, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, errors.Join(ErrValidation, ErrEmailAlreadyExists,
				validator.FieldError("email", "User with this email already exists.", "validation.unique"))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
		slog.Bool("superuser", user.IsSuperuser),
	)

	return user, nil
}

// Authenticate returns the user whose email and password match. It returns
// ErrInvalidCredentials for an unknown email and for a wrong password alike.
// Activation status is not checked.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.CheckPassword(user, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CheckPassword reports whether plaintext matches the user's stored hash.
func (s *Service) CheckPassword(user *User, plaintext string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}

// SetPassword replaces the stored hash and updates user in place. Tokens bound
// to the previous hash stop verifying.
func (s *Service) SetPassword(ctx context.Context, user *User, plaintext string) error {
	if plaintext == "" {
		return ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = s.now().UTC()
	return nil
}

// Activate marks the user active.
func (s *Service) Activate(ctx context.Context, user *User) error {
	if err := s.storage.UpdateActive(ctx, user.ID, true); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	user.IsActive = true
	user.UpdatedAt = s.now().UTC()
	return nil
}

// RecordLogin stamps the last login time.
func (s *Service) RecordLogin(ctx context.Context, user *User) error {
	at := s.now().UTC().Truncate(time.Microsecond)
	if err := s.storage.UpdateLastLogin(ctx, user.ID, at); err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &at
	return nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.storage.GetUserByID(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.storage.GetUserByEmail(ctx, sanitizer.NormalizeEmail(email))
}
