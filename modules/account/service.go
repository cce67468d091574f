package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/email"
	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/queue"
	"github.com/anita-maxwynn/Django-Practice/pkg/sanitizer"
	"github.com/anita-maxwynn/Django-Practice/pkg/token"
	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

const (
	flowRegister       = "register"
	flowActivate       = "activate"
	flowLogin          = "login"
	flowLogout         = "logout"
	flowChangePassword = "change_password"
	flowForgotPassword = "forgot_password"
	flowResetPassword  = "reset_password"
)

const (
	outcomeSuccess  = "success"
	outcomeInvalid  = "invalid"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// FlowObserver receives the outcome of every flow. metrics.Metrics.ObserveFlow
// satisfies it.
type FlowObserver func(flow, outcome string)

// Service runs the account flows on top of auth.Service.
type Service struct {
	cfg        Config
	users      *auth.Service
	mailer     email.EmailSender
	activation *token.Generator
	reset      *token.Generator
	logger     *slog.Logger
	observe    FlowObserver
}

type serviceOptions struct {
	logger   *slog.Logger
	observer FlowObserver
	tokenOpt []token.GeneratorOption
}

type ServiceOption func(*serviceOptions)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithFlowObserver(fn FlowObserver) ServiceOption {
	return func(o *serviceOptions) {
		if fn != nil {
			o.observer = fn
		}
	}
}

// WithClock overrides the time source of the link token generators.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.tokenOpt = append(o.tokenOpt, token.WithClock(now))
	}
}

// NewService creates the account service. Emails go through mailer and are
// never awaited; pass an *email.AsyncSender to keep requests off the network.
func NewService(cfg Config, users *auth.Service, mailer email.EmailSender, opts ...ServiceOption) (*Service, error) {
	if users == nil || mailer == nil {
		return nil, errors.Join(ErrConfig, errors.New("users and mailer are required"))
	}
	cfg = cfg.withDefaults()
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	if cfg.SiteURL == "" {
		return nil, errors.Join(ErrConfig, errors.New("site url is required"))
	}

	o := serviceOptions{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: func(string, string) {},
	}
	for _, opt := range opts {
		opt(&o)
	}

	activation, err := token.NewGenerator(cfg.TokenSecret, activationPurpose, cfg.ActivationTTL, o.tokenOpt...)
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}
	reset, err := token.NewGenerator(cfg.TokenSecret, resetPurpose, cfg.ResetTTL, o.tokenOpt...)
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	return &Service{
		cfg:        cfg,
		users:      users,
		mailer:     mailer,
		activation: activation,
		reset:      reset,
		logger:     o.logger.With(logger.Component("account")),
		observe:    o.observer,
	}, nil
}

// Register creates an inactive user and emails the activation link.
func (s *Service) Register(ctx context.Context, in RegisterInput) (_ *auth.User, err error) {
	defer func() { s.record(flowRegister, err) }()

	in.Email = sanitizer.NormalizeEmail(in.Email)
	if err := in.validate(s.cfg.PasswordMinLength); err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, in.Email, in.Password1, auth.WithName(in.FirstName, in.LastName))
	if err != nil {
		return nil, err
	}

	link, err := s.link(s.activation, "activate", user)
	if err != nil {
		return nil, err
	}
	s.send(ctx, flowRegister, user, activationSubject, activationEmail(emailData{
		Name:    user.FullName(),
		Link:    link,
		SiteURL: s.cfg.SiteURL,
	}))

	s.logger.InfoContext(ctx, "user registered", logger.Flow(flowRegister), logger.UserID(user.ID.String()), logger.Email(user.Email))
	return user, nil
}

// Activate marks the user behind a valid activation link active. A link that
// fails to verify changes nothing.
func (s *Service) Activate(ctx context.Context, uid, tok string) (_ *auth.User, err error) {
	defer func() { s.record(flowActivate, err) }()

	user, err := s.resolveLink(ctx, s.activation, uid, tok)
	if err != nil {
		return nil, err
	}
	if !allowed(ctx, user, false, EventActivate) {
		return nil, ErrInvalidLink
	}

	if err := s.users.Activate(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user activated", logger.Flow(flowActivate), logger.UserID(user.ID.String()))
	return user, nil
}

// Login checks the credentials and records the login. Establishing the
// session is left to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (_ *auth.User, err error) {
	defer func() { s.record(flowLogin, err) }()

	if err := in.validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.InfoContext(ctx, "login failed", logger.Flow(flowLogin), logger.Email(in.Email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !allowed(ctx, user, false, EventLogin) {
		s.logger.InfoContext(ctx, "login rejected for inactive account", logger.Flow(flowLogin), logger.UserID(user.ID.String()))
		return nil, ErrInactiveAccount
	}

	if err := s.users.RecordLogin(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in", logger.Flow(flowLogin), logger.UserID(user.ID.String()))
	return user, nil
}

// ChangePassword replaces the password of a logged in user after checking
// the old one.
func (s *Service) ChangePassword(ctx context.Context, user *auth.User, in ChangePasswordInput) (err error) {
	defer func() { s.record(flowChangePassword, err) }()

	if user == nil {
		return auth.ErrUserNotFound
	}
	if in.OldPassword != "" && !s.users.CheckPassword(user, in.OldPassword) {
		return joinField(ErrWrongOldPassword, "old_password",
			"Your old password was entered incorrectly. Please enter it again.", "validation.wrong_password")
	}
	if err := in.validate(s.cfg.PasswordMinLength); err != nil {
		return err
	}
	if in.NewPassword1 != in.NewPassword2 {
		return mismatch("new_password2")
	}

	if err := s.users.SetPassword(ctx, user, in.NewPassword1); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "password changed", logger.Flow(flowChangePassword), logger.UserID(user.ID.String()))
	return nil
}

// ForgotPassword emails a reset link when an account exists for the address,
// active or not. The result does not reveal whether it does.
func (s *Service) ForgotPassword(ctx context.Context, in ForgotPasswordInput) (err error) {
	defer func() { s.record(flowForgotPassword, err) }()

	in.Email = sanitizer.NormalizeEmail(in.Email)
	if err := in.validate(); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.logger.DebugContext(ctx, "password reset requested for unknown email", logger.Flow(flowForgotPassword), logger.Email(in.Email))
			return nil
		}
		return err
	}
	if !allowed(ctx, user, false, EventForgotPassword) {
		s.logger.DebugContext(ctx, "password reset not allowed", logger.Flow(flowForgotPassword), logger.UserID(user.ID.String()))
		return nil
	}

	link, err := s.link(s.reset, "reset_password", user)
	if err != nil {
		return err
	}
	s.send(ctx, flowForgotPassword, user, resetSubject, resetEmail(emailData{
		Name:    user.FullName(),
		Link:    link,
		SiteURL: s.cfg.SiteURL,
	}))

	s.logger.InfoContext(ctx, "password reset link sent", logger.Flow(flowForgotPassword), logger.UserID(user.ID.String()))
	return nil
}

// CheckResetLink returns the user a reset link was issued for, or
// ErrInvalidLink.
func (s *Service) CheckResetLink(ctx context.Context, uid, tok string) (*auth.User, error) {
	return s.resolveLink(ctx, s.reset, uid, tok)
}

// ResetPassword sets a new password through a reset link. The new password
// changes the user's state, so the link cannot be used again.
func (s *Service) ResetPassword(ctx context.Context, uid, tok string, in ResetPasswordInput) (err error) {
	defer func() { s.record(flowResetPassword, err) }()

	user, err := s.resolveLink(ctx, s.reset, uid, tok)
	if err != nil {
		return err
	}
	if err := in.validate(s.cfg.PasswordMinLength); err != nil {
		return err
	}
	if in.NewPassword1 != in.NewPassword2 {
		return mismatch("new_password2")
	}

	if err := s.users.SetPassword(ctx, user, in.NewPassword1); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "password reset", logger.Flow(flowResetPassword), logger.UserID(user.ID.String()))
	return nil
}

// User loads a user by id.
func (s *Service) User(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.users.GetUser(ctx, id)
}

// resolveLink decodes uid, loads the user and checks tok against gen. Bad
// encodings, unknown users and failed checks all become ErrInvalidLink.
func (s *Service) resolveLink(ctx context.Context, gen *token.Generator, uid, tok string) (*auth.User, error) {
	id, err := token.DecodeID(uid)
	if err != nil {
		return nil, errors.Join(ErrInvalidLink, err)
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, errors.Join(ErrInvalidLink, err)
		}
		return nil, err
	}

	if err := gen.Check(user, tok); err != nil {
		s.logger.DebugContext(ctx, "link rejected",
			slog.String("purpose", gen.Purpose()),
			logger.UserID(user.ID.String()),
			logger.Error(err),
		)
		return nil, errors.Join(ErrInvalidLink, err)
	}
	return user, nil
}

func (s *Service) link(gen *token.Generator, path string, user *auth.User) (string, error) {
	tok, err := gen.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue %s token: %w", gen.Purpose(), err)
	}
	return fmt.Sprintf("%s/%s/%s/%s", s.cfg.SiteURL, path, token.EncodeID(user.ID), tok), nil
}

// send renders and hands the email to the mailer. Failures are logged and
// never reach the caller.
func (s *Service) send(ctx context.Context, flow string, user *auth.User, subject string, body emailBody) {
	html, err := email.Render(ctx, body)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to render email", logger.Flow(flow), logger.Error(err))
		return
	}

	err = s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   user.Email,
		Subject:  subject,
		BodyHTML: html,
		Tag:      flow,
	})
	switch {
	case errors.Is(err, queue.ErrQueueFull):
		s.logger.WarnContext(ctx, "email dropped", logger.Flow(flow), logger.Email(user.Email), logger.Error(err))
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to send email", logger.Flow(flow), logger.Email(user.Email), logger.Error(err))
	}
}

func (s *Service) record(flow string, err error) {
	s.observe(flow, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrInvalidLink),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInactiveAccount),
		errors.Is(err, ErrWrongOldPassword),
		errors.Is(err, ErrPasswordMismatch):
		return outcomeRejected
	case validator.IsValidationError(err):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

func joinField(sentinel error, field, message, key string) error {
	return errors.Join(sentinel, validator.FieldError(field, message, key))
}
