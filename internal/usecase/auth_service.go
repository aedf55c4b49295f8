package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/muneezaZaki85/galvan-ai-auth-system/config"
	repo "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/postgres"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	pkglog "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/log"
)

// NotificationSender delivers the verification code out of band. A failing
// send never fails registration; the caller only reports it.
type NotificationSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// EventPublisher announces account lifecycle changes to interested services.
// Best-effort; implementations must not block the request path on failure.
type EventPublisher interface {
	UserRegistered(user *domain.User)
	UserVerified(user *domain.User)
	UserCreated(user *domain.User)
	UserDeleted(user *domain.User)
}

type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	MobileNumber   string
	ProfilePicture *string
}

type AuthService interface {
	Register(ctx context.Context, traceID string, in RegisterInput) (*domain.User, bool, error)
	VerifyOTP(ctx context.Context, traceID, email, code string) error
	Login(ctx context.Context, traceID, email, password string) (*domain.User, *Tokens, error)
	Refresh(ctx context.Context, traceID, email string) (string, error)
	Logout(ctx context.Context, traceID, email string)
	Profile(ctx context.Context, email string) (*domain.User, error)
}

type authService struct {
	cfg    *config.Config
	logger pkglog.Logger
	users  repo.UserRepository
	tokens TokenIssuer
	otp    OTPGenerator
	sender NotificationSender
	events EventPublisher
	now    func() time.Time
}

func NewAuthService(cfg *config.Config, logger pkglog.Logger, users repo.UserRepository, tokens TokenIssuer, otp OTPGenerator, sender NotificationSender, events EventPublisher) AuthService {
	return &authService{
		cfg:    cfg,
		logger: logger,
		users:  users,
		tokens: tokens,
		otp:    otp,
		sender: sender,
		events: events,
		now:    time.Now,
	}
}

// Register creates the account in the pending state and attempts OTP
// delivery. The second return value reports whether the email went out;
// delivery failure does not roll the account back, since verification can be
// retried against the stored code.
func (s *authService) Register(ctx context.Context, traceID string, in RegisterInput) (*domain.User, bool, error) {
	if err := validateRegister(in); err != nil {
		return nil, false, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, false, err
	}
	code, err := s.otp.Generate()
	if err != nil {
		return nil, false, err
	}

	user := &domain.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PasswordHash:   hash,
		MobileNumber:   in.MobileNumber,
		ProfilePicture: in.ProfilePicture,
		Role:           domain.RoleUser,
	}
	user.SetOTP(code, s.otp.ExpiryFrom(s.now()))

	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	if s.events != nil {
		s.events.UserRegistered(user)
	}

	if err := s.sender.SendOTP(ctx, user.Email, code); err != nil {
		s.logger.Warn().Str("trace_id", traceID).Str("user_id", user.ID).Err(err).Msg("otp email delivery failed")
		return user, false, nil
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("registered")
	return user, true, nil
}

// VerifyOTP transitions a pending account to verified. Check order matters:
// a wrong code on an expired OTP still reports the mismatch, not the expiry.
func (s *authService) VerifyOTP(ctx context.Context, traceID, email, code string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}
	if user.OTPCode == nil || *user.OTPCode != code {
		return domain.ErrInvalidOTP
	}
	if user.OTPExpires == nil || s.now().After(*user.OTPExpires) {
		return domain.ErrOTPExpired
	}

	user.IsVerified = true
	user.ClearOTP()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if s.events != nil {
		s.events.UserVerified(user)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("email verified")
	return nil
}

func (s *authService) Login(ctx context.Context, traceID, email, password string) (*domain.User, *Tokens, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// same failure as a bad password, so account existence stays hidden
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !verifyPassword(password, user.PasswordHash) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, nil, domain.ErrEmailNotVerified
	}

	access, err := s.tokens.IssueAccess(user.Email, true)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.Email)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("login")
	return user, &Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTTL.Seconds()),
	}, nil
}

// Refresh exchanges an already-verified refresh subject for a new, non-fresh
// access token. The refresh token itself is never rotated.
func (s *authService) Refresh(ctx context.Context, traceID, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !user.IsVerified {
		return "", domain.ErrEmailNotVerified
	}
	access, err := s.tokens.IssueAccess(user.Email, false)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("token refreshed")
	return access, nil
}

// Logout is stateless: there is no token blacklist, so the only server-side
// effect is the audit log line.
func (s *authService) Logout(_ context.Context, traceID, email string) {
	s.logger.Info().Str("trace_id", traceID).Str("email", email).Msg("logout")
}

func (s *authService) Profile(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func validateRegister(in RegisterInput) error {
	required := map[string]string{
		"first_name":    in.FirstName,
		"last_name":     in.LastName,
		"email":         in.Email,
		"password":      in.Password,
		"mobile_number": in.MobileNumber,
	}
	for _, field := range []string{"first_name", "last_name", "email", "password", "mobile_number"} {
		if strings.TrimSpace(required[field]) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
		}
	}
	if !strings.Contains(in.Email, "@") || len(in.Email) > 120 {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	return nil
}
