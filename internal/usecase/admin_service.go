package usecase

import (
	"context"
	"errors"

	repo "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/postgres"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	pkglog "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/log"
)

// UserPatch is the allow-listed update surface. Role, password and
// verification state are deliberately absent; fields left nil are untouched.
type UserPatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	MobileNumber   *string
	ProfilePicture *string
}

func (p UserPatch) apply(u *domain.User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.MobileNumber != nil {
		u.MobileNumber = *p.MobileNumber
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = p.ProfilePicture
	}
}

// AdminService is the super-admin-only CRUD surface. Every operation guards
// on the caller's role first, and only accounts with role=user are reachable:
// a super_admin row addressed by id reads as not found, not forbidden.
type AdminService interface {
	ListUsers(ctx context.Context, traceID, callerEmail string) ([]domain.User, error)
	CreateUser(ctx context.Context, traceID, callerEmail string, in RegisterInput) (*domain.User, error)
	GetUser(ctx context.Context, traceID, callerEmail, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, traceID, callerEmail, id string, patch UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, traceID, callerEmail, id string) error
}

type adminService struct {
	logger pkglog.Logger
	users  repo.UserRepository
	events EventPublisher
}

func NewAdminService(logger pkglog.Logger, users repo.UserRepository, events EventPublisher) AdminService {
	return &adminService{logger: logger, users: users, events: events}
}

func (s *adminService) ListUsers(ctx context.Context, traceID, callerEmail string) ([]domain.User, error) {
	if err := s.requireSuperAdmin(ctx, callerEmail); err != nil {
		return nil, err
	}
	return s.users.FindAllByRole(ctx, domain.RoleUser)
}

// CreateUser provisions a pre-verified account. The role is always user, no
// matter what the request claimed, and no OTP round-trip happens.
func (s *adminService) CreateUser(ctx context.Context, traceID, callerEmail string, in RegisterInput) (*domain.User, error) {
	if err := s.requireSuperAdmin(ctx, callerEmail); err != nil {
		return nil, err
	}
	if err := validateRegister(in); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PasswordHash:   hash,
		MobileNumber:   in.MobileNumber,
		ProfilePicture: in.ProfilePicture,
		Role:           domain.RoleUser,
		IsVerified:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.UserCreated(user)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("user created by admin")
	return user, nil
}

func (s *adminService) GetUser(ctx context.Context, traceID, callerEmail, id string) (*domain.User, error) {
	if err := s.requireSuperAdmin(ctx, callerEmail); err != nil {
		return nil, err
	}
	return s.users.FindByIDAndRole(ctx, id, domain.RoleUser)
}

func (s *adminService) UpdateUser(ctx context.Context, traceID, callerEmail, id string, patch UserPatch) (*domain.User, error) {
	if err := s.requireSuperAdmin(ctx, callerEmail); err != nil {
		return nil, err
	}
	user, err := s.users.FindByIDAndRole(ctx, id, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, *patch.Email); err == nil {
			return nil, domain.ErrDuplicateEmail
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	patch.apply(user)
	// the unique index still backstops a concurrent email grab
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("user updated by admin")
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, traceID, callerEmail, id string) error {
	if err := s.requireSuperAdmin(ctx, callerEmail); err != nil {
		return err
	}
	user, err := s.users.FindByIDAndRole(ctx, id, domain.RoleUser)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user); err != nil {
		return err
	}
	if s.events != nil {
		s.events.UserDeleted(user)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("user deleted by admin")
	return nil
}

func (s *adminService) requireSuperAdmin(ctx context.Context, email string) error {
	caller, err := s.users.FindByEmail(ctx, email)
	if err != nil || caller.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	return nil
}
