package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/postgres"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	pkglog "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/log"
)

// EnsureSuperAdmin creates the bootstrap super-admin account if the
// configured email is not registered yet. Safe to run on every start; a
// concurrent replica losing the insert race counts as success.
func EnsureSuperAdmin(ctx context.Context, logger pkglog.Logger, users repo.UserRepository, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("super admin credentials not configured")
	}
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &domain.User{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		MobileNumber: "0000000000",
		Role:         domain.RoleSuperAdmin,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return err
	}
	logger.Info().Str("email", email).Msg("super admin created")
	return nil
}
