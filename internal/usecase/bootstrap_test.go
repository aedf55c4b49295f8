package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
)

func TestEnsureSuperAdminIdempotent(t *testing.T) {
	repo := newMockUserRepo()
	ctx := context.Background()

	if err := EnsureSuperAdmin(ctx, zerolog.Nop(), repo, "root@x.com", "bootstrap-pass"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := EnsureSuperAdmin(ctx, zerolog.Nop(), repo, "root@x.com", "bootstrap-pass"); err != nil {
		t.Fatalf("second run: %v", err)
	}

	admins, err := repo.FindAllByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected exactly one super admin, got %d", len(admins))
	}
	admin := admins[0]
	if !admin.IsVerified {
		t.Fatal("bootstrap admin must be verified")
	}
	if !verifyPassword("bootstrap-pass", admin.PasswordHash) {
		t.Fatal("bootstrap password must be stored hashed and verifiable")
	}
}

func TestEnsureSuperAdminMissingConfig(t *testing.T) {
	if err := EnsureSuperAdmin(context.Background(), zerolog.Nop(), newMockUserRepo(), "", ""); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

type raceRepo struct{ *mockUserRepo }

// FindByEmail pretends the admin is absent so Create hits the constraint,
// mimicking a second replica winning the bootstrap race.
func (r raceRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func TestEnsureSuperAdminLostRace(t *testing.T) {
	repo := newMockUserRepo()
	ctx := context.Background()
	if err := EnsureSuperAdmin(ctx, zerolog.Nop(), repo, "root@x.com", "bootstrap-pass"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := EnsureSuperAdmin(ctx, zerolog.Nop(), raceRepo{repo}, "root@x.com", "bootstrap-pass"); err != nil {
		t.Fatalf("duplicate insert must count as success: %v", err)
	}
}
