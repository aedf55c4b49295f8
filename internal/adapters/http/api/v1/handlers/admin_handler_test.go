package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	authmw "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/middleware"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/usecase"
)

type mockAdminService struct {
	listFn   func(caller string) ([]domain.User, error)
	createFn func(caller string, in usecase.RegisterInput) (*domain.User, error)
	getFn    func(caller, id string) (*domain.User, error)
	updateFn func(caller, id string, patch usecase.UserPatch) (*domain.User, error)
	deleteFn func(caller, id string) error
}

func (m *mockAdminService) ListUsers(_ context.Context, _ string, caller string) ([]domain.User, error) {
	return m.listFn(caller)
}

func (m *mockAdminService) CreateUser(_ context.Context, _ string, caller string, in usecase.RegisterInput) (*domain.User, error) {
	return m.createFn(caller, in)
}

func (m *mockAdminService) GetUser(_ context.Context, _ string, caller, id string) (*domain.User, error) {
	return m.getFn(caller, id)
}

func (m *mockAdminService) UpdateUser(_ context.Context, _ string, caller, id string, patch usecase.UserPatch) (*domain.User, error) {
	return m.updateFn(caller, id, patch)
}

func (m *mockAdminService) DeleteUser(_ context.Context, _ string, caller, id string) error {
	return m.deleteFn(caller, id)
}

func TestAdminListForbidden(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		listFn: func(string) ([]domain.User, error) { return nil, domain.ErrForbidden },
	})
	c, rec := postJSON(t, nil)
	c.Set(authmw.CtxEmail, "bob@x.com")
	if err := h.List(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Super admin access required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAdminListPayload(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		listFn: func(string) ([]domain.User, error) {
			return []domain.User{{Email: "a@x.com"}, {Email: "b@x.com"}}, nil
		},
	})
	c, rec := postJSON(t, nil)
	c.Set(authmw.CtxEmail, "admin@x.com")
	if err := h.List(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var resp struct {
		Users []json.RawMessage `json:"users"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Users) != 2 {
		t.Fatalf("unexpected list body %s", rec.Body.String())
	}
}

func TestAdminCreate(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		createFn: func(_ string, in usecase.RegisterInput) (*domain.User, error) {
			return &domain.User{Email: in.Email, Role: domain.RoleUser, IsVerified: true}, nil
		},
	})
	// a role field in the payload is an unknown key and must be ignored
	c, rec := postJSON(t, map[string]string{
		"first_name": "Bea", "last_name": "User", "email": "b@x.com",
		"password": "p", "mobile_number": "0300", "role": "admin",
	})
	c.Set(authmw.CtxEmail, "admin@x.com")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Role != domain.RoleUser || !resp.User.IsVerified {
		t.Fatalf("unexpected created user: %+v", resp.User)
	}
}

func TestAdminGetNotFound(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		getFn: func(_, _ string) (*domain.User, error) { return nil, domain.ErrNotFound },
	})
	c, rec := postJSON(t, nil)
	c.Set(authmw.CtxEmail, "admin@x.com")
	c.SetParamNames("id")
	c.SetParamValues("some-super-admin-id")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("super admin id must read as 404, got %d", rec.Code)
	}
}

func TestAdminUpdatePatchDecoding(t *testing.T) {
	var got usecase.UserPatch
	h := NewAdminHandler(&mockAdminService{
		updateFn: func(_, _ string, patch usecase.UserPatch) (*domain.User, error) {
			got = patch
			return &domain.User{}, nil
		},
	})
	c, rec := postJSON(t, map[string]string{"first_name": "Robert", "role": "super_admin", "password": "hax"})
	c.Set(authmw.CtxEmail, "admin@x.com")
	c.SetParamNames("id")
	c.SetParamValues("user-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.FirstName == nil || *got.FirstName != "Robert" {
		t.Fatal("first_name must be patched")
	}
	if got.LastName != nil || got.Email != nil || got.MobileNumber != nil || got.ProfilePicture != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}
}

func TestAdminDeleteMessage(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		deleteFn: func(_, _ string) error { return nil },
	})
	c, rec := postJSON(t, nil)
	c.Set(authmw.CtxEmail, "admin@x.com")
	c.SetParamNames("id")
	c.SetParamValues("user-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "User deleted successfully" {
		t.Fatalf("unexpected message %q", msg)
	}
}
