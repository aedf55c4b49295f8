package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	authmw "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/middleware"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/usecase"
	res "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/http"
)

type mockAuthService struct {
	registerFn func(in usecase.RegisterInput) (*domain.User, bool, error)
	verifyFn   func(email, code string) error
	loginFn    func(email, password string) (*domain.User, *usecase.Tokens, error)
	refreshFn  func(email string) (string, error)
	profileFn  func(email string) (*domain.User, error)
}

func (m *mockAuthService) Register(_ context.Context, _ string, in usecase.RegisterInput) (*domain.User, bool, error) {
	return m.registerFn(in)
}

func (m *mockAuthService) VerifyOTP(_ context.Context, _ string, email, code string) error {
	return m.verifyFn(email, code)
}

func (m *mockAuthService) Login(_ context.Context, _ string, email, password string) (*domain.User, *usecase.Tokens, error) {
	return m.loginFn(email, password)
}

func (m *mockAuthService) Refresh(_ context.Context, _ string, email string) (string, error) {
	return m.refreshFn(email)
}

func (m *mockAuthService) Logout(_ context.Context, _, _ string) {}

func (m *mockAuthService) Profile(_ context.Context, email string) (*domain.User, error) {
	return m.profileFn(email)
}

func postJSON(t *testing.T, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp res.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return resp.Message
}

func TestRegisterSuccess(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		registerFn: func(in usecase.RegisterInput) (*domain.User, bool, error) {
			if in.Email != "a@x.com" {
				t.Fatalf("unexpected email %q", in.Email)
			}
			return &domain.User{Email: in.Email}, true, nil
		},
	})
	c, rec := postJSON(t, map[string]string{
		"first_name": "Ada", "last_name": "Lovelace", "email": "a@x.com",
		"password": "p", "mobile_number": "0300",
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Registration successful. OTP sent to email." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRegisterEmailDeliveryFailure(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		registerFn: func(in usecase.RegisterInput) (*domain.User, bool, error) {
			return &domain.User{Email: in.Email}, false, nil
		},
	})
	c, rec := postJSON(t, map[string]string{"email": "a@x.com"})
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("delivery failure must still be 201, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Registration successful but email sending failed" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		registerFn: func(usecase.RegisterInput) (*domain.User, bool, error) {
			return nil, false, domain.ErrDuplicateEmail
		},
	})
	c, rec := postJSON(t, map[string]string{"email": "a@x.com"})
	if err := h.Register(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Email already exists" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestVerifyOTPErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrAlreadyVerified, http.StatusBadRequest, "User already verified"},
		{domain.ErrInvalidOTP, http.StatusBadRequest, "Invalid OTP"},
		{domain.ErrOTPExpired, http.StatusBadRequest, "OTP expired"},
	}
	for _, tc := range cases {
		h := NewAuthHandler(&mockAuthService{
			verifyFn: func(_, _ string) error { return tc.err },
		})
		c, rec := postJSON(t, map[string]string{"email": "a@x.com", "otp_code": "123456"})
		if err := h.VerifyOTP(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		if msg := decodeMessage(t, rec); msg != tc.message {
			t.Fatalf("%v: unexpected message %q", tc.err, msg)
		}
	}
}

func TestLoginUnverified(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginFn: func(_, _ string) (*domain.User, *usecase.Tokens, error) {
			return nil, nil, domain.ErrEmailNotVerified
		},
	})
	c, rec := postJSON(t, map[string]string{"email": "a@x.com", "password": "p"})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Email not verified" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLoginSuccessPayload(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginFn: func(email, _ string) (*domain.User, *usecase.Tokens, error) {
			return &domain.User{Email: email, Role: domain.RoleUser, IsVerified: true},
				&usecase.Tokens{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 3600}, nil
		},
	})
	c, rec := postJSON(t, map[string]string{"email": "a@x.com", "password": "p"})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Message      string          `json:"message"`
		AccessToken  string          `json:"access_token"`
		RefreshToken string          `json:"refresh_token"`
		User         json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken != "at" || resp.RefreshToken != "rt" {
		t.Fatalf("tokens missing from response: %s", rec.Body.String())
	}
	if bytes.Contains(resp.User, []byte("password")) || bytes.Contains(resp.User, []byte("otp")) {
		t.Fatalf("sensitive fields leaked: %s", resp.User)
	}
}

func TestRefreshUsesTokenSubject(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		refreshFn: func(email string) (string, error) {
			if email != "a@x.com" {
				t.Fatalf("unexpected subject %q", email)
			}
			return "new-access", nil
		},
	})
	c, rec := postJSON(t, nil)
	c.Set(authmw.CtxEmail, "a@x.com")
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["access_token"] != "new-access" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestProfileNotFound(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		profileFn: func(string) (*domain.User, error) { return nil, domain.ErrNotFound },
	})
	c, rec := postJSON(t, nil)
	c.Set(authmw.CtxEmail, "gone@x.com")
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
