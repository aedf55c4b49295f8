package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/tokenverify"
	res "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/http"
)

// Context keys populated by the guards.
const (
	CtxEmail = "email"
	CtxFresh = "fresh"
)

type AuthMiddleware struct {
	parser tokenverify.Parser
}

func NewAuthMiddleware(parser tokenverify.Parser) *AuthMiddleware {
	return &AuthMiddleware{parser: parser}
}

// RequireAccess admits only access-typed bearer tokens.
func (m *AuthMiddleware) RequireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, tokenverify.TypeAccess)
}

// RequireRefresh admits only refresh-typed bearer tokens; an access token
// here is invalid, not merely mistyped.
func (m *AuthMiddleware) RequireRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, tokenverify.TypeRefresh)
}

func (m *AuthMiddleware) require(next echo.HandlerFunc, wantType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return res.Fail(c, err, "Authentication failed")
		}
		result, err := tokenverify.Verify(m.parser, token, wantType)
		if err != nil {
			return res.Fail(c, err, "Authentication failed")
		}
		c.Set(CtxEmail, result.Subject)
		c.Set(CtxFresh, result.Fresh)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrTokenMissing
	}
	return parts[1], nil
}
