package tokenverify

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
)

// Token type discriminator carried in the "typ" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Parser interface {
	Parse(token string) (*jwt.Token, jwt.MapClaims, error)
}

type Result struct {
	Subject string
	Fresh   bool
}

// Verify checks signature, expiry and the typ discriminator, returning the
// token subject. A type mismatch is reported as invalid even when the token
// is also expired; expiry only applies to a token of the expected type.
func Verify(parser Parser, token, wantType string) (*Result, error) {
	if parser == nil || strings.TrimSpace(token) == "" {
		return nil, domain.ErrTokenMissing
	}
	tok, claims, err := parser.Parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			if typ, _ := claims["typ"].(string); typ != wantType {
				return nil, domain.ErrTokenInvalid
			}
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return nil, domain.ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrTokenInvalid
	}
	fresh, _ := claims["fresh"].(bool)
	return &Result{Subject: sub, Fresh: fresh}, nil
}
