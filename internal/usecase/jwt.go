package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muneezaZaki85/galvan-ai-auth-system/config"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/tokenverify"
)

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenIssuer mints and parses the two token kinds. Subjects are account
// emails. Access tokens carry a "fresh" claim: true when minted from a
// password login, false when minted from a refresh exchange.
type TokenIssuer interface {
	IssueAccess(subject string, fresh bool) (string, error)
	IssueRefresh(subject string) (string, error)
	Parse(token string) (*jwt.Token, jwt.MapClaims, error)
}

type hmacIssuer struct {
	cfg *config.Config
	key []byte
}

func NewTokenIssuer(cfg *config.Config) (TokenIssuer, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret required")
	}
	return &hmacIssuer{cfg: cfg, key: []byte(cfg.JWTSecret)}, nil
}

func (s *hmacIssuer) IssueAccess(subject string, fresh bool) (string, error) {
	return s.sign(subject, tokenverify.TypeAccess, s.cfg.AccessTTL, jwt.MapClaims{"fresh": fresh})
}

func (s *hmacIssuer) IssueRefresh(subject string) (string, error) {
	return s.sign(subject, tokenverify.TypeRefresh, s.cfg.RefreshTTL, nil)
}

func (s *hmacIssuer) sign(subject, typ string, ttl time.Duration, extra jwt.MapClaims) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"typ": typ,
		"iss": s.cfg.JWTIssuer,
		"aud": s.cfg.JWTAudience,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *hmacIssuer) Parse(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.cfg.JWTAudience),
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithLeeway(30*time.Second),
	)
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	return token, claims, err
}
