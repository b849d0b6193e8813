package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// SecretClass selects which signing secret and expiry window apply.
type SecretClass int

const (
	ClassAccess SecretClass = iota
	ClassRefresh
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Payload is the signed content of both access and refresh tokens. It is
// never persisted as a row, only as the token's embedded claims.
type Payload struct {
	UserID string            `json:"userId"`
	Roles  []domain.UserRole `json:"roles"`
}

type Claims struct {
	UserID string            `json:"userId"`
	Roles  []domain.UserRole `json:"roles"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies access/refresh tokens. Stateless; the two token
// classes use independently configured secrets and expiries.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func New(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}
}

func (s *Service) secretAndTTL(class SecretClass) ([]byte, time.Duration) {
	if class == ClassRefresh {
		return s.refreshSecret, s.refreshTTL
	}
	return s.accessSecret, s.accessTTL
}

func (s *Service) Sign(payload Payload, class SecretClass) (string, error) {
	secret, ttl := s.secretAndTTL(class)
	now := time.Now()
	claims := Claims{
		UserID: payload.UserID,
		Roles:  payload.Roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// TokenPair is the access+refresh pair handed to a freshly verified login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Service) Tokens(payload Payload) (*TokenPair, error) {
	access, err := s.Sign(payload, ClassAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Sign(payload, ClassRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify parses and validates a token against the class secret. Signature and
// expiry failures both surface as ErrInvalidToken.
func (s *Service) Verify(tokenStr string, class SecretClass) (*Payload, error) {
	secret, _ := s.secretAndTTL(class)
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Payload{UserID: claims.UserID, Roles: claims.Roles}, nil
}

// Decode parses a token without verifying it. Diagnostics only; never use the
// result for a trust decision.
func (s *Service) Decode(tokenStr string) (*Payload, error) {
	claims := &Claims{}
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return &Payload{UserID: claims.UserID, Roles: claims.Roles}, nil
}
