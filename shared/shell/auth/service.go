package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	issuer                = "bookswap"
	defaultTokenLifetime  = 24 * time.Hour
	minimumPasswordLength = 8
)

var (
	ErrEmptySecret          = errors.New("jwt secret must not be empty")
	ErrIssuingTokenFailed   = errors.New("issuing token failed")
	ErrHashingFailed        = errors.New("hashing password failed")
	ErrPasswordTooShort     = errors.New("password must have at least 8 characters")
	ErrInvalidBcryptCost    = errors.New("invalid bcrypt cost")
	ErrInvalidTokenLifetime = errors.New("token lifetime must be positive")
)

// Service implements the AuthService: password hashing plus token issuing and verification.
type Service struct {
	secret        []byte
	tokenLifetime time.Duration
	bcryptCost    int
	now           func() time.Time
}

// Option configures a Service.
type Option func(*Service) error

// WithTokenLifetime overrides the default lifetime of 24 hours.
func WithTokenLifetime(lifetime time.Duration) Option {
	return func(s *Service) error {
		if lifetime <= 0 {
			return ErrInvalidTokenLifetime
		}

		s.tokenLifetime = lifetime

		return nil
	}
}

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) error {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return ErrInvalidBcryptCost
		}

		s.bcryptCost = cost

		return nil
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		s.now = now
		return nil
	}
}

// NewService creates a Service signing with secret.
func NewService(secret string, options ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	s := &Service{
		secret:        []byte(secret),
		tokenLifetime: defaultTokenLifetime,
		bcryptCost:    bcrypt.DefaultCost,
		now:           time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// HashPassword returns the bcrypt hash of password.
func (s *Service) HashPassword(password string) (string, error) {
	if len(password) < minimumPasswordLength {
		return "", errors.Join(core.ErrValidation, ErrPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}

	return string(hash), nil
}

// CheckPassword returns core.ErrUnauthenticated unless password matches hash.
func (s *Service) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return core.ErrUnauthenticated
	}

	return nil
}

// IssueToken signs a token for userID and returns it with its expiry.
func (s *Service) IssueToken(userID core.UserIDString) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenLifetime)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Join(ErrIssuingTokenFailed, err)
	}

	return signed, expiresAt, nil
}

// Verify returns the user id of a valid token. Every failure, including expiry,
// a foreign signature and another signing method, is core.ErrUnauthenticated.
func (s *Service) Verify(token string) (core.UserIDString, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", core.ErrUnauthenticated
	}

	return claims.Subject, nil
}
