package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-marketplace/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// Los errores de verificación son los del port.
var (
	ErrInvalidToken      = auth.ErrInvalidToken
	ErrTokenExpired      = auth.ErrTokenExpired
	ErrTokenMalformed    = auth.ErrTokenMalformed
	ErrSignatureMismatch = auth.ErrSignatureMismatch

	ErrEmptySecret = errors.New("jwt secret is empty")
)

// DefaultTTL es la vigencia de un token si Config.TTL no se indica.
const DefaultTTL = 24 * time.Hour

type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Service firma y verifica tokens HS256. Es stateless: la validez depende
// solo de firma y expiración.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var (
	_ auth.AuthVerifier = (*Service)(nil)
	_ auth.TokenIssuer  = (*Service)(nil)
)

func New(cfg Config) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: cfg.Secret,
		ttl:    ttl,
		issuer: strings.TrimSpace(cfg.Issuer),
		now:    time.Now,
	}, nil
}

func (s *Service) Issue(userID string) (auth.Token, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return auth.Token{}, errors.New("jwtauth: user id required")
	}

	// los claims van en segundos; truncamos para que ExpiresAt coincida con exp
	now := s.now().UTC().Truncate(time.Second)
	exp := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return auth.Token{}, fmt.Errorf("jwtauth: sign: %w", err)
	}
	return auth.Token{Value: signed, ExpiresAt: exp}, nil
}

func (s *Service) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenMalformed
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, classify(err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, ErrTokenMalformed
	}

	out := auth.Claims{UserID: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureMismatch
	default:
		return fmt.Errorf("%w (%v)", ErrTokenMalformed, err)
	}
}
