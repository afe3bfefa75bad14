package jwtauth

import (
	"context"
	"strings"
	"testing"
	"time"

	"pet-marketplace/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	svc, err := New(Config{Secret: []byte("test-secret"), TTL: time.Hour})
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	tok, err := svc.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

	claims, err := svc.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, now, claims.IssuedAt.UTC())
	assert.Equal(t, tok.ExpiresAt, claims.ExpiresAt.UTC())
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	tok, err := svc.Issue("user-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(time.Hour + time.Second) }
	_, err = svc.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, "expired", auth.Reason(err))
}

func TestVerify_MutatedSignature(t *testing.T) {
	svc := newTestService(t, time.Now())

	tok, err := svc.Issue("user-1")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), mutateSignature(tok.Value))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Equal(t, "signature", auth.Reason(err))
}

func TestVerify_OtherSecret(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, now)
	other, err := New(Config{Secret: []byte("another-secret")})
	require.NoError(t, err)

	tok, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerify_Malformed(t *testing.T) {
	svc := newTestService(t, time.Now())

	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, err := svc.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", raw)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestService(t, time.Now())

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RequiresSubjectAndExpiry(t *testing.T) {
	svc := newTestService(t, time.Now())

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), noSub)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(context.Background(), noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

// mutateSignature cambia un carácter interno de la firma (no el último,
// cuyos bits bajos son padding en base64url).
func mutateSignature(token string) string {
	i := strings.LastIndex(token, ".") + 5
	b := []byte(token)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
