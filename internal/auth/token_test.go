package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenService(t *testing.T, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService([]byte("test-secret"), time.Hour, "todo-test", WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestVerifyExpiryBoundaryIsExclusive(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	clock := &fakeClock{now: start}
	svc := newTestTokenService(t, clock)
	require.Equal(t, time.Hour, svc.TTL())

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	clock.now = start.Add(svc.TTL() - time.Second)
	_, err = svc.Verify(token)
	require.NoError(t, err)

	clock.now = start.Add(svc.TTL())
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	clock.now = start.Add(2 * time.Hour)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, clock)

	other, err := NewTokenService([]byte("other-secret"), time.Hour, "todo-test", WithClock(clock.Now))
	require.NoError(t, err)
	token, err := other.Issue("alice")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"mallory","iss":"todo-test","exp":4102444800,"iat":1700000000}`))
	forged := parts[0] + "." + payload + "." + parts[2]

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, clock)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "todo-test",
		IssuedAt:  jwt.NewNumericDate(clock.now),
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRequiresClaims(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, clock)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
		Issuer:  "todo-test",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "todo-test",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noSub)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(wrongIssuer)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyMalformedInputNeverPanics(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, clock)

	inputs := []string{
		"",
		".",
		"..",
		"not.a.jwt",
		"eyJhbGciOiJIUzI1NiJ9",
		"eyJhbGciOiJIUzI1NiJ9.e30.",
		"eyJhbGciOiJub25lIn0.eyJzdWIiOiJhbGljZSJ9.",
		strings.Repeat("a", 4096),
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			_, err := svc.Verify(input)
			assert.ErrorIs(t, err, domain.ErrInvalidToken, "input %q", input)
		})
	}
}

func TestNewTokenServiceValidation(t *testing.T) {
	_, err := NewTokenService(nil, time.Hour, "")
	assert.Error(t, err)

	_, err = NewTokenService([]byte("k"), 0, "")
	assert.Error(t, err)

	_, err = (&TokenService{secret: []byte("k"), ttl: time.Hour, now: time.Now}).Issue("")
	assert.Error(t, err)
}
