package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcetin/courseflow/internal/pkg/apperrors"
	"github.com/mcetin/courseflow/internal/pkg/auth"
)

func newTestJWTService(secret string, ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      secret,
		AccessTokenExp: ttl,
		TokenIssuer:    "courseflow.test",
	})
}

func TestGenerateToken_ValidateRoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret", 30*time.Minute)

	token, expiresIn, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int((30 * time.Minute).Seconds()), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Subject)
	assert.Equal(t, "courseflow.test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UniquePerCall(t *testing.T) {
	svc := newTestJWTService("test-secret", time.Hour)

	first, _, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)
	second, _, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)

	// The jti claim makes otherwise identical tokens distinct
	assert.NotEqual(t, first, second)
}

func TestValidateToken_ZeroTTLExpires(t *testing.T) {
	svc := newTestJWTService("test-secret", 0)

	token, _, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_ExpiredInThePast(t *testing.T) {
	svc := newTestJWTService("test-secret", -time.Minute)

	token, _, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	svc := newTestJWTService("test-secret", time.Hour)

	token, _, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a character in the signature segment
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateToken(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestJWTService("secret-one", time.Hour)
	validator := newTestJWTService("secret-two", time.Hour)

	token, _, err := issuer.GenerateToken("alice@x.com")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newTestJWTService("test-secret", time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := svc.ValidateToken(tokenString)
		assert.ErrorIs(t, err, apperrors.ErrMalformedToken, "token %q", tokenString)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := auth.ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = auth.ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)

	_, err = auth.ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}
