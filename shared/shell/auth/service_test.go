package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell/auth"
)

func givenAuthService(t *testing.T, options ...auth.Option) *auth.Service {
	t.Helper()

	options = append([]auth.Option{auth.WithBcryptCost(bcrypt.MinCost)}, options...)
	service, err := auth.NewService("test-secret", options...)
	require.NoError(t, err)

	return service
}

func Test_IssueToken_ThenVerify_ReturnsUserID(t *testing.T) {
	// arrange
	service := givenAuthService(t)

	// act
	token, expiresAt, err := service.IssueToken("user-1")
	require.NoError(t, err)
	userID, verifyErr := service.Verify(token)

	// assert
	require.NoError(t, verifyErr)
	assert.Equal(t, "user-1", userID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func Test_Verify_RejectsExpiredToken(t *testing.T) {
	// arrange
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := givenAuthService(t, auth.WithClock(func() time.Time { return issuedAt }), auth.WithTokenLifetime(time.Hour))
	token, _, err := issuer.IssueToken("user-1")
	require.NoError(t, err)

	// act
	_, verifyErr := givenAuthService(t).Verify(token)

	// assert
	assert.ErrorIs(t, verifyErr, core.ErrUnauthenticated)
}

func Test_Verify_RejectsForeignAndMalformedTokens(t *testing.T) {
	// arrange
	service := givenAuthService(t)
	other, err := auth.NewService("other-secret")
	require.NoError(t, err)
	foreignToken, _, err := other.IssueToken("user-1")
	require.NoError(t, err)
	unsignedToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    "bookswap",
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"foreign_secret": foreignToken,
		"alg_none":       unsignedToken,
		"garbage":        "not.a.token",
		"empty":          "",
	} {
		t.Run(name, func(t *testing.T) {
			// act
			_, verifyErr := service.Verify(token)

			// assert
			assert.ErrorIs(t, verifyErr, core.ErrUnauthenticated)
		})
	}
}

func Test_HashPassword_ThenCheckPassword(t *testing.T) {
	// arrange
	service := givenAuthService(t)

	// act
	hash, err := service.HashPassword("correct horse")
	require.NoError(t, err)

	// assert
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, service.CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, service.CheckPassword(hash, "wrong horse"), core.ErrUnauthenticated)
}

func Test_HashPassword_RejectsShortPasswords(t *testing.T) {
	// act
	_, err := givenAuthService(t).HashPassword("short")

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_NewService_RejectsEmptySecret(t *testing.T) {
	// act
	_, err := auth.NewService("")

	// assert
	assert.ErrorIs(t, err, auth.ErrEmptySecret)
}
