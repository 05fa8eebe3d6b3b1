package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "backoffice/pkg/domain-errors"
)

var subject = Subject{UserID: uuid.New(), Email: "op@kivu.com.co", Role: "OPERATOR"}

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-signing-key")

	signed, expiresAt, err := svc.Generate(subject, 8*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, subject.UserID.String(), claims.UserID)
	assert.Equal(t, subject.Email, claims.Email)
	assert.Equal(t, subject.Role, claims.Role)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("test-signing-key")
	signed, _, err := svc.Generate(subject, -time.Hour)
	require.NoError(t, err)

	_, err = svc.Parse(signed)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "token has expired")
}

func TestRejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("test-signing-key")

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("other key", func(t *testing.T) {
		signed, _, err := NewJWTService("other-key").Generate(subject, time.Hour)
		require.NoError(t, err)
		_, err = svc.Parse(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("other audience", func(t *testing.T) {
		foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserID: subject.UserID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Audience:  []string{"someone-else"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := foreign.SignedString([]byte("test-signing-key"))
		require.NoError(t, err)
		_, err = svc.Parse(signed)
		assert.Error(t, err)
	})
}
