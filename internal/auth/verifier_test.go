package auth_test

import (
	"context"
	"testing"
	"time"

	"go-timeconsole/internal/auth"
	autherrors "go-timeconsole/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier_Verify(t *testing.T) {
	v := auth.NewJWTVerifier("test-secret")
	ctx := context.Background()

	t.Run("success with sub claim", func(t *testing.T) {
		token, err := v.Issue("usr_1", time.Minute)
		require.NoError(t, err)

		principal, err := v.Verify(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, "usr_1", principal)
	})

	t.Run("success with legacy user_id claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "usr_2",
			"exp":     time.Now().Add(time.Minute).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		principal, err := v.Verify(ctx, signed)
		assert.NoError(t, err)
		assert.Equal(t, "usr_2", principal)
	})

	t.Run("negative empty token", func(t *testing.T) {
		_, err := v.Verify(ctx, "")
		assert.Equal(t, autherrors.ErrTokenNotFound, err)
	})

	t.Run("negative expired", func(t *testing.T) {
		token, err := v.Issue("usr_1", -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		assert.Equal(t, autherrors.ErrTokenExpired, err)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		token, err := auth.NewJWTVerifier("other").Issue("usr_1", time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		assert.Equal(t, autherrors.ErrInvalidToken, err)
	})

	t.Run("negative missing principal", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = v.Verify(ctx, signed)
		assert.Equal(t, autherrors.ErrPrincipalMissing, err)
	})
}
