// Package auth turns a bearer credential into a principal id. Identity itself
// is owned by an upstream provider; this package only checks the signature.
package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-timeconsole/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -source=verifier.go -destination=mock/verifier_mock.go -package=mock
type Verifier interface {
	Verify(ctx context.Context, token string) (principalID string, err error)
}

// JWTVerifier accepts HMAC signed tokens carrying the principal in "sub",
// or "user_id" for tokens minted by older consoles.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", autherrors.ErrTokenNotFound
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", autherrors.ErrTokenExpired
		}
		return "", autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", autherrors.ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != "" {
		return sub, nil
	}
	if uid, _ := claims["user_id"].(string); uid != "" {
		return uid, nil
	}
	return "", autherrors.ErrPrincipalMissing
}

// Issue mints a token for principalID. Used by local tooling and tests.
func (v *JWTVerifier) Issue(principalID string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": principalID,
		"exp": time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}
