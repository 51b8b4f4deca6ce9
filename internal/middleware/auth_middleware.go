package middleware

import (
	"strings"

	"go-timeconsole/internal/auth"
	autherrors "go-timeconsole/internal/auth/errors"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/contextutil"
	"go-timeconsole/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ContextPrincipalID is the gin context key holding the verified principal.
const ContextPrincipalID = "principal_id"

// AuthMiddleware verifies the bearer token or access_token cookie. A request
// already authenticated further up the chain passes through.
func AuthMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if PrincipalID(c) != "" {
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		principalID, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Code == apperror.CodeInternalError {
				httpErr = apperror.ToHTTP(autherrors.ErrInvalidToken)
			}
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}

		c.Set(ContextPrincipalID, principalID)
		c.Request = c.Request.WithContext(contextutil.WithPrincipalID(c.Request.Context(), principalID))
		c.Next()
	}
}

// PrincipalID returns the principal set by AuthMiddleware, or "".
func PrincipalID(c *gin.Context) string {
	return c.GetString(ContextPrincipalID)
}
