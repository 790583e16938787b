package security

import (
	"net/http"
	"strings"

	"CollabSphere/global/config"
	"CollabSphere/tools/errs"
	sec "CollabSphere/tools/security"

	"github.com/gin-gonic/gin"
)

// context keys; downstream handlers read the resolved identity with these
const (
	CtxUserIDKey = "userId"
	CtxTokenKey  = "authorization"
)

type Options struct {
	HeaderToken               string // default "authorization"
	EnableAuthorizationBearer bool   // default true
}

func DefaultOptions() *Options {
	return &Options{
		HeaderToken:               CtxTokenKey,
		EnableAuthorizationBearer: true,
	}
}

// Middleware authenticates REST requests with the same verifier the realtime
// gate uses. It only resolves identity; authorization stays with the access
// control layer outside this service.
func Middleware(opts *Options) gin.HandlerFunc {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func(c *gin.Context) {
		// header lookup is case-insensitive, so "authorization" also matches a
		// standard Authorization header and the value may carry a Bearer prefix
		token := strings.TrimSpace(c.GetHeader(opts.HeaderToken))
		if opts.EnableAuthorizationBearer {
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[len("bearer "):])
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrAuthFailed)
			return
		}

		claims, err := sec.Verify(sec.DefaultOptions(config.GetJwtSecret()), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrAuthFailed)
			return
		}

		c.Set(CtxTokenKey, token)
		c.Set(CtxUserIDKey, claims.UserID())
		c.Next()
	}
}

// UserID reads the authenticated user id set by Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
