package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/teamdesk/teamdesk/engine/auth"
	"github.com/teamdesk/teamdesk/pkg/i18n"
	"github.com/teamdesk/teamdesk/pkg/logger"
	"golang.org/x/text/language"
)

var languageMatcher = language.NewMatcher(i18n.Supported())

// RequestIDMiddleware assigns each request a correlation id and hangs
// a scoped logger on the request context.
func RequestIDMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		ctx := logger.ContextWithLogger(c.Request.Context(), log.With("request_id", id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// LanguageMiddleware negotiates the response locale from
// Accept-Language against the supported catalogs.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, _, _ := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		tag, _, _ := languageMatcher.Match(tags...)
		base, _ := tag.Base()
		c.Set(languageKey, base.String())
		c.Next()
	}
}

// IdentityMiddleware builds the principal from the gateway-supplied
// identity headers. Requests without X-User-Id stay anonymous; whether
// that is acceptable is decided per route by RequirePermission.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-Id")
		if id == "" {
			c.Next()
			return
		}
		roles := splitHeaderList(c.GetHeader("X-User-Roles"))
		principal := &auth.Principal{
			ID:    id,
			Email: c.GetHeader("X-User-Email"),
			Plan:  auth.Plan(c.GetHeader("X-User-Plan")),
		}
		for _, r := range roles {
			principal.Roles = append(principal.Roles, auth.Role(r))
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}
