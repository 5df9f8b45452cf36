// Package server assembles the HTTP surface: gin engine, request
// middleware, the response envelope, and the permission gate.
package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamdesk/teamdesk/engine/auth"
	"github.com/teamdesk/teamdesk/engine/core"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	languageKey  = "teamdesk.language"
	principalKey = "teamdesk.principal"
	requestIDKey = "teamdesk.request_id"
)

// Language returns the request's negotiated locale.
func Language(c *gin.Context) string {
	if lang := c.GetString(languageKey); lang != "" {
		return lang
	}
	return core.DefaultLanguage
}

// CurrentPrincipal returns the authenticated caller, or nil for an
// anonymous request.
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}

// RequestID returns the request correlation id.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// BuildOptions assembles the operation context a service call needs
// from the request.
func BuildOptions(c *gin.Context, db *mongo.Database) *core.Options {
	return core.NewOptions(Language(c), CurrentPrincipal(c), db)
}

func splitHeaderList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
