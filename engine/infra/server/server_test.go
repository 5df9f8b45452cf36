package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamdesk/teamdesk/engine/auth"
	"github.com/teamdesk/teamdesk/engine/core"
	"github.com/teamdesk/teamdesk/pkg/logger"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(logger.NewForTests()))
	router.Use(LanguageMiddleware())
	router.Use(IdentityMiddleware())
	return router
}

func perform(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLanguageMiddleware(t *testing.T) {
	t.Run("Should negotiate a supported locale", func(t *testing.T) {
		router := newTestRouter()
		router.GET("/lang", func(c *gin.Context) {
			c.String(http.StatusOK, Language(c))
		})

		rec := perform(router, http.MethodGet, "/lang", map[string]string{"Accept-Language": "es-MX,es;q=0.9"})
		assert.Equal(t, "es", rec.Body.String())
	})

	t.Run("Should fall back to english for unsupported locales", func(t *testing.T) {
		router := newTestRouter()
		router.GET("/lang", func(c *gin.Context) {
			c.String(http.StatusOK, Language(c))
		})

		rec := perform(router, http.MethodGet, "/lang", map[string]string{"Accept-Language": "zh-CN"})
		assert.Equal(t, "en", rec.Body.String())
	})
}

func TestIdentityMiddleware(t *testing.T) {
	t.Run("Should build the principal from gateway headers", func(t *testing.T) {
		router := newTestRouter()
		var got *auth.Principal
		router.GET("/me", func(c *gin.Context) {
			got = CurrentPrincipal(c)
			c.Status(http.StatusOK)
		})

		perform(router, http.MethodGet, "/me", map[string]string{
			"X-User-Id":    "u1",
			"X-User-Email": "u1@example.com",
			"X-User-Roles": "user, admin",
			"X-User-Plan":  "growth",
		})
		require.NotNil(t, got)
		assert.Equal(t, "u1", got.ID)
		assert.Equal(t, []auth.Role{auth.RoleUser, auth.RoleAdmin}, got.Roles)
		assert.Equal(t, auth.PlanGrowth, got.Plan)
	})

	t.Run("Should leave the request anonymous without an id header", func(t *testing.T) {
		router := newTestRouter()
		var got *auth.Principal
		router.GET("/me", func(c *gin.Context) {
			got = CurrentPrincipal(c)
			c.Status(http.StatusOK)
		})

		perform(router, http.MethodGet, "/me", nil)
		assert.Nil(t, got)
	})
}

func TestRequirePermission(t *testing.T) {
	protected := func() *gin.Engine {
		router := newTestRouter()
		router.GET("/secure", RequirePermission(auth.PermissionTeamRead), func(c *gin.Context) {
			Success(c, gin.H{"ok": true})
		})
		return router
	}

	t.Run("Should reject anonymous callers with 401", func(t *testing.T) {
		rec := perform(protected(), http.MethodGet, "/secure", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Authentication is required"}`, rec.Body.String())
	})

	t.Run("Should reject a caller on an unknown plan with 403", func(t *testing.T) {
		rec := perform(protected(), http.MethodGet, "/secure", map[string]string{
			"X-User-Id":    "u1",
			"X-User-Roles": "user",
			"X-User-Plan":  "trial",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Should admit an allowed role and plan", func(t *testing.T) {
		rec := perform(protected(), http.MethodGet, "/secure", map[string]string{
			"X-User-Id":    "u1",
			"X-User-Roles": "user",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestErrorEnvelope(t *testing.T) {
	t.Run("Should map a classified error to its status and message", func(t *testing.T) {
		router := newTestRouter()
		router.GET("/missing", func(c *gin.Context) {
			Error(c, core.NewNotFoundError(Language(c)))
		})

		rec := perform(router, http.MethodGet, "/missing", map[string]string{"Accept-Language": "es"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Registro no encontrado"}`, rec.Body.String())
	})

	t.Run("Should degrade unclassified errors to a generic 500", func(t *testing.T) {
		router := newTestRouter()
		router.GET("/boom", func(c *gin.Context) {
			Error(c, errors.New("pq: connection refused"))
		})

		rec := perform(router, http.MethodGet, "/boom", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("Should echo the request id header", func(t *testing.T) {
		router := newTestRouter()
		router.GET("/ping", func(c *gin.Context) { Success(c, nil) })

		rec := perform(router, http.MethodGet, "/ping", nil)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}
