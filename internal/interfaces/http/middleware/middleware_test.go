package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/infrastructure/auth"
	"supportdesk/internal/infrastructure/permission"
	"supportdesk/internal/shared/authorization"
	"supportdesk/internal/shared/constants"
	"supportdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	final := func(c *gin.Context) {
		id, _ := authorization.UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": id,
			"role":    authorization.RoleFromContext(c).String(),
		})
	}
	engine.Any("/*path", append(handlers, final)...)
	return engine
}

func TestRequireAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", 10)
	mw := NewAuthMiddleware(jwtSvc, logger.NewNopLogger())
	engine := newEngine(mw.RequireAuth())

	token, _, err := jwtSvc.Generate(9, authorization.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"bad format", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"user_id":9,"role":"admin"}`, w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	enforcer, err := permission.NewMemoryEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, permission.InitTicketPermissions(enforcer))
	pm := NewPermissionMiddleware(enforcer, logger.NewNopLogger())

	withRole := func(id uint, role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if id != 0 {
				c.Set(constants.ContextKeyUserID, id)
			}
			c.Set(constants.ContextKeyUserRole, role)
		}
	}

	tests := []struct {
		name   string
		id     uint
		role   string
		method string
		path   string
		want   int
	}{
		{"anonymous", 0, "", http.MethodGet, "/admin/tickets", http.StatusUnauthorized},
		{"user on admin route", 3, "user", http.MethodGet, "/admin/tickets", http.StatusForbidden},
		{"admin on admin route", 1, "admin", http.MethodGet, "/admin/tickets", http.StatusOK},
		{"admin mark read", 1, "admin", http.MethodPost, "/tickets/mark-read", http.StatusOK},
		{"user mark read", 3, "user", http.MethodPost, "/tickets/mark-read", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(withRole(tt.id, tt.role), pm.RequirePermission())
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(client, 1, time.Minute, logger.NewNopLogger())
	engine := newEngine(rl.Limit())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	var rl *RateLimiter
	engine := newEngine(rl.Limit())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, w.Header().Get(constants.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc-123")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCORS(t *testing.T) {
	engine := newEngine(CORS([]string{"https://console.example.com"}))

	req := httptest.NewRequest(http.MethodOptions, "/tickets", nil)
	req.Header.Set("Origin", "https://console.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "ETag")
}
