package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/session"
)

type fakeAuth struct {
	sessions map[string]*identity.Session
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*identity.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, identity.ErrTokenInvalid
}

type fakeGuard struct {
	err error
}

func (f fakeGuard) Check(context.Context, string, bool) error { return f.err }

type fakeProfiles struct {
	roles map[string]string
}

func (f fakeProfiles) Execute(_ context.Context, p identity.Principal) (*models.User, error) {
	u := &models.User{Name: "Ana", Role: f.roles[p.UID]}
	u.ID = p.UID
	return u, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(guard SessionChecker) *gin.Engine {
	auth := fakeAuth{sessions: map[string]*identity.Session{
		"tok-client": {ID: "s1", Principal: identity.Principal{UID: "c1"}},
		"tok-barber": {ID: "s2", Principal: identity.Principal{UID: "b1"}},
	}}
	profiles := fakeProfiles{roles: map[string]string{"c1": "client", "b1": "barbero"}}

	r := gin.New()
	secured := r.Group("/", AuthMiddleware(auth, guard, profiles))
	secured.GET("/me", func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	secured.GET("/admin", RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		guard  error
		token  string
		path   string
		status int
	}{
		{"no header", nil, "", "/me", http.StatusUnauthorized},
		{"bad token", nil, "nope", "/me", http.StatusUnauthorized},
		{"fresh", nil, "tok-client", "/me", http.StatusOK},
		{"stale", session.ErrStale, "tok-client", "/me", http.StatusUnauthorized},
		{"client on admin route", nil, "tok-client", "/admin", http.StatusForbidden},
		{"legacy barber tag on admin route", nil, "tok-barber", "/admin", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(fakeGuard{err: tt.guard}), http.MethodGet, tt.path, tt.token)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_StaleRedirectsToLogin(t *testing.T) {
	w := do(newRouter(fakeGuard{err: session.ErrStale}), http.MethodGet, "/me", "tok-client")
	if body := w.Body.String(); body != `{"error_code":"session_expired","message":"/login"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(2)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.allow("1.1.1.1") || !l.allow("1.1.1.1") {
		t.Fatal("burst rejected")
	}
	if l.allow("1.1.1.1") {
		t.Fatal("third request in the same instant allowed")
	}
	if !l.allow("2.2.2.2") {
		t.Fatal("limit leaked across clients")
	}

	now = now.Add(30 * time.Second)
	if !l.allow("1.1.1.1") {
		t.Fatal("token not refilled")
	}

	now = now.Add(time.Hour)
	l.allow("3.3.3.3")
	if len(l.visitors) != 1 {
		t.Fatalf("stale visitors kept: %d", len(l.visitors))
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("preflight: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unlisted origin reflected")
	}
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:4200" {
		t.Fatalf("wildcard: %d %v", w.Code, w.Header())
	}
}
