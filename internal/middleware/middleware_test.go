package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-booking/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	userID := uuid.New()

	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg), RequireRole(RoleAdmin), func(c *gin.Context) {
		if id := UserID(c); id == nil || *id != userID {
			t.Errorf("user id not propagated")
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signed(t, "other", jwt.MapClaims{"sub": userID.String(), "role": "admin"}), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, cfg.JWTSecret, jwt.MapClaims{
			"sub": userID.String(), "role": "admin", "exp": time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"wrong role", "Bearer " + signed(t, cfg.JWTSecret, jwt.MapClaims{"sub": userID.String(), "role": "viewer"}), http.StatusForbidden},
		{"ok", "Bearer " + signed(t, cfg.JWTSecret, jwt.MapClaims{
			"sub": userID.String(), "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
		}), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://studio.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://studio.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://studio.example.com" {
		t.Fatalf("preflight not handled: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unknown origin must not be allowed")
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if _, err := uuid.Parse(w.Header().Get(HeaderRequestID)); err != nil {
		t.Fatalf("expected generated uuid, got %q", w.Header().Get(HeaderRequestID))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" {
		t.Fatalf("incoming id should be kept, got %q", w.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/bookings", NewRateLimiter(2).Limit(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("other clients have their own bucket, got %d", w.Code)
	}
}

func TestRateLimiterSweepsIdleVisitorsPeriodically(t *testing.T) {
	rl := NewRateLimiter(5)
	t0 := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	present := func(ip string) bool {
		_, ok := rl.visitors[ip]
		return ok
	}

	rl.getLimiter("10.0.0.1", t0)
	rl.getLimiter("10.0.0.2", t0.Add(5*time.Minute))
	rl.getLimiter("10.0.0.3", t0.Add(11*time.Minute))
	if present("10.0.0.1") || !present("10.0.0.2") {
		t.Fatalf("first sweep should drop only the idle visitor, got %v", rl.visitors)
	}

	// 10.0.0.2 is now idle too, but the last sweep was only 5 minutes ago.
	rl.getLimiter("10.0.0.4", t0.Add(16*time.Minute))
	if !present("10.0.0.2") {
		t.Fatalf("visitors should not be swept between intervals")
	}

	rl.getLimiter("10.0.0.5", t0.Add(22*time.Minute))
	if present("10.0.0.2") || present("10.0.0.3") || !present("10.0.0.4") || len(rl.visitors) != 2 {
		t.Fatalf("unexpected visitors after second sweep: %v", rl.visitors)
	}
}

func TestOptionalAuth(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := gin.New()
	r.GET("/services", OptionalAuth(cfg), func(c *gin.Context) {
		if IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	call := func(header string) string {
		req := httptest.NewRequest(http.MethodGet, "/services", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("optional auth must never reject, got %d", w.Code)
		}
		return w.Body.String()
	}

	if got := call(""); got != "anonymous" {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if got := call("Bearer garbage"); got != "anonymous" {
		t.Fatalf("invalid tokens are ignored, got %s", got)
	}
	token := signed(t, cfg.JWTSecret, jwt.MapClaims{"sub": uuid.NewString(), "role": RoleAdmin})
	if got := call("Bearer " + token); got != "admin" {
		t.Fatalf("expected admin, got %s", got)
	}
}
