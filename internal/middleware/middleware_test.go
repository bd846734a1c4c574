package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/admin"
	"github.com/slinggolf/backend/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRoundTokenRoundTrip(t *testing.T) {
	tok, err := IssueRoundToken("secret", "round_abc", time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	id, err := ParseRoundToken("secret", tok)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != "round_abc" {
		t.Errorf("expected round_abc, got %s", id)
	}
}

func TestRoundTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	tok, _ := IssueRoundToken("secret", "round_abc", time.Minute)
	if _, err := ParseRoundToken("other", tok); err != ErrInvalidRoundToken {
		t.Errorf("expected ErrInvalidRoundToken for wrong secret, got %v", err)
	}

	expired, _ := IssueRoundToken("secret", "round_abc", -time.Minute)
	if _, err := ParseRoundToken("secret", expired); err != ErrInvalidRoundToken {
		t.Errorf("expected ErrInvalidRoundToken for expired token, got %v", err)
	}

	if _, err := IssueRoundToken("", "round_abc", time.Minute); err == nil {
		t.Error("expected error when secret is empty")
	}
	if _, err := ParseRoundToken("secret", "not-a-jwt"); err != ErrInvalidRoundToken {
		t.Errorf("expected ErrInvalidRoundToken for garbage, got %v", err)
	}
}

func TestAdminAuth(t *testing.T) {
	hash, err := admin.HashAdminToken("letmein")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	cfg := &config.Config{AdminTokenHash: hash}

	r := gin.New()
	r.GET("/admin", AdminAuth(nil, cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": c.GetString("admin_actor")})
	})

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "nope", http.StatusUnauthorized},
		{"valid", "letmein", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if tc.token != "" {
			req.Header.Set(AdminTokenHeader, tc.token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.status, w.Code)
		}
	}
}

func TestAdminAuthUnconfigured(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuth(nil, &config.Config{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AdminTokenHeader, "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestOriginAllowed(t *testing.T) {
	dev := &config.Config{Environment: "development"}
	if !OriginAllowed(dev, "http://localhost:3000") {
		t.Error("expected localhost allowed in development")
	}

	prod := &config.Config{Environment: "production", FrontendURL: "https://golf.example.com/"}
	if !OriginAllowed(prod, "https://golf.example.com") {
		t.Error("expected frontend origin allowed")
	}
	if OriginAllowed(prod, "http://localhost:3000") {
		t.Error("expected localhost rejected in production")
	}
}
