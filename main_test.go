package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
)

func TestIsAllowedOrigin(t *testing.T) {
	rules := []string{"https://app.example.com", "*.vercel.app"}

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://app.example.com", true},
		{"https://preview-abc.vercel.app", true},
		{"https://evil.example.org", false},
		{"https://app.example.com.evil.org", false},
	}
	for _, c := range cases {
		if got := isAllowedOrigin(c.origin, rules); got != c.want {
			t.Errorf("isAllowedOrigin(%q) = %v, want %v", c.origin, got, c.want)
		}
	}

	if !isAllowedOrigin("https://anything.example", nil) {
		t.Error("empty rule list should allow every origin")
	}
}

func TestCORSPreflight(t *testing.T) {
	app := iris.New()
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(corsMiddleware([]string{"https://app.example.com"}))
	app.Get("/api/healthz", func(ctx iris.Context) { ctx.JSON(iris.Map{"ok": true}) })
	app.Build()

	req := httptest.NewRequest(http.MethodOptions, "/api/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := resp.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	app := iris.New()
	app.UseRouter(corsMiddleware([]string{"https://app.example.com"}))
	app.Get("/api/healthz", func(ctx iris.Context) { ctx.JSON(iris.Map{"ok": true}) })
	app.Build()

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin %q", got)
	}
}
