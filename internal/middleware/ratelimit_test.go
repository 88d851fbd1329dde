package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterEnforcesLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d within limit was denied", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request over the limit was allowed")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("other clients must not share the window")
	}
}

func TestRateLimiterWindowRollover(t *testing.T) {
	rl := NewRateLimiter(2, 80*time.Millisecond)
	defer rl.Stop()

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.1")
	if rl.allow("10.0.0.1") {
		t.Fatal("limit not enforced before rollover")
	}

	time.Sleep(120 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Error("new window should reset the counter")
	}
}

func TestRateLimiterMiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/admin/api/login", nil)
	first.RemoteAddr = "203.0.113.9:4312"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", rr.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/admin/api/login", nil)
	second.RemoteAddr = "203.0.113.9:4313"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", rr.Code)
	}
}

func TestRateLimiterPrune(t *testing.T) {
	rl := NewRateLimiter(5, 10*time.Millisecond)
	defer rl.Stop()

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")

	rl.prune(time.Now().Add(time.Second))

	rl.mu.Lock()
	remaining := len(rl.windows)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Errorf("prune left %d stale windows", remaining)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "198.51.100.7", "", "10.0.0.1:9000", "198.51.100.7"},
		{"forwarded chain keeps first", "198.51.100.7, 10.0.0.2", "", "10.0.0.1:9000", "198.51.100.7"},
		{"real-ip fallback", "", "198.51.100.8", "10.0.0.1:9000", "198.51.100.8"},
		{"remote addr", "", "", "198.51.100.9:1234", "198.51.100.9"},
		{"remote addr without port", "", "", "198.51.100.9", "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := clientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
