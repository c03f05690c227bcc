package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym-management/pkg/ratelimit"

	"go.uber.org/zap"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:54321", nil, "10.0.0.1"},
		{"x-real-ip wins", "10.0.0.1:54321", map[string]string{"X-Real-Ip": "1.2.3.4"}, "1.2.3.4"},
		{"forwarded-for last entry", "10.0.0.1:54321",
			map[string]string{"X-Forwarded-For": "9.9.9.9, 1.2.3.4"}, "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(2, 15*time.Minute)
	defer limiter.Stop()

	handler := RateLimit(limiter, "otp-send", zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	send := func(ip string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/send-signup-otp", nil)
		r.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	if code := send("1.1.1.1"); code != http.StatusOK {
		t.Fatalf("first request = %d", code)
	}
	if code := send("1.1.1.1"); code != http.StatusOK {
		t.Fatalf("second request = %d", code)
	}
	if code := send("1.1.1.1"); code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", code)
	}

	// Another client keeps its own budget.
	if code := send("2.2.2.2"); code != http.StatusOK {
		t.Fatalf("other client = %d", code)
	}
}
