package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCorsOriginValue(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		wantValue      string
		wantAllowed    bool
	}{
		{
			name:           "star allows everything",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"*"},
			wantValue:      "*",
			wantAllowed:    true,
		},
		{
			name:           "star allows requests without origin",
			origin:         "",
			allowedOrigins: []string{"*"},
			wantValue:      "*",
			wantAllowed:    true,
		},
		{
			name:           "exact match echoes origin",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"http://localhost:3000"},
			wantValue:      "http://localhost:3000",
			wantAllowed:    true,
		},
		{
			name:           "wildcard suffix match",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			wantValue:      "http://localhost:5173",
			wantAllowed:    true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:3000"},
			wantAllowed:    false,
		},
		{
			name:           "empty origin without star",
			origin:         "",
			allowedOrigins: []string{"http://localhost:*"},
			wantAllowed:    false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{},
			wantAllowed:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, allowed := corsOriginValue(tt.origin, tt.allowedOrigins)
			if allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v", allowed, tt.wantAllowed)
			}
			if allowed && value != tt.wantValue {
				t.Errorf("value = %s, want %s", value, tt.wantValue)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("permissive policy sets star on GET", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSMiddleware([]string{"*"}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %s, want *", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
			t.Errorf("Access-Control-Allow-Methods = %s, want GET, OPTIONS", got)
		}
	})

	t.Run("preflight answers 204 with CORS headers", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSMiddleware([]string{"*"}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req := httptest.NewRequest("OPTIONS", "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Preflight status = %d, want %d", w.Code, http.StatusNoContent)
		}
		if w.Header().Get("Access-Control-Allow-Origin") == "" {
			t.Errorf("Access-Control-Allow-Origin not set")
		}
		if w.Header().Get("Access-Control-Max-Age") == "" {
			t.Errorf("Access-Control-Max-Age not set")
		}
	})

	t.Run("disallowed origin gets no CORS headers", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSMiddleware([]string{"http://localhost:3000"}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://evil.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %s, want unset", got)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newLimitedRouter := func(perMinute int) *gin.Engine {
		router := gin.New()
		router.Use(RateLimitMiddleware(perMinute))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})
		return router
	}

	t.Run("allows requests within the burst", func(t *testing.T) {
		router := newLimitedRouter(5)

		for i := 0; i < 5; i++ {
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want %d", i+1, w.Code, http.StatusOK)
			}
		}
	})

	t.Run("rejects requests past the burst with 429", func(t *testing.T) {
		router := newLimitedRouter(2)

		var last int
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			last = w.Code
		}

		if last != http.StatusTooManyRequests {
			t.Errorf("third request status = %d, want %d", last, http.StatusTooManyRequests)
		}
	})

	t.Run("limits are per client IP", func(t *testing.T) {
		router := newLimitedRouter(1)

		first := httptest.NewRequest("GET", "/test", nil)
		first.RemoteAddr = "10.0.0.3:1234"
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, first)

		second := httptest.NewRequest("GET", "/test", nil)
		second.RemoteAddr = "10.0.0.4:1234"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, second)

		if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
			t.Errorf("statuses = (%d, %d), want both %d", w1.Code, w2.Code, http.StatusOK)
		}
	})

	t.Run("zero disables limiting", func(t *testing.T) {
		router := newLimitedRouter(0)

		for i := 0; i < 20; i++ {
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "10.0.0.5:1234"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want %d", i+1, w.Code, http.StatusOK)
			}
		}
	})
}
