package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/unifix/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic for invalid prefix")
				}
			}()
			module.New(tt.prefix, http.NewServeMux())
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		pattern  string
		wantPath string
	}{
		{"sub path", "/api/violations", "GET /violations", "/violations"},
		{"root", "/api", "GET /", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			mux := http.NewServeMux()
			mux.HandleFunc(tt.pattern, func(w http.ResponseWriter, r *http.Request) {
				received = r.URL.Path
			})

			m := module.New("/api", mux)
			if m.Prefix() != "/api" {
				t.Fatalf("prefix: got %s", m.Prefix())
			}

			m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))
			if received != tt.wantPath {
				t.Errorf("inner path: got %s, want %s", received, tt.wantPath)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {})

	m := module.New("/api", mux)

	var called bool
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	})

	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api", nil))
	if !called {
		t.Error("module middleware should have been called")
	}
}

func TestRouter(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /violations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api"))
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", apiMux))
	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"module dispatch", "/api/violations", http.StatusOK, "api"},
		{"trailing slash", "/api/violations/", http.StatusOK, "api"},
		{"native fallback", "/healthz", http.StatusOK, "ok"},
		{"unmatched", "/metrics", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %s, want %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
