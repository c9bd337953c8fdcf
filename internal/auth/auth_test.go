package auth_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JaimeStill/unifix/internal/auth"
)

const signingKey = "0123456789abcdef0123456789abcdef"

func testConfig() *auth.Config {
	cfg := &auth.Config{SigningKey: signingKey, Issuer: "unifix"}
	if err := cfg.Finalize(nil); err != nil {
		panic(err)
	}
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

type rejections struct {
	reasons []string
}

func (r *rejections) AuthRejected(reason string) {
	r.reasons = append(r.reasons, reason)
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := auth.Config{SigningKey: signingKey}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.TokenTTLDuration() != time.Hour {
			t.Errorf("token_ttl = %v, want 1h", cfg.TokenTTLDuration())
		}
		if cfg.BcryptCost != 10 {
			t.Errorf("bcrypt_cost = %d, want 10", cfg.BcryptCost)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("TEST_AUTH_KEY", strings.Repeat("k", 40))
		t.Setenv("TEST_AUTH_TTL", "15m")

		cfg := auth.Config{}
		err := cfg.Finalize(&auth.Env{SigningKey: "TEST_AUTH_KEY", TokenTTL: "TEST_AUTH_TTL"})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.TokenTTLDuration() != 15*time.Minute {
			t.Errorf("token_ttl = %v", cfg.TokenTTLDuration())
		}
	})

	tests := []struct {
		name string
		cfg  auth.Config
		want string
	}{
		{"missing key", auth.Config{}, "signing_key required"},
		{"short key", auth.Config{SigningKey: "short"}, "at least"},
		{"bad ttl", auth.Config{SigningKey: signingKey, TokenTTL: "soon"}, "token_ttl"},
		{"negative ttl", auth.Config{SigningKey: signingKey, TokenTTL: "-1h"}, "positive"},
		{"bad cost", auth.Config{SigningKey: signingKey, BcryptCost: 99}, "bcrypt_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestIssueThenVerify(t *testing.T) {
	cfg := testConfig()

	token, err := auth.NewIssuer(cfg).Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.Type != "Bearer" || token.ExpiresIn != time.Hour {
		t.Errorf("token metadata: %+v", token)
	}

	id, err := auth.NewVerifier(cfg).Verify(token.Value)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != "user-42" {
		t.Errorf("user id = %q", id.UserID)
	}
	if !id.ExpiresAt.Equal(token.ExpiresAt.Truncate(time.Second)) {
		t.Errorf("expires_at = %v, want %v", id.ExpiresAt, token.ExpiresAt)
	}
}

func TestVerifyRejects(t *testing.T) {
	cfg := testConfig()
	verifier := auth.NewVerifier(cfg)
	now := time.Now()

	valid := func() auth.Claims {
		return auth.Claims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "unifix",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"

	noUser := valid()
	noUser.UserID = ""

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", sign(t, jwt.SigningMethodHS256, []byte(strings.Repeat("x", 32)), valid())},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(signingKey), expired)},
		{"no expiry", sign(t, jwt.SigningMethodHS256, []byte(signingKey), noExpiry)},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, []byte(signingKey), wrongIssuer)},
		{"no user", sign(t, jwt.SigningMethodHS256, []byte(signingKey), noUser)},
		{"alg none", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid())},
		{"other hmac alg", sign(t, jwt.SigningMethodHS512, []byte(signingKey), valid())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			if !errors.Is(err, auth.ErrForbidden) {
				t.Errorf("Verify = %v, want ErrForbidden", err)
			}
		})
	}

	t.Run("tampered payload", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte(signingKey), valid())
		parts := strings.Split(token, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "AA"
		if _, err := verifier.Verify(strings.Join(parts, ".")); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("Verify = %v, want ErrForbidden", err)
		}
	})
}

func TestAuthorize(t *testing.T) {
	cfg := testConfig()
	gate := auth.NewGate(auth.NewVerifier(cfg), nil, discard())

	token, err := auth.NewIssuer(cfg).Issue("user-7")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"valid bearer", "Bearer " + token.Value, nil},
		{"scheme is not inspected", "Token " + token.Value, nil},
		{"missing header", "", auth.ErrUnauthenticated},
		{"scheme only", "Bearer", auth.ErrUnauthenticated},
		{"empty second segment", "Bearer  " + token.Value, auth.ErrUnauthenticated},
		{"invalid token", "Bearer garbage", auth.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := gate.Authorize(tt.header)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Authorize = %v", err)
				}
				if id.UserID != "user-7" {
					t.Errorf("user id = %q", id.UserID)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Authorize = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	cfg := testConfig()
	observed := &rejections{}
	gate := auth.NewGate(auth.NewVerifier(cfg), observed, discard())

	token, _ := auth.NewIssuer(cfg).Issue("user-9")

	var seen *auth.Identity
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"authorized", "Bearer " + token.Value, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "unauthorized"},
		{"invalid", "Bearer nope", http.StatusForbidden, "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest("GET", "/violations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				if seen == nil || seen.UserID != "user-9" {
					t.Errorf("identity in context = %+v", seen)
				}
				return
			}

			if seen != nil {
				t.Error("handler should not run for rejected requests")
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tt.wantBody {
				t.Errorf("error body = %q, want %q", body["error"], tt.wantBody)
			}
		})
	}

	if len(observed.reasons) != 2 || observed.reasons[0] != "unauthenticated" || observed.reasons[1] != "forbidden" {
		t.Errorf("observed rejections = %v", observed.reasons)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	if got := auth.MapHTTPStatus(auth.ErrUnauthenticated); got != http.StatusUnauthorized {
		t.Errorf("unauthenticated = %d", got)
	}
	if got := auth.MapHTTPStatus(auth.ErrForbidden); got != http.StatusForbidden {
		t.Errorf("forbidden = %d", got)
	}
	if got := auth.MapHTTPStatus(errors.New("x")); got != http.StatusInternalServerError {
		t.Errorf("other = %d", got)
	}
}
