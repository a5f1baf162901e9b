package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/mealweek/internal/auth/emailotp"
	"github.com/fdg312/mealweek/internal/config"
	"github.com/fdg312/mealweek/internal/mailer"
	"github.com/fdg312/mealweek/internal/storage/memory"
	"github.com/fdg312/mealweek/internal/userctx"
	"github.com/golang-jwt/jwt/v5"
)

type mockProvisioner struct {
	owners []string
}

func (m *mockProvisioner) EnsureProfile(ctx context.Context, ownerUserID, email string) error {
	m.owners = append(m.owners, ownerUserID)
	return nil
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		Env:                 config.EnvLocal,
		AuthMode:            mode,
		EmailAuthEnabled:    mode != config.AuthModeNone,
		JWTSecret:           "test-secret-key-for-testing-only",
		JWTIssuer:           "mealweek-test",
		JWTTTLMinutes:       60,
		OTPSecret:           "test-otp-secret",
		OTPTTLSeconds:       600,
		OTPMaxAttempts:      5,
		OTPResendMinSeconds: 60,
		OTPMaxSendPerHour:   5,
		OTPDebugReturnCode:  true,
	}
}

func setupTestService(mode string) (*Service, *mockProvisioner) {
	profiles := &mockProvisioner{}
	return NewService(testConfig(mode), profiles), profiles
}

func TestHandleDevAuth(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, profiles := setupTestService(config.AuthModeDev)
		handler := NewHandlers(service)

		req := httptest.NewRequest("POST", "/v1/auth/dev", nil)
		w := httptest.NewRecorder()
		handler.HandleDevAuth(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp DevAuthResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.AccessToken == "" || resp.TokenType != "Bearer" {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.ExpiresIn != int64((30 * 24 * time.Hour).Seconds()) {
			t.Errorf("expected 30 day token, got %d", resp.ExpiresIn)
		}

		sub, err := service.VerifyJWT(resp.AccessToken)
		if err != nil || sub != DevUserID {
			t.Fatalf("expected sub %q, got %q (%v)", DevUserID, sub, err)
		}
		if len(profiles.owners) != 1 || profiles.owners[0] != DevUserID {
			t.Errorf("expected dev profile provisioned, got %v", profiles.owners)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		service, _ := setupTestService(config.AuthModeNone)
		handler := NewHandlers(service)

		w := httptest.NewRecorder()
		handler.HandleDevAuth(w, httptest.NewRequest("POST", "/v1/auth/dev", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
		var resp ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error.Code != "dev_auth_disabled" {
			t.Errorf("expected dev_auth_disabled, got %q", resp.Error.Code)
		}
	})
}

func TestHandleEmailOTPFlow(t *testing.T) {
	service, profiles := setupTestService(config.AuthModeDev)
	otp := emailotp.NewService(service.config, memory.New().EmailOTPs(), mailer.NewLocalSender(nil), service).
		WithProfiles(profiles)
	handler := NewHandlers(service).WithEmailOTP(otp)

	body := bytes.NewBufferString(`{"email":"ana@example.com"}`)
	w := httptest.NewRecorder()
	handler.HandleEmailOTPRequest(w, httptest.NewRequest("POST", "/v1/auth/email/request", body))
	if w.Code != http.StatusOK {
		t.Fatalf("request: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var requested emailotp.RequestResponse
	json.NewDecoder(w.Body).Decode(&requested)
	if requested.DebugCode == nil {
		t.Fatal("expected debug code in local env")
	}

	verifyBody, _ := json.Marshal(EmailOTPVerifyRequest{Email: "ana@example.com", Code: *requested.DebugCode})
	w = httptest.NewRecorder()
	handler.HandleEmailOTPVerify(w, httptest.NewRequest("POST", "/v1/auth/email/verify", bytes.NewReader(verifyBody)))
	if w.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var verified emailotp.VerifyResponse
	json.NewDecoder(w.Body).Decode(&verified)
	sub, err := service.VerifyJWT(verified.AccessToken)
	if err != nil || sub != "email:ana@example.com" {
		t.Fatalf("expected email subject, got %q (%v)", sub, err)
	}
	if len(profiles.owners) != 1 || profiles.owners[0] != "email:ana@example.com" {
		t.Errorf("expected profile for email owner, got %v", profiles.owners)
	}
}

func TestHandleEmailOTPErrors(t *testing.T) {
	service, _ := setupTestService(config.AuthModeDev)

	t.Run("NotConfigured", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewHandlers(service).HandleEmailOTPRequest(w, httptest.NewRequest("POST", "/v1/auth/email/request", strings.NewReader(`{}`)))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	otp := emailotp.NewService(service.config, memory.New().EmailOTPs(), mailer.NewLocalSender(nil), service)
	handler := NewHandlers(service).WithEmailOTP(otp)

	t.Run("BadJSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleEmailOTPVerify(w, httptest.NewRequest("POST", "/v1/auth/email/verify", strings.NewReader(`{`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleEmailOTPRequest(w, httptest.NewRequest("POST", "/v1/auth/email/request", strings.NewReader(`{"email":"nope"}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var resp ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error.Code != "invalid_email" {
			t.Errorf("expected invalid_email, got %q", resp.Error.Code)
		}
	})
}

func TestMiddlewareAuth(t *testing.T) {
	service, _ := setupTestService(config.AuthModeDev)
	service.config.AuthRequired = true
	middleware := NewMiddleware(service.config, service)

	var gotUser string
	protected := middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = userctx.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, _, err := service.IssueToken("user-42")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid token", path: "/v1/plan/week", header: "Bearer " + token, wantStatus: http.StatusOK, wantUser: "user-42"},
		{name: "missing token", path: "/v1/plan/week", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/v1/plan/week", header: "Token " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", path: "/v1/plan/week", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "public healthz", path: "/healthz", wantStatus: http.StatusOK},
		{name: "public auth", path: "/v1/auth/dev", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if gotUser != tt.wantUser {
				t.Errorf("expected user %q, got %q", tt.wantUser, gotUser)
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	service, _ := setupTestService(config.AuthModeDev)
	middleware := NewMiddleware(service.config, service)

	var gotUser string
	var hadUser bool
	handler := middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, hadUser = userctx.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("NoToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/v1/plan/week", nil))
		if w.Code != http.StatusOK || hadUser {
			t.Fatalf("expected anonymous pass-through, got %d user=%q", w.Code, gotUser)
		}
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, _, _ := service.IssueToken("user-7")
		req := httptest.NewRequest("GET", "/v1/plan/week", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK || gotUser != "user-7" {
			t.Fatalf("expected user-7, got %d user=%q", w.Code, gotUser)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/plan/week", nil)
		req.Header.Set("Authorization", "Bearer broken")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestVerifyJWTRejects(t *testing.T) {
	service, _ := setupTestService(config.AuthModeDev)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}
	now := time.Now()
	secret := []byte(service.config.JWTSecret)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: sign(jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "u", "iss": "mealweek-test", "exp": now.Add(-time.Minute).Unix()})},
		{name: "wrong secret", token: sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u", "iss": "mealweek-test", "exp": now.Add(time.Hour).Unix()})},
		{name: "wrong issuer", token: sign(jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "u", "iss": "someone-else", "exp": now.Add(time.Hour).Unix()})},
		{name: "no subject", token: sign(jwt.SigningMethodHS256, secret, jwt.MapClaims{"iss": "mealweek-test", "exp": now.Add(time.Hour).Unix()})},
		{name: "none alg", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "u", "iss": "mealweek-test"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.VerifyJWT(tt.token); err != ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
