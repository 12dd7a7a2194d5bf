package service

import (
	"errors"
	"testing"

	"github.com/codepulse/backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return config.AuthConfig{
		JWTSecret:    "test-secret",
		AccessTTL:    "1h",
		AdminLoginID: "admin",
		AdminHash:    string(hash),
	}
}

func TestNewAuthServiceValidation(t *testing.T) {
	cfg := testAuthConfig(t)

	missing := cfg
	missing.JWTSecret = ""
	if _, err := NewAuthService(missing); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("missing secret error = %v, want ErrMisconfigured", err)
	}

	missing = cfg
	missing.AdminHash = ""
	if _, err := NewAuthService(missing); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("missing hash error = %v, want ErrMisconfigured", err)
	}

	missing = cfg
	missing.AccessTTL = "soon"
	if _, err := NewAuthService(missing); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("bad ttl error = %v, want ErrMisconfigured", err)
	}
}

func TestLoginAndParseRoundtrip(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(t))
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}

	token, err := svc.Login("admin", "secret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	loginID, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if loginID != "admin" {
		t.Fatalf("loginID = %q, want admin", loginID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(t))
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login("root", "secret-pass"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong login error = %v, want ErrUnauthorized", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(t))
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}

	if _, err := svc.ParseAccessToken("not-a-jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("garbage token error = %v, want ErrUnauthorized", err)
	}
}
