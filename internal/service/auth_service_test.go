package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/repository"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), newTestConfig(t))
}

func TestSignupAndLogin(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(dto.SignupRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
	if resp.User.Email != "alice@example.com" || resp.User.Name != "Alice" {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}

	login, err := svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.AccessToken == "" {
		t.Fatalf("login returned empty token")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup(dto.SignupRequest{Email: "bob@example.com", Password: "secret123", Name: "Bob"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(dto.SignupRequest{Email: "bob@example.com", Password: "other456", Name: "Bobby"})
	if !errors.Is(err, apperror.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup(dto.SignupRequest{Email: "carol@example.com", Password: "secret123", Name: "Carol"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := svc.Login(dto.LoginRequest{Email: "carol@example.com", Password: "wrong"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(dto.SignupRequest{Email: "dave@example.com", Password: "secret123", Name: "Dave"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if user.Email != "dave@example.com" {
		t.Fatalf("token resolved to wrong user: %q", user.Email)
	}
}

func TestValidateTokenRejectsGarbageAndTampering(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(dto.SignupRequest{Email: "eve@example.com", Password: "secret123", Name: "Eve"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.ValidateToken("not-a-jwt"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(resp.AccessToken, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", resp.AccessToken)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)
	if _, err := svc.ValidateToken(tampered); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestCreateAccessTokenDefaultTTL(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup(dto.SignupRequest{Email: "frank@example.com", Password: "secret123", Name: "Frank"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Non-positive ttl falls back to the default.
	token, err := svc.CreateAccessToken("frank@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("create token failed: %v", err)
	}
	if _, err := svc.ValidateToken(token); err != nil {
		t.Fatalf("token with default ttl should validate: %v", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup(dto.SignupRequest{Email: "grace@example.com", Password: "secret123", Name: "Grace"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	claims := jwt.RegisteredClaims{
		Subject:   "grace@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ValidateToken(expired); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateTokenUnknownSubject(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.CreateAccessToken("ghost@example.com", time.Minute)
	if err != nil {
		t.Fatalf("create token failed: %v", err)
	}
	if _, err := svc.ValidateToken(token); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown subject, got %v", err)
	}
}
