package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/fencing-tournament/models"
)

var testSecret = []byte("test-secret")

func newTestAuthService() (AuthService, *memStore) {
	m := newMemStore()
	return NewAuthService(fakeUserRepo{m}, testSecret, time.Hour), m
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestAuthService()

	user, err := svc.Register(ctx, RegisterInput{Username: "marshal", Password: "en-garde-1", Email: "marshal@example.com"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Expected role USER, got %s", user.Role)
	}
	if user.PasswordHash != "" {
		t.Error("Expected password hash to be cleared")
	}
	if m.users[user.ID].PasswordHash == "en-garde-1" {
		t.Error("Expected password to be stored hashed")
	}

	token, loggedIn, err := svc.Login(ctx, LoginInput{Username: "marshal", Password: "en-garde-1"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if token == "" || loggedIn.ID != user.ID {
		t.Errorf("Expected token for user %d", user.ID)
	}

	resolved, err := svc.AuthenticateToken(ctx, token)
	if err != nil {
		t.Fatalf("Expected token to authenticate, got: %v", err)
	}
	if resolved.Username != "marshal" {
		t.Errorf("Expected subject marshal, got %s", resolved.Username)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"blank username", RegisterInput{Username: " ", Password: "longenough"}, ErrUsernameRequired},
		{"short password", RegisterInput{Username: "a", Password: "short"}, ErrPasswordTooShort},
		{"bad email", RegisterInput{Username: "a", Password: "longenough", Email: "not-an-email"}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService()
			if _, err := svc.Register(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("duplicate username", func(t *testing.T) {
		svc, _ := newTestAuthService()
		in := RegisterInput{Username: "dup", Password: "longenough"}
		if _, err := svc.Register(context.Background(), in); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrAuthUsernameTaken) {
			t.Fatalf("Expected ErrAuthUsernameTaken, got %v", err)
		}
	})
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()
	_, _ = svc.Register(ctx, RegisterInput{Username: "marshal", Password: "en-garde-1"})

	for _, in := range []LoginInput{
		{Username: "marshal", Password: "wrong-password"},
		{Username: "nobody", Password: "en-garde-1"},
	} {
		if _, _, err := svc.Login(ctx, in); !errors.Is(err, ErrAuthInvalidCredentials) {
			t.Errorf("%s: expected ErrAuthInvalidCredentials, got %v", in.Username, err)
		}
	}
}

func TestAuthService_AuthenticateToken_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()
	user, _ := svc.Register(ctx, RegisterInput{Username: "marshal", Password: "en-garde-1"})

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	now := time.Now()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"expired", sign(jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		}, jwt.SigningMethodHS256, testSecret)},
		{"wrong secret", sign(jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}, jwt.SigningMethodHS256, []byte("other-secret"))},
		{"unknown subject", sign(jwt.RegisteredClaims{
			Subject:   "ghost",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}, jwt.SigningMethodHS256, testSecret)},
		{"no expiry", sign(jwt.RegisteredClaims{
			Subject: user.Username,
		}, jwt.SigningMethodHS256, testSecret)},
		{"none algorithm", sign(jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AuthenticateToken(ctx, tt.token); !errors.Is(err, ErrAuthenticationFailed) {
				t.Fatalf("Expected ErrAuthenticationFailed, got %v", err)
			}
		})
	}
}

func TestAuthService_IssueToken_Claims(t *testing.T) {
	svc, _ := newTestAuthService()
	issuedAt := time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)
	svc.(*authService).now = func() time.Time { return issuedAt }

	token, err := svc.IssueToken(&models.User{Username: "marshal"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var claims jwt.RegisteredClaims
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) { return testSecret, nil }); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "marshal" {
		t.Errorf("Expected subject marshal, got %s", claims.Subject)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("Expected 1h lifetime, got %s", got)
	}
}
