package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func initTestKey(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-0123456789abcdef0123456789abcdef")
	Init()
}

func TestGenerateAndValidate(t *testing.T) {
	initTestKey(t)

	tok, err := GenerateToken(42, "drsmith", "DOCTOR")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}
	if !ValidateToken(tok) {
		t.Fatal("freshly issued token should validate")
	}
	if IsTokenExpired(tok) {
		t.Fatal("freshly issued token should not be expired")
	}

	claims, err := ExtractClaims(tok)
	if err != nil {
		t.Fatalf("extract claims: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "drsmith" || claims.Role != "DOCTOR" {
		t.Fatalf("claims round trip mismatch: %+v", claims)
	}
}

func TestExtractAccessors(t *testing.T) {
	initTestKey(t)

	tok, err := GenerateToken(7, "admin", "ADMIN")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	username, err := ExtractUsername(tok)
	if err != nil || username != "admin" {
		t.Fatalf("username = %q, err = %v", username, err)
	}
	role, err := ExtractRole(tok)
	if err != nil || role != "ADMIN" {
		t.Fatalf("role = %q, err = %v", role, err)
	}
	userID, err := ExtractUserID(tok)
	if err != nil || userID != 7 {
		t.Fatalf("userID = %d, err = %v", userID, err)
	}
}

func TestValidateTokenAndRole(t *testing.T) {
	initTestKey(t)

	tok, err := GenerateToken(1, "admin", "ADMIN")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !ValidateTokenAndRole(tok, "ADMIN") {
		t.Fatal("exact role should pass")
	}
	if !ValidateTokenAndRole(tok, "admin") {
		t.Fatal("role comparison should be case-insensitive")
	}
	if ValidateTokenAndRole(tok, "DOCTOR") {
		t.Fatal("wrong role should fail")
	}
}

func TestExpiredToken(t *testing.T) {
	initTestKey(t)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      "admin",
		"userId":   1,
		"username": "admin",
		"role":     "ADMIN",
		"iat":      now.Add(-48 * time.Hour).Unix(),
		"exp":      now.Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if !IsTokenExpired(expired) {
		t.Fatal("token with past exp should be expired")
	}
	if ValidateTokenAndRole(expired, "ADMIN") {
		t.Fatal("expired token should fail role validation even with matching role")
	}
}

func TestMalformedTokenFailsClosed(t *testing.T) {
	initTestKey(t)

	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 512)} {
		if ValidateToken(tok) {
			t.Fatalf("malformed token %q should not validate", tok)
		}
		if !IsTokenExpired(tok) {
			t.Fatalf("malformed token %q should be reported expired", tok)
		}
		if ValidateTokenAndRole(tok, "ADMIN") {
			t.Fatalf("malformed token %q should fail role validation", tok)
		}
	}
}

func TestTamperedSignature(t *testing.T) {
	initTestKey(t)

	tok, err := GenerateToken(3, "patient1", "PATIENT")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tampered := tok[:len(tok)-2] + "xx"
	if ValidateToken(tampered) {
		t.Fatal("tampered signature should not validate")
	}
}

func TestUserIDNumericEncodings(t *testing.T) {
	initTestKey(t)

	for _, id := range []interface{}{float64(99), "99", int(99), int64(99)} {
		claims := jwt.MapClaims{
			"sub":      "u",
			"userId":   id,
			"username": "u",
			"role":     "PATIENT",
			"iat":      time.Now().Unix(),
			"exp":      time.Now().Add(time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey())
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		got, err := ExtractUserID(signed)
		if err != nil {
			t.Fatalf("extract userId (%T): %v", id, err)
		}
		if got != 99 {
			t.Fatalf("userId (%T) = %d, want 99", id, got)
		}
	}
}
