package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signToken はテスト用に任意の秘密鍵と有効期間でトークンを作成します。
func signToken(t *testing.T, secret, userID, email string, lifetime time.Duration) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(lifetime).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// TestVerifier_VerifyToken_Valid は発行直後のトークンが正しいクレームで検証されることを確認します。
func TestVerifier_VerifyToken_Valid(t *testing.T) {
	t.Parallel()

	const secret = "verifier-secret"
	v := NewVerifier(secret)

	signed := signToken(t, secret, "id-42", "jane@x.com", time.Hour)

	claims, err := v.VerifyToken(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "id-42" {
		t.Errorf("expected user id %q, got %q", "id-42", claims.UserID)
	}
	if claims.Email != "jane@x.com" {
		t.Errorf("expected email %q, got %q", "jane@x.com", claims.Email)
	}
}

// TestVerifier_VerifyToken_RoundTrip はGeneratorが発行したトークンをVerifierが受理することを確認します。
func TestVerifier_VerifyToken_RoundTrip(t *testing.T) {
	t.Parallel()

	const secret = "shared-secret"
	gen := NewGenerator(secret, TokenLifetime)
	v := NewVerifier(secret)

	signed, err := gen.GenerateToken("id-7", "roundtrip@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := v.VerifyToken(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "id-7" || claims.Email != "roundtrip@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

// TestVerifier_VerifyToken_Failures は不正トークンが失敗モードごとに区別されることを検証します。
func TestVerifier_VerifyToken_Failures(t *testing.T) {
	t.Parallel()

	const secret = "verifier-secret"
	v := NewVerifier(secret)

	expired := signToken(t, secret, "id-1", "a@b.com", -time.Minute)
	wrongKey := signToken(t, "other-secret", "id-1", "a@b.com", time.Hour)

	// Flip the last character of the signature segment: verification must fail.
	tampered := signToken(t, secret, "id-1", "a@b.com", time.Hour)
	last := len(tampered) - 1
	flip := byte('A')
	if tampered[last] == flip {
		flip = 'B'
	}
	tampered = tampered[:last] + string(flip)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"malformed token", "not.a.valid.token", ErrTokenMalformed},
		{"random string", "randomstring", ErrTokenMalformed},
		{"empty token", "", ErrTokenMalformed},
		{"expired token", expired, ErrTokenExpired},
		{"wrong secret", wrongKey, ErrTokenSignatureInvalid},
		{"tampered payload", tampered, ErrTokenSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if claims != nil {
				t.Error("expected no claims")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected error %v, got %v", tt.want, err)
			}
		})
	}
}
