package jwtmw

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, each distinguishable so callers can report the
// right condition without inspecting library internals.
var (
	// ErrTokenMalformed indicates the token is not a parseable JWT.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignatureInvalid indicates the signature does not match the
	// payload, i.e. the token was tampered with or signed with another key.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired indicates the token's expiry instant has passed.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims are the identity facts carried by a verified token.
type Claims struct {
	UserID string
	Email  string
}

// Verifier defines the interface for JWT token verification.
type Verifier interface {
	// VerifyToken checks the token's signature and expiry and returns its claims.
	VerifyToken(token string) (*Claims, error)
}

// verifier implements the Verifier interface.
type verifier struct {
	secret []byte
}

// NewVerifier creates a new JWT verifier with the provided secret.
func NewVerifier(secret string) Verifier {
	return &verifier{secret: []byte(secret)}
}

// VerifyToken parses and validates the token. Only HMAC-signed tokens are
// accepted; any payload mutation invalidates the signature.
func (v *verifier) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	out := &Claims{}
	if sub, ok := claims["sub"].(string); ok {
		out.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	return out, nil
}
