package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrWrongScope       = errors.New("invalid scope for token")
)

// Scope tags the purpose of a token. Email-confirmation tokens carry
// no scope claim at all.
type Scope string

const (
	ScopeAccessToken  Scope = "access_token"
	ScopeRefreshToken Scope = "refresh_token"
	ScopeNone         Scope = ""
)

// Claims is the signed claims set shared by access, refresh and
// email-confirmation tokens.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies compact expiring claims sets. The same
// codec and secret serve every token purpose; callers distinguish
// purpose via the scope claim.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenCodec creates a codec for the given shared secret and HMAC
// algorithm name (HS256, HS384 or HS512).
func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	return &TokenCodec{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Encode signs a claims set for the given subject. A zero scope omits
// the scope claim entirely (confirmation tokens).
func (tc *TokenCodec) Encode(subject string, scope Scope, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Scope: string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(tc.method, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry, then checks that the token
// carries the expected scope. Pass ScopeNone to skip the scope check
// (email-confirmation tokens).
func (tc *TokenCodec) Decode(tokenString string, want Scope) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != tc.method.Alg() {
			return nil, ErrInvalidSignature
		}
		return tc.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidSignature
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}

	if want != ScopeNone && claims.Scope != string(want) {
		return nil, ErrWrongScope
	}

	return claims, nil
}
