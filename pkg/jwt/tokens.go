package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims defines the JWT payload.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

// Reason classifies a verification failure for logging. It is never exposed
// to API callers.
type Reason string

const (
	ReasonSignature Reason = "signature_invalid"
	ReasonExpired   Reason = "expired"
	ReasonMalformed Reason = "malformed"
)

// TokenError is the single error returned for any verification failure. The
// message is identical regardless of cause, so a caller cannot distinguish a
// tampered token from an expired or undecodable one.
type TokenError struct {
	Reason Reason
}

func (e *TokenError) Error() string { return "invalid token" }

// GenerateToken issues a signed HS256 JWT with the provided secret and ttl.
func GenerateToken(userID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "userapi",
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates a token and extracts its claims. Any failure comes back as
// a *TokenError carrying only an internal reason code.
func Parse(token string, secret string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return nil, &TokenError{Reason: classify(err)}
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, &TokenError{Reason: ReasonMalformed}
	}
	return claims, nil
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid), errors.Is(err, jwtlib.ErrSignatureInvalid):
		return ReasonSignature
	default:
		return ReasonMalformed
	}
}
