package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@x.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Email != "ana@x.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expected expiry in the future")
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@x.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, err = Parse(token, testSecret)
	assertTokenError(t, err, ReasonExpired)
}

func TestParseTamperedSignature(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@x.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	flipped := flipLastSignatureChar(t, token)
	_, err = Parse(flipped, testSecret)
	assertTokenError(t, err, ReasonSignature)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@x.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, err = Parse(token, "some-other-secret")
	assertTokenError(t, err, ReasonSignature)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token", testSecret)
	assertTokenError(t, err, ReasonMalformed)
}

func TestFailureMessageIsUniform(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@x.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, expiredErr := Parse(token, testSecret)
	_, garbageErr := Parse("garbage", testSecret)
	if expiredErr == nil || garbageErr == nil {
		t.Fatalf("expected both parses to fail")
	}
	if expiredErr.Error() != garbageErr.Error() {
		t.Fatalf("failure messages differ: %q vs %q", expiredErr.Error(), garbageErr.Error())
	}
	if expiredErr.Error() != "invalid token" {
		t.Fatalf("unexpected message: %q", expiredErr.Error())
	}
}

func assertTokenError(t *testing.T, err error, want Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var tokenErr *TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected *TokenError, got %T", err)
	}
	if tokenErr.Reason != want {
		t.Fatalf("unexpected reason: got %s, want %s", tokenErr.Reason, want)
	}
	if tokenErr.Error() != "invalid token" {
		t.Fatalf("unexpected message: %q", tokenErr.Error())
	}
}

func flipLastSignatureChar(t *testing.T, token string) string {
	t.Helper()
	idx := strings.LastIndex(token, ".")
	if idx < 0 || idx == len(token)-1 {
		t.Fatalf("token missing signature segment: %q", token)
	}
	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	return token[:len(token)-1] + string(replacement)
}
