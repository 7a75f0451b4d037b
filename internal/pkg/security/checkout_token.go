package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CheckoutTokenClaims binds a mock checkout session to a user and plan kind.
// There is no real payment gateway; the token only proves the completion
// request belongs to a checkout this instance started.
type CheckoutTokenClaims struct {
	UserID    uint   `json:"user_id"`
	PlanKind  string `json:"plan_kind"`
	ExpiresAt int64  `json:"exp"`
}

func GenerateCheckoutToken(userID uint, planKind string, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required for token generation")
	}
	claims := CheckoutTokenClaims{
		UserID:    userID,
		PlanKind:  planKind,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	sig := mac.Sum(nil)
	token := fmt.Sprintf("%s.%s", base64.RawURLEncoding.EncodeToString(payload), base64.RawURLEncoding.EncodeToString(sig))
	return token, nil
}

func VerifyCheckoutToken(token, secret string) (*CheckoutTokenClaims, error) {
	if secret == "" {
		return nil, errors.New("secret is required for token verification")
	}
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid token format")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errors.New("invalid payload encoding")
	}
	sigBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.New("invalid signature encoding")
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payloadBytes)
	expected := mac.Sum(nil)
	if !hmac.Equal(sigBytes, expected) {
		return nil, errors.New("invalid token signature")
	}
	var claims CheckoutTokenClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, errors.New("invalid payload")
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}

// VerifyInternalToken compares the presented shared secret against the
// configured one in constant time. Guards the unauthenticated-by-design
// internal subscription endpoint.
func VerifyInternalToken(presented, configured string) bool {
	if configured == "" || presented == "" {
		return false
	}
	return hmac.Equal([]byte(presented), []byte(configured))
}
