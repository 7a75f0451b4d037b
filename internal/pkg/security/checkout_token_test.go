package security

import (
	"testing"
	"time"
)

func TestCheckoutTokenRoundTrip(t *testing.T) {
	token, err := GenerateCheckoutToken(42, "quarterly", time.Minute, "s3cret")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := VerifyCheckoutToken(token, "s3cret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != 42 || claims.PlanKind != "quarterly" {
		t.Fatalf("claims = %+v, want user 42 / quarterly", claims)
	}
}

func TestCheckoutTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateCheckoutToken(42, "monthly", time.Minute, "s3cret")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := VerifyCheckoutToken(token, "other"); err == nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestCheckoutTokenExpires(t *testing.T) {
	token, err := GenerateCheckoutToken(42, "monthly", -time.Minute, "s3cret")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := VerifyCheckoutToken(token, "s3cret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyInternalToken(t *testing.T) {
	if !VerifyInternalToken("abc", "abc") {
		t.Fatalf("matching tokens must verify")
	}
	if VerifyInternalToken("abc", "abd") {
		t.Fatalf("mismatched tokens must not verify")
	}
	if VerifyInternalToken("", "") || VerifyInternalToken("abc", "") {
		t.Fatalf("empty configured secret must never verify")
	}
}
