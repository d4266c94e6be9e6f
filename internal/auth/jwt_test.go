package auth

import (
	"testing"
	"time"
)

func TestIssueParseRoundTrip(t *testing.T) {
	token, exp, err := Issue("user-1", "admin", "campusattend", "secret", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry in the past")
	}

	claims, err := Parse(token, "secret", "campusattend")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "admin" {
		t.Fatalf("claims wrong: %+v", claims)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	token, _, err := Issue("user-1", "student", "campusattend", "secret", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Parse(token, "other-secret", "campusattend"); err == nil {
		t.Fatal("token verified with wrong key")
	}
	if _, err := Parse(token, "secret", "someone-else"); err == nil {
		t.Fatal("token verified with wrong issuer")
	}
	if _, err := Parse("not-a-token", "secret", "campusattend"); err == nil {
		t.Fatal("garbage token verified")
	}

	expired, _, err := Issue("user-1", "student", "campusattend", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}
	if _, err := Parse(expired, "secret", "campusattend"); err == nil {
		t.Fatal("expired token verified")
	}
}
