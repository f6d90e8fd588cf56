package auth

import (
	"testing"
)

func TestIssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24)

	token, err := issuer.Issue(42, RoleDistributor)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.SubjectID != 42 {
		t.Fatalf("expected subject 42, got %d", claims.SubjectID)
	}
	if claims.Role != RoleDistributor {
		t.Fatalf("expected role %q, got %q", RoleDistributor, claims.Role)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", 24)
	other := NewTokenIssuer("secret-b", 24)

	token, err := issuer.Issue(1, RoleAdmin)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24)
	if _, err := issuer.Validate("not-a-jwt"); err == nil {
		t.Fatal("expected validation to fail for garbage token")
	}
}
