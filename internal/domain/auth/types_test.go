package auth

import (
	"testing"
	"time"
)

func TestSession_IsAdmin(t *testing.T) {
	s := Session{Role: RoleAdmin}
	if !s.IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Session{Role: RoleUser}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
}

func TestSession_HasProfile(t *testing.T) {
	if (Session{Token: "tok"}).HasProfile() {
		t.Fatalf("token-only session should not have a profile")
	}
	s := Session{Token: "tok", Email: "admin@carcare.com"}
	if !s.HasProfile() {
		t.Fatalf("expected cached profile")
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{Subject: "s", Email: "e", ExpiresAt: time.Now().Add(time.Hour)}
	if id.Subject != "s" || id.Email != "e" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
