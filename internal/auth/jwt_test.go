package auth

import (
	"testing"
	"time"
)

func TestParticipantTokenRoundTrip(t *testing.T) {
	token, err := NewParticipantToken("secret", "issuer", time.Minute, ParticipantClaims{
		ParticipantID: "participant-1",
		Email:         "leader@example.local",
		EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseParticipantToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.ParticipantID != "participant-1" || claims.Email != "leader@example.local" || !claims.EmailVerified {
		t.Fatalf("unexpected claims")
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := NewAdminToken("secret", "issuer", time.Minute, AdminClaims{
		SessionID:   "session-1",
		AdminID:     "admin",
		Role:        "manager",
		Permissions: []string{"teams", "faqs"},
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseAdminToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.SessionID != "session-1" || claims.AdminID != "admin" || claims.Role != "manager" {
		t.Fatalf("unexpected claims")
	}
}

func TestTokenKindsDoNotCross(t *testing.T) {
	adminToken, err := NewAdminToken("secret", "issuer", time.Minute, AdminClaims{AdminID: "admin"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseParticipantToken("secret", adminToken); err == nil {
		t.Fatalf("expected admin token to be rejected as participant token")
	}

	participantToken, err := NewParticipantToken("secret", "issuer", time.Minute, ParticipantClaims{ParticipantID: "p-1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseAdminToken("secret", participantToken); err == nil {
		t.Fatalf("expected participant token to be rejected as admin token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := NewAdminToken("secret", "issuer", -time.Minute, AdminClaims{AdminID: "admin"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseAdminToken("secret", token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
