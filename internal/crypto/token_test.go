package crypto

import "testing"

func TestSessionTokenHashing(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	other, err := NewSessionToken()
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if token == other {
		t.Fatalf("expected distinct tokens")
	}
	if HashToken(token) != HashToken(token) {
		t.Fatalf("expected stable hash")
	}
	if HashToken(token) == HashToken(other) {
		t.Fatalf("expected distinct hashes")
	}
}

func TestVerificationCode(t *testing.T) {
	code, err := NewVerificationCode()
	if err != nil {
		t.Fatalf("code error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected six digit code, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits only, got %q", code)
		}
	}
}
