package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DevRanbir/sparkcu-sub000/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret",
		JWTIssuer:       "test-issuer",
		SessionTokenTTL: 15 * time.Minute,
		PersistTokenTTL: time.Hour,
		AdminSessionTTL: 24 * time.Hour,
	}
}

// The validation handlers below must reject bad input before any store
// access; the server under test has no store at all, so a regression that
// reaches the database panics the test.
func newValidationServer() *httptest.Server {
	server := NewServer(testConfig(), nil, nil, nil)
	return httptest.NewServer(server.Router())
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode error: %v", err)
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("http error: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) (string, string) {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload["error"], payload["message"]
}

func TestEmptyFAQQuestionRejectedWithoutStoreAccess(t *testing.T) {
	app := newValidationServer()
	defer app.Close()

	for _, question := range []string{"", "   ", "\n\t"} {
		resp := postJSON(t, app.URL+"/faqs", map[string]string{"question": question})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for question %q, got %d", question, resp.StatusCode)
		}
		code, message := decodeError(t, resp)
		if code != "missing_question" {
			t.Fatalf("expected missing_question, got %s", code)
		}
		if message == "" {
			t.Fatalf("expected human readable message for %s", code)
		}
	}
}

func TestRegisterValidationBeforeRemoteCalls(t *testing.T) {
	app := newValidationServer()
	defer app.Close()

	cases := []struct {
		name string
		body map[string]interface{}
		code string
	}{
		{
			name: "missing fields",
			body: map[string]interface{}{"email": "a@b.co"},
			code: "missing_fields",
		},
		{
			name: "bad email",
			body: map[string]interface{}{
				"email": "not-an-email", "password": "longenough",
				"teamName": "Team", "leaderName": "Lead", "academicYear": "2nd",
			},
			code: "invalid_email",
		},
		{
			name: "weak password",
			body: map[string]interface{}{
				"email": "a@b.co", "password": "short",
				"teamName": "Team", "leaderName": "Lead", "academicYear": "2nd",
			},
			code: "weak_password",
		},
	}
	for _, tc := range cases {
		resp := postJSON(t, app.URL+"/auth/register", tc.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, resp.StatusCode)
		}
		if code, _ := decodeError(t, resp); code != tc.code {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.code, code)
		}
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	app := newValidationServer()
	defer app.Close()

	resp := postJSON(t, app.URL+"/auth/login", map[string]string{"email": "a@b.co"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if code, _ := decodeError(t, resp); code != "missing_credentials" {
		t.Fatalf("expected missing_credentials, got %s", code)
	}
}

func TestGuardRequiresPath(t *testing.T) {
	app := newValidationServer()
	defer app.Close()

	resp, err := http.Get(app.URL + "/guard")
	if err != nil {
		t.Fatalf("http error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if code, _ := decodeError(t, resp); code != "missing_path" {
		t.Fatalf("expected missing_path, got %s", code)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app := newValidationServer()
	defer app.Close()

	resp, err := http.Get(app.URL + "/auth/me")
	if err != nil {
		t.Fatalf("http error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for /auth/me, got %d", resp.StatusCode)
	}

	resp, err = http.Get(app.URL + "/teams/")
	if err != nil {
		t.Fatalf("http error: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for admin team list, got %d", resp.StatusCode)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"Bearer abc":       "abc",
		"bearer abc":       "abc",
		"Basic abc":        "",
		"Bearer":           "",
		"Bearer  spaced  ": "spaced",
	}
	for header, expect := range cases {
		if got := bearerToken(header); got != expect {
			t.Fatalf("bearerToken(%q) = %q, expected %q", header, got, expect)
		}
	}
}

func TestErrorMessageTableCoversKnownCodes(t *testing.T) {
	for _, code := range []string{"invalid_credentials", "not_verified", "team_name_taken", "missing_question", "session_expired"} {
		if messageFor(code) == errorMessages["server_error"] && code != "server_error" {
			t.Fatalf("expected dedicated message for %s", code)
		}
	}
	if messageFor("nonsense_code") != errorMessages["server_error"] {
		t.Fatalf("expected unknown codes to map to the generic message")
	}
}
