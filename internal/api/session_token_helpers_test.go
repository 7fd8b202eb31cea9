package api

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/parentsphere/internal/security"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	handler := &Handler{secretKey: []byte(testSecretKey)}
	sessionID, err := security.NewSessionID()
	if err != nil {
		t.Fatalf("new session id: %v", err)
	}

	token, err := handler.buildSessionToken(sessionID, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	parsed, err := handler.parseSessionToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed != sessionID {
		t.Fatalf("expected session %q, got %q", sessionID, parsed)
	}
}

func TestSessionTokenRejections(t *testing.T) {
	t.Parallel()

	handler := &Handler{secretKey: []byte(testSecretKey)}
	other := &Handler{secretKey: []byte("fedcba9876543210fedcba9876543210")}
	sessionID, err := security.NewSessionID()
	if err != nil {
		t.Fatalf("new session id: %v", err)
	}

	if _, err := handler.parseSessionToken("  "); !errors.Is(err, errMissingSessionCookie) {
		t.Fatalf("expected missing cookie error, got %v", err)
	}

	expired, err := handler.buildSessionToken(sessionID, time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("build expired token: %v", err)
	}
	if _, err := handler.parseSessionToken(expired); !errors.Is(err, errInvalidSessionToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	foreign, err := other.buildSessionToken(sessionID, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("build foreign token: %v", err)
	}
	if _, err := handler.parseSessionToken(foreign); !errors.Is(err, errInvalidSessionToken) {
		t.Fatalf("expected token signed with another key to be rejected, got %v", err)
	}

	malformed, err := handler.buildSessionToken("not a session id", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("build malformed token: %v", err)
	}
	if _, err := handler.parseSessionToken(malformed); !errors.Is(err, errInvalidSessionToken) {
		t.Fatalf("expected malformed session id to be rejected, got %v", err)
	}
}

func TestSessionTokenTTLIsCapped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		configured time.Duration
		want       time.Duration
	}{
		{configured: 0, want: defaultSessionTokenTTL},
		{configured: time.Hour, want: time.Hour},
		{configured: 30 * 24 * time.Hour, want: defaultSessionTokenTTL},
	}
	for _, tc := range cases {
		handler := &Handler{sessionTTL: tc.configured}
		if got := handler.sessionTokenTTL(); got != tc.want {
			t.Fatalf("sessionTTL %s: expected %s, got %s", tc.configured, tc.want, got)
		}
	}
}

func TestLocalizeFieldErrors(t *testing.T) {
	t.Parallel()

	messages := map[string]string{
		"onboarding.error.name.required": "Baby's name is required",
	}
	localized := localizeFieldErrors(messages, map[string]string{
		"name[1]":  "required",
		"fullName": "required",
	})
	if localized["name[1]"] != "Baby's name is required" {
		t.Fatalf("expected indexed key to use the field message, got %q", localized["name[1]"])
	}
	if localized["fullName"] != "required" {
		t.Fatalf("expected missing translation to fall back to the problem code, got %q", localized["fullName"])
	}
	if got := errorMessage(map[string]string{}, "baby_not_found"); got != "baby not found" {
		t.Fatalf("expected readable fallback for untranslated code, got %q", got)
	}
}
