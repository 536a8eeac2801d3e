package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
)

func responseWith(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestClassify_StructuredKindWinsOverText(t *testing.T) {
	f := classifyResponse(responseWith(http.StatusUnauthorized,
		`{"error":"some unrelated wording","kind":"locked_out","lockoutMinutes":15}`))
	if f.Kind != KindLockedOut || f.LockoutMinutes != 15 {
		t.Fatalf("expected locked_out(15), got %+v", f)
	}
}

func TestClassify_RemainingAttemptsKind(t *testing.T) {
	f := classifyResponse(responseWith(http.StatusUnauthorized,
		`{"error":"invalid credentials, 2 attempts remaining","kind":"remaining_attempts","remainingAttempts":2}`))
	if f.Kind != KindRemainingAttempts || f.RemainingAttempts != 2 {
		t.Fatalf("expected remaining_attempts(2), got %+v", f)
	}
}

func TestClassify_TextFallbackWithoutKind(t *testing.T) {
	// Older server builds send only the display message.
	f := classifyResponse(responseWith(http.StatusUnauthorized,
		`{"error":"invalid credentials, 3 attempts remaining"}`))
	if f.Kind != KindRemainingAttempts || f.RemainingAttempts != 3 {
		t.Fatalf("expected fallback remaining_attempts(3), got %+v", f)
	}

	f = classifyResponse(responseWith(http.StatusUnauthorized,
		`{"error":"account locked, try again in 15 minutes"}`))
	if f.Kind != KindLockedOut || f.LockoutMinutes != 15 {
		t.Fatalf("expected fallback locked_out(15), got %+v", f)
	}
}

func TestClassify_UnmatchedTextIsGeneric(t *testing.T) {
	f := classifyResponse(responseWith(http.StatusUnauthorized,
		`{"error":"invalid credentials"}`))
	if f.Kind != KindInvalidCredentials {
		t.Fatalf("expected invalid_credentials, got %+v", f)
	}
}

func TestClassify_ValidationAndMaintenance(t *testing.T) {
	f := classifyResponse(responseWith(http.StatusUnprocessableEntity,
		`{"error":"password rejected by policy (2 violations)","violations":[{"rule":"min_length","message":"too short"},{"rule":"numbers","message":"no digit"}]}`))
	if f.Kind != KindValidation || len(f.Violations) != 2 {
		t.Fatalf("expected validation with 2 violations, got %+v", f)
	}

	f = classifyResponse(responseWith(http.StatusServiceUnavailable,
		`{"error":"service under maintenance"}`))
	if f.Kind != KindMaintenance {
		t.Fatalf("expected maintenance, got %+v", f)
	}
}

func TestClassify_TransportFailures(t *testing.T) {
	f := classifyTransport(errors.New("connection refused"))
	if f.Kind != KindNetwork {
		t.Fatalf("expected network, got %+v", f)
	}

	f = classifyTransport(context.DeadlineExceeded)
	if f.Kind != KindTimedOut {
		t.Fatalf("expected timed_out, got %+v", f)
	}
}
