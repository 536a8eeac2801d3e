package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
)

// FailureKind classifies a failed API call. Classification prefers the
// structured kind the server attaches to its error envelope; the text
// patterns below exist only as a fallback for older server builds that
// send the display message alone.
type FailureKind string

const (
	KindInvalidCredentials FailureKind = "invalid_credentials"
	KindRemainingAttempts  FailureKind = "remaining_attempts"
	KindLockedOut          FailureKind = "locked_out"
	KindValidation         FailureKind = "validation"
	KindMaintenance        FailureKind = "maintenance"
	KindNetwork            FailureKind = "network"
	KindTimedOut           FailureKind = "timed_out"
)

// Violation is a single password policy failure, either computed locally
// before submission or echoed back by the server.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Failure is a classified API failure. RemainingAttempts is set for
// KindRemainingAttempts, LockoutMinutes for KindLockedOut, Violations
// for KindValidation.
type Failure struct {
	Kind              FailureKind
	Message           string
	Status            int
	RemainingAttempts int
	LockoutMinutes    int
	Violations        []Violation
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindRemainingAttempts:
		return fmt.Sprintf("%d attempts remaining", f.RemainingAttempts)
	case KindLockedOut:
		return fmt.Sprintf("locked for %d minutes", f.LockoutMinutes)
	case KindTimedOut:
		return "request timed out"
	case KindNetwork:
		return "network failure"
	}
	if f.Message != "" {
		return f.Message
	}
	return string(f.Kind)
}

// AsFailure unwraps err into a *Failure, or nil.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return nil
}

type errorEnvelope struct {
	Error             string      `json:"error"`
	Kind              FailureKind `json:"kind"`
	RemainingAttempts int         `json:"remainingAttempts"`
	LockoutMinutes    int         `json:"lockoutMinutes"`
	Violations        []Violation `json:"violations"`
}

var (
	remainingPattern = regexp.MustCompile(`(\d+)\s+attempts?\s+remaining`)
	lockoutPattern   = regexp.MustCompile(`locked.*?(\d+)\s+minute`)
)

func classifyResponse(resp *http.Response) *Failure {
	var env errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)

	f := &Failure{
		Message:           env.Error,
		Status:            resp.StatusCode,
		RemainingAttempts: env.RemainingAttempts,
		LockoutMinutes:    env.LockoutMinutes,
		Violations:        env.Violations,
	}

	if env.Kind != "" {
		f.Kind = env.Kind
		return f
	}
	if len(env.Violations) > 0 || resp.StatusCode == http.StatusUnprocessableEntity {
		f.Kind = KindValidation
		return f
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		f.Kind = KindMaintenance
		return f
	}

	// Legacy fallback: mine the display text for the counters.
	if m := remainingPattern.FindStringSubmatch(env.Error); m != nil {
		f.Kind = KindRemainingAttempts
		f.RemainingAttempts, _ = strconv.Atoi(m[1])
		return f
	}
	if m := lockoutPattern.FindStringSubmatch(env.Error); m != nil {
		f.Kind = KindLockedOut
		f.LockoutMinutes, _ = strconv.Atoi(m[1])
		return f
	}

	f.Kind = KindInvalidCredentials
	return f
}

func classifyTransport(err error) *Failure {
	f := &Failure{Kind: KindNetwork, Message: err.Error()}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		f.Kind = KindTimedOut
	}
	if errors.Is(err, context.DeadlineExceeded) {
		f.Kind = KindTimedOut
	}
	return f
}

func isTransient(err error) bool {
	f := AsFailure(err)
	return f != nil && (f.Kind == KindNetwork || f.Kind == KindTimedOut)
}
