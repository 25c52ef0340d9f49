package bridge

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// FailureCause is the classified cause of a connection-establishment failure.
type FailureCause string

const (
	CauseTargetNotFound FailureCause = "target_not_found"
	CauseAuthFailed     FailureCause = "auth_failed"
	CauseConnRefused    FailureCause = "connection_refused"
	CauseConnTimeout    FailureCause = "connect_timeout"
	CauseUnknownHost    FailureCause = "unknown_host"
	CauseOther          FailureCause = "other"
)

// ErrBridgeClosed is returned by SendInput once the bridge has left the
// Connected state.
var ErrBridgeClosed = errors.New("bridge is closed")

// ConnectError is a connection-establishment failure mapped to one of the
// enumerated causes. It wraps the underlying error when there is one.
type ConnectError struct {
	Cause FailureCause
	Err   error
}

func (e *ConnectError) Error() string {
	if e.Err == nil {
		return string(e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Cause, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Reason returns the human-readable close reason surfaced to the client.
// Unclassified failures carry the raw underlying message.
func (e *ConnectError) Reason() string {
	switch e.Cause {
	case CauseTargetNotFound:
		return "host not recognized"
	case CauseAuthFailed:
		return "invalid username or password"
	case CauseConnRefused:
		return "connection refused — remote shell service unreachable or port closed"
	case CauseConnTimeout:
		return "connection timed out — check network or firewall"
	case CauseUnknownHost:
		return "host address could not be resolved"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "connection failed"
	}
}

// Classify maps a low-level connect or authentication failure to a
// ConnectError. Structured error kinds are checked first; substring
// containment against known patterns is the fallback for failures that only
// expose a message (notably SSH authentication errors). Unmatched failures
// fall through to CauseOther carrying the original error.
func Classify(err error) *ConnectError {
	if err == nil {
		return &ConnectError{Cause: CauseOther}
	}

	var cerr *ConnectError
	if errors.As(err, &cerr) {
		return cerr
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return &ConnectError{Cause: CauseUnknownHost, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &ConnectError{Cause: CauseConnRefused, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ConnectError{Cause: CauseConnTimeout, Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "auth fail"),
		strings.Contains(msg, "unable to authenticate"),
		strings.Contains(msg, "permission denied"):
		return &ConnectError{Cause: CauseAuthFailed, Err: err}
	case strings.Contains(msg, "connection refused"):
		return &ConnectError{Cause: CauseConnRefused, Err: err}
	case strings.Contains(msg, "timed out"), strings.Contains(msg, "timeout"):
		return &ConnectError{Cause: CauseConnTimeout, Err: err}
	case strings.Contains(msg, "unknown host"), strings.Contains(msg, "no such host"):
		return &ConnectError{Cause: CauseUnknownHost, Err: err}
	default:
		return &ConnectError{Cause: CauseOther, Err: err}
	}
}
