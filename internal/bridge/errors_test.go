package bridge

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp 203.0.113.9:22: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

func TestClassifyStructuredErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureCause
	}{
		{
			name: "dns not found",
			err:  &net.DNSError{Err: "no such host", Name: "nohost.invalid", IsNotFound: true},
			want: CauseUnknownHost,
		},
		{
			name: "wrapped dns not found",
			err:  fmt.Errorf("dial %s: %w", "nohost.invalid:22", &net.DNSError{Err: "no such host", Name: "nohost.invalid", IsNotFound: true}),
			want: CauseUnknownHost,
		},
		{
			name: "net timeout",
			err:  timeoutError{},
			want: CauseConnTimeout,
		},
		{
			name: "connection refused errno",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			want: CauseConnRefused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Cause != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.err, got.Cause, tt.want)
			}
		})
	}
}

func TestClassifySubstringFallback(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want FailureCause
	}{
		{"ssh auth failure", "ssh: handshake failed: ssh: unable to authenticate, attempted methods [none password], no supported methods remain", CauseAuthFailed},
		{"jsch style auth fail", "Auth fail", CauseAuthFailed},
		{"permission denied", "permission denied (publickey,password)", CauseAuthFailed},
		{"refused", "dial tcp 10.0.0.1:22: connect: connection refused", CauseConnRefused},
		{"timed out", "connect timed out", CauseConnTimeout},
		{"io timeout", "dial tcp: i/o timeout", CauseConnTimeout},
		{"unknown host", "java-style UnknownHostException: unknown host", CauseUnknownHost},
		{"no such host", "dial tcp: lookup nohost.invalid: no such host", CauseUnknownHost},
		{"unmatched", "the server said something strange", CauseOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(errors.New(tt.msg))
			if got.Cause != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.msg, got.Cause, tt.want)
			}
		})
	}
}

func TestClassifyPreservesClassified(t *testing.T) {
	orig := &ConnectError{Cause: CauseAuthFailed, Err: errors.New("auth fail")}
	got := Classify(fmt.Errorf("wrapped: %w", orig))
	if got.Cause != CauseAuthFailed {
		t.Errorf("re-classifying a ConnectError changed cause to %s", got.Cause)
	}
}

func TestClassifyNil(t *testing.T) {
	got := Classify(nil)
	if got.Cause != CauseOther {
		t.Errorf("Classify(nil) = %s, want %s", got.Cause, CauseOther)
	}
}

func TestReasons(t *testing.T) {
	tests := []struct {
		cause  FailureCause
		reason string
	}{
		{CauseTargetNotFound, "host not recognized"},
		{CauseAuthFailed, "invalid username or password"},
		{CauseConnRefused, "connection refused — remote shell service unreachable or port closed"},
		{CauseConnTimeout, "connection timed out — check network or firewall"},
		{CauseUnknownHost, "host address could not be resolved"},
	}
	for _, tt := range tests {
		cerr := &ConnectError{Cause: tt.cause}
		if got := cerr.Reason(); got != tt.reason {
			t.Errorf("Reason(%s) = %q, want %q", tt.cause, got, tt.reason)
		}
	}
}

func TestReasonOtherCarriesOriginalMessage(t *testing.T) {
	cerr := &ConnectError{Cause: CauseOther, Err: errors.New("the server said something strange")}
	if got := cerr.Reason(); got != "the server said something strange" {
		t.Errorf("Reason(other) = %q", got)
	}
}

func TestConnectErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	cerr := &ConnectError{Cause: CauseOther, Err: inner}
	if !errors.Is(cerr, inner) {
		t.Error("ConnectError should unwrap to the underlying error")
	}
}
