package bridge

import (
	"io"
	"time"
)

// TargetDescriptor identifies where to open a remote shell: host, port and
// the credentials to authenticate with. It is supplied by a TargetResolver
// and never persisted by this package.
type TargetDescriptor struct {
	Host     string
	Port     int
	Username string
	Password string
}

// TargetResolver maps an opaque client identifier to a target descriptor.
// A false return means the client id is unknown; that is not an internal
// error, it drives the "host not recognized" close path.
type TargetResolver interface {
	Lookup(clientID string) (TargetDescriptor, bool)
}

// ShellSession is an open interactive pty shell on an authenticated
// connection. It is owned exclusively by the bridge that created it.
type ShellSession interface {
	// Input is the shell's stdin. Writes are flushed immediately.
	Input() io.Writer
	// Output is the shell's stdout. Read blocks until data, end of
	// stream, or an I/O error.
	Output() io.Reader
	// Close releases the session's streams and channel.
	Close() error
}

// ShellConn is an authenticated connection capable of opening an
// interactive shell channel.
type ShellConn interface {
	OpenInteractiveShell(ptyType string, openTimeout time.Duration) (ShellSession, error)
	Disconnect() error
}

// ShellClient connects and authenticates to a target. The bridge depends
// only on this capability surface, not on any particular protocol
// implementation.
type ShellClient interface {
	Connect(host string, port int, username, password string, timeout time.Duration) (ShellConn, error)
}

// ClientConn is the bridge's view of the client socket: ordered text
// messages out, and a normal close on teardown.
type ClientConn interface {
	WriteText(p []byte) error
	CloseNormal() error
}
