// Package sshshell implements the bridge's remote shell capability over
// SSH. It wraps golang.org/x/crypto/ssh: password authentication, a bounded
// connect, a bounded interactive shell channel open, and pty-backed
// stdin/stdout streams.
package sshshell

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/termgate/termgate/internal/bridge"
	"golang.org/x/crypto/ssh"
)

// Client implements bridge.ShellClient using password authentication.
type Client struct{}

// Connect dials and authenticates within the given timeout. Host keys are
// not verified; targets are operator-registered hosts.
func (Client) Connect(host string, port int, username, password string, timeout time.Duration) (bridge.ShellConn, error) {
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("connect: invalid port %d", port)
	}

	config := &ssh.ClientConfig{
		User: username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Conn{client: client}, nil
}

// Conn is an authenticated SSH connection.
type Conn struct {
	client *ssh.Client
}

// OpenInteractiveShell opens a session channel with a pty of the given type
// and starts the remote login shell. Channel setup is bounded by
// openTimeout; if the bound is exceeded, any late session is discarded.
func (c *Conn) OpenInteractiveShell(ptyType string, openTimeout time.Duration) (bridge.ShellSession, error) {
	type result struct {
		session *Session
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := openShell(c.client, ptyType)
		done <- result{session: s, err: err}
	}()

	timer := time.NewTimer(openTimeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return r.session, nil
	case <-timer.C:
		go func() {
			if r := <-done; r.session != nil {
				r.session.Close()
			}
		}()
		return nil, fmt.Errorf("open shell channel: timed out after %s", openTimeout)
	}
}

// Disconnect closes the underlying connection.
func (c *Conn) Disconnect() error {
	return c.client.Close()
}

func openShell(client *ssh.Client, ptyType string) (*Session, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("create ssh session: %w", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}

	if err := session.RequestPty(ptyType, 24, 80, modes); err != nil {
		session.Close()
		return nil, fmt.Errorf("request pty: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		return nil, fmt.Errorf("start shell: %w", err)
	}

	return &Session{
		session: session,
		stdin:   stdin,
		stdout:  stdout,
	}, nil
}

// Session is an open pty shell channel with byte-stream endpoints.
type Session struct {
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  io.Reader
}

func (s *Session) Input() io.Writer  { return s.stdin }
func (s *Session) Output() io.Reader { return s.stdout }

// Close closes the input stream and the underlying channel. The output
// stream ends as a consequence, which unblocks the bridge's reader.
func (s *Session) Close() error {
	s.stdin.Close()
	return s.session.Close()
}
