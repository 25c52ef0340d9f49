// Package bridge pairs one client socket session with one remote
// interactive shell. It owns connection establishment, the output reader
// goroutine, failure classification, and teardown. The remote shell
// protocol, the client transport, and target lookup are capabilities
// injected by the caller.
package bridge

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/termgate/termgate/internal/logutil"
	"github.com/termgate/termgate/internal/metrics"
)

// State is the lifecycle state of a bridge.
type State string

const (
	StateConnecting State = "connecting"
	StateConnected  State = "connected"
	StateClosing    State = "closing"
	StateClosed     State = "closed"
)

// readChunkSize is the maximum number of bytes read from the shell's output
// stream per iteration of the reader loop.
const readChunkSize = 1024 * 1024

// OpenParams carries everything Open needs. The resolver and shell client
// are explicit collaborators, never globals.
type OpenParams struct {
	SessionID string
	ClientID  string

	Resolver TargetResolver
	Shell    ShellClient
	Client   ClientConn
	Registry *Registry

	ConnectTimeout time.Duration
	ChannelTimeout time.Duration

	// Diagnose, when set, is invoked on its own goroutine after a classified
	// connection failure. It is strictly observational: it never changes the
	// returned error and Open does not wait for it.
	Diagnose func(host string, port int)
}

// Bridge is the live pairing of one client connection and one remote shell
// session.
type Bridge struct {
	SessionID string
	ClientID  string
	Host      string
	CreatedAt time.Time

	conn     ShellConn
	session  ShellSession
	client   ClientConn
	registry *Registry

	mu    sync.Mutex
	state State

	readerDone chan struct{}
}

// Open resolves the client id to a target, establishes the remote shell with
// bounded connect and channel-open timeouts, registers the bridge, and
// starts the output reader. On any establishment failure the error is
// classified, diagnostics are fired, and the classified error is returned.
func Open(p OpenParams) (*Bridge, error) {
	target, ok := p.Resolver.Lookup(p.ClientID)
	if !ok {
		log.Printf("[bridge] no target for client %s", logutil.SanitizeForLog(p.ClientID))
		cerr := &ConnectError{Cause: CauseTargetNotFound}
		metrics.ConnectFailures.WithLabelValues(string(cerr.Cause)).Inc()
		return nil, cerr
	}

	conn, err := p.Shell.Connect(target.Host, target.Port, target.Username, target.Password, p.ConnectTimeout)
	if err != nil {
		return nil, p.failConnect(target, err)
	}

	session, err := conn.OpenInteractiveShell("xterm", p.ChannelTimeout)
	if err != nil {
		conn.Disconnect()
		return nil, p.failConnect(target, err)
	}

	b := &Bridge{
		SessionID:  p.SessionID,
		ClientID:   p.ClientID,
		Host:       target.Host,
		CreatedAt:  time.Now(),
		conn:       conn,
		session:    session,
		client:     p.Client,
		registry:   p.Registry,
		state:      StateConnected,
		readerDone: make(chan struct{}),
	}

	if err := p.Registry.Insert(p.SessionID, b); err != nil {
		session.Close()
		conn.Disconnect()
		cerr := &ConnectError{Cause: CauseOther, Err: err}
		metrics.ConnectFailures.WithLabelValues(string(cerr.Cause)).Inc()
		return nil, cerr
	}

	go b.readLoop()

	metrics.BridgesOpened.Inc()
	metrics.BridgesActive.Inc()
	log.Printf("[bridge] session %s connected to %s (client %s)",
		b.SessionID, logutil.SanitizeForLog(target.Host), logutil.SanitizeForLog(p.ClientID))
	return b, nil
}

// failConnect classifies an establishment failure, records it, and fires the
// diagnostic probe without waiting for it.
func (p *OpenParams) failConnect(target TargetDescriptor, err error) *ConnectError {
	cerr := Classify(err)
	metrics.ConnectFailures.WithLabelValues(string(cerr.Cause)).Inc()
	log.Printf("[bridge] connect to %s:%d failed for client %s: %v (cause=%s)",
		logutil.SanitizeForLog(target.Host), target.Port, logutil.SanitizeForLog(p.ClientID), err, cerr.Cause)
	if p.Diagnose != nil {
		go p.Diagnose(target.Host, target.Port)
	}
	return cerr
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SendInput writes raw bytes to the shell's input stream. It is valid only
// while the bridge is Connected; after close it returns ErrBridgeClosed and
// performs no I/O.
func (b *Bridge) SendInput(p []byte) error {
	b.mu.Lock()
	if b.state != StateConnected {
		b.mu.Unlock()
		return ErrBridgeClosed
	}
	b.mu.Unlock()

	n, err := b.session.Input().Write(p)
	metrics.ShellInputBytes.Add(float64(n))
	if err != nil {
		return err
	}
	return nil
}

// readLoop pumps shell output to the client socket, preserving arrival
// order, until end of stream or an I/O error, then triggers Close. Read
// failures are never raised to input callers.
func (b *Bridge) readLoop() {
	defer close(b.readerDone)

	buf := make([]byte, readChunkSize)
	for {
		n, err := b.session.Output().Read(buf)
		if n > 0 {
			metrics.ShellOutputBytes.Add(float64(n))
			if werr := b.client.WriteText(buf[:n]); werr != nil {
				log.Printf("[bridge] session %s client write failed: %v", b.SessionID, werr)
				break
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("[bridge] session %s shell read failed: %v", b.SessionID, err)
			}
			break
		}
		if b.State() != StateConnected {
			break
		}
	}

	b.Close()
}

// Close tears the bridge down: it transitions to Closing, releases the
// shell session and connection, closes the client socket, and removes the
// registry entry. It is idempotent and safe to call concurrently from the
// reader goroutine and the transport layer; both paths converge on a
// single teardown.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.state == StateClosing || b.state == StateClosed {
		b.mu.Unlock()
		return
	}
	b.state = StateClosing
	b.mu.Unlock()

	b.session.Close()
	b.conn.Disconnect()
	b.client.CloseNormal()

	if b.registry.Remove(b.SessionID) {
		metrics.BridgesActive.Dec()
		log.Printf("[bridge] session %s closed (client %s)", b.SessionID, logutil.SanitizeForLog(b.ClientID))
	}

	b.mu.Lock()
	b.state = StateClosed
	b.mu.Unlock()
}

// Done returns a channel closed when the output reader has exited.
func (b *Bridge) Done() <-chan struct{} {
	return b.readerDone
}
