package handlers

import (
	"context"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/termgate/termgate/internal/bridge"
	"github.com/termgate/termgate/internal/config"
	"github.com/termgate/termgate/internal/logutil"
)

// Set from main.go during init.
var (
	Registry *bridge.Registry
	Resolver bridge.TargetResolver
	Shell    bridge.ShellClient
	Diagnose func(host string, port int)
)

// maxCloseReason keeps close reasons within the 123-byte limit the
// WebSocket close frame allows for UTF-8 reason text.
const maxCloseReason = 120

// TerminalWS bridges a WebSocket connection to a remote shell on the target
// registered for {clientId}. Client text messages are fed verbatim to the
// shell's input; shell output chunks are forwarded verbatim and in order as
// text messages. On an establishment failure the socket is closed with
// status 1008 and the classified human-readable reason.
func TerminalWS(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	clientConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("Failed to accept terminal websocket: %v", err)
		return
	}
	defer clientConn.CloseNow()

	ctx := r.Context()
	sessionID := uuid.New().String()
	log.Printf("[terminal] session %s opened for client %s", sessionID, logutil.SanitizeForLog(clientID))

	b, err := bridge.Open(bridge.OpenParams{
		SessionID:      sessionID,
		ClientID:       clientID,
		Resolver:       Resolver,
		Shell:          Shell,
		Client:         &wsClientConn{ctx: ctx, conn: clientConn},
		Registry:       Registry,
		ConnectTimeout: config.Cfg.ConnectTimeout,
		ChannelTimeout: config.Cfg.ChannelTimeout,
		Diagnose:       Diagnose,
	})
	if err != nil {
		clientConn.Close(websocket.StatusPolicyViolation, truncateReason(bridge.Classify(err).Reason()))
		return
	}

	clientConn.SetReadLimit(1024 * 1024)

	// Client -> shell input. The transport delivers messages sequentially
	// per connection, so input order is preserved without extra locking.
	for {
		_, data, err := clientConn.Read(ctx)
		if err != nil {
			break
		}
		if err := b.SendInput(data); err != nil {
			break
		}
	}

	b.Close()
}

// wsClientConn adapts a coder/websocket connection to bridge.ClientConn.
type wsClientConn struct {
	ctx  context.Context
	conn *websocket.Conn
}

func (w *wsClientConn) WriteText(p []byte) error {
	return w.conn.Write(w.ctx, websocket.MessageText, p)
}

func (w *wsClientConn) CloseNormal() error {
	return w.conn.Close(websocket.StatusNormalClosure, "")
}

func truncateReason(reason string) string {
	if len(reason) <= maxCloseReason {
		return reason
	}
	reason = reason[:maxCloseReason]
	// Don't cut a UTF-8 sequence in half
	for len(reason) > 0 && !utf8.ValidString(reason) {
		reason = reason[:len(reason)-1]
	}
	return reason
}
