// Package target provides the database-backed TargetResolver and the YAML
// seed file loader. It is the only place stored credentials are decrypted.
package target

import (
	"log"

	"github.com/termgate/termgate/internal/bridge"
	"github.com/termgate/termgate/internal/crypto"
	"github.com/termgate/termgate/internal/database"
	"github.com/termgate/termgate/internal/logutil"
)

// Resolver looks up targets in the database and decrypts their credential.
// It implements bridge.TargetResolver.
type Resolver struct{}

func (Resolver) Lookup(clientID string) (bridge.TargetDescriptor, bool) {
	t, err := database.GetTargetByClientID(clientID)
	if err != nil {
		return bridge.TargetDescriptor{}, false
	}

	password, err := crypto.Decrypt(t.Password)
	if err != nil {
		// A stored credential that no longer decrypts is operationally the
		// same as a missing target: the connect cannot proceed.
		log.Printf("[target] cannot decrypt credential for client %s: %v", logutil.SanitizeForLog(clientID), err)
		return bridge.TargetDescriptor{}, false
	}

	return bridge.TargetDescriptor{
		Host:     t.Host,
		Port:     t.Port,
		Username: t.Username,
		Password: password,
	}, true
}
