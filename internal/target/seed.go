package target

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/termgate/termgate/internal/crypto"
	"github.com/termgate/termgate/internal/database"
)

// seedFile is the YAML shape of a targets seed file:
//
//	targets:
//	  - client_id: web-01
//	    name: Web server 1
//	    host: 10.0.0.11
//	    port: 22
//	    username: root
//	    password: hunter2
type seedFile struct {
	Targets []seedTarget `yaml:"targets"`
}

type seedTarget struct {
	ClientID string `yaml:"client_id"`
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoadSeedFile upserts targets from a YAML file into the database,
// encrypting passwords before they are stored. Missing ports default to 22.
func LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read targets file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse targets file: %w", err)
	}

	for _, st := range seed.Targets {
		if st.ClientID == "" || st.Host == "" || st.Username == "" {
			return fmt.Errorf("target %q: client_id, host and username are required", st.ClientID)
		}
		if st.Port == 0 {
			st.Port = 22
		}
		if st.Port < 1 || st.Port > 65535 {
			return fmt.Errorf("target %q: invalid port %d", st.ClientID, st.Port)
		}

		encrypted, err := crypto.Encrypt(st.Password)
		if err != nil {
			return fmt.Errorf("target %q: %w", st.ClientID, err)
		}

		t := &database.Target{
			ClientID: st.ClientID,
			Name:     st.Name,
			Host:     st.Host,
			Port:     st.Port,
			Username: st.Username,
			Password: encrypted,
		}
		if err := database.UpsertTarget(t); err != nil {
			return fmt.Errorf("target %q: %w", st.ClientID, err)
		}
	}

	log.Printf("[target] seeded %d target(s) from %s", len(seed.Targets), path)
	return nil
}
