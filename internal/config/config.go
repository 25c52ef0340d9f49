package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Settings struct {
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":8000"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"/app/data/termgate.db"`
	LogPath      string `envconfig:"LOG_PATH" default:"/app/data/termgate.log"`

	// TargetsFile is an optional YAML file of targets upserted at startup.
	TargetsFile string `envconfig:"TARGETS_FILE" default:""`

	// SSH establishment timeouts. The steady-state read loop has no timeout.
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	ChannelTimeout time.Duration `envconfig:"CHANNEL_TIMEOUT" default:"1s"`

	// DiagnoseDeadline bounds the whole post-failure network probe.
	DiagnoseDeadline time.Duration `envconfig:"DIAGNOSE_DEADLINE" default:"15s"`
}

var Cfg Settings

func Load() {
	if err := envconfig.Process("TERMGATE", &Cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
}
