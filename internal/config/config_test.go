package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Load()

	if Cfg.ListenAddr != ":8000" {
		t.Errorf("ListenAddr = %q, want %q", Cfg.ListenAddr, ":8000")
	}
	if Cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %s, want 10s", Cfg.ConnectTimeout)
	}
	if Cfg.ChannelTimeout != 1*time.Second {
		t.Errorf("ChannelTimeout = %s, want 1s", Cfg.ChannelTimeout)
	}
	if Cfg.DiagnoseDeadline != 15*time.Second {
		t.Errorf("DiagnoseDeadline = %s, want 15s", Cfg.DiagnoseDeadline)
	}
	if Cfg.TargetsFile != "" {
		t.Errorf("TargetsFile = %q, want empty", Cfg.TargetsFile)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TERMGATE_LISTEN_ADDR", ":9999")
	t.Setenv("TERMGATE_CONNECT_TIMEOUT", "3s")
	Load()

	if Cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want %q", Cfg.ListenAddr, ":9999")
	}
	if Cfg.ConnectTimeout != 3*time.Second {
		t.Errorf("ConnectTimeout = %s, want 3s", Cfg.ConnectTimeout)
	}
}
