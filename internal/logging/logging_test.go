package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/termgate/termgate/internal/config"
)

func TestReadTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	config.Cfg.LogPath = path

	got, err := ReadTail(2)
	if err != nil {
		t.Fatalf("ReadTail failed: %v", err)
	}
	if got != "three\nfour" {
		t.Errorf("ReadTail(2) = %q, want %q", got, "three\nfour")
	}

	got, err = ReadTail(100)
	if err != nil {
		t.Fatalf("ReadTail failed: %v", err)
	}
	if got != "one\ntwo\nthree\nfour" {
		t.Errorf("ReadTail(100) = %q, want all lines", got)
	}
}

func TestReadTailMissingFile(t *testing.T) {
	config.Cfg.LogPath = filepath.Join(t.TempDir(), "nope.log")
	got, err := ReadTail(10)
	if err != nil || got != "" {
		t.Errorf("ReadTail on missing file = %q, %v; want empty, nil", got, err)
	}
}

func TestReadTailNoPathConfigured(t *testing.T) {
	config.Cfg.LogPath = ""
	got, err := ReadTail(10)
	if err != nil || got != "" {
		t.Errorf("ReadTail with no path = %q, %v; want empty, nil", got, err)
	}
}
