package crypto

import (
	"path/filepath"
	"testing"

	"github.com/termgate/termgate/internal/config"
	"github.com/termgate/termgate/internal/database"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	config.Cfg.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	if err := database.Init(); err != nil {
		t.Fatalf("database init: %v", err)
	}
	t.Cleanup(func() { database.Close() })
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	setupTestDB(t)

	ciphertext, err := Encrypt("hunter2")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if ciphertext == "hunter2" {
		t.Error("ciphertext should differ from plaintext")
	}

	plaintext, err := Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if plaintext != "hunter2" {
		t.Errorf("roundtrip returned %q, want %q", plaintext, "hunter2")
	}
}

func TestKeyPersistsAcrossCalls(t *testing.T) {
	setupTestDB(t)

	first, err := Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// A second Encrypt must reuse the stored key, so the first token still
	// decrypts afterwards.
	if _, err := Encrypt("another"); err != nil {
		t.Fatalf("second Encrypt failed: %v", err)
	}
	got, err := Decrypt(first)
	if err != nil || got != "secret" {
		t.Errorf("Decrypt after key reuse = %q, %v; want %q", got, err, "secret")
	}

	key, err := database.GetSetting("fernet_key")
	if err != nil || key == "" {
		t.Errorf("fernet key not persisted: %q, %v", key, err)
	}
}

func TestDecryptEmpty(t *testing.T) {
	setupTestDB(t)

	got, err := Decrypt("")
	if err != nil || got != "" {
		t.Errorf("Decrypt(\"\") = %q, %v; want empty", got, err)
	}
}

func TestDecryptGarbage(t *testing.T) {
	setupTestDB(t)

	if _, err := Decrypt("not-a-fernet-token"); err == nil {
		t.Error("Decrypt should reject an invalid token")
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "****"},
		{"abcd", "****"},
		{"abcdefgh", "****efgh"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
