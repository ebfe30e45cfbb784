package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/on-the-run/internal/game"
)

func TestResolveHostKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys", "nested", "host_key")

	got, err := resolveHostKey(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("resolveHostKey = %q, expected %q", got, path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory was not created: %v", err)
	}
}

func TestResolveHostKeyDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".ontherun", "host_key"); got != want {
		t.Errorf("resolveHostKey = %q, expected %q", got, want)
	}
}

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "ontherun.db")
	cfg.GameID = ""
	cfg.TickRate = 0

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.store == nil {
		t.Error("expected the database to open")
	}
	if srv.config.GameID != game.IDDefault || srv.config.TickRate != 60 {
		t.Errorf("defaults not applied: %+v", srv.config)
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q", srv.Addr())
	}

	_ = srv.Shutdown()
	if srv.store != nil {
		t.Error("Shutdown should close the database")
	}
}
