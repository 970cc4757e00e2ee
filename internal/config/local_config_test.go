package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLocalConfig(t *testing.T) {
	docketDir := t.TempDir()
	content := "author: dana\narchive-days: 14\n"
	if err := os.WriteFile(filepath.Join(docketDir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadLocalConfig(docketDir)
	if cfg.Author != "dana" {
		t.Errorf("Author = %q, want dana", cfg.Author)
	}
	if cfg.ArchiveDays != 14 {
		t.Errorf("ArchiveDays = %d, want 14", cfg.ArchiveDays)
	}
}

func TestLoadLocalConfigMissing(t *testing.T) {
	cfg := LoadLocalConfig(t.TempDir())
	if cfg == nil {
		t.Fatal("LoadLocalConfig returned nil for missing file")
	}
	if cfg.Author != "" || cfg.ArchiveDays != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadLocalConfigWithEnv(t *testing.T) {
	docketDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(docketDir, "config.yaml"), []byte("author: file-author\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DOCKET_AUTHOR", "env-author")
	cfg := LoadLocalConfigWithEnv(docketDir)
	if cfg.Author != "env-author" {
		t.Errorf("Author = %q, want env override", cfg.Author)
	}
}
