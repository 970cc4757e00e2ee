package configfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TasksDir != "tasks" {
		t.Errorf("TasksDir = %q, want tasks", cfg.TasksDir)
	}

	if cfg.RequirementsDir != "requirements" {
		t.Errorf("RequirementsDir = %q, want requirements", cfg.RequirementsDir)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	docketDir := filepath.Join(tmpDir, ".docket")
	if err := os.MkdirAll(docketDir, 0750); err != nil {
		t.Fatalf("failed to create .docket directory: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Author = "dana"

	if err := cfg.Save(docketDir); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(docketDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded == nil {
		t.Fatal("Load() returned nil config")
	}

	if loaded.TasksDir != cfg.TasksDir {
		t.Errorf("TasksDir = %q, want %q", loaded.TasksDir, cfg.TasksDir)
	}

	if loaded.Author != "dana" {
		t.Errorf("Author = %q, want dana", loaded.Author)
	}
}

func TestLoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() returned error for nonexistent config: %v", err)
	}

	if cfg != nil {
		t.Errorf("Load() = %v, want nil for nonexistent config", cfg)
	}
}

func TestLoadMigratesLegacyConfig(t *testing.T) {
	docketDir := t.TempDir()
	legacy := filepath.Join(docketDir, "config.json")
	if err := os.WriteFile(legacy, []byte(`{"tasks_dir":"work","requirements_dir":"reqs"}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(docketDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg == nil || cfg.TasksDir != "work" {
		t.Fatalf("legacy config not loaded: %+v", cfg)
	}

	if _, err := os.Stat(ConfigPath(docketDir)); err != nil {
		t.Error("legacy config not migrated to metadata.json")
	}
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Error("legacy config.json not removed")
	}
}

func TestTreePaths(t *testing.T) {
	root := "/home/user/project"

	tests := []struct {
		name      string
		cfg       *Config
		wantTasks string
		wantReqs  string
	}{
		{
			name:      "default",
			cfg:       DefaultConfig(),
			wantTasks: filepath.Join(root, "tasks"),
			wantReqs:  filepath.Join(root, "requirements"),
		},
		{
			name:      "custom",
			cfg:       &Config{TasksDir: "work/items", RequirementsDir: "specs"},
			wantTasks: filepath.Join(root, "work/items"),
			wantReqs:  filepath.Join(root, "specs"),
		},
		{
			name:      "empty falls back to default",
			cfg:       &Config{},
			wantTasks: filepath.Join(root, "tasks"),
			wantReqs:  filepath.Join(root, "requirements"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.TasksPath(root); got != tt.wantTasks {
				t.Errorf("TasksPath() = %q, want %q", got, tt.wantTasks)
			}
			if got := tt.cfg.RequirementsPath(root); got != tt.wantReqs {
				t.Errorf("RequirementsPath() = %q, want %q", got, tt.wantReqs)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	docketDir := "/home/user/project/.docket"
	got := ConfigPath(docketDir)
	want := filepath.Join(docketDir, "metadata.json")

	if got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}
