package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
default_dir = "personal"
editor = "vim"

[dirs]
personal = "/home/me/notes"
work = "/home/me/work-notes"

[ui]
accent = "#5EEAD4"
code_theme = "dracula"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultDir != "personal" || cfg.Editor != "vim" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.UI.Accent != "#5EEAD4" || cfg.UI.CodeTheme != "dracula" {
		t.Errorf("ui = %+v", cfg.UI)
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"named dir", "work", "/home/me/work-notes", false},
		{"default dir", "", "/home/me/notes", false},
		{"unknown dir", "nope", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.GetDirPath(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFromMalformed(t *testing.T) {
	path := writeConfig(t, "default_dir = [broken\n")
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetDirPathNoDefault(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetDirPath(""); err == nil {
		t.Error("expected error with no default configured")
	}
}

func TestGetEditor(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	cfg := &Config{}
	if got := cfg.GetEditor(); got != "nano" {
		t.Errorf("editor = %q, want nano", got)
	}
	cfg.Editor = "helix"
	if got := cfg.GetEditor(); got != "helix" {
		t.Errorf("editor = %q, want helix", got)
	}
}
