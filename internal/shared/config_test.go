package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("parses a TOML file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[api]
base_url = "https://duet.example.com/api"
timeout_seconds = 15
rate_limit = 2.5

[session]
token_path = "/tmp/duet-token"

[database]
path = "/tmp/duet-cache.db"
max_open_conns = 4
max_idle_conns = 2
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.API.BaseURL != "https://duet.example.com/api" {
				t.Errorf("unexpected base URL %q", config.API.BaseURL)
			}
			if config.API.RateLimit != 2.5 {
				t.Errorf("unexpected rate limit %v", config.API.RateLimit)
			}
			if config.Session.TokenPath != "/tmp/duet-token" {
				t.Errorf("unexpected token path %q", config.Session.TokenPath)
			}
			if config.Database.MaxOpenConns != 4 {
				t.Errorf("unexpected max open conns %d", config.Database.MaxOpenConns)
			}
		})

		t.Run("missing file returns an error", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
				t.Fatal("expected error for missing file")
			}
		})

		t.Run("invalid TOML returns an error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error for invalid TOML")
			}
		})

		t.Run("environment overrides file values", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[api]
base_url = "https://duet.example.com/api"
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			t.Setenv("DUET_API_URL", "https://staging.example.com/api")

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.API.BaseURL != "https://staging.example.com/api" {
				t.Errorf("expected env override, got %q", config.API.BaseURL)
			}
		})
	})

	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL == "" {
			t.Error("expected a default base URL")
		}
		if config.Session.TokenPath == "" {
			t.Error("expected a default token path")
		}
		if config.Database.Path == "" {
			t.Error("expected a default database path")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("writes the embedded template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read created config: %v", err)
			}
			if !strings.Contains(string(data), "base_url") {
				t.Error("expected template content in created config")
			}

			if _, err := LoadConfig(path); err != nil {
				t.Errorf("expected created config to parse, got %v", err)
			}
		})

		t.Run("refuses to overwrite an existing file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			if err := CreateConfigFile(path); err == nil {
				t.Fatal("expected error for existing file")
			}
		})
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	cases := map[string]string{
		"~/duet/token":   filepath.Join(home, "duet", "token"),
		"~":              home,
		"/absolute/path": "/absolute/path",
		"relative/path":  "relative/path",
	}

	for input, want := range cases {
		if got := ExpandHome(input); got != want {
			t.Errorf("ExpandHome(%q): expected %q, got %q", input, want, got)
		}
	}
}
