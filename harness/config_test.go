package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roomcheck.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	path := writeConfig(t, `
target:
  page_url: http://localhost:3000
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Target.APIURL != "http://localhost:3000/api/rooming-lists" {
		t.Errorf("api_url default = %q", cfg.Target.APIURL)
	}
	if cfg.Waits.Element != 10*time.Second {
		t.Errorf("element wait default = %v", cfg.Waits.Element)
	}
	if cfg.Waits.Navigate != 30*time.Second {
		t.Errorf("navigate wait default = %v", cfg.Waits.Navigate)
	}
	if cfg.Report.Path != "roomcheck.db" {
		t.Errorf("report path default = %q", cfg.Report.Path)
	}
}

func TestLoadFileFull(t *testing.T) {
	path := writeConfig(t, `
target:
  page_url: https://staging.example.com
  api_url: https://staging.example.com/api/rooming-lists
browser:
  headful: true
  stealth: true
  resource_blocking: [images, fonts]
waits:
  element: 5s
  navigate: 20s
report:
  path: /tmp/run.db
roles:
  search-input: "#search"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Browser.Headful || !cfg.Browser.Stealth {
		t.Error("browser flags not parsed")
	}
	if len(cfg.Browser.ResourceBlocking) != 2 {
		t.Errorf("resource_blocking = %v", cfg.Browser.ResourceBlocking)
	}
	if cfg.Waits.Element != 5*time.Second {
		t.Errorf("element wait = %v", cfg.Waits.Element)
	}
	overrides := cfg.RoleOverrides()
	if overrides["search-input"] != "#search" {
		t.Errorf("role override = %v", overrides)
	}
}

func TestLoadFileMissingTarget(t *testing.T) {
	path := writeConfig(t, `report: {path: x.db}`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for missing target.page_url")
	}
}

func TestLoadFileUnknownRole(t *testing.T) {
	path := writeConfig(t, `
target:
  page_url: http://localhost:3000
roles:
  not-a-role: "#x"
`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unknown role override")
	}
}
