package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
server:
  address: ":4000"
database:
  driver: "mysql"
  url: "user:pass@tcp(localhost:3306)/vintifi?parseTime=true"
redis:
  addr: "localhost:6379"
wizard:
  poll_interval: 2s
  studio_base_url: "https://studio.test"
`

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg := LoadConfig()

	if cfg.Server.Address != ":4000" {
		t.Fatalf("unexpected address %q", cfg.Server.Address)
	}
	if cfg.Wizard.PollInterval != 2*time.Second {
		t.Fatalf("expected the configured poll interval, got %v", cfg.Wizard.PollInterval)
	}
	if cfg.Wizard.AutoAdvanceDelay != defaultAutoAdvanceDelay {
		t.Fatalf("expected the default auto-advance delay, got %v", cfg.Wizard.AutoAdvanceDelay)
	}
	if cfg.Wizard.HealthScoreThreshold != defaultHealthScoreGoodEnough {
		t.Fatalf("expected the default health threshold, got %d", cfg.Wizard.HealthScoreThreshold)
	}
	if cfg.Wizard.StudioBaseURL != "https://studio.test" {
		t.Fatalf("unexpected studio url %q", cfg.Wizard.StudioBaseURL)
	}
}
