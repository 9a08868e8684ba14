package config

import (
	"testing"
	"time"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("REMOTE_BASE_URL", "http://localhost:3000/")
	t.Setenv("REMOTE_REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg := LoadEnv()

	if cfg.Remote.BaseURL != "http://localhost:3000" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.RecallBaseURL != cfg.Remote.BaseURL {
		t.Errorf("expected recall url to default to base url, got %q", cfg.Remote.RecallBaseURL)
	}
	if cfg.Remote.Timeout() != 10*time.Second {
		t.Errorf("expected fallback timeout 10s, got %s", cfg.Remote.Timeout())
	}
	if !cfg.Sync.RefreshAfterDelete {
		t.Error("expected refresh after delete to default to true")
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("RECALL_BASE_URL", "http://recalls.local")
	t.Setenv("REFRESH_AFTER_DELETE", "false")
	t.Setenv("CONSO_USER_ID", "user-42")

	cfg := LoadEnv()

	if cfg.Remote.RecallBaseURL != "http://recalls.local" {
		t.Errorf("expected recall override, got %q", cfg.Remote.RecallBaseURL)
	}
	if cfg.Sync.RefreshAfterDelete {
		t.Error("expected refresh after delete disabled")
	}
	if cfg.Server.UserID != "user-42" {
		t.Errorf("expected user id user-42, got %q", cfg.Server.UserID)
	}
}
