package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SLOT_STEP_MINUTES", "")
	t.Setenv("MIN_CANCEL_NOTICE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.SlotStep != 30*time.Minute {
		t.Fatalf("SlotStep = %v, want 30m", cfg.SlotStep)
	}
	if cfg.MinCancelNotice != 2*time.Hour {
		t.Fatalf("MinCancelNotice = %v, want 2h", cfg.MinCancelNotice)
	}
	if cfg.ShopTimezone != "America/Sao_Paulo" {
		t.Fatalf("ShopTimezone = %q", cfg.ShopTimezone)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SLOT_STEP_MINUTES", "15")
	t.Setenv("MIN_CANCEL_NOTICE", "90m")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.SlotStep != 15*time.Minute {
		t.Fatalf("SlotStep = %v, want 15m", cfg.SlotStep)
	}
	if cfg.MinCancelNotice != 90*time.Minute {
		t.Fatalf("MinCancelNotice = %v, want 90m", cfg.MinCancelNotice)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("Addr = %q", cfg.Addr())
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "zero step", key: "SLOT_STEP_MINUTES", val: "0"},
		{name: "bad notice", key: "MIN_CANCEL_NOTICE", val: "two hours"},
		{name: "negative notice", key: "MIN_CANCEL_NOTICE", val: "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://barbearia.com.br/, ,http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []string{"https://barbearia.com.br", "http://localhost:5173"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
		}
	}
}
