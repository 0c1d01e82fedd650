package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	// Unset rates fall back to the stock progressive schedule.
	schedule, err := cfg.RateSchedule()
	if err != nil {
		t.Fatalf("unexpected error building default rates: %v", err)
	}
	if schedule.Len() != 6 {
		t.Fatalf("expected 6 default rate tiers, got %d", schedule.Len())
	}
	if !schedule.RateFor(1).Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected first default rate 10, got %s", schedule.RateFor(1))
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("MINIMUM_WITHDRAWAL", "1000")
	t.Setenv("SETTLEMENT_TZ", "Asia/Kolkata")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	minimum, err := cfg.MinimumRequired()
	if err != nil {
		t.Fatalf("unexpected error parsing minimum: %v", err)
	}
	if !minimum.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected minimum 1000, got %s", minimum)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error parsing timezone: %v", err)
	}
	if loc.String() != "Asia/Kolkata" {
		t.Fatalf("expected Asia/Kolkata, got %s", loc)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestSlabTableDefaults(t *testing.T) {
	cfg := &config.Config{}

	table, err := cfg.SlabTable()
	if err != nil {
		t.Fatalf("unexpected error building default slabs: %v", err)
	}

	slab, err := table.Lookup(decimal.NewFromInt(50000))
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if slab.ID != "high" {
		t.Fatalf("expected high bracket, got %s", slab.ID)
	}
	if !slab.MaxCommission.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected cap 2000, got %s", slab.MaxCommission)
	}

	// Fractional values between the integer boundaries must be covered.
	slab, err = table.Lookup(decimal.RequireFromString("2000.50"))
	if err != nil {
		t.Fatalf("unexpected lookup error for fractional value: %v", err)
	}
	if slab.ID != "mid" {
		t.Fatalf("expected mid bracket for 2000.50, got %s", slab.ID)
	}
}

func TestSlabTableFromJSON(t *testing.T) {
	cfg := &config.Config{
		CommissionSlabs: `[
			{"id":"a","min_price":"0","max_price":"100","max_commission":"10"},
			{"id":"b","min_price":"100","max_commission":"50","open_ended":true}
		]`,
	}

	table, err := cfg.SlabTable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slab, err := table.Lookup(decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if slab.ID != "b" {
		t.Fatalf("expected slab b, got %s", slab.ID)
	}
}

func TestSlabTableInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: "{not json"},
		{name: "bad decimal", raw: `[{"id":"a","min_price":"zero","max_commission":"10","open_ended":true}]`},
		{name: "overlapping slabs", raw: `[
			{"id":"a","min_price":"0","max_price":"100","max_commission":"10"},
			{"id":"b","min_price":"50","max_commission":"50","open_ended":true}
		]`},
		{name: "gapped slabs", raw: `[
			{"id":"a","min_price":"0","max_price":"100","max_commission":"10"},
			{"id":"b","min_price":"101","max_commission":"50","open_ended":true}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{CommissionSlabs: tt.raw}
			if _, err := cfg.SlabTable(); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestRateSchedule(t *testing.T) {
	cfg := &config.Config{ProgressiveRates: "12, 8, 4"}

	schedule, err := cfg.RateSchedule()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !schedule.RateFor(2).Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected second rate 8, got %s", schedule.RateFor(2))
	}
	if !schedule.RateFor(10).Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected clamp to last rate 4, got %s", schedule.RateFor(10))
	}
}

func TestRateScheduleInvalid(t *testing.T) {
	for _, raw := range []string{"10,oops", "5,10"} {
		cfg := &config.Config{ProgressiveRates: raw}
		if _, err := cfg.RateSchedule(); err == nil {
			t.Fatalf("expected error for rates %q", raw)
		}
	}
}
