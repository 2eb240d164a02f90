package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoad_RequiresPGURL(t *testing.T) {
	t.Setenv("PG_URL", "")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when PG_URL is unset")
	}
	if !strings.Contains(err.Error(), "PG_URL") {
		t.Errorf("expected error to name PG_URL, got: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PG_URL", "postgres://localhost:5432/acp")
	t.Setenv("PORT", "")
	t.Setenv("PLAN_YEAR", "")
	t.Setenv("ACP_RISK_THRESHOLD_PCT", "")
	t.Setenv("ANNUAL_ADDITIONS_LIMIT", "")
	t.Setenv("BASE_SEED", "")
	t.Setenv("DEFAULT_ADOPTION_RATES", "")
	t.Setenv("DEFAULT_CONTRIBUTION_RATES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DefaultPlanYear != 2025 {
		t.Errorf("expected default plan year 2025, got %d", cfg.DefaultPlanYear)
	}
	if cfg.RiskThreshold != 1.0 {
		t.Errorf("expected default risk threshold 1.0, got %g", cfg.RiskThreshold)
	}
	if cfg.AnnualAdditionsLimit != 70000 {
		t.Errorf("expected default additions limit 70000, got %g", cfg.AnnualAdditionsLimit)
	}
	if cfg.BaseSeed != 42 {
		t.Errorf("expected default base seed 42, got %d", cfg.BaseSeed)
	}
	if !reflect.DeepEqual(cfg.DefaultAdoptionRates, []float64{0, 0.25, 0.5, 0.75, 1.0}) {
		t.Errorf("unexpected default adoption rates: %v", cfg.DefaultAdoptionRates)
	}
	if !reflect.DeepEqual(cfg.DefaultContributionRates, []float64{0.02, 0.04, 0.06, 0.08, 0.10}) {
		t.Errorf("unexpected default contribution rates: %v", cfg.DefaultContributionRates)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PG_URL", "postgres://localhost:5432/acp")
	t.Setenv("PORT", "9090")
	t.Setenv("PLAN_YEAR", "2026")
	t.Setenv("ACP_RISK_THRESHOLD_PCT", "0.5")
	t.Setenv("ANNUAL_ADDITIONS_LIMIT", "71000")
	t.Setenv("BASE_SEED", "7")
	t.Setenv("DEFAULT_ADOPTION_RATES", "0.1, 0.9")
	t.Setenv("DEFAULT_CONTRIBUTION_RATES", "0.03,0.05")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultPlanYear != 2026 || cfg.BaseSeed != 7 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.RiskThreshold != 0.5 || cfg.AnnualAdditionsLimit != 71000 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.DefaultAdoptionRates, []float64{0.1, 0.9}) {
		t.Errorf("unexpected adoption rates: %v", cfg.DefaultAdoptionRates)
	}
	if !reflect.DeepEqual(cfg.DefaultContributionRates, []float64{0.03, 0.05}) {
		t.Errorf("unexpected contribution rates: %v", cfg.DefaultContributionRates)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric plan year", "PLAN_YEAR", "soon"},
		{"negative risk threshold", "ACP_RISK_THRESHOLD_PCT", "-1"},
		{"zero additions limit", "ANNUAL_ADDITIONS_LIMIT", "0"},
		{"negative base seed", "BASE_SEED", "-5"},
		{"rate above one", "DEFAULT_ADOPTION_RATES", "0.5,1.5"},
		{"non-numeric rate", "DEFAULT_CONTRIBUTION_RATES", "0.02,x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PG_URL", "postgres://localhost:5432/acp")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
