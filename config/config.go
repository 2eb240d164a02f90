package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
// Rate lists are decimal fractions; RiskThreshold is percentage points of
// ACP margin.
type Config struct {
	PGURL                    string
	Port                     string
	DefaultPlanYear          int
	RiskThreshold            float64
	AnnualAdditionsLimit     float64
	BaseSeed                 int64
	DefaultAdoptionRates     []float64
	DefaultContributionRates []float64
}

// Load reads configuration from environment variables, after loading a local
// .env file if one exists. Malformed values are configuration errors and
// fail here, before any computation starts.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	planYear, err := intEnv("PLAN_YEAR", 2025)
	if err != nil {
		return nil, err
	}

	riskThreshold, err := floatEnv("ACP_RISK_THRESHOLD_PCT", 1.0)
	if err != nil {
		return nil, err
	}
	if riskThreshold < 0 {
		return nil, fmt.Errorf("ACP_RISK_THRESHOLD_PCT must be non-negative, got %g", riskThreshold)
	}

	additionsLimit, err := floatEnv("ANNUAL_ADDITIONS_LIMIT", 70000)
	if err != nil {
		return nil, err
	}
	if additionsLimit <= 0 {
		return nil, fmt.Errorf("ANNUAL_ADDITIONS_LIMIT must be positive, got %g", additionsLimit)
	}

	baseSeed, err := intEnv("BASE_SEED", 42)
	if err != nil {
		return nil, err
	}
	if baseSeed < 0 {
		return nil, fmt.Errorf("BASE_SEED must be non-negative, got %d", baseSeed)
	}

	adoptionRates, err := rateListEnv("DEFAULT_ADOPTION_RATES", []float64{0, 0.25, 0.5, 0.75, 1.0})
	if err != nil {
		return nil, err
	}
	contributionRates, err := rateListEnv("DEFAULT_CONTRIBUTION_RATES", []float64{0.02, 0.04, 0.06, 0.08, 0.10})
	if err != nil {
		return nil, err
	}

	return &Config{
		PGURL:                    pgURL,
		Port:                     port,
		DefaultPlanYear:          planYear,
		RiskThreshold:            riskThreshold,
		AnnualAdditionsLimit:     additionsLimit,
		BaseSeed:                 int64(baseSeed),
		DefaultAdoptionRates:     adoptionRates,
		DefaultContributionRates: contributionRates,
	}, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func floatEnv(name string, def float64) (float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// rateListEnv parses a comma-separated list of decimal fractions in [0, 1].
func rateListEnv(name string, def []float64) ([]float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	var rates []float64
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%s entry %q is not a number", name, part)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%s entry %g is outside [0, 1]", name, v)
		}
		rates = append(rates, v)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%s must contain at least one rate", name)
	}
	return rates, nil
}
