package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"talentgap-backend/internal/gap"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	DataDir         string
	Weights         gap.WeightConfig
	Thresholds      gap.BandThresholds
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		Env:             env,
		DataDir:         getEnv("DATA_DIR", ""),
		Weights:         loadWeights(),
		Thresholds:      loadThresholds(),
	}
}

// loadWeights reads component weight overrides. Validation happens at
// calculator construction, not here.
func loadWeights() gap.WeightConfig {
	defaults := gap.DefaultWeights()
	return gap.WeightConfig{
		Skills:           getEnvFloat("GAP_WEIGHT_SKILLS", defaults.Skills),
		Responsibilities: getEnvFloat("GAP_WEIGHT_RESPONSIBILITIES", defaults.Responsibilities),
		Ambitions:        getEnvFloat("GAP_WEIGHT_AMBITIONS", defaults.Ambitions),
		Dedication:       getEnvFloat("GAP_WEIGHT_DEDICATION", defaults.Dedication),
	}
}

func loadThresholds() gap.BandThresholds {
	defaults := gap.DefaultThresholds()
	return gap.BandThresholds{
		Ready:            getEnvFloat("GAP_BAND_READY", defaults.Ready),
		ReadyWithSupport: getEnvFloat("GAP_BAND_READY_WITH_SUPPORT", defaults.ReadyWithSupport),
		Near:             getEnvFloat("GAP_BAND_NEAR", defaults.Near),
		Far:              getEnvFloat("GAP_BAND_FAR", defaults.Far),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
