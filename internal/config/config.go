package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ffl-tools/trophyline/internal/platform/logging"
	"github.com/go-playground/validator/v10"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the CLI.
type Config struct {
	AppEnv         string `validate:"required,oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string

	SeasonYear int              `validate:"required,gt=2000"`
	Divisions  map[string]int64 `validate:"required,min=1,dive,gt=0"`

	ESPNBaseURL             string
	ESPNSWID                string
	ESPNS2                  string
	ESPNTimeout             time.Duration `validate:"gt=0"`
	ESPNCircuitEnabled      bool
	ESPNCircuitFailureCount int
	ESPNCircuitOpenTimeout  time.Duration
	ESPNCircuitHalfOpenMax  int

	CacheTTL     time.Duration
	OutputFormat string `validate:"required,oneof=text markdown html json csv"`
	OutputPath   string

	UptraceEnabled   bool
	UptraceDSN       string
	PyroscopeEnabled bool
	PyroscopeAddr    string
	PyroscopeApp     string

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	seasonYear, err := getEnvAsInt("SEASON_YEAR", time.Now().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_YEAR: %w", err)
	}

	divisions, err := parseDivisionMap(getEnv("DIVISIONS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse DIVISIONS: %w", err)
	}

	espnTimeout, err := getEnvAsDuration("ESPN_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_TIMEOUT: %w", err)
	}
	circuitEnabled, err := strconv.ParseBool(getEnv("ESPN_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailures, err := getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := getEnvAsDuration("ESPN_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	circuitHalfOpenMax, err := getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 60*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "trophyline"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		SeasonYear: seasonYear,
		Divisions:  divisions,

		ESPNBaseURL:             strings.TrimSpace(getEnv("ESPN_BASE_URL", "")),
		ESPNSWID:                strings.TrimSpace(getEnv("ESPN_SWID", "")),
		ESPNS2:                  strings.TrimSpace(getEnv("ESPN_S2", "")),
		ESPNTimeout:             espnTimeout,
		ESPNCircuitEnabled:      circuitEnabled,
		ESPNCircuitFailureCount: circuitFailures,
		ESPNCircuitOpenTimeout:  circuitOpenTimeout,
		ESPNCircuitHalfOpenMax:  circuitHalfOpenMax,

		CacheTTL:     cacheTTL,
		OutputFormat: strings.ToLower(strings.TrimSpace(getEnv("OUTPUT_FORMAT", "text"))),
		OutputPath:   strings.TrimSpace(getEnv("OUTPUT_PATH", "")),

		UptraceEnabled:   uptraceEnabled,
		UptraceDSN:       uptraceDSN,
		PyroscopeEnabled: pyroscopeEnabled,
		PyroscopeAddr:    strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeApp:     getEnv("PYROSCOPE_APP_NAME", "trophyline"),

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// parseDivisionMap parses "name:leagueID" pairs, e.g.
// "East:12345,West:67890".
func parseDivisionMap(raw string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected name:league_id", item)
		}

		key := strings.TrimSpace(segments[0])
		if key == "" {
			return nil, fmt.Errorf("empty division name in item %q", item)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(segments[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid league id in item %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("league id must be > 0 in item %q", item)
		}

		out[key] = value
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
