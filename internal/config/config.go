package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pitchside/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	DBURL                          string
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	SwaggerEnabled                 bool
	CacheFixturesTTL               time.Duration
	CacheMediaTTL                  time.Duration
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	FootstatsBaseURL               string
	FootstatsAPIKey                string
	FootstatsTimeout               time.Duration
	FootstatsMaxRetries            int
	FootstatsCircuitEnabled        bool
	FootstatsCircuitFailureCount   int
	FootstatsCircuitOpenTimeout    time.Duration
	FootstatsCircuitHalfOpenMaxReq int
	CrestserveBaseURL              string
	CrestserveAPIKey               string
	CrestserveTimeout              time.Duration
	InternalJobToken               string
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofAddr == "" {
		pprofAddr = ":6060"
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	footstatsTimeout, err := time.ParseDuration(getEnv("FOOTSTATS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTSTATS_TIMEOUT: %w", err)
	}
	if footstatsTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTSTATS_TIMEOUT must be > 0")
	}
	footstatsMaxRetries, err := getEnvAsInt("FOOTSTATS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTSTATS_MAX_RETRIES: %w", err)
	}
	if footstatsMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOOTSTATS_MAX_RETRIES must be >= 0")
	}
	footstatsCircuitEnabled, err := strconv.ParseBool(getEnv("FOOTSTATS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTSTATS_CIRCUIT_ENABLED: %w", err)
	}
	footstatsCircuitFailureCount, err := getEnvAsInt("FOOTSTATS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTSTATS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if footstatsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FOOTSTATS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	footstatsCircuitOpenTimeout, err := time.ParseDuration(getEnv("FOOTSTATS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTSTATS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if footstatsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTSTATS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	footstatsCircuitHalfOpenMaxReq, err := getEnvAsInt("FOOTSTATS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTSTATS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if footstatsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FOOTSTATS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	crestserveTimeout, err := time.ParseDuration(getEnv("CRESTSERVE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRESTSERVE_TIMEOUT: %w", err)
	}
	if crestserveTimeout <= 0 {
		return Config{}, fmt.Errorf("CRESTSERVE_TIMEOUT must be > 0")
	}

	cacheFixturesTTL, err := time.ParseDuration(getEnv("CACHE_FIXTURES_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_FIXTURES_TTL: %w", err)
	}
	if cacheFixturesTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_FIXTURES_TTL must be > 0")
	}
	cacheMediaTTL, err := time.ParseDuration(getEnv("CACHE_MEDIA_TTL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_MEDIA_TTL: %w", err)
	}
	if cacheMediaTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_MEDIA_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "pitchside-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		SwaggerEnabled:                 swaggerEnabled,
		CacheFixturesTTL:               cacheFixturesTTL,
		CacheMediaTTL:                  cacheMediaTTL,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		FootstatsBaseURL:               strings.TrimSpace(getEnv("FOOTSTATS_BASE_URL", "")),
		FootstatsAPIKey:                strings.TrimSpace(getEnv("FOOTSTATS_API_KEY", "")),
		FootstatsTimeout:               footstatsTimeout,
		FootstatsMaxRetries:            footstatsMaxRetries,
		FootstatsCircuitEnabled:        footstatsCircuitEnabled,
		FootstatsCircuitFailureCount:   footstatsCircuitFailureCount,
		FootstatsCircuitOpenTimeout:    footstatsCircuitOpenTimeout,
		FootstatsCircuitHalfOpenMaxReq: footstatsCircuitHalfOpenMaxReq,
		CrestserveBaseURL:              strings.TrimSpace(getEnv("CRESTSERVE_BASE_URL", "")),
		CrestserveAPIKey:               strings.TrimSpace(getEnv("CRESTSERVE_API_KEY", "")),
		CrestserveTimeout:              crestserveTimeout,
		InternalJobToken:               strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.FootstatsAPIKey == "" {
		return Config{}, fmt.Errorf("FOOTSTATS_API_KEY is required")
	}

	return cfg, nil
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

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
