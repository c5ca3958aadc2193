package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"plagrelay/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Retry    RetryConfig
	Upload   UploadConfig
	Log      LogConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// UpstreamConfig holds the detection provider credentials and endpoint.
// It is read-only after Load.
type UpstreamConfig struct {
	APIToken    string `mapstructure:"api_token"`
	GroupToken  string `mapstructure:"group_token"`
	AuthorEmail string `mapstructure:"author_email"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	Language    string `mapstructure:"language"`
}

// SingleUserURL returns the root of the token-authenticated API.
func (u *UpstreamConfig) SingleUserURL() string {
	return strings.TrimRight(u.BaseURL, "/") + "/api/v1"
}

// OrganizationURL returns the root of the group-token API.
func (u *UpstreamConfig) OrganizationURL() string {
	return strings.TrimRight(u.BaseURL, "/") + "/api/org"
}

// HasGroupToken reports whether organization status/report queries are possible.
func (u *UpstreamConfig) HasGroupToken() bool {
	return u.GroupToken != ""
}

// HasOrganizationCredentials reports whether organization submissions are possible.
func (u *UpstreamConfig) HasOrganizationCredentials() bool {
	return u.GroupToken != "" && u.AuthorEmail != ""
}

// CheckCredentials returns domain.ErrConfiguration when the single-user token is missing.
func (u *UpstreamConfig) CheckCredentials() error {
	if u.APIToken == "" {
		return domain.ErrConfiguration
	}
	return nil
}

// Timeout returns the per-request upstream timeout.
func (u *UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(u.TimeoutSecs) * time.Second
}

// RetryConfig holds the status/report retry policy and the ceilings applied
// to client overrides. Budget caps the whole retried call so it finishes
// before the server's write timeout.
type RetryConfig struct {
	MaxAttempts        int           `mapstructure:"max_attempts"`
	Delay              time.Duration `mapstructure:"delay"`
	MaxAttemptsCeiling int           `mapstructure:"max_attempts_ceiling"`
	MaxDelay           time.Duration `mapstructure:"max_delay"`
	Budget             time.Duration `mapstructure:"budget"`
}

// UploadConfig holds file upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	if u.MaxFileSizeMB <= 0 {
		return domain.MaxFileSizeBytes
	}
	return u.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from an optional .env file and environment
// variables with the PLAGRELAY_ prefix. The provider's conventional
// PLAG_* variables are accepted as aliases.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PLAGRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("upstream.api_token", "")
	v.SetDefault("upstream.group_token", "")
	v.SetDefault("upstream.author_email", "")
	v.SetDefault("upstream.base_url", "https://plagiarismcheck.org")
	v.SetDefault("upstream.timeout_secs", 30)
	v.SetDefault("upstream.language", domain.DefaultLanguage)

	v.SetDefault("retry.max_attempts", 5)
	v.SetDefault("retry.delay", "2s")
	v.SetDefault("retry.max_attempts_ceiling", 10)
	v.SetDefault("retry.max_delay", "10s")
	v.SetDefault("retry.budget", "80s")

	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	envBindings := map[string][]string{
		"server.port":                {"PLAGRELAY_SERVER_PORT"},
		"server.read_timeout":        {"PLAGRELAY_SERVER_READ_TIMEOUT"},
		"server.write_timeout":       {"PLAGRELAY_SERVER_WRITE_TIMEOUT"},
		"server.environment":         {"PLAGRELAY_SERVER_ENVIRONMENT"},
		"upstream.api_token":         {"PLAGRELAY_UPSTREAM_API_TOKEN", "PLAG_API_KEY"},
		"upstream.group_token":       {"PLAGRELAY_UPSTREAM_GROUP_TOKEN", "PLAG_GROUP_TOKEN"},
		"upstream.author_email":      {"PLAGRELAY_UPSTREAM_AUTHOR_EMAIL", "PLAG_AUTHOR_EMAIL"},
		"upstream.base_url":          {"PLAGRELAY_UPSTREAM_BASE_URL", "PLAG_BASE_URL"},
		"upstream.timeout_secs":      {"PLAGRELAY_UPSTREAM_TIMEOUT_SECS"},
		"upstream.language":          {"PLAGRELAY_UPSTREAM_LANGUAGE"},
		"retry.max_attempts":         {"PLAGRELAY_RETRY_MAX_ATTEMPTS"},
		"retry.delay":                {"PLAGRELAY_RETRY_DELAY"},
		"retry.max_attempts_ceiling": {"PLAGRELAY_RETRY_MAX_ATTEMPTS_CEILING"},
		"retry.max_delay":            {"PLAGRELAY_RETRY_MAX_DELAY"},
		"retry.budget":               {"PLAGRELAY_RETRY_BUDGET"},
		"upload.max_file_size_mb":    {"PLAGRELAY_UPLOAD_MAX_FILE_SIZE_MB"},
		"log.level":                  {"PLAGRELAY_LOG_LEVEL"},
		"log.format":                 {"PLAGRELAY_LOG_FORMAT"},
		"cors.allowed_origins":       {"PLAGRELAY_CORS_ALLOWED_ORIGINS"},
		"metrics.enabled":            {"PLAGRELAY_METRICS_ENABLED"},
		"metrics.path":               {"PLAGRELAY_METRICS_PATH"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Hosting platforms set PORT; honour it unless the prefixed variable is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PLAGRELAY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	durations := make(map[string]time.Duration)
	for _, key := range []string{"server.read_timeout", "server.write_timeout", "retry.delay", "retry.max_delay", "retry.budget"} {
		d, err := parseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  durations["server.read_timeout"],
		WriteTimeout: durations["server.write_timeout"],
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upstream = UpstreamConfig{
		APIToken:    v.GetString("upstream.api_token"),
		GroupToken:  v.GetString("upstream.group_token"),
		AuthorEmail: v.GetString("upstream.author_email"),
		BaseURL:     v.GetString("upstream.base_url"),
		TimeoutSecs: v.GetInt("upstream.timeout_secs"),
		Language:    v.GetString("upstream.language"),
	}
	cfg.Retry = RetryConfig{
		MaxAttempts:        v.GetInt("retry.max_attempts"),
		Delay:              durations["retry.delay"],
		MaxAttemptsCeiling: v.GetInt("retry.max_attempts_ceiling"),
		MaxDelay:           durations["retry.max_delay"],
		Budget:             durations["retry.budget"],
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural settings. A missing API token is not treated
// as a load failure; see UpstreamConfig.CheckCredentials.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.Retry.Delay)
	}
	if c.Retry.MaxAttemptsCeiling < c.Retry.MaxAttempts {
		return fmt.Errorf("retry max attempts ceiling (%d) is below max attempts (%d)",
			c.Retry.MaxAttemptsCeiling, c.Retry.MaxAttempts)
	}
	if c.Retry.Budget < 0 {
		return fmt.Errorf("retry budget must not be negative, got %s", c.Retry.Budget)
	}
	if c.Server.WriteTimeout > 0 && (c.Retry.Budget <= 0 || c.Retry.Budget >= c.Server.WriteTimeout) {
		return fmt.Errorf("retry budget (%s) must be positive and below the server write timeout (%s)",
			c.Retry.Budget, c.Server.WriteTimeout)
	}
	if c.Upload.MaxFileSizeMB > domain.MaxFileSizeBytes/(1024*1024) {
		return fmt.Errorf("upload limit of %d MB exceeds the provider limit", c.Upload.MaxFileSizeMB)
	}
	return nil
}

// parseDuration accepts Go duration strings ("2s", "1500ms"). A bare number
// is taken as milliseconds, the unit of the API's delay parameter.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
