package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Rewrite Rewrite `mapstructure:"rewrite"`
	Store   Store   `mapstructure:"store"`
	Server  Server  `mapstructure:"server"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Rewrite holds the rewrite pipeline policy knobs. The validator thresholds
// are policy, not law: the defaults mirror long-standing editorial practice
// but operators can tune them per deployment.
type Rewrite struct {
	MinGrowthFactor    float64 `mapstructure:"min_growth_factor"`    // Expansion must strictly exceed this multiple
	MinSummaryChars    int     `mapstructure:"min_summary_chars"`    // Minimum trimmed summary length
	MinWordCount       int     `mapstructure:"min_word_count"`       // Minimum words in expanded content
	MaxCandidateLength int     `mapstructure:"max_candidate_length"` // Articles at or above this length are not rewrite candidates
	BatchSize          int     `mapstructure:"batch_size"`           // Default batch chunk size
	RateLimitDelay     string  `mapstructure:"rate_limit_delay"`     // Stagger between chunk members
	MaxRetries         int     `mapstructure:"max_retries"`          // Model invocation attempts
	RetryBaseDelay     string  `mapstructure:"retry_base_delay"`     // First backoff delay
}

// Store holds content store configuration
type Store struct {
	DataDir string `mapstructure:"data_dir"`
	Timeout string `mapstructure:"timeout"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds CORS configuration for the HTTP server
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var globalConfig *Config

// Load loads configuration from file, environment variables, and defaults
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".enrichly")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached global configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".enrichly")

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.timeout", "60s")
	viper.SetDefault("ai.gemini.max_tokens", 8192)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	// Rewrite policy defaults
	viper.SetDefault("rewrite.min_growth_factor", 1.2)
	viper.SetDefault("rewrite.min_summary_chars", 50)
	viper.SetDefault("rewrite.min_word_count", 50)
	viper.SetDefault("rewrite.max_candidate_length", 2000)
	viper.SetDefault("rewrite.batch_size", 5)
	viper.SetDefault("rewrite.rate_limit_delay", "1s")
	viper.SetDefault("rewrite.max_retries", 3)
	viper.SetDefault("rewrite.retry_base_delay", "1s")

	// Store defaults
	viper.SetDefault("store.data_dir", ".enrichly")
	viper.SetDefault("store.timeout", "5s")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.cors.enabled", false)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
}

// bindEnvKeys binds the first non-empty environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig validates configuration values
func validateConfig(config *Config) error {
	if config.Rewrite.MinGrowthFactor <= 1.0 {
		return fmt.Errorf("rewrite.min_growth_factor must be greater than 1.0, got %v", config.Rewrite.MinGrowthFactor)
	}
	if config.Rewrite.BatchSize < 1 {
		return fmt.Errorf("rewrite.batch_size must be at least 1, got %d", config.Rewrite.BatchSize)
	}
	if config.Rewrite.MaxRetries < 1 {
		return fmt.Errorf("rewrite.max_retries must be at least 1, got %d", config.Rewrite.MaxRetries)
	}

	durations := map[string]string{
		"ai.gemini.timeout":        config.AI.Gemini.Timeout,
		"rewrite.rate_limit_delay": config.Rewrite.RateLimitDelay,
		"rewrite.retry_base_delay": config.Rewrite.RetryBaseDelay,
		"store.timeout":            config.Store.Timeout,
	}
	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// Convenience accessors

func GetApp() App         { return Get().App }
func GetAI() AI           { return Get().AI }
func GetRewrite() Rewrite { return Get().Rewrite }
func GetStore() Store     { return Get().Store }
func GetServer() Server   { return Get().Server }

func GetGeminiAPIKey() string { return Get().AI.Gemini.APIKey }
func GetGeminiModel() string  { return Get().AI.Gemini.Model }
func IsDebugMode() bool       { return Get().App.Debug }

// GeminiTimeout returns the parsed model call timeout.
func GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(Get().AI.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// RateLimitDelay returns the parsed stagger delay between batch chunk members.
func RateLimitDelay() time.Duration {
	d, err := time.ParseDuration(Get().Rewrite.RateLimitDelay)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// RetryBaseDelay returns the parsed first backoff delay for model retries.
func RetryBaseDelay() time.Duration {
	d, err := time.ParseDuration(Get().Rewrite.RetryBaseDelay)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}
