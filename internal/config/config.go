package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// globalConfig stores the configuration loaded with command-line overrides
// so other packages see the same values the server was started with.
var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	Gateway GatewayConfig `json:"gateway"`
	Decoder DecoderConfig `json:"decoder"`
	Logging LoggingConfig `json:"logging"`
}

// LoadOptions holds command-line override options
type LoadOptions struct {
	Host               string
	Port               string
	LogLevel           string
	GlyphSupportLevel  string
	RelaxedOrderChecks bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `json:"host" env:"SERVER_HOST" default:"0.0.0.0"`
	Port         string        `json:"port" env:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `json:"readTimeout" env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `json:"writeTimeout" env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `json:"idleTimeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
}

// GatewayConfig holds WebSocket session configuration
type GatewayConfig struct {
	ReadBufferSize  int      `json:"readBufferSize" env:"WS_READ_BUFFER_SIZE" default:"8192"`
	WriteBufferSize int      `json:"writeBufferSize" env:"WS_WRITE_BUFFER_SIZE" default:"16384"`
	MaxPayloadBytes int      `json:"maxPayloadBytes" env:"MAX_PAYLOAD_BYTES" default:"1048576"`
	AllowedOrigins  []string `json:"allowedOrigins" env:"ALLOWED_ORIGINS" default:""`
	MaxSessions     int      `json:"maxSessions" env:"MAX_SESSIONS" default:"100"`
}

// DecoderConfig holds the order decoder defaults used when a session does
// not supply its own capability blob.
type DecoderConfig struct {
	RelaxedOrderChecks bool   `json:"relaxedOrderChecks" env:"RELAXED_ORDER_CHECKS" default:"true"`
	GlyphSupportLevel  string `json:"glyphSupportLevel" env:"GLYPH_SUPPORT_LEVEL" default:"encode"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"text"`
}

// GlyphSupportLevels lists the accepted GLYPH_SUPPORT_LEVEL names.
var GlyphSupportLevels = []string{"none", "partial", "full", "encode"}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration with command-line overrides
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	config := &Config{}

	// Server config
	config.Server.Host = getOverrideOrEnv(opts.Host, "SERVER_HOST", "0.0.0.0")
	config.Server.Port = getOverrideOrEnv(opts.Port, "SERVER_PORT", "8080")
	config.Server.ReadTimeout = getDurationWithDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	config.Server.WriteTimeout = getDurationWithDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	config.Server.IdleTimeout = getDurationWithDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Gateway config
	config.Gateway.ReadBufferSize = getIntWithDefault("WS_READ_BUFFER_SIZE", 8192)
	config.Gateway.WriteBufferSize = getIntWithDefault("WS_WRITE_BUFFER_SIZE", 16384)
	config.Gateway.MaxPayloadBytes = getIntWithDefault("MAX_PAYLOAD_BYTES", 1<<20)
	config.Gateway.AllowedOrigins = getStringSliceWithDefault("ALLOWED_ORIGINS", []string{})
	config.Gateway.MaxSessions = getIntWithDefault("MAX_SESSIONS", 100)

	// Decoder config
	// Relaxed checks are on by default: captures from real servers routinely
	// carry orders the client never announced.
	config.Decoder.RelaxedOrderChecks = getBoolWithDefault("RELAXED_ORDER_CHECKS", true)
	if opts.RelaxedOrderChecks {
		config.Decoder.RelaxedOrderChecks = true
	}
	config.Decoder.GlyphSupportLevel = getOverrideOrEnv(opts.GlyphSupportLevel, "GLYPH_SUPPORT_LEVEL", "encode")

	// Logging config
	config.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", "info")
	config.Logging.Format = getEnvWithDefault("LOG_FORMAT", "text")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Store the configuration globally so other packages can access it
	configMutex.Lock()
	globalConfig = config
	configMutex.Unlock()

	return config, nil
}

// GetGlobalConfig returns the configuration stored by the last successful
// Load or LoadWithOverrides call, or nil before the first load.
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}

	if c.Gateway.ReadBufferSize <= 0 || c.Gateway.WriteBufferSize <= 0 {
		return fmt.Errorf("websocket buffer sizes must be positive")
	}

	if c.Gateway.MaxPayloadBytes <= 0 {
		return fmt.Errorf("max payload bytes must be positive")
	}

	if c.Gateway.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive")
	}

	validGlyphLevel := false
	for _, level := range GlyphSupportLevels {
		if c.Decoder.GlyphSupportLevel == level {
			validGlyphLevel = true
			break
		}
	}
	if !validGlyphLevel {
		return fmt.Errorf("invalid glyph support level: %s", c.Decoder.GlyphSupportLevel)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceWithDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return splitString(value, ",")
	}
	return defaultValue
}

// getOverrideOrEnv returns command-line override value, env value, or default
func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}

func splitString(s, sep string) []string {
	if s == "" {
		return []string{}
	}

	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
