package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			want: &Config{
				Server: ServerConfig{
					Host:         "0.0.0.0",
					Port:         "8080",
					ReadTimeout:  30 * time.Second,
					WriteTimeout: 30 * time.Second,
					IdleTimeout:  120 * time.Second,
				},
				Gateway: GatewayConfig{
					ReadBufferSize:  8192,
					WriteBufferSize: 16384,
					MaxPayloadBytes: 1 << 20,
					AllowedOrigins:  []string{},
					MaxSessions:     100,
				},
				Decoder: DecoderConfig{
					RelaxedOrderChecks: true,
					GlyphSupportLevel:  "encode",
				},
				Logging: LoggingConfig{
					Level:  "info",
					Format: "text",
				},
			},
			wantErr: false,
		},
		{
			name: "custom environment variables",
			envVars: map[string]string{
				"SERVER_HOST":          "127.0.0.1",
				"SERVER_PORT":          "9090",
				"WS_READ_BUFFER_SIZE":  "4096",
				"MAX_SESSIONS":         "5",
				"RELAXED_ORDER_CHECKS": "false",
				"GLYPH_SUPPORT_LEVEL":  "partial",
				"ALLOWED_ORIGINS":      "https://viewer.example.com, https://ops.example.com",
				"LOG_LEVEL":            "debug",
			},
			want: &Config{
				Server: ServerConfig{
					Host:         "127.0.0.1",
					Port:         "9090",
					ReadTimeout:  30 * time.Second,
					WriteTimeout: 30 * time.Second,
					IdleTimeout:  120 * time.Second,
				},
				Gateway: GatewayConfig{
					ReadBufferSize:  4096,
					WriteBufferSize: 16384,
					MaxPayloadBytes: 1 << 20,
					AllowedOrigins:  []string{"https://viewer.example.com", "https://ops.example.com"},
					MaxSessions:     5,
				},
				Decoder: DecoderConfig{
					RelaxedOrderChecks: false,
					GlyphSupportLevel:  "partial",
				},
				Logging: LoggingConfig{
					Level:  "debug",
					Format: "text",
				},
			},
			wantErr: false,
		},
		{
			name: "invalid glyph support level",
			envVars: map[string]string{
				"GLYPH_SUPPORT_LEVEL": "maximal",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k := range tt.envVars {
				os.Unsetenv(k)
			}

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)

			for k := range tt.envVars {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	os.Setenv("SERVER_PORT", "9999")
	os.Setenv("RELAXED_ORDER_CHECKS", "false")
	defer os.Unsetenv("SERVER_PORT")
	defer os.Unsetenv("RELAXED_ORDER_CHECKS")

	cfg, err := LoadWithOverrides(LoadOptions{
		Host:               "192.168.1.100",
		Port:               "443",
		LogLevel:           "warn",
		GlyphSupportLevel:  "full",
		RelaxedOrderChecks: true,
	})

	require.NoError(t, err)
	// Command-line values win over the environment.
	assert.Equal(t, "192.168.1.100", cfg.Server.Host)
	assert.Equal(t, "443", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "full", cfg.Decoder.GlyphSupportLevel)
	assert.True(t, cfg.Decoder.RelaxedOrderChecks)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "0.0.0.0", Port: "8080"},
			Gateway: GatewayConfig{
				ReadBufferSize:  8192,
				WriteBufferSize: 16384,
				MaxPayloadBytes: 1 << 20,
				MaxSessions:     100,
			},
			Decoder: DecoderConfig{RelaxedOrderChecks: true, GlyphSupportLevel: "encode"},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "valid configuration",
			mutate: func(*Config) {},
		},
		{
			name:   "missing server port",
			mutate: func(c *Config) { c.Server.Port = "" },
			errMsg: "server port cannot be empty",
		},
		{
			name:   "invalid port range",
			mutate: func(c *Config) { c.Server.Port = "99999" },
			errMsg: "invalid server port",
		},
		{
			name:   "zero read buffer",
			mutate: func(c *Config) { c.Gateway.ReadBufferSize = 0 },
			errMsg: "websocket buffer sizes must be positive",
		},
		{
			name:   "zero max payload",
			mutate: func(c *Config) { c.Gateway.MaxPayloadBytes = 0 },
			errMsg: "max payload bytes must be positive",
		},
		{
			name:   "zero max sessions",
			mutate: func(c *Config) { c.Gateway.MaxSessions = 0 },
			errMsg: "max sessions must be positive",
		},
		{
			name:   "invalid glyph support level",
			mutate: func(c *Config) { c.Decoder.GlyphSupportLevel = "ultra" },
			errMsg: "invalid glyph support level",
		},
		{
			name:   "invalid log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			errMsg: "invalid log level",
		},
		{
			name:   "invalid log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			errMsg: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetGlobalConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Same(t, cfg, GetGlobalConfig())
}

func TestGetBoolWithDefault(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Unsetenv(key)
	assert.True(t, getBoolWithDefault(key, true))

	os.Setenv(key, "false")
	assert.False(t, getBoolWithDefault(key, true))

	// Unparseable values keep the default.
	os.Setenv(key, "invalid")
	assert.True(t, getBoolWithDefault(key, true))

	os.Unsetenv(key)
}

func TestGetOverrideOrEnv(t *testing.T) {
	key := "TEST_OVERRIDE_VAR"
	os.Setenv(key, "env_value")
	defer os.Unsetenv(key)

	assert.Equal(t, "override_value", getOverrideOrEnv("override_value", key, "default_value"))
	assert.Equal(t, "env_value", getOverrideOrEnv("", key, "default_value"))

	os.Unsetenv(key)
	assert.Equal(t, "default_value", getOverrideOrEnv("", key, "default_value"))
}

func TestSplitString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "normal comma separation",
			input:    "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "with whitespace",
			input:    "a, b , c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "empty elements",
			input:    "a,,c",
			expected: []string{"a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitString(tt.input, ","))
		})
	}
}
