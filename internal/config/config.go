package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the root configuration for the rps-arena server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Match  MatchConfig  `yaml:"match"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP and WebSocket transport settings.
type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr" validate:"required"`
	AllowedOrigins  []string      `yaml:"allowed_origins" validate:"dive,url"` // empty = allow any origin
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	PongWait        time.Duration `yaml:"pong_wait" validate:"gt=0"`
	PingPeriod      time.Duration `yaml:"ping_period" validate:"gt=0"`
	ReadLimit       int64         `yaml:"read_limit" validate:"gt=0"`
	SendBuffer      int           `yaml:"send_buffer" validate:"gt=0"` // queued frames per connection before it is dropped
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// MatchConfig holds the rules of a match.
type MatchConfig struct {
	Rounds        int `yaml:"rounds" validate:"min=1"`
	RoundDuration int `yaml:"round_duration" validate:"min=1"` // seconds, sent to clients as a display hint
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// applyEnv lets a few deployment knobs be overridden without a config file.
func (c *Config) applyEnv() {
	c.Server.HTTPAddr = getenv("RPS_HTTP_ADDR", c.Server.HTTPAddr)
	c.Log.Level = getenv("RPS_LOG_LEVEL", c.Log.Level)
	c.Match.Rounds = getenvInt("RPS_MATCH_ROUNDS", c.Match.Rounds)
}
