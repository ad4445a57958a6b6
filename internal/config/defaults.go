package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHTTPAddr        = ":3000"
	DefaultWriteTimeout    = 5 * time.Second
	DefaultPongWait        = 60 * time.Second
	DefaultPingPeriod      = 50 * time.Second
	DefaultReadLimit       = 4096
	DefaultSendBuffer      = 64
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMatchRounds     = 5
	DefaultRoundDuration   = 5
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.PongWait == 0 {
		c.Server.PongWait = DefaultPongWait
	}
	if c.Server.PingPeriod == 0 {
		c.Server.PingPeriod = DefaultPingPeriod
	}
	if c.Server.ReadLimit == 0 {
		c.Server.ReadLimit = DefaultReadLimit
	}
	if c.Server.SendBuffer == 0 {
		c.Server.SendBuffer = DefaultSendBuffer
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Match defaults
	if c.Match.Rounds == 0 {
		c.Match.Rounds = DefaultMatchRounds
	}
	if c.Match.RoundDuration == 0 {
		c.Match.RoundDuration = DefaultRoundDuration
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
