// Package config holds the client's settings: defaults, optional JSON
// file, then environment overrides, validated before anything starts.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the top-level settings tree.
type Config struct {
	Server       ServerConfig       `json:"server"`
	Session      SessionConfig      `json:"session"`
	Typing       TypingConfig       `json:"typing"`
	Notification NotificationConfig `json:"notification"`
	Leave        LeaveConfig        `json:"leave"`
	WebSocket    WebSocketConfig    `json:"websocket"`
	Log          LogConfig          `json:"log"`
}

// ServerConfig locates the chat server.
type ServerConfig struct {
	URL string `json:"url" env:"CHATTERBOX_SERVER_URL"`
}

// SessionConfig carries the local identity, supplied once at startup.
type SessionConfig struct {
	Username string `json:"username" env:"CHATTERBOX_USERNAME"`
	Room     string `json:"room" env:"CHATTERBOX_ROOM"`
}

// TypingConfig tunes the local typing debounce.
type TypingConfig struct {
	IdleTimeout time.Duration `json:"idle_timeout" env:"CHATTERBOX_TYPING_IDLE"`
}

// NotificationConfig tunes ephemeral notification expiry.
type NotificationConfig struct {
	TTL time.Duration `json:"ttl" env:"CHATTERBOX_NOTIFICATION_TTL"`
}

// LeaveConfig tunes the confirmed-leave departure.
type LeaveConfig struct {
	DepartDelay time.Duration `json:"depart_delay" env:"CHATTERBOX_LEAVE_DELAY"`
}

// WebSocketConfig tunes the transport link.
type WebSocketConfig struct {
	HandshakeTimeout  time.Duration `json:"handshake_timeout" env:"CHATTERBOX_WS_HANDSHAKE_TIMEOUT"`
	WriteTimeout      time.Duration `json:"write_timeout" env:"CHATTERBOX_WS_WRITE_TIMEOUT"`
	PingInterval      time.Duration `json:"ping_interval" env:"CHATTERBOX_WS_PING_INTERVAL"`
	SendBuffer        int           `json:"send_buffer" env:"CHATTERBOX_WS_SEND_BUFFER"`
	EventBuffer       int           `json:"event_buffer" env:"CHATTERBOX_WS_EVENT_BUFFER"`
	ReconnectAttempts int           `json:"reconnect_attempts" env:"CHATTERBOX_WS_RECONNECT_ATTEMPTS"`
	ReconnectDelay    time.Duration `json:"reconnect_delay" env:"CHATTERBOX_WS_RECONNECT_DELAY"`
}

// LogConfig controls structured logging output. The TUI owns the
// terminal, so logs default to a file.
type LogConfig struct {
	Level string `json:"level" env:"CHATTERBOX_LOG_LEVEL"`
	File  string `json:"file" env:"CHATTERBOX_LOG_FILE"`
}

// DefaultConfig returns production defaults. The session timings match
// the original client: 1s typing debounce, 12s notification expiry, 1s
// leave delay.
func DefaultConfig() *Config {
	return &Config{
		Server:       ServerConfig{URL: "ws://localhost:5000/ws"},
		Typing:       TypingConfig{IdleTimeout: time.Second},
		Notification: NotificationConfig{TTL: 12 * time.Second},
		Leave:        LeaveConfig{DepartDelay: time.Second},
		WebSocket: WebSocketConfig{
			HandshakeTimeout:  10 * time.Second,
			WriteTimeout:      5 * time.Second,
			PingInterval:      30 * time.Second,
			SendBuffer:        64,
			EventBuffer:       256,
			ReconnectAttempts: 5,
			ReconnectDelay:    2 * time.Second,
		},
		Log: LogConfig{Level: "info", File: "chatterbox.log"},
	}
}

// LoadFromFile overlays settings from a JSON file onto the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}
	if c.Session.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if c.Session.Room == "" {
		return fmt.Errorf("room cannot be empty")
	}
	if c.Typing.IdleTimeout <= 0 {
		return fmt.Errorf("typing idle timeout must be positive")
	}
	if c.Notification.TTL <= 0 {
		return fmt.Errorf("notification TTL must be positive")
	}
	if c.Leave.DepartDelay < 0 {
		return fmt.Errorf("leave depart delay cannot be negative")
	}
	if c.WebSocket.HandshakeTimeout <= 0 {
		return fmt.Errorf("websocket handshake timeout must be positive")
	}
	if c.WebSocket.WriteTimeout <= 0 {
		return fmt.Errorf("websocket write timeout must be positive")
	}
	if c.WebSocket.SendBuffer <= 0 || c.WebSocket.EventBuffer <= 0 {
		return fmt.Errorf("websocket buffers must be positive")
	}
	if c.WebSocket.ReconnectAttempts < 0 {
		return fmt.Errorf("websocket reconnect attempts cannot be negative")
	}
	return nil
}
