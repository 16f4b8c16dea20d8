// Package app assembles the client: config, logger, transport, engine,
// and the terminal UI, constructed in dependency order.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chatterbox/internal/clock"
	"chatterbox/internal/config"
	"chatterbox/internal/engine"
	"chatterbox/internal/logging"
	"chatterbox/internal/transport/ws"
	"chatterbox/internal/tui"
	"chatterbox/pkg/types"
)

// Application owns one chat session from dial to departure.
type Application struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewApplication validates configuration and prepares the logger. The
// transport is dialed in Run so startup failures surface there with a
// live context.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return &Application{cfg: cfg, logger: logger}, nil
}

// Run dials the server, starts the engine loop, and blocks on the UI
// until the user quits or departs the room.
func (a *Application) Run(ctx context.Context) error {
	defer a.logger.Sync()

	identity := types.SessionIdentity{
		Username: a.cfg.Session.Username,
		Room:     a.cfg.Session.Room,
	}

	transport, err := ws.Dial(ctx, ws.Config{
		URL:               a.cfg.Server.URL,
		HandshakeTimeout:  a.cfg.WebSocket.HandshakeTimeout,
		WriteTimeout:      a.cfg.WebSocket.WriteTimeout,
		PingInterval:      a.cfg.WebSocket.PingInterval,
		SendBuffer:        a.cfg.WebSocket.SendBuffer,
		EventBuffer:       a.cfg.WebSocket.EventBuffer,
		ReconnectAttempts: a.cfg.WebSocket.ReconnectAttempts,
		ReconnectDelay:    a.cfg.WebSocket.ReconnectDelay,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", a.cfg.Server.URL, err)
	}

	renderer := tui.NewRenderer()
	eng, err := engine.New(identity, transport, renderer, clock.System{}, renderer, engine.Options{
		TypingIdle:      a.cfg.Typing.IdleTimeout,
		NotificationTTL: a.cfg.Notification.TTL,
		DepartDelay:     a.cfg.Leave.DepartDelay,
	}, a.logger)
	if err != nil {
		transport.Close()
		return fmt.Errorf("initialize engine: %w", err)
	}

	program := tea.NewProgram(
		tui.NewModel(eng, identity.Room),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	renderer.Attach(program)

	engCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		// The engine outliving its transport is fine: the UI stays up
		// showing the terminal connection state until the user quits.
		if err := eng.Run(engCtx); err != nil && err != context.Canceled {
			a.logger.Error("engine stopped", zap.Error(err))
		}
	}()

	_, err = program.Run()
	cancel()
	eng.Close()
	if err != nil && ctx.Err() != nil {
		return nil // interrupted by signal; not a UI failure
	}
	return err
}
