// Command chatterbox is a terminal chat client: it joins one room on a
// chat server and hosts the realtime session engine behind a TUI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chatterbox/internal/app"
	"chatterbox/internal/config"
)

var (
	flagConfig   string
	flagServer   string
	flagUsername string
	flagRoom     string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "chatterbox",
	Short: "Terminal client for realtime chat rooms",
	Long: `Chatterbox joins a chat room over WebSocket and renders the live
session in the terminal: messages, presence, typing indicators, and
join/leave notices.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		application, err := app.NewApplication(cfg)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return application.Run(ctx)
	},
}

// loadConfig resolves settings in precedence order: defaults, config
// file, environment, then command-line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flagConfig != "" {
		loaded, err := config.LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if flagUsername != "" {
		cfg.Session.Username = flagUsername
	}
	if flagRoom != "" {
		cfg.Session.Room = flagRoom
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	return cfg, nil
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to JSON config file")
	rootCmd.Flags().StringVarP(&flagServer, "server", "s", "", "chat server WebSocket URL")
	rootCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "username to join as")
	rootCmd.Flags().StringVarP(&flagRoom, "room", "r", "", "room to join")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "log file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
