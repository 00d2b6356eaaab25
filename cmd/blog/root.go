package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"blog/config"
	"blog/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Multi-author blog server",
	Long: `blog serves a multi-author blogging site: public posts, author pages,
subscriptions with e-mail notification, and a personal feed.

Example usage:
  blog serve                         # Run the HTTP server and notification jobs
  blog migrate up                    # Apply pending schema migrations
  blog migrate status                # Show applied and pending migrations
  blog user create --username alice  # Provision an account`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadConfig reads configuration from the environment and sets up the
// process logger. enableOTel routes logs to the OTel log provider too.
func loadConfig(enableOTel bool) error {
	c, err := config.NewConfig()
	if err != nil {
		return err
	}
	cfg = c
	log = logger.Init(cfg.Logging.Level, cfg.Logging.Format, enableOTel)
	return nil
}
