// Package commands implements the portfolio command line: the API server and
// the administrative tasks run against its database.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"comic_portfolio/config"
	"comic_portfolio/database"
	"comic_portfolio/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Comic portfolio content API",
	Long: `portfolio serves the comic portfolio API and runs its administrative tasks.

Configuration is read from the environment (PORT, DB_*, JWT_*, MEDIA_*, LOG_*).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command needs: the configuration and a logger built from it.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Config{
		Writer: os.Stderr,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	return &env{cfg: cfg, log: log}, nil
}

// connect opens the database; the caller closes it with database.Close.
func (e *env) connect(ctx context.Context) (*gorm.DB, error) {
	return database.Connect(ctx, e.cfg.DB, e.log)
}
