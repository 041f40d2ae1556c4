package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"comic_portfolio/auth"
	"comic_portfolio/database"
	"comic_portfolio/handlers"
	"comic_portfolio/services"
	"comic_portfolio/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending migrations before serving")
}

func runServe(ctx context.Context) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens, err := auth.NewTokenService(e.cfg.JWT.Secret, e.cfg.JWT.TTL)
	if err != nil {
		return err
	}

	if serveMigrate {
		if err := database.Migrate(e.cfg.DB); err != nil {
			return err
		}
		e.log.Info("migrations applied")
	}

	db, err := e.connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if !e.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	users := services.NewUserService(db)
	api := &handlers.API{
		Users:        users,
		Characters:   services.NewCharacterService(db),
		Artists:      services.NewArtistService(db),
		Arts:         services.NewArtService(db),
		Tags:         services.NewTagService(db),
		Media:        storage.NewMediaStore(e.cfg.Media.Root, e.cfg.Media.MaxUploadBytes),
		Tokens:       tokens,
		TokenLimiter: auth.NewRateLimiter(e.cfg.TokenRate, e.cfg.TokenBurst),
		Logger:       e.log,
		ServeMedia:   e.cfg.Debug,
	}

	srv := &http.Server{
		Addr:              ":" + e.cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("server starting", slog.String("addr", srv.Addr), slog.Bool("debug", e.cfg.Debug))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	e.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
