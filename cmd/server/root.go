package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iliyamo/rental-admin/internal/config"
	"github.com/iliyamo/rental-admin/internal/database"
	"github.com/iliyamo/rental-admin/internal/handler"
	"github.com/iliyamo/rental-admin/internal/metrics"
	"github.com/iliyamo/rental-admin/internal/middleware"
	"github.com/iliyamo/rental-admin/internal/queue"
	"github.com/iliyamo/rental-admin/internal/repository"
	"github.com/iliyamo/rental-admin/internal/router"
	"github.com/iliyamo/rental-admin/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "rental-admin",
	Short: "Admin API and films dashboard for the rental store database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the user directory API and the films dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Append user status events from RabbitMQ to the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumer(cmd.Context())
	},
}

var auditDir string

func init() {
	rootCmd.AddCommand(serveCmd, consumeCmd)
	consumeCmd.Flags().StringVar(&auditDir, "audit-dir", "", "directory for status.log (default $AUDIT_LOG_DIR or logs)")
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func runServer(ctx context.Context) error {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	metrics.Register(prometheus.DefaultRegisterer)

	var events service.StatusPublisher
	if cfg.Events.Enabled {
		events = service.NewAMQPPublisher(cfg.Events.URL)
	}
	directory := service.NewDirectoryService(repository.NewUserRepo(db), events)
	analytics := service.NewAnalyticsService(repository.NewAnalyticsRepo(db))

	tpl, err := handler.NewTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = tpl
	e.Use(echomw.Recover())
	e.Use(requestLogger())
	e.Use(middleware.Metrics())

	limiter := middleware.NewTokenBucket(cfg.RateLimit, config.NewRedisClient())
	router.RegisterRoutes(e, db)
	router.RegisterUsers(e, handler.NewUserHandler(directory), limiter)
	router.RegisterDashboard(e, handler.NewDashboardHandler(analytics), limiter)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr, "env", cfg.Env, "events", cfg.Events.Enabled)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	directory.Wait()
	return err
}

func runConsumer(ctx context.Context) error {
	config.LoadDotEnv()
	setupLogger(config.LogLevel())

	ev := config.LoadEventsConfig()
	dir := ev.AuditLogDir
	if auditDir != "" {
		dir = auditDir
	}
	slog.Info("audit consumer starting", "queue", queue.StatusQueueName, "dir", dir)
	err := queue.StartAuditConsumer(ctx, ev.URL, dir)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// requestLogger writes one structured line per request.
func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
