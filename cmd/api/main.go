package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/arc-self/soc-triage/internal/config"
	"github.com/arc-self/soc-triage/internal/handler"
	"github.com/arc-self/soc-triage/internal/notifier"
	db "github.com/arc-self/soc-triage/internal/repository/db"
	"github.com/arc-self/soc-triage/internal/service"
	"github.com/arc-self/soc-triage/internal/telemetry"
)

const serviceName = "soc-triage"

func main() {
	// --- Structured Logger ---
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// --- Configuration (env, optionally overridden from Vault) ---
	cfg := config.Load()
	if err := config.ApplyVaultOverrides(&cfg); err != nil {
		logger.Fatal("Vault secret loading failed", zap.Error(err))
	}

	// --- OpenTelemetry (opt-in) ---
	if cfg.OTelEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", cfg.OTelEndpoint))
		}
		mp, err := telemetry.InitMeterProvider(context.Background(), serviceName, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	// --- Database ---
	conn, driver, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.EnsureSchema(context.Background(), conn, driver); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}
	logger.Info("connected to database", zap.String("driver", driver))

	// --- NATS JetStream (opt-in) ---
	var notif notifier.Notifier = notifier.Nop{}
	if cfg.NATSURL != "" {
		natsClient, err := notifier.NewClient(cfg.NATSURL, logger)
		if err != nil {
			logger.Fatal("NATS initialization failed", zap.Error(err))
		}
		defer natsClient.Close()

		if err := natsClient.ProvisionStream(); err != nil {
			logger.Fatal("NATS stream provisioning failed", zap.Error(err))
		}
		notif = notifier.NewJetStreamNotifier(natsClient, logger)
	}

	// --- Repository & Service Layers ---
	queries := db.New(conn)
	ingestSvc := service.NewIngestService(conn, queries, cfg, notif, logger)
	querySvc := service.NewQueryService(queries, cfg.BucketSeconds)
	approvalSvc := service.NewApprovalService(queries)

	// --- HTTP Server ---
	e := echo.New()
	e.HideBanner = true
	if cfg.OTelEndpoint != "" {
		// OTel tracing middleware (must be first)
		e.Use(otelecho.Middleware(serviceName))
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))
	e.Use(handler.NullToEmptyArray())

	handler.New(ingestSvc, querySvc, approvalSvc, logger).Register(e)

	go func() {
		logger.Info("soc-triage HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Echo shutdown error", zap.Error(err))
	}

	logger.Info("soc-triage shut down cleanly")
}
