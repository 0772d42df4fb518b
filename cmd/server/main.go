package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/zero-touch-cx/server/internal/api"
	"github.com/zero-touch-cx/server/internal/audit"
	"github.com/zero-touch-cx/server/internal/core"
	"github.com/zero-touch-cx/server/internal/cx/flows"
	"github.com/zero-touch-cx/server/internal/cx/router"
	"github.com/zero-touch-cx/server/internal/search/docsearch"
	"github.com/zero-touch-cx/server/internal/store/artifacts"
	"github.com/zero-touch-cx/server/internal/store/mockstore"
	"github.com/zero-touch-cx/server/internal/store/pgstore"
	logx "github.com/zero-touch-cx/server/pkg/logger"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// ServerConfig defines the server's environment configuration.
type ServerConfig struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Backends; all optional with in-process fallbacks
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_AUDIT_TOPIC" default:"cx.audit"`

	DocsDir      string `envconfig:"DOCS_DIR" default:"docs"`
	ArtifactsDir string `envconfig:"ARTIFACTS_DIR" default:"artifacts"`
	DataSource   string `envconfig:"DATA_SOURCE_NAME" default:"postgres"`
}

func main() {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	shutdownTracing := tracing.Init()
	defer shutdownTracing(ctx)

	// Data backends: Postgres when configured, seeded fixtures otherwise.
	var (
		billingSource flows.BillingHistoryFetcher
		wireSource    flows.WireEventFetcher
		source        = cfg.DataSource
	)
	if cfg.DatabaseURL != "" {
		pg, err := pgstore.NewFromConnString(ctx, cfg.DatabaseURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer pg.Close()
		billingSource, wireSource = pg, pg
	} else {
		store := mockstore.NewSeeded()
		billingSource, wireSource = store, store
		source = "mock"
	}

	// Audit trail: Kafka when configured, structured log otherwise.
	var sink audit.Sink = audit.LogSink{}
	if cfg.KafkaBrokers != "" {
		ks := audit.NewKafkaSink(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer ks.Close()
		sink = ks
	}

	artifactStore, err := artifacts.NewLocalStore(cfg.ArtifactsDir)
	if err != nil {
		logx.Fatal().Err(err).Msg("artifact store init failed")
	}
	searcher, err := docsearch.NewFromDir(cfg.DocsDir)
	if err != nil {
		logx.Fatal().Err(err).Msg("policy document load failed")
	}

	rt := router.New(router.Config{
		Billing:   flows.NewBillingHandler(billingSource),
		Reporting: flows.NewReportingHandler(wireSource, searcher, artifactStore, source),
		Upgrade:   flows.NewUpgradeHandler(searcher, mockstore.Executor{}),
		Audit:     sink,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewHandler(rt).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logx.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}
