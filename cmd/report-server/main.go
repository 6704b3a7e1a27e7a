package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clearfield-health/cogreport/internal/render"
	"github.com/clearfield-health/cogreport/internal/server"
	"github.com/clearfield-health/cogreport/internal/store"
	"github.com/clearfield-health/cogreport/internal/telemetry"
)

func main() {
	var (
		addr     = flag.String("addr", envOr("COGREPORT_ADDR", ":3200"), "Listen address")
		dbPath   = flag.String("db", envOr("COGREPORT_DB", "cogreport.db"), "SQLite database path")
		seedPath = flag.String("seed", "", "Optional JSON seed file to import on startup")
	)
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "report-server").Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, "cogreport")
	if err != nil {
		logger.Fatal().Err(err).Msg("tracing setup failed")
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Fatal().Err(err).Str("db", *dbPath).Msg("open store failed")
	}
	defer st.Close()

	if *seedPath != "" {
		if err := st.ImportJSON(*seedPath); err != nil {
			logger.Fatal().Err(err).Str("seed", *seedPath).Msg("seed import failed")
		}
		logger.Info().Str("seed", *seedPath).Msg("seed imported")
	}

	handler := server.NewServer(st, render.NewChromiumRenderer(), logger)

	logger.Info().Str("addr", *addr).Str("db", *dbPath).Msg("report server listening")
	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
