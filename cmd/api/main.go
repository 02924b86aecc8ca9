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
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrJamesThe3rd/sitebook/internal/backend"
	"github.com/MrJamesThe3rd/sitebook/internal/clock"
	"github.com/MrJamesThe3rd/sitebook/internal/config"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
	sitebookHttp "github.com/MrJamesThe3rd/sitebook/internal/http"
	contractHandler "github.com/MrJamesThe3rd/sitebook/internal/http/contract"
	reportHandler "github.com/MrJamesThe3rd/sitebook/internal/http/report"
	"github.com/MrJamesThe3rd/sitebook/internal/metrics"
	"github.com/MrJamesThe3rd/sitebook/internal/report"
	"github.com/MrJamesThe3rd/sitebook/internal/snapshot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		m        = metrics.New(reg)
		source   = newSource(cfg)
		svc      = dashboard.NewService(source, cfg.Source, m)
		exporter = report.NewExporter(m)
		now      = clock.In(loc)
	)

	var (
		contractH = contractHandler.NewHandler(svc, now)
		reportH   = reportHandler.NewHandler(svc, exporter, now)
	)

	router := sitebookHttp.New(contractH, reportH, sitebookHttp.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		Gatherer:       reg,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", port, "source", cfg.Source)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newSource(cfg *config.Config) dashboard.Source {
	if cfg.Source == config.SourceSnapshot {
		slog.Info("serving snapshot", "dir", cfg.Snapshot.Dir)
		return snapshot.New(cfg.Snapshot.Dir)
	}

	return backend.NewClient(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout)
}
