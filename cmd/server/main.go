package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/config"
	"github.com/mamadbah2/abattoir/internal/metrics"
	"github.com/mamadbah2/abattoir/internal/repository/mongodb"
	"github.com/mamadbah2/abattoir/internal/repository/sheets"
	"github.com/mamadbah2/abattoir/internal/repository/sqlite"
	"github.com/mamadbah2/abattoir/internal/repository/store"
	"github.com/mamadbah2/abattoir/internal/scheduler"
	"github.com/mamadbah2/abattoir/internal/server/handlers"
	"github.com/mamadbah2/abattoir/internal/server/router"
	"github.com/mamadbah2/abattoir/internal/service/analytics"
	"github.com/mamadbah2/abattoir/internal/service/operations"
	reportingsvc "github.com/mamadbah2/abattoir/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/abattoir/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/abattoir/pkg/clients/whatsapp"
	"github.com/mamadbah2/abattoir/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		baseLogger.Fatal("failed to register metrics", zap.Error(err))
	}

	backend, mongoRepo, err := openBackend(ctx, cfg)
	if err != nil {
		baseLogger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	reg := store.NewRegistry(backend)
	defer func() {
		if err := reg.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()
	baseLogger.Info("store opened", zap.String("driver", cfg.Store.Driver))

	opsSvc := operations.NewService(reg, m, baseLogger.Named("svc.operations"))
	engine := analytics.NewEngine(reg, m, baseLogger.Named("svc.analytics"))

	var archive mongodb.Repository
	if cfg.Reporting.ArchiveEnabled {
		if mongoRepo == nil {
			mongoRepo, err = mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
			if err != nil {
				baseLogger.Fatal("failed to init mongodb archive", zap.Error(err))
			}
			defer func() {
				if err := mongoRepo.Close(context.Background()); err != nil {
					baseLogger.Error("failed to close mongodb connection", zap.Error(err))
				}
			}()
		}
		archive = mongoRepo
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		gs, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = gs
	} else {
		baseLogger.Warn("google sheets not configured, report export disabled")
	}

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(whatsappclient.Options{
			BaseURL:       cfg.WhatsApp.BaseURL,
			APIVersion:    cfg.WhatsApp.APIVersion,
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		})
	} else {
		baseLogger.Warn("whatsapp credentials missing, notifications disabled")
	}
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(whatsClient, baseLogger.Named("svc.whatsapp"))

	reportingSvc := reportingsvc.NewService(opsSvc, engine, archive, sheetsRepo, baseLogger.Named("svc.reporting"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	httpHandler := router.New(router.Handlers{
		Operations: handlers.NewOperationsHandler(opsSvc, baseLogger.Named("handlers.operations")),
		Analytics:  handlers.NewAnalyticsHandler(engine, baseLogger.Named("handlers.analytics")),
		Messages:   handlers.NewMessageHandler(messagingSvc, baseLogger.Named("handlers.messages")),
	}, prometheus.DefaultGatherer, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openBackend builds the configured store backend. When the driver is
// mongodb the repository is returned as well so the report archive can share
// the connection; the registry owns closing it.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, *mongodb.MongoDBRepository, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		b, err := sqlite.Open(cfg.Store.SQLitePath)
		return b, nil, err
	case config.DriverMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	default:
		return store.NewMemoryBackend(), nil, nil
	}
}
