package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roombooking/internal/app"
	"roombooking/internal/config"
	handlers "roombooking/internal/http/handler"
	"roombooking/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := obs.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	shutdownTracer, err := obs.InitTracer(ctx, "roombooking-http", cfg.OTLPEndpoint, cfg.Env, logger)
	if err != nil {
		logger.Fatal("tracer", zap.Error(err))
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup", zap.Error(err))
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handlers.NewRouter(handlers.RouterConfig{
		Booking:    a.Booking,
		Search:     a.Search,
		AdminToken: cfg.AdminToken,
		Log:        logger,
		Backends:   gin.H{"catalog": cfg.CatalogStore, "ledger": cfg.LedgerStore},
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http serve", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := a.Close(sctx); err != nil {
		logger.Warn("close backends", zap.Error(err))
	}
	if err := shutdownTracer(sctx); err != nil {
		logger.Warn("tracer shutdown", zap.Error(err))
	}
}
