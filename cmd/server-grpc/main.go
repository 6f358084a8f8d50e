package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"roombooking/internal/app"
	"roombooking/internal/config"
	grpchandler "roombooking/internal/grpc/handler"
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
	shutdownTracer, err := obs.InitTracer(ctx, "roombooking-grpc", cfg.OTLPEndpoint, cfg.Env, logger)
	if err != nil {
		logger.Fatal("tracer", zap.Error(err))
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup", zap.Error(err))
	}

	grpcServer := grpchandler.NewServer(grpchandler.NewHandler(a.Booking, a.Search), logger)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("grpc serve", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")

	grpcServer.GracefulStop()
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Close(sctx); err != nil {
		logger.Warn("close backends", zap.Error(err))
	}
	if err := shutdownTracer(sctx); err != nil {
		logger.Warn("tracer shutdown", zap.Error(err))
	}
}
