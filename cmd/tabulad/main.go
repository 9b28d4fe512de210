package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
	"github.com/joseph-ayodele/tabula-extract/internal/pipeline"
	"github.com/joseph-ayodele/tabula-extract/internal/repository"
	"github.com/joseph-ayodele/tabula-extract/internal/server"
	"github.com/joseph-ayodele/tabula-extract/internal/tabula"
)

func main() {
	cfg := common.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor, err := tabula.NewExtractor(ctx, tabula.Config{
		Interpreter:       cfg.Tabula.Interpreter,
		Encoding:          cfg.Tabula.Encoding,
		ArtifactPath:      cfg.Tabula.ArtifactPath,
		ArtifactDir:       cfg.Tabula.ArtifactDir,
		Timeout:           cfg.Tabula.Timeout,
		ReplicateFirstRow: cfg.Tabula.ReplicateFirstRow,
	}, logger)
	if err != nil {
		logger.Error("tabula init failed", "error", err)
		os.Exit(1)
	}
	logger.Info("tabula ready",
		"runtime", extractor.RuntimeVersion().Version,
		"artifact", extractor.ArtifactPath(),
	)

	var jobs repository.ExtractJobRepository
	if cfg.Database.DSN != "" {
		db, err := repository.Open(ctx, repository.Config{
			DSN:         cfg.Database.DSN,
			MaxConns:    int32(cfg.Database.MaxConns),
			DialTimeout: cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("open db", "error", err)
			os.Exit(1)
		}
		defer db.Close(logger)

		if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
			logger.Error("db health failed", "error", err)
			os.Exit(1)
		}
		jobs = repository.NewExtractJobRepository(db, logger)
		if err := jobs.Migrate(ctx); err != nil {
			logger.Error("migrate", "error", err)
			os.Exit(1)
		}
	}

	svc, err := server.NewTableService(pipeline.NewPipeline(jobs, extractor, logger), logger)
	if err != nil {
		logger.Error("build service", "error", err)
		os.Exit(1)
	}

	// gRPC server
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(server.ServiceName, healthpb.HealthCheckResponse_SERVING)
	// Reflection for grpcurl
	reflection.Register(grpcServer)
	server.RegisterTableExtractorServer(grpcServer, svc)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	logger.Info("gRPC serving", "addr", lis.Addr().String())

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	hs.Shutdown()
	grpcServer.GracefulStop()
	logger.Info("stopped")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
