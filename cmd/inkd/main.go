package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MarkoPoloResearchLab/ink/api/ink/v1"
	"github.com/MarkoPoloResearchLab/ink/internal/grpcserver"
	"github.com/MarkoPoloResearchLab/ink/internal/logging"
	"github.com/MarkoPoloResearchLab/ink/internal/metrics"
	"github.com/MarkoPoloResearchLab/ink/internal/oplog"
	"github.com/MarkoPoloResearchLab/ink/internal/storage"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const (
	flagEnvFile     = "env-file"
	flagDatabaseURL = "database-url"
	flagStore       = "store"
	flagListenAddr  = "listen-addr"
	flagMetricsAddr = "metrics-addr"
	flagPolicyFile  = "policy-file"
	flagAPITokens   = "api-tokens"
	flagLogLevel    = "log-level"
	flagLogFile     = "log-file"
	envPrefix       = "INK"

	defaultDatabaseURL    = "sqlite:///tmp/ink.db"
	defaultGRPCListenAddr = ":7000"
	metricsShutdownWait   = 5 * time.Second
)

type runtimeConfig struct {
	DatabaseURL string
	Store       string
	ListenAddr  string
	MetricsAddr string
	PolicyFile  string
	APITokens   []string
	Logging     logging.Options
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inkd: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &runtimeConfig{}
	cmd := &cobra.Command{
		Use:           "inkd",
		Short:         "INK economy gRPC server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().String(flagEnvFile, "", "optional .env file loaded before reading the environment")
	cmd.Flags().String(flagDatabaseURL, defaultDatabaseURL, "PostgreSQL or SQLite connection string")
	cmd.Flags().String(flagStore, storage.BackendGorm, "store backend: gorm, pgx or memory")
	cmd.Flags().String(flagListenAddr, defaultGRPCListenAddr, "gRPC listen address")
	cmd.Flags().String(flagMetricsAddr, "", "Prometheus listen address; empty disables the endpoint")
	cmd.Flags().String(flagPolicyFile, "", "YAML pricing policy; empty uses the built-in catalog")
	cmd.Flags().String(flagAPITokens, "", "comma-separated bearer tokens accepted from clients; empty disables auth")
	cmd.Flags().String(flagLogLevel, "info", "log level")
	cmd.Flags().String(flagLogFile, "", "optional rotated log file")

	return cmd
}

func loadConfig(cmd *cobra.Command, cfg *runtimeConfig) error {
	if envFile, _ := cmd.Flags().GetString(flagEnvFile); strings.TrimSpace(envFile) != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, flagName := range []string{flagDatabaseURL, flagStore, flagListenAddr, flagMetricsAddr, flagPolicyFile, flagAPITokens, flagLogLevel, flagLogFile} {
		if err := v.BindPFlag(flagName, cmd.Flags().Lookup(flagName)); err != nil {
			return err
		}
	}

	cfg.DatabaseURL = strings.TrimSpace(v.GetString(flagDatabaseURL))
	cfg.Store = strings.TrimSpace(v.GetString(flagStore))
	cfg.ListenAddr = strings.TrimSpace(v.GetString(flagListenAddr))
	cfg.MetricsAddr = strings.TrimSpace(v.GetString(flagMetricsAddr))
	cfg.PolicyFile = strings.TrimSpace(v.GetString(flagPolicyFile))
	cfg.APITokens = strings.Split(v.GetString(flagAPITokens), ",")
	cfg.Logging = logging.Options{Level: v.GetString(flagLogLevel), File: v.GetString(flagLogFile)}

	if cfg.Store != storage.BackendMemory && cfg.DatabaseURL == "" {
		return fmt.Errorf("database url is required")
	}
	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen addr is required")
	}
	return nil
}

func runServer(ctx context.Context, cfg *runtimeConfig) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, cleanup, err := storage.Open(ctx, storage.Options{Backend: cfg.Store, DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("store open: %w", err)
	}
	defer func() { _ = cleanup() }()

	recorder := metrics.NewRecorder()
	options := []economy.EngineOption{
		economy.WithOperationLogger(oplog.New(logger)),
		economy.WithOperationLogger(recorder),
	}
	if cfg.PolicyFile != "" {
		policy, err := economy.LoadPolicyFile(cfg.PolicyFile)
		if err != nil {
			return err
		}
		options = append(options, economy.WithPolicy(policy))
	}
	engine, err := economy.NewEngine(store, func() time.Time { return time.Now().UTC() }, options...)
	if err != nil {
		return fmt.Errorf("economy engine init: %w", err)
	}

	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(cfg.MetricsAddr, recorder, logger)
		defer stopMetrics()
	}

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	grpcServer := grpc.NewServer(grpcserver.ServerOptions(logger, cfg.APITokens)...)
	inkv1.RegisterEconomyServiceServer(grpcServer, grpcserver.NewEconomyServer(engine))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting", zap.String("listen_addr", cfg.ListenAddr), zap.String("store", cfg.Store))
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
		grpcServer.GracefulStop()
		if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			return serveErr
		}
		return nil
	case serveErr := <-errCh:
		if errors.Is(serveErr, grpc.ErrServerStopped) {
			return nil
		}
		return serveErr
	}
}

func serveMetrics(addr string, recorder *metrics.Recorder, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("metrics endpoint starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownWait)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}
