package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MarkoPoloResearchLab/ink/internal/economystore"
	"github.com/MarkoPoloResearchLab/ink/internal/httpapi"
	"github.com/MarkoPoloResearchLab/ink/internal/logging"
	"github.com/MarkoPoloResearchLab/ink/internal/metrics"
	"github.com/MarkoPoloResearchLab/ink/internal/oplog"
	"github.com/MarkoPoloResearchLab/ink/internal/storage"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	flagEnvFile            = "env-file"
	flagListenAddr         = "listen-addr"
	flagDatabaseURL        = "database-url"
	flagStore              = "store"
	flagPolicyFile         = "policy-file"
	flagAllowedOrigins     = "allowed-origins"
	flagJWTSigningKey      = "jwt-signing-key"
	flagJWTIssuer          = "jwt-issuer"
	flagJWTCookieName      = "jwt-cookie-name"
	flagWebhookSigningKey  = "webhook-signing-key"
	flagWebhookIssuer      = "webhook-issuer"
	flagProviderURL        = "provider-url"
	flagProviderTimeout    = "provider-timeout"
	flagRateLimitPerMinute = "rate-limit-per-minute"
	flagRateLimitBurst     = "rate-limit-burst"
	flagSessionIdleTimeout = "session-idle-timeout"
	flagLogLevel           = "log-level"
	flagLogFile            = "log-file"
	envPrefix              = "INKAPI"
)

type runtimeConfig struct {
	HTTP        httpapi.Config
	SessionIdle time.Duration
	DatabaseURL string
	Store       string
	PolicyFile  string
	Logging     logging.Options
}

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inkapi: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := runtimeConfig{}
	cmd := &cobra.Command{
		Use:           "inkapi",
		Short:         "HTTP API for wallets, quotes and paid generations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().String(flagEnvFile, "", "optional .env file loaded before reading the environment")
	cmd.Flags().String(flagListenAddr, ":9090", "HTTP listen address")
	cmd.Flags().String(flagDatabaseURL, "sqlite:///tmp/ink.db", "PostgreSQL or SQLite connection string")
	cmd.Flags().String(flagStore, storage.BackendGorm, "store backend: gorm, pgx or memory")
	cmd.Flags().String(flagPolicyFile, "", "YAML pricing policy; empty uses the built-in catalog")
	cmd.Flags().String(flagAllowedOrigins, "", "comma-separated list of allowed CORS origins")
	cmd.Flags().String(flagJWTSigningKey, "", "TAuth JWT signing key (required)")
	cmd.Flags().String(flagJWTIssuer, "tauth", "expected session JWT issuer")
	cmd.Flags().String(flagJWTCookieName, "app_session", "session JWT cookie name")
	cmd.Flags().String(flagWebhookSigningKey, "", "payment webhook signing key (required)")
	cmd.Flags().String(flagWebhookIssuer, "payments", "expected payment webhook issuer")
	cmd.Flags().String(flagProviderURL, "", "image provider endpoint (required)")
	cmd.Flags().Duration(flagProviderTimeout, 90*time.Second, "image provider timeout")
	cmd.Flags().Float64(flagRateLimitPerMinute, 30, "paid requests per user per minute")
	cmd.Flags().Int(flagRateLimitBurst, 3, "paid request burst per user")
	cmd.Flags().Duration(flagSessionIdleTimeout, economystore.DefaultIdleTimeout, "end sessions idle for this long")
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

	for _, flagName := range []string{
		flagListenAddr, flagDatabaseURL, flagStore, flagPolicyFile, flagAllowedOrigins,
		flagJWTSigningKey, flagJWTIssuer, flagJWTCookieName, flagWebhookSigningKey, flagWebhookIssuer,
		flagProviderURL, flagProviderTimeout, flagRateLimitPerMinute, flagRateLimitBurst, flagSessionIdleTimeout, flagLogLevel, flagLogFile,
	} {
		if err := v.BindPFlag(flagName, cmd.Flags().Lookup(flagName)); err != nil {
			return err
		}
	}

	if strings.TrimSpace(v.GetString(flagProviderURL)) == "" {
		return fmt.Errorf("%s is required", flagProviderURL)
	}

	cfg.DatabaseURL = strings.TrimSpace(v.GetString(flagDatabaseURL))
	cfg.Store = strings.TrimSpace(v.GetString(flagStore))
	cfg.PolicyFile = strings.TrimSpace(v.GetString(flagPolicyFile))
	cfg.SessionIdle = v.GetDuration(flagSessionIdleTimeout)
	if cfg.SessionIdle <= 0 {
		return fmt.Errorf("%s must be positive", flagSessionIdleTimeout)
	}
	cfg.Logging = logging.Options{Level: v.GetString(flagLogLevel), File: v.GetString(flagLogFile)}
	cfg.HTTP = httpapi.Config{
		ListenAddr:         strings.TrimSpace(v.GetString(flagListenAddr)),
		AllowedOrigins:     httpapi.ParseAllowedOrigins(v.GetString(flagAllowedOrigins)),
		SessionSigningKey:  v.GetString(flagJWTSigningKey),
		SessionIssuer:      strings.TrimSpace(v.GetString(flagJWTIssuer)),
		SessionCookieName:  strings.TrimSpace(v.GetString(flagJWTCookieName)),
		WebhookSigningKey:  v.GetString(flagWebhookSigningKey),
		WebhookIssuer:      strings.TrimSpace(v.GetString(flagWebhookIssuer)),
		ProviderURL:        strings.TrimSpace(v.GetString(flagProviderURL)),
		ProviderTimeout:    v.GetDuration(flagProviderTimeout),
		RateLimitPerMinute: v.GetFloat64(flagRateLimitPerMinute),
		RateLimitBurst:     v.GetInt(flagRateLimitBurst),
	}
	return cfg.HTTP.Validate()
}

func run(ctx context.Context, cfg runtimeConfig) error {
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
	sessions, err := economystore.New(engine, logger, economystore.WithIdleTimeout(cfg.SessionIdle))
	if err != nil {
		return err
	}
	provider, err := httpapi.NewHTTPProvider(cfg.HTTP.ProviderURL, nil, cfg.HTTP.ProviderTimeout)
	if err != nil {
		return err
	}

	logger.Info("inkapi starting", zap.String("store", cfg.Store), zap.Strings("allowed_origins", cfg.HTTP.AllowedOrigins))
	return httpapi.Run(ctx, cfg.HTTP, httpapi.Dependencies{
		Sessions: sessions,
		Provider: provider,
		Metrics:  recorder,
		Logger:   logger,
	})
}
