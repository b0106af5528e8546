package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigRequiresProvider(test *testing.T) {
	test.Parallel()
	cmd := newRootCommand()
	cfg := runtimeConfig{}
	if err := loadConfig(cmd, &cfg); err == nil {
		test.Fatalf("expected a missing provider url to be rejected")
	}
}

func TestLoadConfigFromFlagsAndEnvFile(test *testing.T) {
	envFile := filepath.Join(test.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("INKAPI_WEBHOOK_SIGNING_KEY=from-env-file\n"), 0o600); err != nil {
		test.Fatalf("write env file: %v", err)
	}
	test.Cleanup(func() { _ = os.Unsetenv("INKAPI_WEBHOOK_SIGNING_KEY") })

	cmd := newRootCommand()
	for name, value := range map[string]string{
		flagEnvFile:            envFile,
		flagJWTSigningKey:      "session-key",
		flagProviderURL:        "http://provider.internal/jobs",
		flagAllowedOrigins:     "https://ink.example, https://admin.ink.example",
		flagProviderTimeout:    "45s",
		flagStore:              "memory",
		flagSessionIdleTimeout: "2h",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			test.Fatalf("set %s: %v", name, err)
		}
	}
	cfg := runtimeConfig{}
	if err := loadConfig(cmd, &cfg); err != nil {
		test.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.WebhookSigningKey != "from-env-file" {
		test.Fatalf("expected the webhook key from the env file, got %q", cfg.HTTP.WebhookSigningKey)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.ProviderTimeout != 45*time.Second || cfg.Store != "memory" || cfg.SessionIdle != 2*time.Hour {
		test.Fatalf("unexpected config %+v", cfg)
	}
}
