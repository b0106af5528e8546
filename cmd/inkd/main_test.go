package main

import (
	"testing"

	"github.com/MarkoPoloResearchLab/ink/internal/storage"
)

func TestLoadConfigDefaults(test *testing.T) {
	test.Parallel()
	cmd := newRootCommand()
	cfg := &runtimeConfig{}
	if err := loadConfig(cmd, cfg); err != nil {
		test.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL != defaultDatabaseURL || cfg.ListenAddr != defaultGRPCListenAddr || cfg.Store != storage.BackendGorm {
		test.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigRejectsBlankDatabase(test *testing.T) {
	test.Parallel()
	cmd := newRootCommand()
	if err := cmd.Flags().Set(flagDatabaseURL, " "); err != nil {
		test.Fatalf("set flag: %v", err)
	}
	if err := loadConfig(cmd, &runtimeConfig{}); err == nil {
		test.Fatalf("expected a blank database url to be rejected")
	}
}
