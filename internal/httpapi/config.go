package httpapi

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultListenAddr         = ":9090"
	defaultAllowedOrigin      = "http://localhost:8000"
	defaultSessionIssuer      = "tauth"
	defaultSessionCookie      = "app_session"
	defaultWebhookIssuer      = "payments"
	defaultProviderTimeout    = 90 * time.Second
	defaultRequestTimeout     = 5 * time.Second
	defaultRateLimitPerMinute = 30
	defaultRateLimitBurst     = 3
	defaultWalletHistoryLimit = 20
	maxWalletHistoryLimit     = 200
)

// Config aggregates runtime settings for the HTTP API.
type Config struct {
	ListenAddr         string
	AllowedOrigins     []string
	SessionSigningKey  string
	SessionIssuer      string
	SessionCookieName  string
	WebhookSigningKey  string
	WebhookIssuer      string
	ProviderURL        string
	ProviderTimeout    time.Duration
	RequestTimeout     time.Duration
	RateLimitPerMinute float64
	RateLimitBurst     int
	WalletHistoryLimit int
}

// Validate fills defaults and rejects unusable settings.
func (cfg *Config) Validate() error {
	cfg.ListenAddr = defaultIfEmpty(cfg.ListenAddr, defaultListenAddr)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{defaultAllowedOrigin}
	}
	cfg.SessionIssuer = defaultIfEmpty(cfg.SessionIssuer, defaultSessionIssuer)
	cfg.SessionCookieName = defaultIfEmpty(cfg.SessionCookieName, defaultSessionCookie)
	cfg.WebhookIssuer = defaultIfEmpty(cfg.WebhookIssuer, defaultWebhookIssuer)
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = defaultRateLimitPerMinute
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}
	if cfg.WalletHistoryLimit <= 0 {
		cfg.WalletHistoryLimit = defaultWalletHistoryLimit
	}
	if cfg.WalletHistoryLimit > maxWalletHistoryLimit {
		return fmt.Errorf("wallet history limit must be at most %d", maxWalletHistoryLimit)
	}
	if len(cfg.SessionSigningKey) == 0 {
		return fmt.Errorf("session signing key is required")
	}
	if len(cfg.WebhookSigningKey) == 0 {
		return fmt.Errorf("webhook signing key is required")
	}
	if cfg.WebhookSigningKey == cfg.SessionSigningKey {
		return fmt.Errorf("webhook signing key must differ from the session signing key")
	}
	return nil
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// ParseAllowedOrigins splits comma-delimited origins into a slice.
func ParseAllowedOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}
