// Package httpapi is the gin façade the web UI uses to read prices and spend INK.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MarkoPoloResearchLab/ink/internal/economystore"
	"github.com/MarkoPoloResearchLab/ink/internal/metrics"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tyemirov/tauth/pkg/sessionvalidator"
	"go.uber.org/zap"
)

const (
	claimsContextKey = "auth_claims"
	shutdownTimeout  = 5 * time.Second
)

// Dependencies are the collaborators the router serves.
type Dependencies struct {
	Sessions *economystore.Store
	Provider GenerationProvider
	Metrics  *metrics.Recorder
	Logger   *zap.Logger
}

// Run serves the HTTP API until ctx is cancelled.
func Run(ctx context.Context, cfg Config, dependencies Dependencies) error {
	router, err := NewRouter(cfg, dependencies)
	if err != nil {
		return err
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("inkapi listening", zap.String("addr", cfg.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("server shutdown error", zap.Error(shutdownErr))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// NewRouter validates cfg and wires every route.
func NewRouter(cfg Config, dependencies Dependencies) (*gin.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dependencies.Sessions == nil {
		return nil, fmt.Errorf("%w: session store is required", economy.ErrInvalidServiceConfig)
	}
	if dependencies.Provider == nil {
		return nil, fmt.Errorf("%w: generation provider is required", economy.ErrInvalidServiceConfig)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validator, err := sessionvalidator.New(sessionvalidator.Config{
		SigningKey: []byte(cfg.SessionSigningKey),
		Issuer:     cfg.SessionIssuer,
		CookieName: cfg.SessionCookieName,
	})
	if err != nil {
		return nil, fmt.Errorf("session validator: %w", err)
	}

	handler := &httpHandler{
		cfg:      cfg,
		logger:   logger,
		sessions: dependencies.Sessions,
		provider: dependencies.Provider,
		replays:  newReplayGuard(),
	}
	limiter := newUserRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, handler.now)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if dependencies.Metrics != nil {
		router.Use(dependencies.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(dependencies.Metrics.Handler()))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Origin", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/pricing", handler.handlePricing)
	router.POST("/webhooks/payments", handler.handlePaymentWebhook)

	api := router.Group("/api")
	api.Use(validator.GinMiddleware(claimsContextKey))
	api.POST("/session", handler.handleSignIn)
	api.DELETE("/session", handler.handleSignOut)
	api.GET("/wallet", handler.handleWallet)
	api.GET("/transactions", handler.handleTransactions)
	api.GET("/quote/generation", handler.handleQuoteGeneration)
	api.GET("/quote/actions/:action", handler.handleQuoteAction)
	api.POST("/ink/refund", handler.handleRefund)

	paid := api.Group("")
	paid.Use(limiter.middleware())
	paid.POST("/ink/deduct", handler.handleDeduct)
	paid.POST("/generations", handler.handleGeneration)
	paid.POST("/actions/:action", handler.handleAction)

	return router, nil
}

type httpHandler struct {
	cfg      Config
	logger   *zap.Logger
	sessions *economystore.Store
	provider GenerationProvider
	replays  *replayGuard
}

func (handler *httpHandler) engine() *economy.Engine {
	return handler.sessions.Engine()
}

func (handler *httpHandler) now() time.Time {
	return handler.engine().Now()
}

func getClaims(ctx *gin.Context) *sessionvalidator.Claims {
	claimsValue, ok := ctx.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := claimsValue.(*sessionvalidator.Claims)
	return claims
}

// requireSession returns the caller's session, signing in lazily when the process restarted since
// the browser's sign-in call.
func (handler *httpHandler) requireSession(ctx *gin.Context) (*economystore.Session, bool) {
	claims := getClaims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errorCodeUnauthorized, "missing session"))
		return nil, false
	}
	userID, err := economy.NewUserID(claims.GetUserID())
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}
	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
	defer cancel()
	session, err := handler.sessions.Session(requestCtx, userID)
	if err == nil {
		return session, true
	}
	if !errors.Is(err, economystore.ErrNoSession) {
		respondError(ctx, err)
		return nil, false
	}
	session, _, err = handler.sessions.SignIn(requestCtx, userID)
	if err != nil {
		handler.logger.Error("lazy sign in failed", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(ctx, err)
		return nil, false
	}
	return session, true
}
