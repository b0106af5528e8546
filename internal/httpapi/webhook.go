package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	eventPurchase     = "purchase"
	eventSubscription = "subscription"

	metadataKeyPaymentID = "payment_id"
	metadataKeySource    = "source"
	sourceWebhook        = "payment_webhook"

	bearerPrefix    = "Bearer "
	replayRetention = 48 * time.Hour
)

var errReplayedEvent = errors.New("payment event already processed")

// paymentClaims is the signed body of a payment provider event.
type paymentClaims struct {
	Event     string `json:"event"`
	UserID    string `json:"user_id"`
	Ink       int64  `json:"ink,omitempty"`
	Tier      string `json:"tier,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
	jwt.RegisteredClaims
}

// replayGuard remembers processed event ids until their retention expires.
type replayGuard struct {
	mutex sync.Mutex
	seen  map[string]time.Time
}

func newReplayGuard() *replayGuard {
	return &replayGuard{seen: make(map[string]time.Time)}
}

// claim records id and reports whether it was new.
func (guard *replayGuard) claim(id string, now time.Time) bool {
	guard.mutex.Lock()
	defer guard.mutex.Unlock()
	for key, expires := range guard.seen {
		if now.After(expires) {
			delete(guard.seen, key)
		}
	}
	if _, ok := guard.seen[id]; ok {
		return false
	}
	guard.seen[id] = now.Add(replayRetention)
	return true
}

// release forgets id so a failed event can be redelivered.
func (guard *replayGuard) release(id string) {
	guard.mutex.Lock()
	defer guard.mutex.Unlock()
	delete(guard.seen, id)
}

func (handler *httpHandler) parsePaymentToken(header string) (*paymentClaims, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, fmt.Errorf("missing bearer token")
	}
	claims := &paymentClaims{}
	_, err := jwt.ParseWithClaims(
		strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)),
		claims,
		func(token *jwt.Token) (any, error) {
			return []byte(handler.cfg.WebhookSigningKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(handler.cfg.WebhookIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(handler.now),
	)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.ID) == "" {
		return nil, fmt.Errorf("token id is required")
	}
	return claims, nil
}

func (handler *httpHandler) handlePaymentWebhook(ctx *gin.Context) {
	claims, err := handler.parsePaymentToken(ctx.GetHeader("Authorization"))
	if err != nil {
		handler.logger.Warn("payment webhook rejected", zap.Error(err))
		ctx.JSON(http.StatusUnauthorized, errorResponse(errorCodeInvalidToken, "invalid payment token"))
		return
	}
	userID, err := economy.NewUserID(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !handler.replays.claim(claims.ID, handler.now()) {
		ctx.JSON(http.StatusConflict, errorResponse(errorCodeReplayedEvent, errReplayedEvent.Error()))
		return
	}

	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
	defer cancel()

	var receipt economy.Receipt
	switch claims.Event {
	case eventPurchase:
		if claims.Ink <= 0 {
			err = fmt.Errorf("%w: purchase must credit INK", economy.ErrInvalidAmount)
			break
		}
		receipt, err = handler.engine().Credit(requestCtx, userID, economy.Charge{
			Amount: economy.Ink(claims.Ink),
			Type:   economy.TransactionPurchase,
			Metadata: economy.Metadata{
				metadataKeyPaymentID: claims.PaymentID,
				metadataKeySource:    sourceWebhook,
			},
		})
	case eventSubscription:
		receipt, err = handler.engine().ChangeTier(requestCtx, userID, economy.Tier(claims.Tier), handler.engine().Now())
	default:
		handler.replays.release(claims.ID)
		ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeUnknownEvent, fmt.Sprintf("unknown event %q", claims.Event)))
		return
	}
	if err != nil {
		handler.replays.release(claims.ID)
		handler.logger.Warn("payment event failed", zap.String("event", claims.Event), zap.String("user_id", claims.UserID), zap.Error(err))
		respondError(ctx, err)
		return
	}
	handler.sessions.Observe(receipt.State)
	handler.logger.Info("payment event applied",
		zap.String("event", claims.Event),
		zap.String("user_id", claims.UserID),
		zap.String("event_id", claims.ID),
		zap.Int64("balance", receipt.Balance.Int64()),
	)
	ctx.JSON(http.StatusOK, gin.H{
		"status":      "applied",
		"balance":     receipt.Balance.Int64(),
		"tier":        receipt.State.Tier,
		"pendingTier": receipt.State.PendingTier,
		"transaction": newTransactionPayload(receipt.Transaction),
	})
}
