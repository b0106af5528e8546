package httpapi

import (
	"errors"
	"net/http"

	"github.com/MarkoPoloResearchLab/ink/internal/economystore"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-gonic/gin"
)

const (
	errorCodeUnauthorized   = "unauthorized"
	errorCodeInvalidPayload = "invalid_payload"
	errorCodeRateLimited    = "rate_limited"
	errorCodeConflict       = "concurrent_modification"
	errorCodeNoSession      = "no_session"
	errorCodeInternal       = "internal_error"
	errorCodeProvider       = "provider_failed"
	errorCodeInvalidToken   = "invalid_token"
	errorCodeUnknownEvent   = "unknown_event"
	errorCodeReplayedEvent  = "replayed_event"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{economy.ErrInsufficientBalance, http.StatusPaymentRequired},
	{economy.ErrTierNotEligible, http.StatusForbidden},
	{economy.ErrConcurrentModification, http.StatusConflict},
	{economy.ErrAlreadyRefunded, http.StatusConflict},
	{economy.ErrNotRefundable, http.StatusConflict},
	{economy.ErrUnknownTransaction, http.StatusNotFound},
	{economy.ErrInvalidAmount, http.StatusBadRequest},
	{economy.ErrInvalidLimit, http.StatusBadRequest},
	{economy.ErrInvalidUserID, http.StatusBadRequest},
	{economy.ErrUnknownModel, http.StatusBadRequest},
	{economy.ErrUnknownAction, http.StatusBadRequest},
	{economy.ErrUnknownTier, http.StatusBadRequest},
	{economy.ErrUnknownDetailLevel, http.StatusBadRequest},
	{economy.ErrInvalidTransactionType, http.StatusBadRequest},
	{economy.ErrActionCategoryMismatch, http.StatusBadRequest},
	{economystore.ErrNoSession, http.StatusUnauthorized},
}

// mapError translates a domain error into an HTTP status and response body.
func mapError(err error) (int, gin.H) {
	status := http.StatusInternalServerError
	for _, candidate := range errorStatuses {
		if errors.Is(err, candidate.err) {
			status = candidate.status
			break
		}
	}
	code, ok := economy.RejectionCode(err)
	switch {
	case ok:
	case errors.Is(err, economy.ErrConcurrentModification):
		code = errorCodeConflict
	case errors.Is(err, economystore.ErrNoSession):
		code = errorCodeNoSession
	default:
		return status, errorResponse(errorCodeInternal, "internal error")
	}
	body := errorResponse(code, err.Error())
	if shortfall, ok := economy.ShortfallOf(err); ok {
		body["error"].(gin.H)["shortfall"] = shortfall.Int64()
	}
	return status, body
}

func respondError(ctx *gin.Context, err error) {
	status, body := mapError(err)
	ctx.JSON(status, body)
}

func errorResponse(code string, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
