package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MarkoPoloResearchLab/ink/internal/economystore"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// spendableTypes are the transaction types a browser may deduct directly.
var spendableTypes = map[economy.TransactionType]struct{}{
	economy.TransactionGeneration: {},
	economy.TransactionAskTaTTTy:  {},
	economy.TransactionEdit:       {},
}

func (handler *httpHandler) handlePricing(ctx *gin.Context) {
	policy := handler.engine().Policy()
	tiers := make([]tierPayload, 0, len(economy.Tiers()))
	for _, tier := range economy.Tiers() {
		tierConfig, err := policy.TierConfig(tier)
		if err != nil {
			continue
		}
		tiers = append(tiers, tierPayload{
			ID:               tier,
			MonthlyInk:       tierConfig.MonthlyInk.Int64(),
			RolloverDays:     tierConfig.RolloverDays,
			QueuePriority:    string(tierConfig.QueuePriority),
			Models:           tierConfig.Models,
			IncludedUpscales: tierConfig.IncludedUpscales,
		})
	}
	models := make([]modelPayload, 0, len(policy.Models))
	for _, model := range policy.ModelIDs() {
		modelConfig, err := economy.GuestGenerationCost(policy, model)
		if err != nil {
			continue
		}
		models = append(models, modelPayload{
			ID:         model,
			Cost:       modelConfig.BaseInkCost.Int64(),
			MinSeconds: modelConfig.EstimatedTime.MinSeconds,
			MaxSeconds: modelConfig.EstimatedTime.MaxSeconds,
			MinTier:    modelConfig.MinTier,
		})
	}
	actions := make([]actionPayload, 0, len(policy.Actions))
	for _, action := range policy.ActionIDs() {
		actionConfig := policy.Actions[action]
		costs := make(map[economy.Tier]int64, len(actionConfig.CostByTier))
		for tier, cost := range actionConfig.CostByTier {
			costs[tier] = cost.Int64()
		}
		actions = append(actions, actionPayload{
			ID:              action,
			Category:        actionConfig.Category,
			MinTier:         actionConfig.MinTier,
			CostByTier:      costs,
			AllowanceByTier: actionConfig.AllowanceByTier,
			AllowanceScope:  actionConfig.AllowanceScope,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{
		"tiers":       tiers,
		"models":      models,
		"actions":     actions,
		"signupGrant": policy.SignupGrant.Int64(),
	})
}

func (handler *httpHandler) handleSignIn(ctx *gin.Context) {
	claims := getClaims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errorCodeUnauthorized, "missing session"))
		return
	}
	userID, err := economy.NewUserID(claims.GetUserID())
	if err != nil {
		respondError(ctx, err)
		return
	}
	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
	defer cancel()
	session, report, err := handler.sessions.SignIn(requestCtx, userID)
	if err != nil {
		handler.logger.Error("sign in failed", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"wallet": handler.walletFrom(session.View()),
		"tick": tickPayload{
			StreakBonus: report.StreakBonus.Int64(),
			RolledOver:  report.RolledOver,
			Forfeited:   report.Forfeited.Int64(),
		},
	})
}

func (handler *httpHandler) handleSignOut(ctx *gin.Context) {
	claims := getClaims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errorCodeUnauthorized, "missing session"))
		return
	}
	userID, err := economy.NewUserID(claims.GetUserID())
	if err != nil {
		respondError(ctx, err)
		return
	}
	handler.sessions.SignOut(userID)
	ctx.Status(http.StatusNoContent)
}

func (handler *httpHandler) handleWallet(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	view := session.View()
	if ctx.Query("refresh") == "true" {
		requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
		defer cancel()
		refreshed, err := session.Refresh(requestCtx)
		if err != nil {
			respondError(ctx, err)
			return
		}
		view = refreshed
	}
	ctx.JSON(http.StatusOK, gin.H{"wallet": handler.walletFrom(view)})
}

func (handler *httpHandler) handleTransactions(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	limit := handler.cfg.WalletHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxWalletHistoryLimit {
			ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeInvalidPayload, fmt.Sprintf("limit must be between 1 and %d", maxWalletHistoryLimit)))
			return
		}
		limit = parsed
	}
	var before int64
	if raw := ctx.Query("before"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeInvalidPayload, "before must be a transaction sequence"))
			return
		}
		before = parsed
	}
	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
	defer cancel()
	transactions, err := handler.engine().ListTransactions(requestCtx, session.UserID(), before, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"transactions": newTransactionPayloads(transactions)})
}

func (handler *httpHandler) handleQuoteGeneration(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	selection, err := economy.ParseModelSelection(ctx.Query("model"), ctx.Query("detail"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	quote, err := session.Gate().QuoteGeneration(selection)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"quote": newQuotePayload(quote)})
}

func (handler *httpHandler) handleQuoteAction(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	quote, err := session.Gate().QuoteAction(economy.ActionID(ctx.Param("action")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"quote": newQuotePayload(quote)})
}

func (handler *httpHandler) handleDeduct(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	var request deductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeInvalidPayload, "expected JSON body"))
		return
	}
	transactionType := economy.TransactionType(request.Type)
	if _, ok := spendableTypes[transactionType]; !ok {
		respondError(ctx, fmt.Errorf("%w: %q cannot be deducted directly", economy.ErrInvalidTransactionType, request.Type))
		return
	}
	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
	defer cancel()
	receipt, err := session.DeductInk(requestCtx, economy.Charge{
		Amount:   economy.Ink(request.Amount),
		Type:     transactionType,
		Metadata: economy.Metadata(request.Metadata),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, handler.receiptResponse(session, receipt))
}

func (handler *httpHandler) handleRefund(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	var request refundRequest
	if err := ctx.ShouldBindJSON(&request); err != nil || request.TransactionID == "" {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeInvalidPayload, "transactionId is required"))
		return
	}
	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
	defer cancel()
	receipt, err := session.Refund(requestCtx, request.TransactionID, economy.Metadata(request.Metadata))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, handler.receiptResponse(session, receipt))
}

func (handler *httpHandler) handleGeneration(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	var request paidRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeInvalidPayload, "expected JSON body"))
		return
	}
	selection, err := economy.ParseModelSelection(request.Model, request.Detail)
	if err != nil {
		respondError(ctx, err)
		return
	}
	var output json.RawMessage
	result, err := session.RunGeneration(ctx.Request.Context(), selection, economy.Metadata(request.Metadata), handler.runJob(JobKindGeneration, session, request.Payload, &output))
	handler.respondPaid(ctx, session, result, output, err)
}

func (handler *httpHandler) handleAction(ctx *gin.Context) {
	session, ok := handler.requireSession(ctx)
	if !ok {
		return
	}
	var request paidRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorCodeInvalidPayload, "expected JSON body"))
		return
	}
	actionID := economy.ActionID(ctx.Param("action"))
	var output json.RawMessage
	result, err := session.RunAction(ctx.Request.Context(), actionID, economy.Metadata(request.Metadata), handler.runJob(JobKindAction, session, request.Payload, &output))
	handler.respondPaid(ctx, session, result, output, err)
}

// runJob adapts the provider to a paid action; the job is named after the committed charge.
func (handler *httpHandler) runJob(kind string, session *economystore.Session, payload json.RawMessage, output *json.RawMessage) economy.PaidAction {
	return func(ctx context.Context, charge economy.Receipt) error {
		providerCtx, cancel := context.WithTimeout(ctx, handler.cfg.ProviderTimeout)
		defer cancel()
		name := charge.Transaction.Metadata["model"]
		if kind == JobKindAction {
			name = charge.Transaction.Metadata["action"]
		}
		result, err := handler.provider.Run(providerCtx, Job{
			Kind:     kind,
			Name:     name,
			UserID:   session.UserID().String(),
			ChargeID: charge.Transaction.ID,
			Payload:  payload,
		})
		if err != nil {
			return err
		}
		*output = result
		return nil
	}
}

func (handler *httpHandler) respondPaid(ctx *gin.Context, session *economystore.Session, result economy.PaidResult, output json.RawMessage, err error) {
	if err == nil {
		body := handler.receiptResponse(session, result.Charge)
		body["status"] = "completed"
		body["result"] = output
		ctx.JSON(http.StatusOK, body)
		return
	}
	if result.Charge.Transaction.ID == "" {
		respondError(ctx, err)
		return
	}
	handler.logger.Warn("paid job failed",
		zap.String("user_id", session.UserID().String()),
		zap.String("charge_id", result.Charge.Transaction.ID),
		zap.Bool("refunded", result.Refund != nil),
		zap.Error(err),
	)
	body := errorResponse(errorCodeProvider, "the generation could not be completed")
	body["charge"] = newTransactionPayload(result.Charge.Transaction)
	if result.Refund != nil {
		body["refund"] = newTransactionPayload(result.Refund.Transaction)
	}
	body["wallet"] = handler.walletFrom(session.View())
	ctx.JSON(http.StatusBadGateway, body)
}

func (handler *httpHandler) receiptResponse(session *economystore.Session, receipt economy.Receipt) gin.H {
	return gin.H{
		"transaction": newTransactionPayload(receipt.Transaction),
		"balance":     receipt.Balance.Int64(),
		"wallet":      handler.walletFrom(session.View()),
	}
}

func (handler *httpHandler) walletFrom(view economystore.View) walletPayload {
	history := view.History
	if len(history) > handler.cfg.WalletHistoryLimit {
		history = history[len(history)-handler.cfg.WalletHistoryLimit:]
	}
	usageToday := make(map[string]int, len(view.UsageToday))
	for action, count := range view.UsageToday {
		usageToday[action.String()] = count
	}
	usageCycle := make(map[string]int, len(view.UsageCycle))
	for action, count := range view.UsageCycle {
		usageCycle[action.String()] = count
	}
	wallet := walletPayload{
		Balance:     view.Balance.Int64(),
		Tier:        view.Tier,
		PendingTier: view.PendingTier,
		UsageToday:  usageToday,
		UsageCycle:  usageCycle,
		StreakDays:  view.StreakDays,
		History:     newTransactionPayloads(history),
	}
	if !view.RenewalDate.IsZero() {
		wallet.RenewalDate = view.RenewalDate.Format("2006-01-02")
	}
	return wallet
}
