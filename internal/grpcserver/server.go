package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarkoPoloResearchLab/ink/api/ink/v1"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	errorInvalidListLimit = "invalid_list_limit"
	errorConcurrent       = "concurrent_modification"

	defaultListTransactionsLimit = 50
	maxListTransactionsLimit     = 200
)

// EconomyServer exposes the INK engine over gRPC.
type EconomyServer struct {
	inkv1.UnimplementedEconomyServiceServer
	engine *economy.Engine
}

// NewEconomyServer constructs a gRPC server for the engine.
func NewEconomyServer(engine *economy.Engine) *EconomyServer {
	return &EconomyServer{engine: engine}
}

func (server *EconomyServer) GetState(ctx context.Context, request *inkv1.UserRequest) (*inkv1.StateResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	state, err := server.engine.Hydrate(ctx, userID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return server.stateResponse(state), nil
}

func (server *EconomyServer) Deduct(ctx context.Context, request *inkv1.DeductRequest) (*inkv1.ReceiptResponse, error) {
	userID, charge, err := parseCharge(request.GetUserId(), request.GetAmount(), request.GetType(), request.GetMetadata())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	receipt, err := server.engine.Deduct(ctx, userID, charge)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return server.receiptResponse(receipt), nil
}

func (server *EconomyServer) Credit(ctx context.Context, request *inkv1.CreditRequest) (*inkv1.ReceiptResponse, error) {
	userID, charge, err := parseCharge(request.GetUserId(), request.GetAmount(), request.GetType(), request.GetMetadata())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	receipt, err := server.engine.Credit(ctx, userID, charge)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return server.receiptResponse(receipt), nil
}

func (server *EconomyServer) Refund(ctx context.Context, request *inkv1.RefundRequest) (*inkv1.ReceiptResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	receipt, err := server.engine.Refund(ctx, userID, request.GetTransactionId(), economy.Metadata(request.GetMetadata()))
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return server.receiptResponse(receipt), nil
}

func (server *EconomyServer) ApplyDailyTick(ctx context.Context, request *inkv1.TickRequest) (*inkv1.TickResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	now := server.engine.Now()
	if request.GetNowUnixUtc() != 0 {
		now = time.Unix(request.GetNowUnixUtc(), 0).UTC()
	}
	report, err := server.engine.ApplyDailyTick(ctx, userID, now)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return &inkv1.TickResponse{
		StreakBonus:  report.StreakBonus.Int64(),
		RolledOver:   report.RolledOver,
		Forfeited:    report.Forfeited.Int64(),
		Unchanged:    report.Unchanged,
		Transactions: transactionMessages(report.Transactions),
		State:        server.stateResponse(report.State),
	}, nil
}

func (server *EconomyServer) ChangeTier(ctx context.Context, request *inkv1.ChangeTierRequest) (*inkv1.ReceiptResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	receipt, err := server.engine.ChangeTier(ctx, userID, economy.Tier(request.GetTier()), server.engine.Now())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return server.receiptResponse(receipt), nil
}

func (server *EconomyServer) ListTransactions(ctx context.Context, request *inkv1.ListTransactionsRequest) (*inkv1.ListTransactionsResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	limit, err := normalizeListLimit(request.GetLimit())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, errorInvalidListLimit)
	}
	transactions, err := server.engine.ListTransactions(ctx, userID, request.GetBeforeSequence(), int(limit))
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return &inkv1.ListTransactionsResponse{Transactions: transactionMessages(transactions)}, nil
}

func (server *EconomyServer) QuoteGeneration(ctx context.Context, request *inkv1.QuoteGenerationRequest) (*inkv1.QuoteResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	selection, err := economy.ParseModelSelection(request.GetModel(), request.GetDetail())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	state, err := server.engine.Hydrate(ctx, userID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	quote, err := server.engine.Gate(state).QuoteGeneration(selection)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return quoteResponse(quote), nil
}

func (server *EconomyServer) QuoteAction(ctx context.Context, request *inkv1.QuoteActionRequest) (*inkv1.QuoteResponse, error) {
	userID, err := economy.NewUserID(request.GetUserId())
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	state, err := server.engine.Hydrate(ctx, userID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	quote, err := server.engine.Gate(state).QuoteAction(economy.ActionID(request.GetAction()))
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	return quoteResponse(quote), nil
}

func parseCharge(rawUserID string, amount int64, rawType string, metadata map[string]string) (economy.UserID, economy.Charge, error) {
	userID, err := economy.NewUserID(rawUserID)
	if err != nil {
		return economy.UserID{}, economy.Charge{}, err
	}
	ink, err := economy.NewInk(amount)
	if err != nil {
		return economy.UserID{}, economy.Charge{}, err
	}
	transactionType, err := economy.ParseTransactionType(rawType)
	if err != nil {
		return economy.UserID{}, economy.Charge{}, err
	}
	return userID, economy.Charge{Amount: ink, Type: transactionType, Metadata: economy.Metadata(metadata)}, nil
}

func (server *EconomyServer) stateResponse(state economy.LedgerState) *inkv1.StateResponse {
	usage := state.Usage(server.engine.Now())
	return &inkv1.StateResponse{
		UserId:             state.UserID.String(),
		Balance:            state.Balance.Int64(),
		Tier:               state.Tier.String(),
		PendingTier:        state.PendingTier.String(),
		StreakDays:         int32(state.StreakDays),
		RenewalDateUnixUtc: state.RenewalDate.Unix(),
		UsageToday:         usageCounts(usage.Today),
		UsageCycle:         usageCounts(usage.Cycle),
		Version:            state.Version,
	}
}

func (server *EconomyServer) receiptResponse(receipt economy.Receipt) *inkv1.ReceiptResponse {
	response := &inkv1.ReceiptResponse{
		Balance: receipt.Balance.Int64(),
		State:   server.stateResponse(receipt.State),
	}
	if receipt.Transaction.ID != "" {
		response.Transaction = transactionMessage(receipt.Transaction)
	}
	return response
}

func usageCounts(usage map[economy.ActionID]int) map[string]int32 {
	counts := make(map[string]int32, len(usage))
	for action, count := range usage {
		counts[action.String()] = int32(count)
	}
	return counts
}

func transactionMessage(transaction economy.Transaction) *inkv1.Transaction {
	return &inkv1.Transaction{
		TransactionId:  transaction.ID,
		Type:           transaction.Type.String(),
		Amount:         transaction.Amount.Int64(),
		BalanceAfter:   transaction.BalanceAfter.Int64(),
		RefundOf:       transaction.RefundOf,
		CreatedUnixUtc: transaction.CreatedAt.Unix(),
		Metadata:       transaction.Metadata,
		Sequence:       transaction.Sequence,
	}
}

func transactionMessages(transactions []economy.Transaction) []*inkv1.Transaction {
	messages := make([]*inkv1.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		messages = append(messages, transactionMessage(transaction))
	}
	return messages
}

func quoteResponse(quote economy.Quote) *inkv1.QuoteResponse {
	return &inkv1.QuoteResponse{
		Model:      quote.Model.String(),
		Action:     quote.Action.String(),
		Cost:       quote.Cost.Int64(),
		Free:       quote.Free,
		Affordable: quote.Affordable,
		Shortfall:  quote.Shortfall.Int64(),
		Upsell:     string(quote.Upsell),
	}
}

func normalizeListLimit(limit int32) (int32, error) {
	if limit <= 0 {
		return defaultListTransactionsLimit, nil
	}
	if limit > maxListTransactionsLimit {
		return 0, fmt.Errorf("limit exceeds maximum: %d > %d", limit, maxListTransactionsLimit)
	}
	return limit, nil
}

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{economy.ErrInsufficientBalance, codes.FailedPrecondition},
	{economy.ErrNotRefundable, codes.FailedPrecondition},
	{economy.ErrTierNotEligible, codes.PermissionDenied},
	{economy.ErrConcurrentModification, codes.Aborted},
	{economy.ErrUnknownTransaction, codes.NotFound},
	{economy.ErrAlreadyRefunded, codes.AlreadyExists},
	{economy.ErrInvalidAmount, codes.InvalidArgument},
	{economy.ErrInvalidLimit, codes.InvalidArgument},
	{economy.ErrInvalidUserID, codes.InvalidArgument},
	{economy.ErrUnknownModel, codes.InvalidArgument},
	{economy.ErrUnknownAction, codes.InvalidArgument},
	{economy.ErrUnknownTier, codes.InvalidArgument},
	{economy.ErrUnknownDetailLevel, codes.InvalidArgument},
	{economy.ErrInvalidTransactionType, codes.InvalidArgument},
	{economy.ErrActionCategoryMismatch, codes.InvalidArgument},
}

// mapToGRPCError reports rejections by their stable code; the message of an internal fault is kept for operators.
func mapToGRPCError(source error) error {
	for _, candidate := range errorCodes {
		if !errors.Is(source, candidate.err) {
			continue
		}
		message, ok := economy.RejectionCode(source)
		if !ok {
			message = errorConcurrent
		}
		return status.Error(candidate.code, message)
	}
	return status.Error(codes.Internal, source.Error())
}
