package httpapi

import (
	"encoding/json"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
)

type deductRequest struct {
	Amount   int64             `json:"amount"`
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata"`
}

type refundRequest struct {
	TransactionID string            `json:"transactionId"`
	Metadata      map[string]string `json:"metadata"`
}

type paidRequest struct {
	Model    string            `json:"model"`
	Detail   string            `json:"detail"`
	Metadata map[string]string `json:"metadata"`
	Payload  json.RawMessage   `json:"payload"`
}

type walletPayload struct {
	Balance     int64                `json:"balance"`
	Tier        economy.Tier         `json:"tier"`
	PendingTier economy.Tier         `json:"pendingTier,omitempty"`
	UsageToday  map[string]int       `json:"usageToday"`
	UsageCycle  map[string]int       `json:"usageCycle"`
	StreakDays  int                  `json:"streakDays"`
	RenewalDate string               `json:"renewalDate,omitempty"`
	History     []transactionPayload `json:"history"`
}

type transactionPayload struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Amount         int64             `json:"amount"`
	BalanceAfter   int64             `json:"balanceAfter"`
	RefundOf       string            `json:"refundOf,omitempty"`
	CreatedUnixUTC int64             `json:"createdUnixUtc"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Sequence       int64             `json:"sequence,omitempty"`
}

type tickPayload struct {
	StreakBonus int64 `json:"streakBonus"`
	RolledOver  bool  `json:"rolledOver"`
	Forfeited   int64 `json:"forfeited"`
}

type quotePayload struct {
	Model      string `json:"model,omitempty"`
	Action     string `json:"action,omitempty"`
	Cost       int64  `json:"cost"`
	Free       bool   `json:"free"`
	Affordable bool   `json:"affordable"`
	Shortfall  int64  `json:"shortfall"`
	Upsell     string `json:"upsell"`
}

type tierPayload struct {
	ID               economy.Tier      `json:"id"`
	MonthlyInk       int64             `json:"monthlyInk"`
	RolloverDays     int               `json:"rolloverDays"`
	QueuePriority    string            `json:"queuePriority"`
	Models           []economy.ModelID `json:"models"`
	IncludedUpscales int               `json:"includedUpscales"`
}

type modelPayload struct {
	ID         economy.ModelID `json:"id"`
	Cost       int64           `json:"cost"`
	MinSeconds int             `json:"minSeconds"`
	MaxSeconds int             `json:"maxSeconds"`
	MinTier    economy.Tier    `json:"minTier"`
}

type actionPayload struct {
	ID              economy.ActionID       `json:"id"`
	Category        economy.ActionCategory `json:"category"`
	MinTier         economy.Tier           `json:"minTier"`
	CostByTier      map[economy.Tier]int64 `json:"costByTier"`
	AllowanceByTier map[economy.Tier]int   `json:"allowanceByTier"`
	AllowanceScope  economy.AllowanceScope `json:"allowanceScope"`
}

func newTransactionPayload(transaction economy.Transaction) transactionPayload {
	return transactionPayload{
		ID:             transaction.ID,
		Type:           transaction.Type.String(),
		Amount:         transaction.Amount.Int64(),
		BalanceAfter:   transaction.BalanceAfter.Int64(),
		RefundOf:       transaction.RefundOf,
		CreatedUnixUTC: transaction.CreatedAt.Unix(),
		Metadata:       transaction.Metadata,
		Sequence:       transaction.Sequence,
	}
}

func newTransactionPayloads(transactions []economy.Transaction) []transactionPayload {
	payloads := make([]transactionPayload, 0, len(transactions))
	for _, transaction := range transactions {
		payloads = append(payloads, newTransactionPayload(transaction))
	}
	return payloads
}

func newQuotePayload(quote economy.Quote) quotePayload {
	return quotePayload{
		Model:      quote.Model.String(),
		Action:     quote.Action.String(),
		Cost:       quote.Cost.Int64(),
		Free:       quote.Free,
		Affordable: quote.Affordable,
		Shortfall:  quote.Shortfall.Int64(),
		Upsell:     string(quote.Upsell),
	}
}
