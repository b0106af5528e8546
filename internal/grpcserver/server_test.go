package grpcserver

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/ink/api/ink/v1"
	"github.com/MarkoPoloResearchLab/ink/internal/store/memstore"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var fixedNow = time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)

func startServer(test *testing.T, apiTokens []string) inkv1.EconomyServiceClient {
	test.Helper()
	engine, err := economy.NewEngine(memstore.New(), func() time.Time { return fixedNow })
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(ServerOptions(zap.NewNop(), apiTokens)...)
	inkv1.RegisterEconomyServiceServer(server, NewEconomyServer(engine))
	go func() {
		_ = server.Serve(listener)
	}()
	test.Cleanup(server.Stop)

	connection, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		test.Fatalf("dial failed: %v", err)
	}
	test.Cleanup(func() { _ = connection.Close() })
	return inkv1.NewEconomyServiceClient(connection)
}

func requireCode(test *testing.T, err error, expected codes.Code, expectedMessage string) {
	test.Helper()
	if status.Code(err) != expected {
		test.Fatalf("expected %s, got %v", expected, err)
	}
	if expectedMessage != "" && status.Convert(err).Message() != expectedMessage {
		test.Fatalf("expected message %q, got %q", expectedMessage, status.Convert(err).Message())
	}
}

func TestEconomyServiceRoundTrip(test *testing.T) {
	test.Parallel()
	client := startServer(test, nil)
	ctx := context.Background()

	state, err := client.GetState(ctx, &inkv1.UserRequest{UserId: "ada"})
	if err != nil {
		test.Fatalf("get state: %v", err)
	}
	if state.Balance != 500 || state.Tier != "free" {
		test.Fatalf("expected a fresh free ledger with the signup grant, got %+v", state)
	}

	tick, err := client.ApplyDailyTick(ctx, &inkv1.TickRequest{UserId: "ada"})
	if err != nil {
		test.Fatalf("tick: %v", err)
	}
	if tick.StreakBonus != 5 || tick.State.StreakDays != 1 {
		test.Fatalf("expected the first login streak bonus, got %+v", tick)
	}

	deducted, err := client.Deduct(ctx, &inkv1.DeductRequest{UserId: "ada", Amount: 25, Type: "generation", Metadata: map[string]string{"job": "j-1"}})
	if err != nil {
		test.Fatalf("deduct: %v", err)
	}
	if deducted.Balance != 480 || deducted.Transaction.Amount != -25 {
		test.Fatalf("unexpected deduct receipt %+v %+v", deducted, deducted.Transaction)
	}

	refunded, err := client.Refund(ctx, &inkv1.RefundRequest{UserId: "ada", TransactionId: deducted.Transaction.TransactionId})
	if err != nil {
		test.Fatalf("refund: %v", err)
	}
	if refunded.Balance != 505 || refunded.Transaction.RefundOf != deducted.Transaction.TransactionId {
		test.Fatalf("unexpected refund receipt %+v", refunded)
	}
	_, err = client.Refund(ctx, &inkv1.RefundRequest{UserId: "ada", TransactionId: deducted.Transaction.TransactionId})
	requireCode(test, err, codes.AlreadyExists, "already_refunded")

	listed, err := client.ListTransactions(ctx, &inkv1.ListTransactionsRequest{UserId: "ada", Limit: 2})
	if err != nil {
		test.Fatalf("list: %v", err)
	}
	if len(listed.Transactions) != 2 || listed.Transactions[0].Type != "refund" {
		test.Fatalf("expected newest first, got %+v", listed.Transactions)
	}
	older, err := client.ListTransactions(ctx, &inkv1.ListTransactionsRequest{UserId: "ada", BeforeSequence: listed.Transactions[1].Sequence, Limit: 10})
	if err != nil {
		test.Fatalf("list older: %v", err)
	}
	if len(older.Transactions) != 2 || older.Transactions[0].Type != "streak-bonus" || older.Transactions[1].Type != "subscription-grant" {
		test.Fatalf("expected the streak bonus and the signup grant on the next page, got %+v", older.Transactions)
	}
}

func TestEconomyServiceCreditAndTiers(test *testing.T) {
	test.Parallel()
	client := startServer(test, nil)
	ctx := context.Background()

	credited, err := client.Credit(ctx, &inkv1.CreditRequest{UserId: "bo", Amount: 100, Type: "purchase"})
	if err != nil {
		test.Fatalf("credit: %v", err)
	}
	if credited.Balance != 600 {
		test.Fatalf("expected 600, got %d", credited.Balance)
	}

	quote, err := client.QuoteGeneration(ctx, &inkv1.QuoteGenerationRequest{UserId: "bo", Model: "turbo"})
	requireCode(test, err, codes.PermissionDenied, "tier_not_eligible")
	if quote != nil {
		test.Fatalf("expected no quote, got %+v", quote)
	}

	upgraded, err := client.ChangeTier(ctx, &inkv1.ChangeTierRequest{UserId: "bo", Tier: "studio"})
	if err != nil {
		test.Fatalf("change tier: %v", err)
	}
	if upgraded.State.Tier != "studio" || upgraded.Balance <= 600 {
		test.Fatalf("expected an immediate upgrade with a prorated grant, got %+v", upgraded.State)
	}
	quote, err = client.QuoteGeneration(ctx, &inkv1.QuoteGenerationRequest{UserId: "bo", Model: "turbo"})
	if err != nil {
		test.Fatalf("quote: %v", err)
	}
	if quote.Cost != 60 || !quote.Affordable {
		test.Fatalf("unexpected studio turbo quote %+v", quote)
	}

	actionQuote, err := client.QuoteAction(ctx, &inkv1.QuoteActionRequest{UserId: "bo", Action: "optimize"})
	if err != nil {
		test.Fatalf("quote action: %v", err)
	}
	if !actionQuote.Free {
		test.Fatalf("expected optimize to be free on studio, got %+v", actionQuote)
	}
}

func TestEconomyServiceRejections(test *testing.T) {
	test.Parallel()
	client := startServer(test, nil)
	ctx := context.Background()
	testCases := []struct {
		name            string
		call            func() error
		expectedCode    codes.Code
		expectedMessage string
	}{
		{
			name: "insufficient balance",
			call: func() error {
				_, err := client.Deduct(ctx, &inkv1.DeductRequest{UserId: "cy", Amount: 9000, Type: "edit"})
				return err
			},
			expectedCode:    codes.FailedPrecondition,
			expectedMessage: "insufficient_balance",
		},
		{
			name: "blank user",
			call: func() error {
				_, err := client.GetState(ctx, &inkv1.UserRequest{UserId: "  "})
				return err
			},
			expectedCode:    codes.InvalidArgument,
			expectedMessage: "invalid_user_id",
		},
		{
			name: "unknown transaction type",
			call: func() error {
				_, err := client.Credit(ctx, &inkv1.CreditRequest{UserId: "cy", Amount: 1, Type: "gift"})
				return err
			},
			expectedCode:    codes.InvalidArgument,
			expectedMessage: "invalid_transaction_type",
		},
		{
			name: "unknown tier",
			call: func() error {
				_, err := client.ChangeTier(ctx, &inkv1.ChangeTierRequest{UserId: "cy", Tier: "platinum"})
				return err
			},
			expectedCode:    codes.InvalidArgument,
			expectedMessage: "unknown_tier",
		},
		{
			name: "missing refund target",
			call: func() error {
				_, err := client.Refund(ctx, &inkv1.RefundRequest{UserId: "cy", TransactionId: "nope"})
				return err
			},
			expectedCode:    codes.NotFound,
			expectedMessage: "unknown_transaction",
		},
		{
			name: "credit overflow",
			call: func() error {
				_, err := client.Credit(ctx, &inkv1.CreditRequest{UserId: "cy", Amount: math.MaxInt64 - 100, Type: "purchase"})
				return err
			},
			expectedCode:    codes.InvalidArgument,
			expectedMessage: "invalid_amount",
		},
		{
			name: "list limit",
			call: func() error {
				_, err := client.ListTransactions(ctx, &inkv1.ListTransactionsRequest{UserId: "cy", Limit: 500})
				return err
			},
			expectedCode:    codes.InvalidArgument,
			expectedMessage: errorInvalidListLimit,
		},
	}
	for _, testCase := range testCases {
		requireCode(test, testCase.call(), testCase.expectedCode, testCase.expectedMessage)
	}
}

func TestEconomyServiceRequiresToken(test *testing.T) {
	test.Parallel()
	client := startServer(test, []string{"svc-token"})

	_, err := client.GetState(context.Background(), &inkv1.UserRequest{UserId: "dee"})
	requireCode(test, err, codes.Unauthenticated, "")

	authorized := metadata.AppendToOutgoingContext(context.Background(), authorizationHeader, "Bearer svc-token")
	if _, err := client.GetState(authorized, &inkv1.UserRequest{UserId: "dee"}); err != nil {
		test.Fatalf("expected the token to be accepted: %v", err)
	}
}

func TestMapToGRPCErrorInternal(test *testing.T) {
	test.Parallel()
	err := mapToGRPCError(errors.New("connection reset"))
	requireCode(test, err, codes.Internal, "connection reset")
	requireCode(test, mapToGRPCError(economy.ErrConcurrentModification), codes.Aborted, errorConcurrent)
}
