package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/ink/internal/economystore"
	"github.com/MarkoPoloResearchLab/ink/internal/metrics"
	"github.com/MarkoPoloResearchLab/ink/internal/store/memstore"
	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tyemirov/tauth/pkg/sessionvalidator"
	"go.uber.org/zap"
)

const (
	testSessionKey = "session-secret"
	testWebhookKey = "webhook-secret"
	testUserID     = "tattoo-fan"
)

var testNow = time.Date(2026, time.July, 14, 18, 0, 0, 0, time.UTC)

type stubProvider struct {
	mutex  sync.Mutex
	err    error
	output json.RawMessage
	jobs   []Job
}

func (provider *stubProvider) Run(_ context.Context, job Job) (json.RawMessage, error) {
	provider.mutex.Lock()
	defer provider.mutex.Unlock()
	provider.jobs = append(provider.jobs, job)
	if provider.err != nil {
		return nil, provider.err
	}
	return provider.output, nil
}

type testServer struct {
	router   *gin.Engine
	cfg      Config
	engine   *economy.Engine
	sessions *economystore.Store
	provider *stubProvider
}

func newTestServer(test *testing.T, adjust func(*Config)) *testServer {
	test.Helper()
	engine, err := economy.NewEngine(memstore.New(), func() time.Time { return testNow })
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	sessions, err := economystore.New(engine, zap.NewNop())
	if err != nil {
		test.Fatalf("sessions init failed: %v", err)
	}
	cfg := Config{
		SessionSigningKey: testSessionKey,
		WebhookSigningKey: testWebhookKey,
		RateLimitBurst:    50,
	}
	if adjust != nil {
		adjust(&cfg)
	}
	provider := &stubProvider{output: json.RawMessage(`{"image":"https://cdn.example/1.png"}`)}
	router, err := NewRouter(cfg, Dependencies{
		Sessions: sessions,
		Provider: provider,
		Metrics:  metrics.NewRecorder(),
		Logger:   zap.NewNop(),
	})
	if err != nil {
		test.Fatalf("router init failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		test.Fatalf("config: %v", err)
	}
	return &testServer{router: router, cfg: cfg, engine: engine, sessions: sessions, provider: provider}
}

func buildSessionCookie(test *testing.T, cfg Config, userID string) *http.Cookie {
	test.Helper()
	claims := &sessionvalidator.Claims{
		UserID:          userID,
		UserEmail:       userID + "@example.com",
		UserDisplayName: "Tattoo Fan",
		UserRoles:       []string{"member"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.SessionIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SessionSigningKey))
	if err != nil {
		test.Fatalf("token signing failed: %v", err)
	}
	return &http.Cookie{Name: cfg.SessionCookieName, Value: signedToken}
}

func buildPaymentToken(test *testing.T, key string, claims paymentClaims) string {
	test.Helper()
	if claims.Issuer == "" {
		claims.Issuer = defaultWebhookIssuer
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(testNow.Add(5 * time.Minute))
	}
	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		test.Fatalf("token signing failed: %v", err)
	}
	return signedToken
}

func (server *testServer) do(test *testing.T, method string, path string, cookie *http.Cookie, payload any) (*httptest.ResponseRecorder, map[string]any) {
	test.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			test.Fatalf("encode payload: %v", err)
		}
	}
	request := httptest.NewRequest(method, path, &body)
	request.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, request)
	decoded := map[string]any{}
	if recorder.Body.Len() > 0 {
		if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
			test.Fatalf("decode %s %s response %q: %v", method, path, recorder.Body.String(), err)
		}
	}
	return recorder, decoded
}

func walletBalance(test *testing.T, body map[string]any) int64 {
	test.Helper()
	wallet, ok := body["wallet"].(map[string]any)
	if !ok {
		test.Fatalf("response has no wallet: %v", body)
	}
	return int64(wallet["balance"].(float64))
}

func errorCode(body map[string]any) string {
	envelope, _ := body["error"].(map[string]any)
	code, _ := envelope["code"].(string)
	return code
}

func TestRouterPricingIsPublic(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	recorder, body := server.do(test, http.MethodGet, "/api/pricing", nil, nil)
	if recorder.Code != http.StatusOK {
		test.Fatalf("expected 200, got %d", recorder.Code)
	}
	if models := body["models"].([]any); len(models) != 4 {
		test.Fatalf("expected four models, got %v", models)
	}
	if tiers := body["tiers"].([]any); len(tiers) != 3 {
		test.Fatalf("expected three tiers, got %v", tiers)
	}
}

func TestRouterRequiresSessionCookie(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	recorder, _ := server.do(test, http.MethodGet, "/api/wallet", nil, nil)
	if recorder.Code != http.StatusUnauthorized {
		test.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestRouterSignInAndGenerate(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)

	recorder, body := server.do(test, http.MethodPost, "/api/session", cookie, nil)
	if recorder.Code != http.StatusOK {
		test.Fatalf("sign in: expected 200, got %d %v", recorder.Code, body)
	}
	start := walletBalance(test, body)
	if start != 505 {
		test.Fatalf("expected signup grant plus first streak bonus, got %d", start)
	}

	cost, err := server.engine.Policy().GenerationCost(economy.ModelFlash)
	if err != nil {
		test.Fatalf("generation cost: %v", err)
	}
	recorder, body = server.do(test, http.MethodPost, "/api/generations", cookie, map[string]any{
		"model":   "flash",
		"payload": map[string]any{"prompt": "koi fish sleeve"},
	})
	if recorder.Code != http.StatusOK {
		test.Fatalf("generate: expected 200, got %d %v", recorder.Code, body)
	}
	if body["status"] != "completed" || walletBalance(test, body) != start-cost.Int64() {
		test.Fatalf("unexpected generation response: %v", body)
	}
	if len(server.provider.jobs) != 1 || server.provider.jobs[0].Name != "flash" || server.provider.jobs[0].ChargeID == "" {
		test.Fatalf("unexpected provider jobs: %+v", server.provider.jobs)
	}

	recorder, body = server.do(test, http.MethodDelete, "/api/session", cookie, nil)
	if recorder.Code != http.StatusNoContent {
		test.Fatalf("sign out: expected 204, got %d %v", recorder.Code, body)
	}
	if server.sessions.Len() != 0 {
		test.Fatalf("expected no sessions after sign out, got %d", server.sessions.Len())
	}
}

func TestRouterGenerationRefundsProviderFailure(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	server.provider.err = errors.New("gpu pool exhausted")
	cookie := buildSessionCookie(test, server.cfg, testUserID)

	recorder, body := server.do(test, http.MethodPost, "/api/generations", cookie, map[string]any{"detail": "standard"})
	if recorder.Code != http.StatusBadGateway {
		test.Fatalf("expected 502, got %d %v", recorder.Code, body)
	}
	if errorCode(body) != errorCodeProvider {
		test.Fatalf("expected provider_failed, got %v", body)
	}
	refund, ok := body["refund"].(map[string]any)
	charge, _ := body["charge"].(map[string]any)
	if !ok || refund["refundOf"] != charge["id"] {
		test.Fatalf("expected a refund of the charge, got %v", body)
	}
	if walletBalance(test, body) != 505 {
		test.Fatalf("expected the balance restored, got %v", body["wallet"])
	}
}

func TestRouterDeductErrors(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name           string
		payload        map[string]any
		expectedStatus int
		expectedCode   string
	}{
		{name: "insufficient balance", payload: map[string]any{"amount": 9000, "type": "generation"}, expectedStatus: http.StatusPaymentRequired, expectedCode: "insufficient_balance"},
		{name: "negative amount", payload: map[string]any{"amount": -4, "type": "edit"}, expectedStatus: http.StatusBadRequest, expectedCode: "invalid_amount"},
		{name: "credit type", payload: map[string]any{"amount": 4, "type": "purchase"}, expectedStatus: http.StatusBadRequest, expectedCode: "invalid_transaction_type"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			server := newTestServer(test, nil)
			cookie := buildSessionCookie(test, server.cfg, testUserID)
			recorder, body := server.do(test, http.MethodPost, "/api/ink/deduct", cookie, testCase.payload)
			if recorder.Code != testCase.expectedStatus || errorCode(body) != testCase.expectedCode {
				test.Fatalf("expected %d %s, got %d %v", testCase.expectedStatus, testCase.expectedCode, recorder.Code, body)
			}
		})
	}
}

func TestRouterReportsShortfall(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)
	_, body := server.do(test, http.MethodPost, "/api/ink/deduct", cookie, map[string]any{"amount": 525, "type": "generation"})
	envelope := body["error"].(map[string]any)
	if envelope["shortfall"] != float64(20) {
		test.Fatalf("expected a shortfall of 20, got %v", envelope)
	}
}

func TestRouterQuotes(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)

	recorder, body := server.do(test, http.MethodGet, "/api/quote/generation?model=turbo", cookie, nil)
	if recorder.Code != http.StatusForbidden || errorCode(body) != "tier_not_eligible" {
		test.Fatalf("expected 403 tier_not_eligible, got %d %v", recorder.Code, body)
	}
	recorder, body = server.do(test, http.MethodGet, "/api/quote/generation?detail=max-detail", cookie, nil)
	if recorder.Code != http.StatusOK {
		test.Fatalf("expected 200, got %d %v", recorder.Code, body)
	}
	if quote := body["quote"].(map[string]any); quote["model"] != "flash" || quote["affordable"] != true {
		test.Fatalf("expected free tier auto selection to resolve to flash, got %v", quote)
	}
	recorder, body = server.do(test, http.MethodGet, "/api/quote/actions/optimize", cookie, nil)
	if recorder.Code != http.StatusOK || body["quote"].(map[string]any)["free"] != true {
		test.Fatalf("expected a free optimize quote, got %d %v", recorder.Code, body)
	}
	recorder, _ = server.do(test, http.MethodGet, "/api/quote/actions/teleport", cookie, nil)
	if recorder.Code != http.StatusBadRequest {
		test.Fatalf("expected 400 for an unknown action, got %d", recorder.Code)
	}
}

func TestRouterRefundFlow(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)
	_, body := server.do(test, http.MethodPost, "/api/ink/deduct", cookie, map[string]any{"amount": 8, "type": "edit"})
	transactionID := body["transaction"].(map[string]any)["id"].(string)

	recorder, body := server.do(test, http.MethodPost, "/api/ink/refund", cookie, map[string]any{"transactionId": transactionID})
	if recorder.Code != http.StatusOK || walletBalance(test, body) != 505 {
		test.Fatalf("expected refund to restore 505, got %d %v", recorder.Code, body)
	}
	recorder, body = server.do(test, http.MethodPost, "/api/ink/refund", cookie, map[string]any{"transactionId": transactionID})
	if recorder.Code != http.StatusConflict || errorCode(body) != "already_refunded" {
		test.Fatalf("expected 409 already_refunded, got %d %v", recorder.Code, body)
	}
}

func TestRouterRefundRejectsPaidGenerationCharge(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)
	recorder, body := server.do(test, http.MethodPost, "/api/generations", cookie, map[string]any{"model": "flash"})
	if recorder.Code != http.StatusOK {
		test.Fatalf("generate: expected 200, got %d %v", recorder.Code, body)
	}
	charged := walletBalance(test, body)
	transactionID := body["transaction"].(map[string]any)["id"].(string)

	recorder, body = server.do(test, http.MethodPost, "/api/ink/refund", cookie, map[string]any{"transactionId": transactionID})
	if recorder.Code != http.StatusConflict || errorCode(body) != "not_refundable" {
		test.Fatalf("expected 409 not_refundable, got %d %v", recorder.Code, body)
	}
	_, body = server.do(test, http.MethodGet, "/api/wallet", cookie, nil)
	if walletBalance(test, body) != charged {
		test.Fatalf("expected the balance to stay at %d, got %v", charged, body)
	}
}

func TestRouterTransactionsPageBySequence(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)
	for _, amount := range []int{1, 2, 3} {
		if recorder, body := server.do(test, http.MethodPost, "/api/ink/deduct", cookie, map[string]any{"amount": amount, "type": "edit"}); recorder.Code != http.StatusOK {
			test.Fatalf("deduct %d: expected 200, got %d %v", amount, recorder.Code, body)
		}
	}

	recorder, body := server.do(test, http.MethodGet, "/api/transactions?limit=2", cookie, nil)
	if recorder.Code != http.StatusOK {
		test.Fatalf("first page: expected 200, got %d %v", recorder.Code, body)
	}
	first := body["transactions"].([]any)
	if len(first) != 2 || first[0].(map[string]any)["amount"] != float64(-3) {
		test.Fatalf("unexpected first page: %v", first)
	}
	cursor := int64(first[1].(map[string]any)["sequence"].(float64))
	recorder, body = server.do(test, http.MethodGet, fmt.Sprintf("/api/transactions?limit=1&before=%d", cursor), cookie, nil)
	if recorder.Code != http.StatusOK {
		test.Fatalf("second page: expected 200, got %d %v", recorder.Code, body)
	}
	second := body["transactions"].([]any)
	if len(second) != 1 || second[0].(map[string]any)["amount"] != float64(-1) {
		test.Fatalf("unexpected second page: %v", second)
	}

	recorder, body = server.do(test, http.MethodGet, "/api/transactions?before=-5", cookie, nil)
	if recorder.Code != http.StatusBadRequest || errorCode(body) != errorCodeInvalidPayload {
		test.Fatalf("expected 400 for a negative cursor, got %d %v", recorder.Code, body)
	}
}

func TestRouterRateLimitsPaidEndpoints(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, func(cfg *Config) { cfg.RateLimitBurst = 1 })
	cookie := buildSessionCookie(test, server.cfg, testUserID)
	payload := map[string]any{"amount": 1, "type": "generation"}

	if recorder, body := server.do(test, http.MethodPost, "/api/ink/deduct", cookie, payload); recorder.Code != http.StatusOK {
		test.Fatalf("first deduct: expected 200, got %d %v", recorder.Code, body)
	}
	recorder, body := server.do(test, http.MethodPost, "/api/ink/deduct", cookie, payload)
	if recorder.Code != http.StatusTooManyRequests || errorCode(body) != errorCodeRateLimited {
		test.Fatalf("second deduct: expected 429, got %d %v", recorder.Code, body)
	}
	if recorder, _ := server.do(test, http.MethodGet, "/api/wallet", cookie, nil); recorder.Code != http.StatusOK {
		test.Fatalf("reads must not be rate limited, got %d", recorder.Code)
	}
}

func TestWebhookAppliesPurchase(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	cookie := buildSessionCookie(test, server.cfg, testUserID)
	if recorder, _ := server.do(test, http.MethodPost, "/api/session", cookie, nil); recorder.Code != http.StatusOK {
		test.Fatalf("sign in failed: %d", recorder.Code)
	}

	token := buildPaymentToken(test, testWebhookKey, paymentClaims{
		Event:            eventPurchase,
		UserID:           testUserID,
		Ink:              250,
		PaymentID:        "pay_123",
		RegisteredClaims: jwt.RegisteredClaims{ID: "evt_1"},
	})
	send := func(token string) (*httptest.ResponseRecorder, map[string]any) {
		request := httptest.NewRequest(http.MethodPost, "/webhooks/payments", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		server.router.ServeHTTP(recorder, request)
		decoded := map[string]any{}
		_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
		return recorder, decoded
	}

	recorder, body := send(token)
	if recorder.Code != http.StatusOK || body["balance"] != float64(755) {
		test.Fatalf("expected purchase to credit 250, got %d %v", recorder.Code, body)
	}
	_, walletBody := server.do(test, http.MethodGet, "/api/wallet", cookie, nil)
	if walletBalance(test, walletBody) != 755 {
		test.Fatalf("expected the session view to see the purchase, got %v", walletBody)
	}

	if recorder, body := send(token); recorder.Code != http.StatusConflict || errorCode(body) != errorCodeReplayedEvent {
		test.Fatalf("expected replay to be rejected, got %d %v", recorder.Code, body)
	}
	forged := buildPaymentToken(test, testSessionKey, paymentClaims{Event: eventPurchase, UserID: testUserID, Ink: 1000, RegisteredClaims: jwt.RegisteredClaims{ID: "evt_2"}})
	if recorder, _ := send(forged); recorder.Code != http.StatusUnauthorized {
		test.Fatalf("expected a token signed with the wrong key to be rejected, got %d", recorder.Code)
	}
	unknown := buildPaymentToken(test, testWebhookKey, paymentClaims{Event: "chargeback", UserID: testUserID, RegisteredClaims: jwt.RegisteredClaims{ID: "evt_3"}})
	if recorder, body := send(unknown); recorder.Code != http.StatusBadRequest || errorCode(body) != errorCodeUnknownEvent {
		test.Fatalf("expected unknown events to be rejected, got %d %v", recorder.Code, body)
	}
}

func TestWebhookChangesTier(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	token := buildPaymentToken(test, testWebhookKey, paymentClaims{
		Event:            eventSubscription,
		UserID:           "subscriber",
		Tier:             "studio",
		RegisteredClaims: jwt.RegisteredClaims{ID: "evt_sub"},
	})
	request := httptest.NewRequest(http.MethodPost, "/webhooks/payments", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		test.Fatalf("expected 200, got %d %s", recorder.Code, recorder.Body.String())
	}
	userID, err := economy.NewUserID("subscriber")
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	state, err := server.engine.State(context.Background(), userID)
	if err != nil {
		test.Fatalf("state: %v", err)
	}
	if state.Tier != economy.TierStudio || state.Balance <= 500 {
		test.Fatalf("expected an immediate prorated upgrade to studio, got tier %s balance %d", state.Tier, state.Balance)
	}
}

func TestHandleWalletUnauthorized(test *testing.T) {
	test.Parallel()
	server := newTestServer(test, nil)
	handler := &httpHandler{cfg: server.cfg, logger: zap.NewNop(), sessions: server.sessions, provider: server.provider, replays: newReplayGuard()}
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/wallet", nil)

	handler.handleWallet(ctx)

	if recorder.Code != http.StatusUnauthorized {
		test.Fatalf("expected 401, got %d", recorder.Code)
	}
}
