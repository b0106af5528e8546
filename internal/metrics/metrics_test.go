package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCountsOperations(test *testing.T) {
	test.Parallel()
	recorder := NewRecorder()
	ctx := context.Background()

	recorder.LogOperation(ctx, economy.OperationLog{Operation: "deduct", Type: economy.TransactionGeneration, Amount: 10, Attempts: 2, Status: economy.OperationStatusOK})
	recorder.LogOperation(ctx, economy.OperationLog{Operation: "deduct", Type: economy.TransactionGeneration, Amount: 15, Attempts: 1, Status: economy.OperationStatusOK})
	recorder.LogOperation(ctx, economy.OperationLog{Operation: "deduct", Amount: 99, Attempts: 1, Status: economy.OperationStatusError, Error: &economy.InsufficientBalanceError{Required: 99, Available: 1}})
	recorder.LogOperation(ctx, economy.OperationLog{Operation: "credit", Attempts: 3, Status: economy.OperationStatusError, Error: errors.New("store down")})

	if got := testutil.ToFloat64(recorder.operations.WithLabelValues("deduct", economy.OperationStatusOK)); got != 2 {
		test.Fatalf("expected 2 ok deductions, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.amounts.WithLabelValues("deduct", "generation")); got != 25 {
		test.Fatalf("expected 25 INK deducted, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.rejections.WithLabelValues("deduct", "insufficient_balance")); got != 1 {
		test.Fatalf("expected one insufficient balance rejection, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.rejections.WithLabelValues("credit", codeInternal)); got != 1 {
		test.Fatalf("expected one internal failure, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.retries.WithLabelValues("credit")); got != 2 {
		test.Fatalf("expected two credit retries, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.retries.WithLabelValues("deduct")); got != 1 {
		test.Fatalf("expected one deduct retry, got %v", got)
	}
}

func TestRecorderServesExposition(test *testing.T) {
	test.Parallel()
	gin.SetMode(gin.TestMode)
	recorder := NewRecorder()
	router := gin.New()
	router.Use(recorder.GinMiddleware())
	router.GET("/ping", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	recorder.LogOperation(context.Background(), economy.OperationLog{Operation: "refund", Type: economy.TransactionRefund, Amount: 5, Attempts: 1, Status: economy.OperationStatusOK})

	response := httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if response.Code != http.StatusOK {
		test.Fatalf("expected 200, got %d", response.Code)
	}
	body := response.Body.String()
	for _, expected := range []string{
		`ink_operations_total{operation="refund",status="ok"} 1`,
		`ink_http_request_duration_seconds_count{method="GET",route="/ping",status="204"} 1`,
	} {
		if !strings.Contains(body, expected) {
			test.Fatalf("expected %q in exposition:\n%s", expected, body)
		}
	}
}
