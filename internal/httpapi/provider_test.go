package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProviderRun(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name        string
		status      int
		body        string
		expectErr   bool
		expectedOut string
	}{
		{name: "success", status: http.StatusOK, body: `{"image":"x.png"}`, expectedOut: `{"image":"x.png"}`},
		{name: "empty body", status: http.StatusAccepted, body: "", expectedOut: `{}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, expectErr: true},
		{name: "not json", status: http.StatusOK, body: "<html>", expectErr: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			type capturedRequest struct {
				idempotencyKey string
				job            Job
			}
			captured := make(chan capturedRequest, 1)
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				var job Job
				_ = json.NewDecoder(request.Body).Decode(&job)
				captured <- capturedRequest{idempotencyKey: request.Header.Get("Idempotency-Key"), job: job}
				writer.WriteHeader(testCase.status)
				_, _ = writer.Write([]byte(testCase.body))
			}))
			defer server.Close()

			provider, err := NewHTTPProvider(server.URL, nil, time.Second)
			if err != nil {
				test.Fatalf("provider: %v", err)
			}
			output, err := provider.Run(context.Background(), Job{Kind: JobKindGeneration, Name: "flash", UserID: "u", ChargeID: "tx-1", Payload: json.RawMessage(`{"prompt":"rose"}`)})
			if testCase.expectErr {
				if !errors.Is(err, ErrProviderFailed) {
					test.Fatalf("expected ErrProviderFailed, got %v", err)
				}
				return
			}
			if err != nil {
				test.Fatalf("run: %v", err)
			}
			if string(output) != testCase.expectedOut {
				test.Fatalf("expected %s, got %s", testCase.expectedOut, output)
			}
			request := <-captured
			if request.idempotencyKey != "tx-1" || request.job.Name != "flash" || string(request.job.Payload) != `{"prompt":"rose"}` {
				test.Fatalf("unexpected request: %+v", request)
			}
		})
	}
}

func TestNewHTTPProviderRequiresEndpoint(test *testing.T) {
	test.Parallel()
	if _, err := NewHTTPProvider(" ", nil, time.Second); err == nil {
		test.Fatalf("expected an error for a blank endpoint")
	}
}
