package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	JobKindGeneration = "generation"
	JobKindAction     = "action"

	maxProviderResponseBytes = 1 << 20
)

// ErrProviderFailed marks a failed paid job; the charge for it is refunded.
var ErrProviderFailed = errors.New("generation provider failed")

// Job is one paid unit of work handed to the provider. Payload is forwarded untouched.
type Job struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name"`
	UserID   string          `json:"user_id"`
	ChargeID string          `json:"charge_id"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// GenerationProvider performs the external image work bought with INK.
type GenerationProvider interface {
	Run(ctx context.Context, job Job) (json.RawMessage, error)
}

// HTTPProvider posts jobs to a provider endpoint as JSON.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
}

// NewHTTPProvider builds a provider for endpoint. A nil client gets one bounded by timeout.
func NewHTTPProvider(endpoint string, client *http.Client, timeout time.Duration) (*HTTPProvider, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("provider url is required")
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPProvider{endpoint: endpoint, client: client}, nil
}

func (provider *HTTPProvider) Run(ctx context.Context, job Job) (json.RawMessage, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("%w: encode job: %v", ErrProviderFailed, err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Idempotency-Key", job.ChargeID)

	response, err := provider.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxProviderResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrProviderFailed, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrProviderFailed, response.StatusCode)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrProviderFailed)
	}
	return json.RawMessage(raw), nil
}
