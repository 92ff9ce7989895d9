package allocation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTimeout = 30 * time.Second

// Client talks to the allocation service. One Submit call performs exactly
// one outbound request; retry policy belongs to the caller.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HttpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit validates the inputs, POSTs them to /allocate, and returns the raw
// 2xx body. Failures come back as exactly one of ValidationError,
// NetworkError, RateLimitedError or ApiError.
func (c Client) Submit(ctx context.Context, tickers []string, capital float64) (RawResponse, error) {
	cleaned, err := cleanTickers(tickers)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(capital) || math.IsInf(capital, 0) || capital <= 0 {
		return nil, ValidationError{Message: fmt.Sprintf("capital must be a positive amount, got %v", capital)}
	}

	requestBody, err := json.Marshal(allocationRequest{
		Tickers: cleaned,
		Capital: capital,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal allocation request: %w", err)
	}

	url := c.BaseURL + "/allocate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build allocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, NetworkError{Err: err}
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode == http.StatusTooManyRequests {
		return nil, RateLimitedError{}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		errJson := errorBody{}
		if err := json.Unmarshal(responseBytes, &errJson); err != nil || errJson.Detail == "" {
			return nil, ApiError{StatusCode: response.StatusCode, Detail: "allocation request failed"}
		}
		return nil, ApiError{StatusCode: response.StatusCode, Detail: errJson.Detail}
	}

	return RawResponse(responseBytes), nil
}

// cleanTickers enforces the request invariant: at least one symbol, each
// non-empty after trimming, uppercased for transmission. Duplicates pass
// through untouched.
func cleanTickers(tickers []string) ([]string, error) {
	if len(tickers) == 0 {
		return nil, ValidationError{Message: "at least one ticker is required"}
	}
	cleaned := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		trimmed := strings.ToUpper(strings.TrimSpace(ticker))
		if trimmed == "" {
			return nil, ValidationError{Message: "ticker symbols cannot be blank"}
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned, nil
}
