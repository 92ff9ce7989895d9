package integration_tests

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetbot/api"
	"assetbot/internal/app"
	"assetbot/internal/export"
	"assetbot/internal/render"
	"assetbot/pkg/allocation"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/require"
)

func newStubService(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(api.ApiHandler{InitialMoney: 100000}.Router())
	t.Cleanup(server.Close)
	return server
}

func Test_AllocateEndToEnd(t *testing.T) {
	server := newStubService(t)
	client := allocation.NewClient(server.URL, 10*time.Second)
	handler := &app.AllocateHandler{Client: client}

	resultSet, err := handler.Run(context.Background(), []string{"aapl", "MSFT"}, 100000)
	require.NoError(t, err)
	require.NotNil(t, resultSet)
	require.Len(t, resultSet.Response.Results, 2)

	t.Run("results render without error", func(t *testing.T) {
		buf := bytes.Buffer{}
		require.NoError(t, render.ResultSet(&buf, resultSet.Response, resultSet.Requested))
		require.Contains(t, buf.String(), "Backtest: AAPL")
		require.Contains(t, buf.String(), "Backtest: MSFT")
	})

	t.Run("exported csv re-parses with the same row count", func(t *testing.T) {
		result := resultSet.Response.Results["AAPL"]
		records, err := result.Transactions.Records()
		require.NoError(t, err)

		artifact, err := export.Ledger(records, "AAPL")
		require.NoError(t, err)
		if artifact == nil {
			t.Skip("synthetic walk produced no trades for AAPL")
		}
		require.Equal(t, "AAPL_backtest.csv", artifact.Filename)

		type row struct {
			Date  string `csv:"Date"`
			Order string `csv:"Order"`
			Price string `csv:"Price"`
			Value string `csv:"Value"`
			Fee   string `csv:"Fee"`
			Label string `csv:"Label"`
		}
		rows := []row{}
		require.NoError(t, gocsv.UnmarshalBytes(artifact.Content, &rows))
		require.Len(t, rows, len(records))
		for _, r := range rows {
			require.NotEmpty(t, r.Date)
			require.Contains(t, []string{"buy", "sell"}, r.Order)
		}
	})

	t.Run("two submissions yield identical results", func(t *testing.T) {
		again, err := handler.Run(context.Background(), []string{"aapl", "MSFT"}, 100000)
		require.NoError(t, err)
		require.Equal(t, resultSet.Response, again.Response)
	})
}

func Test_ErrorClassificationEndToEnd(t *testing.T) {
	server := newStubService(t)

	t.Run("429 surfaces as RateLimitedError", func(t *testing.T) {
		client := forcedClient(server.URL, "429", false)
		_, err := client.Submit(context.Background(), []string{"AAPL"}, 100000)
		rateLimited := allocation.RateLimitedError{}
		require.True(t, errors.As(err, &rateLimited))
	})

	t.Run("500 with detail surfaces as ApiError", func(t *testing.T) {
		client := forcedClient(server.URL, "500", false)
		_, err := client.Submit(context.Background(), []string{"AAPL"}, 100000)
		apiErr := allocation.ApiError{}
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "forced failure for testing", apiErr.Detail)
	})

	t.Run("500 with plain body surfaces generic ApiError", func(t *testing.T) {
		client := forcedClient(server.URL, "500", true)
		_, err := client.Submit(context.Background(), []string{"AAPL"}, 100000)
		apiErr := allocation.ApiError{}
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "allocation request failed", apiErr.Detail)
	})
}

// forcedClient wraps the real client's transport so every request carries
// the stub's forced-status headers.
func forcedClient(baseURL, status string, plainBody bool) allocation.Client {
	client := allocation.NewClient(baseURL, 10*time.Second)
	client.HttpClient.Transport = headerTransport{status: status, plainBody: plainBody}
	return client
}

type headerTransport struct {
	status    string
	plainBody bool
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Force-Status", h.status)
	if h.plainBody {
		req.Header.Set("X-Force-Plain-Body", "1")
	}
	return http.DefaultTransport.RoundTrip(req)
}
