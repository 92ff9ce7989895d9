package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func postAllocate(t *testing.T, router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/allocate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func Test_allocate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := ApiHandler{InitialMoney: 100000}.Router()

	t.Run("returns one aligned result per unique symbol", func(t *testing.T) {
		recorder := postAllocate(t, router, `{"tickers":["aapl","MSFT","AAPL"],"capital":90000}`, nil)
		require.Equal(t, 200, recorder.Code)

		response := allocateResponse{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Equal(t, "ok", response.Status)
		require.Len(t, response.Results, 2)

		for symbol, result := range response.Results {
			require.Equal(t, symbol, result.Symbol)
			require.Equal(t, 30000.0, result.InitialMoney)
			require.NotEmpty(t, result.History)
			require.GreaterOrEqual(t, result.Volatility, 0.0)

			n := len(result.Transactions.Date)
			require.Len(t, result.Transactions.Order, n)
			require.Len(t, result.Transactions.Symbol, n)
			require.Len(t, result.Transactions.Price, n)
			require.Len(t, result.Transactions.Value, n)
			require.Len(t, result.Transactions.Fee, n)
			require.Len(t, result.Transactions.Label, n)
		}
	})

	t.Run("deterministic for the same symbol", func(t *testing.T) {
		first := postAllocate(t, router, `{"tickers":["GOOG"],"capital":50000}`, nil)
		second := postAllocate(t, router, `{"tickers":["GOOG"],"capital":50000}`, nil)
		require.Equal(t, 200, first.Code)
		require.Equal(
			t,
			"",
			cmp.Diff(first.Body.String(), second.Body.String()),
		)
	})

	t.Run("validation failures return 422 with detail", func(t *testing.T) {
		cases := []string{
			`{"tickers":[],"capital":1000}`,
			`{"tickers":["  "],"capital":1000}`,
			`{"tickers":["AAPL"],"capital":-5}`,
			`not json`,
		}
		for _, body := range cases {
			recorder := postAllocate(t, router, body, nil)
			require.Equal(t, 422, recorder.Code, body)

			errBody := map[string]string{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errBody))
			require.NotEmpty(t, errBody["detail"])
		}
	})

	t.Run("forced status hook", func(t *testing.T) {
		recorder := postAllocate(t, router, `{"tickers":["AAPL"],"capital":1000}`, map[string]string{
			"X-Force-Status": "429",
		})
		require.Equal(t, 429, recorder.Code)

		recorder = postAllocate(t, router, `{"tickers":["AAPL"],"capital":1000}`, map[string]string{
			"X-Force-Status":     "500",
			"X-Force-Plain-Body": "1",
		})
		require.Equal(t, 500, recorder.Code)
		require.Equal(t, "internal failure", recorder.Body.String())
	})
}
