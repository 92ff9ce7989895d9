package render

import (
	"bytes"
	"testing"

	"assetbot/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_ResultSet(t *testing.T) {
	aligned := domain.BacktestResult{
		Symbol:            "AAPL",
		Sharpe:            1.2,
		Volatility:        0.18,
		FinalAccountValue: 125000,
		Transactions: domain.TransactionColumns{
			Date:  []string{"2025-01-02"},
			Order: []string{"buy"},
			Price: []float64{187.23},
			Value: []float64{98901.2},
			Fee:   []float64{98.9},
			Label: []string{"MA_CROSS_UP"},
		},
		History: []domain.PricePoint{
			{Date: "2025-01-02", Price: 187.23},
			{Date: "2025-01-03", Price: 188.11},
		},
	}

	t.Run("renders metrics, history and ledger", func(t *testing.T) {
		buf := bytes.Buffer{}
		err := ResultSet(&buf, domain.AllocationResponse{
			Results: map[string]domain.BacktestResult{"AAPL": aligned},
		}, []string{"AAPL"})
		require.NoError(t, err)

		out := buf.String()
		require.Contains(t, out, "Backtest: AAPL")
		require.Contains(t, out, "1.20")
		require.Contains(t, out, "18.0%")
		require.Contains(t, out, "$125,000.00")
		require.Contains(t, out, "2 points, 2025-01-02 to 2025-01-03")
		require.Contains(t, out, "BUY")
		require.Contains(t, out, "MA_CROSS_UP")
	})

	t.Run("empty history renders explicit no-data state", func(t *testing.T) {
		result := aligned
		result.History = nil

		buf := bytes.Buffer{}
		err := ResultSet(&buf, domain.AllocationResponse{
			Results: map[string]domain.BacktestResult{"AAPL": result},
		}, []string{"AAPL"})
		require.NoError(t, err)
		require.Contains(t, buf.String(), "no data available")
	})

	t.Run("misaligned ledger isolates that symbol only", func(t *testing.T) {
		broken := aligned
		broken.Symbol = "MSFT"
		broken.Transactions.Fee = nil

		buf := bytes.Buffer{}
		err := ResultSet(&buf, domain.AllocationResponse{
			Results: map[string]domain.BacktestResult{
				"AAPL": aligned,
				"MSFT": broken,
			},
		}, []string{"AAPL", "MSFT"})
		require.NoError(t, err)

		out := buf.String()
		// the broken symbol still shows its metrics
		require.Contains(t, out, "Backtest: MSFT")
		require.Contains(t, out, "transaction ledger unavailable")
		// the healthy symbol's ledger is intact
		require.Contains(t, out, "MA_CROSS_UP")
	})

	t.Run("application error renders a single message", func(t *testing.T) {
		buf := bytes.Buffer{}
		err := ResultSet(&buf, domain.AllocationResponse{Error: "no data for ticker"}, nil)
		require.NoError(t, err)
		require.Equal(t, "allocation failed: no data for ticker\n", buf.String())
	})
}
