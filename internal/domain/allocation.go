package domain

import (
	"fmt"
	"sort"
	"strings"
)

// PricePoint is one observation of a symbol's price history. The chart
// component consumes these in chronological order.
type PricePoint struct {
	Date  string
	Price float64
}

// TransactionColumns is the column-oriented ledger for one symbol, as the
// backtest service reports it. Index i across all six columns describes one
// logical transaction.
type TransactionColumns struct {
	Date  []string
	Order []string
	Price []float64
	Value []float64
	Fee   []float64
	Label []string
}

// ColumnAlignmentError indicates the six ledger columns do not share one
// length. Rows cannot be derived from misaligned columns.
type ColumnAlignmentError struct {
	DateLen  int
	OrderLen int
	PriceLen int
	ValueLen int
	FeeLen   int
	LabelLen int
}

func (e ColumnAlignmentError) Error() string {
	return fmt.Sprintf(
		"transaction columns misaligned: date=%d order=%d price=%d value=%d fee=%d label=%d",
		e.DateLen, e.OrderLen, e.PriceLen, e.ValueLen, e.FeeLen, e.LabelLen,
	)
}

// TransactionRecord is one row of the ledger, derived from the columns.
// Records are rebuilt on every render or export and never stored.
type TransactionRecord struct {
	Date  string
	Order string
	Price float64
	Value float64
	Fee   float64
	Label string
}

// Records converts the columnar ledger into row records, one per index.
// All six columns must have equal length; otherwise it fails with
// ColumnAlignmentError and returns no rows at all - truncating or padding
// would silently mix up transactions.
func (t TransactionColumns) Records() ([]TransactionRecord, error) {
	n := len(t.Date)
	if len(t.Order) != n || len(t.Price) != n || len(t.Value) != n ||
		len(t.Fee) != n || len(t.Label) != n {
		return nil, ColumnAlignmentError{
			DateLen:  len(t.Date),
			OrderLen: len(t.Order),
			PriceLen: len(t.Price),
			ValueLen: len(t.Value),
			FeeLen:   len(t.Fee),
			LabelLen: len(t.Label),
		}
	}

	records := make([]TransactionRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, TransactionRecord{
			Date:  t.Date[i],
			Order: t.Order[i],
			Price: t.Price[i],
			Value: t.Value[i],
			Fee:   t.Fee[i],
			Label: t.Label[i],
		})
	}
	return records, nil
}

// BacktestResult holds everything the service computed for one symbol.
// It is immutable once normalized; a new submission replaces it wholly.
type BacktestResult struct {
	Symbol            string
	InitialMoney      float64
	Sharpe            float64
	Volatility        float64
	FinalAccountValue float64
	Transactions      TransactionColumns
	History           []PricePoint
}

// AllocationResponse is the canonical shape every server response is
// normalized into, regardless of which wire shape arrived.
type AllocationResponse struct {
	// Ticker and Status are portfolio-level metadata some server versions
	// include.
	Ticker string
	Status string

	Results map[string]BacktestResult

	// Error is set only when the call failed at the application level.
	Error string
}

// OrderedSymbols returns the result keys following the request order where
// derivable. Requested tickers are matched case-insensitively since result
// keys are uppercased by the service. Symbols the server returned but the
// caller never asked for are appended sorted, so display order stays
// deterministic.
func (r AllocationResponse) OrderedSymbols(requested []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, ticker := range requested {
		symbol := strings.ToUpper(strings.TrimSpace(ticker))
		if _, ok := r.Results[symbol]; ok && !seen[symbol] {
			out = append(out, symbol)
			seen[symbol] = true
		}
	}
	extras := []string{}
	for symbol := range r.Results {
		if !seen[symbol] {
			extras = append(extras, symbol)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}
