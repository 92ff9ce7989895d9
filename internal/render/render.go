// Package render writes the current result set to a terminal: a summary
// card per symbol, the transaction ledger as a table, and a line for the
// price history the chart component would consume.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"assetbot/internal/domain"
	"assetbot/internal/format"
)

// ChartSeries hands the chart collaborator its input: the pre-built sequence
// of date/price points for one symbol. May be empty; the chart renders an
// explicit no-data state for that.
func ChartSeries(result domain.BacktestResult) []domain.PricePoint {
	return result.History
}

// ResultSet renders every symbol in the response, following request order.
// A symbol whose ledger fails the alignment check still gets its summary
// metrics; only its table is replaced with the failure notice. Other symbols
// are unaffected.
func ResultSet(w io.Writer, response domain.AllocationResponse, requested []string) error {
	if response.Error != "" {
		_, err := fmt.Fprintf(w, "allocation failed: %s\n", response.Error)
		return err
	}

	for _, symbol := range response.OrderedSymbols(requested) {
		if err := card(w, response.Results[symbol]); err != nil {
			return err
		}
	}
	return nil
}

func card(w io.Writer, result domain.BacktestResult) error {
	fmt.Fprintf(w, "\nBacktest: %s\n", result.Symbol)
	fmt.Fprintf(w, "  Sharpe Ratio       %s\n", format.Sharpe(result.Sharpe))
	fmt.Fprintf(w, "  Annual Volatility  %s\n", format.Volatility(result.Volatility))
	fmt.Fprintf(w, "  Final Balance      %s\n", format.AccountValue(result.FinalAccountValue))

	history(w, ChartSeries(result))

	records, err := result.Transactions.Records()
	if err != nil {
		alignmentErr := domain.ColumnAlignmentError{}
		if errors.As(err, &alignmentErr) {
			fmt.Fprintf(w, "  transaction ledger unavailable: %v\n", err)
			return nil
		}
		return err
	}
	return table(w, records)
}

func history(w io.Writer, points []domain.PricePoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "  Price History      no data available")
		return
	}
	fmt.Fprintf(
		w,
		"  Price History      %d points, %s to %s\n",
		len(points),
		points[0].Date,
		points[len(points)-1].Date,
	)
}

func table(w io.Writer, records []domain.TransactionRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "  no transactions")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  DATE\tORDER\tPRICE\tVALUE\tFEE\tLABEL")
	for _, record := range records {
		fmt.Fprintf(
			tw,
			"  %s\t%s\t%s\t%s\t%s\t%s\n",
			record.Date,
			strings.ToUpper(record.Order),
			format.Currency(record.Price),
			format.Currency(record.Value),
			format.Currency(record.Fee),
			record.Label,
		)
	}
	return tw.Flush()
}
