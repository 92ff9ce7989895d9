package export

import (
	"fmt"

	"assetbot/internal/domain"
	"assetbot/internal/format"

	"github.com/gocarina/gocsv"
)

// Artifact is a downloadable file: content plus the suggested filename and
// MIME type. How it reaches the user (browser download, local write) is the
// caller's concern.
type Artifact struct {
	Filename string
	MIMEType string
	Content  []byte
}

type ledgerRow struct {
	Date  string `csv:"Date"`
	Order string `csv:"Order"`
	Price string `csv:"Price"`
	Value string `csv:"Value"`
	Fee   string `csv:"Fee"`
	Label string `csv:"Label"`
}

// Ledger serializes one symbol's transaction records to CSV. Numeric cells
// are fixed at two decimals. An empty record sequence produces no artifact
// and no error - there is nothing to download.
func Ledger(records []domain.TransactionRecord, symbol string) (*Artifact, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]ledgerRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, ledgerRow{
			Date:  record.Date,
			Order: record.Order,
			Price: format.Currency(record.Price),
			Value: format.Currency(record.Value),
			Fee:   format.Currency(record.Fee),
			Label: record.Label,
		})
	}

	content, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal csv for %s: %w", symbol, err)
	}

	return &Artifact{
		Filename: fmt.Sprintf("%s_backtest.csv", symbol),
		MIMEType: "text/csv",
		Content:  content,
	}, nil
}
