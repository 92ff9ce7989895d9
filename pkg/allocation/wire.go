package allocation

import "encoding/json"

// The service has shipped two response generations without a version marker:
// an older flat single-symbol body, and the current keyed multi-symbol body.
// Both are accepted here and nowhere else; everything past Normalize sees
// only domain.AllocationResponse.

type allocationRequest struct {
	Tickers []string `json:"tickers"`
	Capital float64  `json:"capital"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// RawResponse is the unvalidated 2xx body as it came off the wire. Shape
// validation happens in Normalize, not in the client.
type RawResponse = json.RawMessage

type wirePricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// wireTransactions mirrors the columnar ledger. The backend also emits a
// per-row symbol column; it is redundant with the result key and dropped.
type wireTransactions struct {
	Date   []string  `json:"date"`
	Order  []string  `json:"order"`
	Symbol []string  `json:"symbol"`
	Price  []float64 `json:"price"`
	Value  []float64 `json:"value"`
	Fee    []float64 `json:"fee"`
	Label  []string  `json:"label"`
}

// wireResult uses pointers for the required numeric fields so that a field
// the server omitted is distinguishable from a genuine zero.
type wireResult struct {
	Symbol            string            `json:"symbol"`
	InitialMoney      *float64          `json:"initial_money"`
	Sharpe            *float64          `json:"sharpe"`
	Volatility        *float64          `json:"volatility"`
	FinalAccountValue *float64          `json:"final_account_value"`
	Transactions      *wireTransactions `json:"transactions"`
	History           []wirePricePoint  `json:"history"`
}

type wireMultiEnvelope struct {
	Ticker  string                `json:"ticker"`
	Status  string                `json:"status"`
	Error   *string               `json:"error"`
	Results map[string]wireResult `json:"results"`
}
