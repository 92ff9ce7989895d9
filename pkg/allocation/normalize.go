package allocation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"assetbot/internal/domain"
)

// Normalize maps whichever wire shape the server sent into the canonical
// results-keyed form. Shape detection is structural: a "results" mapping
// wins; otherwise a flat body carrying "symbol" and "transactions" is
// treated as the legacy single-symbol generation and wrapped into a
// one-entry map. Anything else is malformed.
func Normalize(raw RawResponse) (*domain.AllocationResponse, error) {
	probe := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, MalformedResponseError{Reason: fmt.Sprintf("body is not a JSON object: %v", err)}
	}

	if results, ok := probe["results"]; ok {
		if !isJsonObject(results) {
			return nil, MalformedResponseError{Reason: "\"results\" is present but not a mapping"}
		}
		return normalizeMulti(raw)
	}

	_, hasSymbol := probe["symbol"]
	_, hasTransactions := probe["transactions"]
	if hasSymbol && hasTransactions {
		return normalizeLegacySingle(raw)
	}

	return nil, MalformedResponseError{Reason: "body has neither a \"results\" mapping nor a top-level symbol+transactions pair"}
}

func normalizeMulti(raw RawResponse) (*domain.AllocationResponse, error) {
	envelope := wireMultiEnvelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, MalformedResponseError{Reason: fmt.Sprintf("failed to decode results mapping: %v", err)}
	}

	out := &domain.AllocationResponse{
		Ticker:  envelope.Ticker,
		Status:  envelope.Status,
		Results: map[string]domain.BacktestResult{},
	}
	if envelope.Error != nil {
		out.Error = *envelope.Error
	}

	for symbol, result := range envelope.Results {
		converted, err := convertResult(symbol, result)
		if err != nil {
			return nil, err
		}
		out.Results[symbol] = *converted
	}

	if len(out.Results) == 0 && out.Error == "" {
		return nil, MalformedResponseError{Reason: "results mapping is empty and no error was reported"}
	}

	return out, nil
}

func normalizeLegacySingle(raw RawResponse) (*domain.AllocationResponse, error) {
	result := wireResult{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, MalformedResponseError{Reason: fmt.Sprintf("failed to decode single-symbol body: %v", err)}
	}
	if result.Symbol == "" {
		return nil, MalformedResponseError{Reason: "single-symbol body has an empty symbol"}
	}

	converted, err := convertResult(result.Symbol, result)
	if err != nil {
		return nil, err
	}

	return &domain.AllocationResponse{
		Results: map[string]domain.BacktestResult{
			result.Symbol: *converted,
		},
	}, nil
}

func convertResult(symbol string, in wireResult) (*domain.BacktestResult, error) {
	required := map[string]*float64{
		"sharpe":              in.Sharpe,
		"volatility":          in.Volatility,
		"final_account_value": in.FinalAccountValue,
	}
	for field, value := range required {
		if value == nil {
			return nil, MalformedResponseError{Reason: fmt.Sprintf("result %q is missing required field %q", symbol, field)}
		}
	}
	if in.Transactions == nil {
		return nil, MalformedResponseError{Reason: fmt.Sprintf("result %q is missing transactions", symbol)}
	}

	out := &domain.BacktestResult{
		Symbol:            symbol,
		Sharpe:            *in.Sharpe,
		Volatility:        *in.Volatility,
		FinalAccountValue: *in.FinalAccountValue,
		Transactions: domain.TransactionColumns{
			Date:  in.Transactions.Date,
			Order: in.Transactions.Order,
			Price: in.Transactions.Price,
			Value: in.Transactions.Value,
			Fee:   in.Transactions.Fee,
			Label: in.Transactions.Label,
		},
	}
	if in.Symbol != "" {
		out.Symbol = in.Symbol
	}
	if in.InitialMoney != nil {
		out.InitialMoney = *in.InitialMoney
	}
	for _, point := range in.History {
		out.History = append(out.History, domain.PricePoint{
			Date:  point.Date,
			Price: point.Price,
		})
	}
	return out, nil
}

func isJsonObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
