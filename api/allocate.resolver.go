package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

type allocateRequest struct {
	Tickers []string `json:"tickers"`
	Capital float64  `json:"capital"`
}

type transactionsJson struct {
	Date   []string  `json:"date"`
	Order  []string  `json:"order"`
	Symbol []string  `json:"symbol"`
	Price  []float64 `json:"price"`
	Value  []float64 `json:"value"`
	Fee    []float64 `json:"fee"`
	Label  []string  `json:"label"`
}

type pricePointJson struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type backtestResultJson struct {
	Symbol            string           `json:"symbol"`
	InitialMoney      float64          `json:"initial_money"`
	Sharpe            float64          `json:"sharpe"`
	Volatility        float64          `json:"volatility"`
	FinalAccountValue float64          `json:"final_account_value"`
	Transactions      transactionsJson `json:"transactions"`
	History           []pricePointJson `json:"history"`
}

type allocateResponse struct {
	Ticker  string                        `json:"ticker"`
	Status  string                        `json:"status"`
	Results map[string]backtestResultJson `json:"results"`
}

func (m ApiHandler) allocate(c *gin.Context) {
	var requestBody allocateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 422)
		return
	}

	if len(requestBody.Tickers) == 0 {
		returnErrorJsonCode(fmt.Errorf("tickers cannot be empty"), c, 422)
		return
	}
	capital := requestBody.Capital
	if capital == 0 {
		capital = m.InitialMoney
	}
	if capital <= 0 {
		returnErrorJsonCode(fmt.Errorf("capital must be positive"), c, 422)
		return
	}

	symbols := []string{}
	for _, ticker := range requestBody.Tickers {
		symbol := strings.ToUpper(strings.TrimSpace(ticker))
		if symbol == "" {
			returnErrorJsonCode(fmt.Errorf("ticker symbols cannot be blank"), c, 422)
			return
		}
		symbols = append(symbols, symbol)
	}

	// duplicate tickers collapse into one result entry, same as the engine
	equalWeight := capital / float64(len(symbols))
	results := map[string]backtestResultJson{}
	for _, symbol := range symbols {
		if _, ok := results[symbol]; ok {
			continue
		}
		results[symbol] = runBacktest(symbol, equalWeight)
	}

	c.JSON(200, allocateResponse{
		Ticker:  strings.Join(symbols, ","),
		Status:  "ok",
		Results: results,
	})
}
