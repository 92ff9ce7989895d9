package api

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// The synthetic engine: a seeded random walk per symbol plus the same
// moving-average crossover strategy the hosted engine runs. Seeding by
// symbol keeps every response deterministic, which the integration tests
// rely on.

const (
	simHistoryDays = 540
	simFeeRate     = 0.001
	simShortWindow = 21
	simLongWindow  = 50
	simRiskFree    = 0.02
	simTradingDays = 252
)

var simAnchor = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func runBacktest(symbol string, initialMoney float64) backtestResultJson {
	seeder := fnv.New64a()
	seeder.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(seeder.Sum64())))

	dates := []string{}
	prices := []float64{}
	price := 40 + float64(seeder.Sum64()%360)
	for day := 0; day < simHistoryDays; day++ {
		date := simAnchor.AddDate(0, 0, day)
		if !weekday(date) {
			continue
		}
		dailyReturn := rng.NormFloat64()*0.018 + 0.0004
		price = math.Max(price*(1+dailyReturn), 1)
		dates = append(dates, date.Format(time.DateOnly))
		prices = append(prices, round2(price))
	}

	transactions := transactionsJson{
		Date:   []string{},
		Order:  []string{},
		Symbol: []string{},
		Price:  []float64{},
		Value:  []float64{},
		Fee:    []float64{},
		Label:  []string{},
	}

	weight := 0.0
	accountValue := initialMoney
	accountBalance := initialMoney
	share := 0.0
	accountValues := []float64{accountValue}

	for i := simLongWindow; i < len(prices); i++ {
		maShort := movingAverage(prices, i, simShortWindow)
		maLong := movingAverage(prices, i, simLongWindow)

		switch {
		case maShort > maLong && weight < 0.5:
			weight, share, accountValue, accountBalance = order(
				&transactions, symbol, dates[i], prices[i],
				weight, accountValue, 0.99, "MA_CROSS_UP",
			)
		case maShort < maLong && weight > 0.5:
			weight, share, accountValue, accountBalance = order(
				&transactions, symbol, dates[i], prices[i],
				weight, accountValue, 0, "MA_CROSS_DOWN",
			)
		default:
			positionValue := share * prices[i]
			accountValue = accountBalance + positionValue
			if accountValue > 0 {
				weight = positionValue / accountValue
			}
		}
		accountValues = append(accountValues, accountValue)
	}

	sharpe, volatility := performance(accountValues)

	history := make([]pricePointJson, 0, len(prices))
	for i := range prices {
		history = append(history, pricePointJson{Date: dates[i], Price: prices[i]})
	}

	return backtestResultJson{
		Symbol:            symbol,
		InitialMoney:      initialMoney,
		Sharpe:            sharpe,
		Volatility:        volatility,
		FinalAccountValue: round2(accountValue),
		Transactions:      transactions,
		History:           history,
	}
}

func order(
	transactions *transactionsJson,
	symbol, date string,
	price, oldWeight, accountValue, newWeight float64,
	label string,
) (weight, share, newAccountValue, accountBalance float64) {
	valueChange := accountValue * (newWeight - oldWeight)
	fee := math.Abs(valueChange * simFeeRate)

	side := "buy"
	if valueChange < 0 {
		side = "sell"
	}

	transactions.Date = append(transactions.Date, date)
	transactions.Order = append(transactions.Order, side)
	transactions.Symbol = append(transactions.Symbol, symbol)
	transactions.Price = append(transactions.Price, price)
	transactions.Value = append(transactions.Value, round2(valueChange))
	transactions.Fee = append(transactions.Fee, round2(fee))
	transactions.Label = append(transactions.Label, label)

	newAccountValue = accountValue - fee
	positionValue := newWeight * newAccountValue
	return newWeight, positionValue / price, newAccountValue, newAccountValue - positionValue
}

func movingAverage(prices []float64, end, window int) float64 {
	start := end - window
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, p := range prices[start:end] {
		sum += p
	}
	return sum / float64(end-start)
}

func performance(accountValues []float64) (sharpe, volatility float64) {
	returns := []float64{}
	for i := 1; i < len(accountValues); i++ {
		if accountValues[i-1] != 0 {
			returns = append(returns, accountValues[i]/accountValues[i-1]-1)
		}
	}
	if len(returns) < 2 {
		return 0, 0
	}

	std, err := stats.StandardDeviationSample(stats.Float64Data(returns))
	if err != nil {
		return 0, 0
	}
	volatility = std * math.Sqrt(simTradingDays)

	mean, err := stats.Mean(stats.Float64Data(returns))
	if err != nil || volatility == 0 {
		return 0, volatility
	}
	sharpe = (mean*simTradingDays - simRiskFree) / volatility
	return sharpe, volatility
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
