package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// ForecastPoint is one projected month
type ForecastPoint struct {
	Month     time.Time       `json:"month"`
	Projected decimal.Decimal `json:"projected"`
}

// Forecast is a linear projection of monthly net figures
type Forecast struct {
	History   []MonthlyFlow   `json:"history"`
	Slope     decimal.Decimal `json:"slope"`
	Intercept decimal.Decimal `json:"intercept"`
	Points    []ForecastPoint `json:"points"`
}

// ErrInsufficientData is returned when fewer than two history points exist
var ErrInsufficientData = shared.NewDomainError("INSUFFICIENT_DATA", "At least two months of history are required for a forecast")

// LinearForecast fits an ordinary least-squares line y = a + b*x through the
// monthly net values (x = month index) and projects the next `months` values.
// Projections are rounded to two decimals.
func LinearForecast(history []MonthlyFlow, months int) (*Forecast, error) {
	n := len(history)
	if n < 2 {
		return nil, ErrInsufficientData
	}
	if months <= 0 {
		months = 3
	}

	// OLS over (i, net_i): b = (n*Σxy - Σx*Σy) / (n*Σx² - (Σx)²), a = ȳ - b*x̄
	var sumX, sumY, sumXY, sumXX decimal.Decimal
	for i, m := range history {
		x := decimal.NewFromInt(int64(i))
		y := m.Net
		sumX = sumX.Add(x)
		sumY = sumY.Add(y)
		sumXY = sumXY.Add(x.Mul(y))
		sumXX = sumXX.Add(x.Mul(x))
	}

	nDec := decimal.NewFromInt(int64(n))
	denom := nDec.Mul(sumXX).Sub(sumX.Mul(sumX))
	if denom.IsZero() {
		return nil, ErrInsufficientData
	}
	slope := nDec.Mul(sumXY).Sub(sumX.Mul(sumY)).Div(denom)
	intercept := sumY.Sub(slope.Mul(sumX)).Div(nDec)

	lastMonth := history[n-1].Month
	points := make([]ForecastPoint, 0, months)
	for k := 1; k <= months; k++ {
		x := decimal.NewFromInt(int64(n - 1 + k))
		points = append(points, ForecastPoint{
			Month:     lastMonth.AddDate(0, k, 0),
			Projected: intercept.Add(slope.Mul(x)).Round(2),
		})
	}

	return &Forecast{
		History:   history,
		Slope:     slope.Round(4),
		Intercept: intercept.Round(4),
		Points:    points,
	}, nil
}
