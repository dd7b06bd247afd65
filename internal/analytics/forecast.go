package analytics

import (
	"sort"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

const forecastBand = 0.05

// Forecast extrapolates the cumulative daily balance linearly for the next
// days, each point carrying a naive ±5% band.
func (e *Engine) Forecast(txs []models.Transaction, days int) (points []models.ForecastPoint, err error) {
	defer guard("forecast", &err)

	points = []models.ForecastPoint{}
	if len(txs) == 0 || days <= 0 {
		return points, nil
	}

	// Aggregate signed amounts per calendar day
	daily := make(map[time.Time]float64)
	for _, tx := range txs {
		daily[calendarDay(tx.Date)] += tx.Amount
	}
	dates := make([]time.Time, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var firstBalance, lastBalance float64
	for i, d := range dates {
		lastBalance += daily[d]
		if i == 0 {
			firstBalance = lastBalance
		}
	}

	firstDate, lastDate := dates[0], dates[len(dates)-1]
	var trend float64
	if elapsed := daysBetween(firstDate, lastDate); elapsed > 0 {
		trend = (lastBalance - firstBalance) / float64(elapsed)
	}

	for i := 1; i <= days; i++ {
		estimate := lastBalance + trend*float64(i)
		points = append(points, models.ForecastPoint{
			Date:     lastDate.AddDate(0, 0, i).Format(dateLayout),
			Estimate: round2(estimate),
			Lower:    round2(estimate * (1 - forecastBand)),
			Upper:    round2(estimate * (1 + forecastBand)),
		})
	}
	return points, nil
}

// ProjectSavings projects the balance month by month at the current
// monthly savings pace, starting at the month of the last transaction.
func (e *Engine) ProjectSavings(txs []models.Transaction, months int) (projections []models.SavingsProjection, err error) {
	defer guard("project savings", &err)

	projections = []models.SavingsProjection{}
	if len(txs) == 0 || months < 0 {
		return projections, nil
	}

	savings := monthlySavings(txs)
	balance := netBalance(txs)
	_, lastDate := dateBounds(txs)

	for i := 0; i <= months; i++ {
		projections = append(projections, models.SavingsProjection{
			Month:            addMonths(lastDate, i).Format(monthLayout),
			ProjectedBalance: round2(balance + savings*float64(i)),
			MonthlySavings:   round2(savings),
		})
	}
	return projections, nil
}
