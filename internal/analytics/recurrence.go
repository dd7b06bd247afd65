package analytics

import (
	"sort"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

const (
	FrequencyMonthly = "Monthly"
	FrequencyRegular = "Regular"
	FrequencyOneTime = "One-time"

	minRecurrence        = 2
	defaultIntervalDays  = 30
	confidencePerPayment = 15
	maxSalaryConfidence  = 100
)

type subscriptionKey struct {
	description string
	amount      float64
}

// incomeGroup aggregates income transactions sharing a description.
type incomeGroup struct {
	source string
	total  float64
	dates  []time.Time
}

func (g incomeGroup) count() int {
	return len(g.dates)
}

func (g incomeGroup) average() float64 {
	return g.total / float64(len(g.dates))
}

// DetectSubscriptions reports every expense repeated with the exact same
// description and amount at least twice, largest amount first.
func (e *Engine) DetectSubscriptions(txs []models.Transaction) (subs []models.RecurrenceEntry, err error) {
	defer guard("detect subscriptions", &err)

	counts := make(map[subscriptionKey]int)
	for _, tx := range txs {
		if tx.Amount < 0 {
			counts[subscriptionKey{tx.Description, tx.Amount}]++
		}
	}

	keys := make([]subscriptionKey, 0, len(counts))
	for k, n := range counts {
		if n >= minRecurrence {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].description != keys[j].description {
			return keys[i].description < keys[j].description
		}
		return keys[i].amount < keys[j].amount
	})

	subs = make([]models.RecurrenceEntry, 0, len(keys))
	for _, k := range keys {
		amount := -k.amount
		subs = append(subs, models.RecurrenceEntry{
			Name:        k.description,
			Amount:      round2(amount),
			Total:       round2(amount * float64(counts[k])),
			Occurrences: counts[k],
			Frequency:   FrequencyMonthly,
		})
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Amount > subs[j].Amount
	})
	return subs, nil
}

// DetectIncomePatterns groups income by source, largest total first.
func (e *Engine) DetectIncomePatterns(txs []models.Transaction) (patterns []models.RecurrenceEntry, err error) {
	defer guard("detect income patterns", &err)

	groups := groupIncome(txs)
	patterns = make([]models.RecurrenceEntry, 0, len(groups))
	for _, g := range groups {
		frequency := FrequencyOneTime
		if g.count() >= minRecurrence {
			frequency = FrequencyRegular
		}
		patterns = append(patterns, models.RecurrenceEntry{
			Name:        g.source,
			Amount:      round2(g.average()),
			Total:       round2(g.total),
			Occurrences: g.count(),
			Frequency:   frequency,
		})
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Total > patterns[j].Total
	})
	return patterns, nil
}

// PredictSalary treats the recurring income source with the highest average
// payment as the salary and estimates when the next payment is due.
func (e *Engine) PredictSalary(txs []models.Transaction) (prediction models.SalaryPrediction, err error) {
	defer guard("predict salary", &err)

	if len(txs) == 0 {
		return models.SalaryPrediction{}, ErrNoTransactions
	}
	groups := groupIncome(txs)
	if len(groups) == 0 {
		return models.SalaryPrediction{}, ErrNoIncome
	}

	var salary *incomeGroup
	for i := range groups {
		g := &groups[i]
		if g.count() < minRecurrence {
			continue
		}
		if salary == nil || g.average() > salary.average() {
			salary = g
		}
	}
	if salary == nil {
		return models.SalaryPrediction{}, ErrNoRecurringIncome
	}

	dates := make([]time.Time, len(salary.dates))
	copy(dates, salary.dates)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	interval := float64(defaultIntervalDays)
	if len(dates) > 1 {
		var sum int
		for i := 1; i < len(dates); i++ {
			sum += daysBetween(dates[i-1], dates[i])
		}
		interval = float64(sum) / float64(len(dates)-1)
	}

	last := dates[len(dates)-1]
	next := last.Add(time.Duration(interval * hoursPerDay * float64(time.Hour)))
	now := e.now()

	delayed := now.After(next)
	daysLate := 0
	if delayed {
		daysLate = max(0, floorDays(now.Sub(next)))
	}

	return models.SalaryPrediction{
		Source:          salary.source,
		ExpectedAmount:  round2(salary.average()),
		NextDate:        next.Format(dateLayout),
		LastDate:        last.Format(dateLayout),
		AvgIntervalDays: round1(interval),
		IsDelayed:       delayed,
		DaysLate:        daysLate,
		Confidence:      min(maxSalaryConfidence, salary.count()*confidencePerPayment),
	}, nil
}

// groupIncome returns income groups ordered by source description.
func groupIncome(txs []models.Transaction) []incomeGroup {
	index := make(map[string]int)
	var groups []incomeGroup
	for _, tx := range txs {
		if tx.Amount <= 0 {
			continue
		}
		i, ok := index[tx.Description]
		if !ok {
			i = len(groups)
			index[tx.Description] = i
			groups = append(groups, incomeGroup{source: tx.Description})
		}
		groups[i].total += tx.Amount
		groups[i].dates = append(groups[i].dates, calendarDay(tx.Date))
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].source < groups[j].source
	})
	return groups
}
