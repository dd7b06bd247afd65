package analytics

import (
	"sync"

	"github.com/Dan9191/finsight/internal/models"
)

// Report runs every analytic over the same history concurrently. A failing
// section is reported in Errors and does not affect the others.
func (e *Engine) Report(txs []models.Transaction, goals []models.Goal) models.Report {
	var (
		report models.Report
		mu     sync.Mutex
		wg     sync.WaitGroup
	)

	fail := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if report.Errors == nil {
			report.Errors = make(map[string]string)
		}
		report.Errors[section] = err.Error()
	}

	run := func(section string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(section, err)
			}
		}()
	}

	run("summary", func() error {
		s, err := e.Summarize(txs, nil)
		if err != nil {
			return err
		}
		report.Summary = &s
		report.Suggestions = e.InvestmentSuggestions(s)
		return nil
	})
	run("forecast", func() (err error) {
		report.Forecast, err = e.Forecast(txs, DefaultForecastDays)
		return err
	})
	run("savings_projection", func() (err error) {
		report.Savings, err = e.ProjectSavings(txs, DefaultProjectionMonths)
		return err
	})
	run("subscriptions", func() (err error) {
		report.Subscriptions, err = e.DetectSubscriptions(txs)
		return err
	})
	run("income_patterns", func() (err error) {
		report.Income, err = e.DetectIncomePatterns(txs)
		return err
	})
	run("salary", func() error {
		p, err := e.PredictSalary(txs)
		if err != nil {
			return err
		}
		report.Salary = &p
		return nil
	})
	run("emergencies", func() error {
		r, err := e.DetectEmergencies(txs)
		if err != nil {
			return err
		}
		report.Emergencies = &r
		return nil
	})
	run("personality", func() error {
		p, err := e.ClassifyPersonality(txs)
		if err != nil {
			return err
		}
		report.Personality = &p
		return nil
	})
	run("budget", func() error {
		b, err := e.GenerateBudget(txs, goals)
		if err != nil {
			return err
		}
		report.Budget = &b
		return nil
	})

	wg.Wait()
	return report
}
