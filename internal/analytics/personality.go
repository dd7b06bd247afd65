package analytics

import (
	"strings"

	"github.com/Dan9191/finsight/internal/models"
)

const (
	ImpulsiveSpender = "Impulsive Spender"
	Saver            = "Saver"
	Investor         = "Investor"
	ChaoticNeutral   = "Chaotic Neutral"
	UnknownType      = "Unknown"

	minConfidence = 25
	maxConfidence = 95
)

// archetypes lists the personality types in tie-break order: on equal
// scores the earlier archetype wins.
var archetypes = []string{ImpulsiveSpender, Saver, Investor, ChaoticNeutral}

var archetypeTraits = map[string][]string{
	ImpulsiveSpender: {"Spontaneous purchases", "Lives in the moment", "Retail therapy fan"},
	Saver:            {"Budget conscious", "Future-focused", "Values security"},
	Investor:         {"Growth mindset", "Long-term thinker", "Active wealth builder"},
	ChaoticNeutral:   {"Unpredictable", "Goes with the flow", "Balance seeker"},
}

var archetypeEmoji = map[string]string{
	ImpulsiveSpender: "🛒",
	Saver:            "🐿️",
	Investor:         "📈",
	ChaoticNeutral:   "🎲",
}

var investmentKeywords = []string{"invest", "dividend", "stock"}

// spendingMetrics are the indicators the personality rules read.
type spendingMetrics struct {
	savingsRate    float64
	variability    float64 // coefficient of variation of expenses, in percent
	topCategoryPct float64
	hasInvestments bool
}

// personalityRules are evaluated in order; every matching rule adds its
// points to the archetype and records its trait.
var personalityRules = []struct {
	archetype string
	points    int
	trait     string
	when      func(m spendingMetrics) bool
}{
	{Saver, 40, "High savings discipline", func(m spendingMetrics) bool { return m.savingsRate >= 20 }},
	{Saver, 20, "Consistent saver", func(m spendingMetrics) bool { return m.savingsRate >= 10 }},
	{ImpulsiveSpender, 30, "Variable spending patterns", func(m spendingMetrics) bool { return m.variability > 100 }},
	{ImpulsiveSpender, 25, "Spends most income", func(m spendingMetrics) bool { return m.savingsRate < 5 }},
	{ImpulsiveSpender, 15, "Diverse spending categories", func(m spendingMetrics) bool { return m.topCategoryPct < 30 }},
	{Investor, 40, "Has investment activity", func(m spendingMetrics) bool { return m.hasInvestments }},
	{Investor, 20, "High savings potential", func(m spendingMetrics) bool { return m.savingsRate >= 30 }},
	{ChaoticNeutral, 35, "Unpredictable patterns", func(m spendingMetrics) bool {
		return m.variability > 40 && m.variability < 80 && m.savingsRate > 5 && m.savingsRate < 15
	}},
}

func measureSpending(txs []models.Transaction) spendingMetrics {
	income, expenses := totals(txs)
	m := spendingMetrics{savingsRate: savingsRate(income, expenses)}

	magnitudes := expenseMagnitudes(txs)
	if avg := mean(magnitudes); len(magnitudes) > 1 && avg > 0 {
		m.variability = sampleStd(magnitudes) / avg * 100
	}

	counts := make(map[string]int)
	var top int
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		c := tx.CategoryOr(defaultCategory)
		counts[c]++
		top = max(top, counts[c])
	}
	if len(magnitudes) > 0 {
		m.topCategoryPct = float64(top) / float64(len(magnitudes)) * 100
	}

	for _, tx := range txs {
		desc := strings.ToLower(tx.Description)
		for _, kw := range investmentKeywords {
			if strings.Contains(desc, kw) {
				m.hasInvestments = true
			}
		}
	}
	return m
}

// ClassifyPersonality scores each spending archetype and returns the winner.
func (e *Engine) ClassifyPersonality(txs []models.Transaction) (profile models.PersonalityProfile, err error) {
	defer guard("classify personality", &err)

	if len(txs) == 0 {
		return models.PersonalityProfile{PersonalityType: UnknownType, Traits: []string{}}, nil
	}

	metrics := measureSpending(txs)
	scores := make(map[string]int, len(archetypes))
	var traits []string
	for _, rule := range personalityRules {
		if rule.when(metrics) {
			scores[rule.archetype] += rule.points
			traits = append(traits, rule.trait)
		}
	}

	winner := archetypes[0]
	for _, a := range archetypes[1:] {
		if scores[a] > scores[winner] {
			winner = a
		}
	}
	traits = append(traits, archetypeTraits[winner][:2]...)

	return models.PersonalityProfile{
		PersonalityType:     winner,
		Traits:              dedupe(traits),
		Confidence:          clamp(scores[winner], minConfidence, maxConfidence),
		SavingsRate:         round1(metrics.savingsRate),
		SpendingVariability: round1(metrics.variability),
		Emoji:               archetypeEmoji[winner],
	}, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
