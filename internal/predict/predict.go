// Package predict holds the single-call predictors consulted when a
// transaction is stored: a category classifier and an amount anomaly
// detector. Both are loaded once at startup and are read-only afterwards.
package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// Uncategorized is returned when no classifier is available or no rule matches.
	Uncategorized = "Uncategorized"

	classifierFile = "classifier.json"
	anomalyFile    = "anomaly.json"
)

// Classifier assigns a category to a transaction.
type Classifier interface {
	Classify(description string, amount float64) string
}

// AnomalyDetector reports whether an amount is unusual.
type AnomalyDetector interface {
	IsAnomalous(amount float64) bool
}

// Bundle groups the predictors used on the write path.
type Bundle struct {
	Classifier Classifier
	Detector   AnomalyDetector
}

// Fallback returns predictors that never fail: every transaction is
// uncategorized and nothing is anomalous.
func Fallback() Bundle {
	return Bundle{Classifier: fallbackClassifier{}, Detector: fallbackDetector{}}
}

type fallbackClassifier struct{}

func (fallbackClassifier) Classify(string, float64) string { return Uncategorized }

type fallbackDetector struct{}

func (fallbackDetector) IsAnomalous(float64) bool { return false }

// KeywordRule maps description keywords to a category. An optional sign
// restricts the rule to inflows (1) or outflows (-1).
type KeywordRule struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Sign     int      `json:"sign,omitempty"`
}

// KeywordClassifier picks the category of the first matching rule.
type KeywordClassifier struct {
	Rules []KeywordRule `json:"rules"`
}

// Classify implements Classifier.
func (c *KeywordClassifier) Classify(description string, amount float64) string {
	desc := strings.ToLower(description)
	for _, rule := range c.Rules {
		if (rule.Sign > 0 && amount <= 0) || (rule.Sign < 0 && amount >= 0) {
			continue
		}
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(desc, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}
	return Uncategorized
}

// RangeDetector flags amounts outside [Lower, Upper].
type RangeDetector struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// IsAnomalous implements AnomalyDetector.
func (d *RangeDetector) IsAnomalous(amount float64) bool {
	return amount < d.Lower || amount > d.Upper
}

// Load reads the predictor files from dir. A predictor that cannot be
// loaded is replaced by its fallback and the failure is logged.
func Load(dir string, log *logrus.Logger) Bundle {
	bundle := Fallback()
	loaded := 0

	var classifier KeywordClassifier
	if err := readModel(filepath.Join(dir, classifierFile), &classifier); err != nil {
		log.Warnf("Category classifier unavailable, using %q: %v", Uncategorized, err)
	} else {
		bundle.Classifier = &classifier
		loaded++
	}

	var detector RangeDetector
	if err := readModel(filepath.Join(dir, anomalyFile), &detector); err != nil {
		log.Warnf("Anomaly detector unavailable, flagging nothing: %v", err)
	} else if detector.Lower > detector.Upper {
		log.Warnf("Anomaly detector has inverted bounds [%v, %v], flagging nothing", detector.Lower, detector.Upper)
	} else {
		bundle.Detector = &detector
		loaded++
	}

	if loaded > 0 {
		log.Infof("%d of 2 predictors loaded from %s", loaded, dir)
	}
	return bundle
}

func readModel(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
