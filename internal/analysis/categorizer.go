package analysis

import (
	"log/slog"
	"strings"
	"time"

	"finsight/internal/models"
)

type categorizer struct {
	rules   []Rule
	metrics MetricsRecorderInterface
}

// NewCategorizer builds a categorizer over the given rule table. The table
// is copied (with keywords pre-lowered) so later mutation by the caller
// cannot change matching behavior.
func NewCategorizer(rules []Rule, metrics MetricsRecorderInterface) CategorizerInterface {
	owned := make([]Rule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[j] = strings.ToLower(kw)
		}
		owned[i] = Rule{Keywords: keywords, Category: rule.Category, Direction: rule.Direction}
	}
	return &categorizer{rules: owned, metrics: metrics}
}

func (c *categorizer) Categorize(transactions []models.Transaction) ([]models.Transaction, []models.RecordError) {
	started := time.Now()

	categorized := make([]models.Transaction, 0, len(transactions))
	rejected := make([]models.RecordError, 0)

	for i, txn := range transactions {
		if err := txn.Validate(); err != nil {
			rejected = append(rejected, models.RecordError{
				Index:  i,
				ID:     txn.ID,
				Reason: err.Error(),
			})
			continue
		}

		out := txn
		out.MerchantNormalized = txn.Merchant()
		out.Category = c.categoryFor(out)
		categorized = append(categorized, out)
	}

	c.metrics.RecordAnalysis("categorize", "ok")
	c.metrics.RecordDuration("categorize", time.Since(started))
	c.metrics.RecordRejectedRecords("categorize", len(rejected))

	slog.Info("transactions categorized",
		"total", len(transactions),
		"categorized", len(categorized),
		"rejected", len(rejected))

	return categorized, rejected
}

// categoryFor applies the rule table in order; the first rule whose direction
// admits the transaction and whose keyword appears in the description wins.
func (c *categorizer) categoryFor(t models.Transaction) string {
	description := strings.ToLower(t.Description)
	for _, rule := range c.rules {
		if !rule.appliesTo(t) {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(description, keyword) {
				return rule.Category
			}
		}
	}
	return models.CategoryOther
}
