package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	structuringThreshold  = 10000.0
	structuringLowerBound = 8000.0
	structuringWindowDays = 7
	structuringMinTx      = 3
)

// StructuringDetectionRule flags clusters of transactions kept just below
// the reporting threshold within a rolling window.
type StructuringDetectionRule struct{}

func NewStructuringDetectionRule() *StructuringDetectionRule {
	return &StructuringDetectionRule{}
}

func (r *StructuringDetectionRule) RuleName() string { return "Structuring Detection" }

func (r *StructuringDetectionRule) Description() string {
	return fmt.Sprintf(
		"Detects potential structuring where multiple transactions are kept below %.0f within a rolling %d-day window.",
		structuringThreshold, structuringWindowDays,
	)
}

func (r *StructuringDetectionRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	sorted := datedIndices(transactions)
	if len(sorted) == 0 {
		return alerts
	}

	// band holds the positions (into `sorted`) whose amount falls in
	// [structuringLowerBound, structuringThreshold).
	var band []int
	for i, origIdx := range sorted {
		amt := transactions[origIdx].Amount
		if amt >= structuringLowerBound && amt < structuringThreshold {
			band = append(band, i)
		}
	}

	if len(band) < structuringMinTx {
		return alerts
	}

	var flaggedSets []map[int]bool

	for bi, i := range band {
		windowStart := transactions[sorted[i]].Date
		windowEnd := windowStart.AddDate(0, 0, structuringWindowDays)

		var clusterPos []int
		clusterTotal := 0.0
		for _, j := range band[bi:] {
			if transactions[sorted[j]].Date.After(windowEnd) {
				break
			}
			clusterPos = append(clusterPos, j)
			clusterTotal += transactions[sorted[j]].Amount
		}

		if len(clusterPos) >= structuringMinTx && clusterTotal > structuringThreshold {
			clusterSet := make(map[int]bool, len(clusterPos))
			origIndices := make([]int, len(clusterPos))
			for k, pos := range clusterPos {
				clusterSet[pos] = true
				origIndices[k] = sorted[pos]
			}

			if !subsetOfAny(clusterSet, flaggedSets) {
				flaggedSets = append(flaggedSets, clusterSet)
				alerts = append(alerts, r.buildAlert(transactions, origIndices, clusterTotal))
			}
		}
	}

	return alerts
}

func subsetOfAny(candidate map[int]bool, existing []map[int]bool) bool {
	for _, set := range existing {
		if isSubset(candidate, set) {
			return true
		}
	}
	return false
}

func isSubset(candidate, set map[int]bool) bool {
	for k := range candidate {
		if !set[k] {
			return false
		}
	}
	return true
}

func (r *StructuringDetectionRule) buildAlert(transactions []models.Transaction, indices []int, total float64) models.Alert {
	amounts := make([]string, len(indices))
	var firstDate, lastDate time.Time
	for i, idx := range indices {
		amounts[i] = fmt.Sprintf("%.2f", transactions[idx].Amount)
		d := transactions[idx].Date
		if i == 0 || d.Before(firstDate) {
			firstDate = d
		}
		if i == 0 || d.After(lastDate) {
			lastDate = d
		}
	}

	description := fmt.Sprintf(
		"Potential structuring detected: %d transactions between %s and %s totalling %.2f EUR. Individual amounts: %s",
		len(indices), formatDate(firstDate), formatDate(lastDate), total, strings.Join(amounts, ", "),
	)

	return models.Alert{
		ID:                         newAlertID(),
		RuleName:                   r.RuleName(),
		Severity:                   models.SeverityHigh,
		Description:                description,
		AffectedTransactionIndices: indices,
		AlertType:                  models.AlertTypeStructuring,
	}
}
