package rules

import (
	"fmt"
	"strings"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	roundAmountRatioThreshold    = 0.60
	roundAmountConsecutiveMinTx  = 3
)

// RoundAmountPatternRule detects suspicious patterns of round-number
// transactions: a high overall ratio, and/or a long consecutive run.
type RoundAmountPatternRule struct{}

func NewRoundAmountPatternRule() *RoundAmountPatternRule { return &RoundAmountPatternRule{} }

func (r *RoundAmountPatternRule) RuleName() string { return "Round Amount Pattern" }

func (r *RoundAmountPatternRule) Description() string {
	return fmt.Sprintf(
		"Detects high ratio of round-amount transactions (divisible by 1000/500) or %d+ consecutive round amounts.",
		roundAmountConsecutiveMinTx,
	)
}

func (r *RoundAmountPatternRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	total := len(transactions)
	if total == 0 {
		return alerts
	}

	var roundIndices []int
	for idx, tx := range transactions {
		if isRoundAmount(tx.Amount) {
			roundIndices = append(roundIndices, idx)
		}
	}
	roundCount := len(roundIndices)
	ratio := float64(roundCount) / float64(total)

	if ratio > roundAmountRatioThreshold && total >= 3 {
		alerts = append(alerts, models.Alert{
			ID:       newAlertID(),
			RuleName: r.RuleName(),
			Severity: models.SeverityMedium,
			Description: fmt.Sprintf(
				"High round-amount ratio: %.0f%% of transactions (%d/%d) are round amounts (divisible by 1000 or 500).",
				ratio*100, roundCount, total,
			),
			AffectedTransactionIndices: append([]int(nil), roundIndices...),
			AlertType:                  models.AlertTypeRoundAmount,
		})
	}

	order := allIndicesSortedByDate(transactions)

	flushRun := func(run []int) {
		if len(run) < roundAmountConsecutiveMinTx {
			return
		}
		amounts := make([]string, len(run))
		for i, idx := range run {
			amounts[i] = fmt.Sprintf("%.2f", transactions[idx].Amount)
		}
		alerts = append(alerts, models.Alert{
			ID:       newAlertID(),
			RuleName: r.RuleName(),
			Severity: models.SeverityMedium,
			Description: fmt.Sprintf(
				"%d consecutive round-amount transactions detected: %s.",
				len(run), strings.Join(amounts, ", "),
			),
			AffectedTransactionIndices: append([]int(nil), run...),
			AlertType:                  models.AlertTypeRoundAmount,
		})
	}

	var run []int
	for _, idx := range order {
		if isRoundAmount(transactions[idx].Amount) {
			run = append(run, idx)
		} else {
			flushRun(run)
			run = nil
		}
	}
	flushRun(run)

	return alerts
}
