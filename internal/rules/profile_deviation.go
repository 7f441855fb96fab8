package rules

import (
	"fmt"

	"github.com/enterprise/aml-overview/internal/models"
)

const profileDeviationMultiplier = 3.0

// ProfileDeviationRule flags transactions exceeding a multiple of the
// historical average amount, and months whose transaction count exceeds a
// multiple of the historical average monthly frequency.
//
// The average-amount baseline deliberately includes the outlier transaction
// itself; a single large transaction inflates its own threshold. This
// matches the reference implementation and is not a bug to fix here.
type ProfileDeviationRule struct{}

func NewProfileDeviationRule() *ProfileDeviationRule { return &ProfileDeviationRule{} }

func (r *ProfileDeviationRule) RuleName() string { return "Profile Deviation" }

func (r *ProfileDeviationRule) Description() string {
	return fmt.Sprintf(
		"Flags transactions exceeding %.1fx the historical average amount or monthly frequency.",
		profileDeviationMultiplier,
	)
}

func (r *ProfileDeviationRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	if len(transactions) == 0 {
		return alerts
	}

	// ---- Amount deviation ----
	sum := 0.0
	for _, tx := range transactions {
		sum += tx.Amount
	}
	avgAmount := sum / float64(len(transactions))

	if avgAmount > 0 {
		threshold := avgAmount * profileDeviationMultiplier
		for idx, tx := range transactions {
			if tx.Amount <= threshold {
				continue
			}
			dateStr := "unknown date"
			if tx.DateValid {
				dateStr = formatDate(tx.Date)
			}
			alerts = append(alerts, models.Alert{
				ID:       newAlertID(),
				RuleName: r.RuleName(),
				Severity: models.SeverityMedium,
				Description: fmt.Sprintf(
					"Amount deviation: transaction of %.2f EUR on %s is %.1fx the historical average of %.2f EUR (threshold: %.1fx).",
					tx.Amount, dateStr, tx.Amount/avgAmount, avgAmount, profileDeviationMultiplier,
				),
				AffectedTransactionIndices: []int{idx},
				AlertType:                  models.AlertTypeProfileDeviation,
			})
		}
	}

	// ---- Frequency deviation ----
	monthOrder := make([]string, 0)
	monthIndices := make(map[string][]int)
	for idx, tx := range transactions {
		if !tx.DateValid {
			continue
		}
		month := tx.Date.Format("2006-01")
		if _, ok := monthIndices[month]; !ok {
			monthOrder = append(monthOrder, month)
		}
		monthIndices[month] = append(monthIndices[month], idx)
	}

	if len(monthOrder) >= 2 {
		total := 0
		for _, m := range monthOrder {
			total += len(monthIndices[m])
		}
		avgFrequency := float64(total) / float64(len(monthOrder))
		freqThreshold := avgFrequency * profileDeviationMultiplier

		for _, month := range monthOrder {
			count := len(monthIndices[month])
			if float64(count) <= freqThreshold {
				continue
			}
			alerts = append(alerts, models.Alert{
				ID:       newAlertID(),
				RuleName: r.RuleName(),
				Severity: models.SeverityMedium,
				Description: fmt.Sprintf(
					"Frequency deviation: %d transactions in %s is %.1fx the average monthly frequency of %.1f (threshold: %.1fx).",
					count, month, float64(count)/avgFrequency, avgFrequency, profileDeviationMultiplier,
				),
				AffectedTransactionIndices: append([]int(nil), monthIndices[month]...),
				AlertType:                  models.AlertTypeProfileDeviation,
			})
		}
	}

	return alerts
}
