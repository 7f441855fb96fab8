package rules

import (
	"fmt"

	"github.com/enterprise/aml-overview/internal/models"
)

const largeTransactionThreshold = 10000.0

// ThresholdAlertRule flags single transactions at or above the reporting
// threshold.
type ThresholdAlertRule struct{}

func NewThresholdAlertRule() *ThresholdAlertRule { return &ThresholdAlertRule{} }

func (r *ThresholdAlertRule) RuleName() string { return "Large Transaction Threshold" }

func (r *ThresholdAlertRule) Description() string {
	return fmt.Sprintf("Flags individual transactions >= %.0f EUR.", largeTransactionThreshold)
}

func (r *ThresholdAlertRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	for idx, tx := range transactions {
		if tx.Amount < largeTransactionThreshold {
			continue
		}

		dateStr := "unknown date"
		if tx.DateValid {
			dateStr = formatDate(tx.Date)
		}

		sender := tx.Sender
		if sender == "" {
			sender = "N/A"
		}
		receiver := tx.Receiver
		if receiver == "" {
			receiver = "N/A"
		}

		alerts = append(alerts, models.Alert{
			ID:       newAlertID(),
			RuleName: r.RuleName(),
			Severity: models.SeverityMedium,
			Description: fmt.Sprintf(
				"Transaction of %.2f EUR on %s exceeds threshold of %.0f EUR. Sender: %s, Receiver: %s.",
				tx.Amount, dateStr, largeTransactionThreshold, sender, receiver,
			),
			AffectedTransactionIndices: []int{idx},
			AlertType:                  models.AlertTypeThreshold,
		})
	}

	return alerts
}
