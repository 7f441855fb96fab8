package rules

import (
	"fmt"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	dormantInactivityDays  = 90
	dormantBurstCount      = 3
	dormantBurstWindowDays = 7
)

// DormantAccountRule flags accounts with no activity for a long stretch
// followed by a burst of transactions.
type DormantAccountRule struct{}

func NewDormantAccountRule() *DormantAccountRule { return &DormantAccountRule{} }

func (r *DormantAccountRule) RuleName() string { return "Dormant Account Activity" }

func (r *DormantAccountRule) Description() string {
	return fmt.Sprintf(
		"Flags accounts with no activity for %d+ days followed by %d+ transactions within %d days.",
		dormantInactivityDays, dormantBurstCount, dormantBurstWindowDays,
	)
}

func (r *DormantAccountRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	sorted := datedIndices(transactions)
	if len(sorted) < dormantBurstCount+1 {
		return alerts
	}

	for i := 1; i < len(sorted); i++ {
		prevDate := transactions[sorted[i-1]].Date
		curDate := transactions[sorted[i]].Date
		gapDays := int(curDate.Sub(prevDate).Hours() / 24)
		if gapDays < dormantInactivityDays {
			continue
		}

		burstStart := curDate
		burstEnd := burstStart.AddDate(0, 0, dormantBurstWindowDays)

		var burstIndices []int
		burstTotal := 0.0
		for _, idx := range sorted[i:] {
			d := transactions[idx].Date
			if d.Before(burstStart) || d.After(burstEnd) {
				continue
			}
			burstIndices = append(burstIndices, idx)
			burstTotal += transactions[idx].Amount
		}

		if len(burstIndices) >= dormantBurstCount {
			alerts = append(alerts, models.Alert{
				ID:       newAlertID(),
				RuleName: r.RuleName(),
				Severity: models.SeverityMedium,
				Description: fmt.Sprintf(
					"Dormant account reactivation: %d days of inactivity (last activity %s), followed by %d transactions within %d days starting %s, totalling %.2f EUR.",
					gapDays, formatDate(prevDate), len(burstIndices), dormantBurstWindowDays, formatDate(burstStart), burstTotal,
				),
				AffectedTransactionIndices: burstIndices,
				AlertType:                  models.AlertTypeDormantAccount,
			})
		}
	}

	return alerts
}
