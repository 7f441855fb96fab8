package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	counterpartyUniqueMin   = 5
	counterpartyWindowDays  = 14
	counterpartyAggregate   = 15000.0
)

// CounterpartyConcentrationRule detects fan-in and fan-out patterns: many
// unique counterparties within a short window moving a large aggregate.
type CounterpartyConcentrationRule struct{}

func NewCounterpartyConcentrationRule() *CounterpartyConcentrationRule {
	return &CounterpartyConcentrationRule{}
}

func (r *CounterpartyConcentrationRule) RuleName() string { return "Counterparty Concentration" }

func (r *CounterpartyConcentrationRule) Description() string {
	return fmt.Sprintf(
		"Detects fan-in/fan-out patterns: %d+ unique counterparties within %d days with aggregate > %.0f EUR.",
		counterpartyUniqueMin, counterpartyWindowDays, counterpartyAggregate,
	)
}

func (r *CounterpartyConcentrationRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	sorted := datedIndices(transactions)
	if len(sorted) == 0 {
		return alerts
	}

	alerts = append(alerts, r.checkDirection(transactions, sorted, "sender", "Fan-in concentration")...)
	alerts = append(alerts, r.checkDirection(transactions, sorted, "receiver", "Fan-out concentration")...)

	return alerts
}

func (r *CounterpartyConcentrationRule) checkDirection(
	transactions []models.Transaction, sorted []int, field, label string,
) []models.Alert {
	var alerts []models.Alert

	for i := range sorted {
		windowStart := transactions[sorted[i]].Date
		windowEnd := windowStart.AddDate(0, 0, counterpartyWindowDays)

		var windowIndices []int
		counterpartySet := make(map[string]bool)
		aggregate := 0.0

		for _, idx := range sorted[i:] {
			d := transactions[idx].Date
			if d.Before(windowStart) || d.After(windowEnd) {
				continue
			}
			windowIndices = append(windowIndices, idx)
			aggregate += transactions[idx].Amount

			var counterparty string
			if field == "sender" {
				counterparty = transactions[idx].Sender
			} else {
				counterparty = transactions[idx].Receiver
			}
			counterparty = strings.ToLower(strings.TrimSpace(counterparty))
			if counterparty != "" {
				counterpartySet[counterparty] = true
			}
		}

		if len(counterpartySet) < counterpartyUniqueMin {
			continue
		}
		if aggregate <= counterpartyAggregate {
			continue
		}

		names := make([]string, 0, len(counterpartySet))
		for n := range counterpartySet {
			names = append(names, n)
		}
		sort.Strings(names)
		if len(names) > 10 {
			names = names[:10]
		}

		alerts = append(alerts, models.Alert{
			ID:       newAlertID(),
			RuleName: r.RuleName(),
			Severity: models.SeverityHigh,
			Description: fmt.Sprintf(
				"%s: %d unique counterparties within %d days (%s to %s), aggregate %.2f EUR. Counterparties: %s.",
				label, len(counterpartySet), counterpartyWindowDays,
				formatDate(windowStart), formatDate(windowEnd), aggregate, strings.Join(names, ", "),
			),
			AffectedTransactionIndices: windowIndices,
			AlertType:                  models.AlertTypeCounterpartyConcentration,
		})

		// first hit only per direction
		break
	}

	return alerts
}
