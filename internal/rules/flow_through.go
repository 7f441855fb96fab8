package rules

import (
	"fmt"
	"math"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	flowThroughWindowDays = 30
	flowThroughMinAmount  = 10000.0
	flowThroughVariance   = 0.10
)

// FlowThroughRule detects pass-through / layering activity where incoming
// funds approximately equal outgoing funds over a short window.
type FlowThroughRule struct{}

func NewFlowThroughRule() *FlowThroughRule { return &FlowThroughRule{} }

func (r *FlowThroughRule) RuleName() string { return "Flow-Through Detection" }

func (r *FlowThroughRule) Description() string {
	return fmt.Sprintf(
		"Detects pass-through activity where incoming ~ outgoing (within %.0f%% variance) over a %d-day window, totalling > %.0f EUR.",
		flowThroughVariance*100, flowThroughWindowDays, flowThroughMinAmount,
	)
}

func (r *FlowThroughRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	sorted := datedIndices(transactions)
	if len(sorted) < 2 {
		return alerts
	}

	startDate := transactions[sorted[0]].Date
	endDate := transactions[sorted[len(sorted)-1]].Date

	for currentStart := startDate; !currentStart.After(endDate); {
		currentEnd := currentStart.AddDate(0, 0, flowThroughWindowDays)

		var windowIndices []int
		totalIn, totalOut := 0.0, 0.0
		for _, idx := range sorted {
			d := transactions[idx].Date
			if d.Before(currentStart) || !d.Before(currentEnd) {
				continue
			}
			windowIndices = append(windowIndices, idx)
			if classifyDirection(transactions[idx]) == directionIn {
				totalIn += math.Abs(transactions[idx].Amount)
			} else {
				totalOut += math.Abs(transactions[idx].Amount)
			}
		}

		if len(windowIndices) >= 2 {
			total := math.Max(totalIn, totalOut)
			if total >= flowThroughMinAmount && totalIn > 0 && totalOut > 0 {
				variance := math.Abs(totalIn-totalOut) / math.Max(totalIn, totalOut)
				if variance <= flowThroughVariance {
					alerts = append(alerts, models.Alert{
						ID:       newAlertID(),
						RuleName: r.RuleName(),
						Severity: models.SeverityHigh,
						Description: fmt.Sprintf(
							"Potential flow-through activity: incoming %.2f EUR vs outgoing %.2f EUR (%.1f%% variance) between %s and %s (%d transactions).",
							totalIn, totalOut, variance*100, formatDate(currentStart), formatDate(currentEnd), len(windowIndices),
						),
						AffectedTransactionIndices: windowIndices,
						AlertType:                  models.AlertTypeFlowThrough,
					})
				}
			}
		}

		currentStart = currentEnd
	}

	return alerts
}
