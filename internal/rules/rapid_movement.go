package rules

import (
	"fmt"
	"math"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	rapidMovementThreshold  = 5000.0
	rapidMovementToleranceF = 0.20
	rapidMovementWindowHrs  = 48.0
)

// RapidFundMovementRule detects quick in-out fund transfers.
type RapidFundMovementRule struct{}

func NewRapidFundMovementRule() *RapidFundMovementRule { return &RapidFundMovementRule{} }

func (r *RapidFundMovementRule) RuleName() string { return "Rapid Fund Movement" }

func (r *RapidFundMovementRule) Description() string {
	return fmt.Sprintf(
		"Detects rapid in-out fund movements >= %.0f EUR within %.0f hours.",
		rapidMovementThreshold, rapidMovementWindowHrs,
	)
}

func (r *RapidFundMovementRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	sorted := datedIndices(transactions)
	if len(sorted) < 2 {
		return alerts
	}

	var incoming, outgoing []int
	for _, origIdx := range sorted {
		if classifyDirection(transactions[origIdx]) == directionIn {
			incoming = append(incoming, origIdx)
		} else {
			outgoing = append(outgoing, origIdx)
		}
	}

	flaggedPairs := make(map[[2]int]bool)

	pairKey := func(a, b int) [2]int {
		if a < b {
			return [2]int{a, b}
		}
		return [2]int{b, a}
	}

	// incoming followed by outgoing (receive then send)
	for _, inIdx := range incoming {
		inTx := transactions[inIdx]
		if math.Abs(inTx.Amount) < rapidMovementThreshold {
			continue
		}
		for _, outIdx := range outgoing {
			outTx := transactions[outIdx]
			if math.Abs(outTx.Amount) < rapidMovementThreshold {
				continue
			}
			key := pairKey(inIdx, outIdx)
			if flaggedPairs[key] {
				continue
			}

			timeDiff := math.Abs(outTx.Date.Sub(inTx.Date).Hours())
			if timeDiff > rapidMovementWindowHrs {
				continue
			}

			inAmt := math.Abs(inTx.Amount)
			outAmt := math.Abs(outTx.Amount)
			if inAmt == 0 {
				continue
			}

			diffRatio := math.Abs(inAmt-outAmt) / inAmt
			if diffRatio > rapidMovementToleranceF {
				continue
			}

			flaggedPairs[key] = true
			directionLabel := "sent then received"
			if !inTx.Date.After(outTx.Date) {
				directionLabel = "received then sent"
			}

			alerts = append(alerts, models.Alert{
				ID:       newAlertID(),
				RuleName: r.RuleName(),
				Severity: models.SeverityHigh,
				Description: fmt.Sprintf(
					"Rapid fund movement: %s. In: %.2f EUR on %s, Out: %.2f EUR on %s (%.1f hours apart, %.1f%% variance).",
					directionLabel, inAmt, inTx.Date.Format("2006-01-02 15:04"),
					outAmt, outTx.Date.Format("2006-01-02 15:04"), timeDiff, diffRatio*100,
				),
				AffectedTransactionIndices: []int{inIdx, outIdx},
				AlertType:                  models.AlertTypeRapidMovement,
			})
		}
	}

	// outgoing followed by incoming (reverse direction)
	for _, outIdx := range outgoing {
		outTx := transactions[outIdx]
		if math.Abs(outTx.Amount) < rapidMovementThreshold {
			continue
		}
		for _, inIdx := range incoming {
			inTx := transactions[inIdx]
			if math.Abs(inTx.Amount) < rapidMovementThreshold {
				continue
			}
			if !inTx.Date.After(outTx.Date) {
				continue // already covered above
			}
			key := pairKey(outIdx, inIdx)
			if flaggedPairs[key] {
				continue
			}

			timeDiff := math.Abs(inTx.Date.Sub(outTx.Date).Hours())
			if timeDiff > rapidMovementWindowHrs {
				continue
			}

			outAmt := math.Abs(outTx.Amount)
			inAmt := math.Abs(inTx.Amount)
			if outAmt == 0 {
				continue
			}

			diffRatio := math.Abs(outAmt-inAmt) / outAmt
			if diffRatio > rapidMovementToleranceF {
				continue
			}

			flaggedPairs[key] = true

			alerts = append(alerts, models.Alert{
				ID:       newAlertID(),
				RuleName: r.RuleName(),
				Severity: models.SeverityHigh,
				Description: fmt.Sprintf(
					"Rapid fund movement: sent then received. Out: %.2f EUR on %s, In: %.2f EUR on %s (%.1f hours apart, %.1f%% variance).",
					outAmt, outTx.Date.Format("2006-01-02 15:04"),
					inAmt, inTx.Date.Format("2006-01-02 15:04"), timeDiff, diffRatio*100,
				),
				AffectedTransactionIndices: []int{outIdx, inIdx},
				AlertType:                  models.AlertTypeRapidMovement,
			})
		}
	}

	return alerts
}
