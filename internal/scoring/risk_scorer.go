// Package scoring maps an engine's alert stream onto a capped, weighted
// risk score and qualitative level.
package scoring

import (
	"fmt"
	"math"

	"github.com/enterprise/aml-overview/internal/models"
)

const riskScoreCap = 100.0

var riskWeights = map[string]float64{
	"structuring":                 30,
	"high_risk_country_blacklist": 20,
	"high_risk_country_greylist":  10,
	"watchlist_high":              25,
	"watchlist_medium":            10,
	"threshold":                   5,
	"rapid_movement":              20,
	"round_amount":                10,
	"dormant":                     15,
	"counterparty":                20,
	"profile_deviation":           10,
	"flow_through":                25,
}

// weightKey maps an alert to the risk-weight table key that governs its
// contribution. HighRiskCountry and WatchlistMatch split their key on
// severity; every other alert type maps on type alone.
func weightKey(alert models.Alert) string {
	switch alert.AlertType {
	case models.AlertTypeStructuring:
		return "structuring"
	case models.AlertTypeThreshold:
		return "threshold"
	case models.AlertTypeHighRiskCountry:
		if alert.Severity == models.SeverityHigh {
			return "high_risk_country_blacklist"
		}
		return "high_risk_country_greylist"
	case models.AlertTypeWatchlistMatch:
		if alert.Severity == models.SeverityHigh {
			return "watchlist_high"
		}
		return "watchlist_medium"
	case models.AlertTypeRapidMovement:
		return "rapid_movement"
	case models.AlertTypeRoundAmount:
		return "round_amount"
	case models.AlertTypeDormantAccount:
		return "dormant"
	case models.AlertTypeCounterpartyConcentration:
		return "counterparty"
	case models.AlertTypeProfileDeviation:
		return "profile_deviation"
	case models.AlertTypeFlowThrough:
		return "flow_through"
	default:
		return ""
	}
}

func scoreToLevel(score float64) models.RiskLevel {
	switch {
	case score <= 25:
		return models.RiskLevelLow
	case score <= 50:
		return models.RiskLevelMedium
	case score <= 75:
		return models.RiskLevelHigh
	default:
		return models.RiskLevelCritical
	}
}

// CalculateRisk walks alerts in the order the engine produced them. The
// first alert for a given weight key adds that key's weight to the score
// and records a contribution line; every subsequent alert for an
// already-triggered key contributes nothing.
func CalculateRisk(alerts []models.Alert) models.RiskAssessment {
	triggered := make(map[string]float64)
	var contributingFactors []string

	for _, alert := range alerts {
		key := weightKey(alert)
		if key == "" {
			continue
		}
		if _, ok := triggered[key]; ok {
			continue
		}
		weight, ok := riskWeights[key]
		if !ok {
			continue
		}
		triggered[key] = weight
		contributingFactors = append(contributingFactors, fmt.Sprintf(
			"%s (%s): +%g points", alert.RuleName, alert.Severity, weight,
		))
	}

	sum := 0.0
	for _, w := range triggered {
		sum += w
	}
	cappedScore := math.Min(sum, riskScoreCap)

	return models.RiskAssessment{
		OverallScore:        cappedScore,
		RiskLevel:           scoreToLevel(cappedScore),
		ContributingFactors: contributingFactors,
	}
}
