package scoring

import (
	"testing"

	"github.com/enterprise/aml-overview/internal/models"
)

func TestCalculateRisk_NoAlertsIsLow(t *testing.T) {
	risk := CalculateRisk(nil)
	if risk.OverallScore != 0 {
		t.Errorf("expected score 0, got %v", risk.OverallScore)
	}
	if risk.RiskLevel != models.RiskLevelLow {
		t.Errorf("expected LOW, got %s", risk.RiskLevel)
	}
	if len(risk.ContributingFactors) != 0 {
		t.Errorf("expected no contributing factors, got %v", risk.ContributingFactors)
	}
}

func TestCalculateRisk_SingleCountsPerCategory(t *testing.T) {
	alerts := []models.Alert{
		{RuleName: "Structuring Detection", Severity: models.SeverityHigh, AlertType: models.AlertTypeStructuring},
		{RuleName: "Structuring Detection", Severity: models.SeverityHigh, AlertType: models.AlertTypeStructuring},
	}

	risk := CalculateRisk(alerts)
	if risk.OverallScore != riskWeights["structuring"] {
		t.Errorf("expected a single structuring contribution of %v, got %v", riskWeights["structuring"], risk.OverallScore)
	}
	if len(risk.ContributingFactors) != 1 {
		t.Errorf("expected exactly one contributing factor line, got %d", len(risk.ContributingFactors))
	}
}

func TestCalculateRisk_CapsAtHundred(t *testing.T) {
	alerts := []models.Alert{
		{RuleName: "Structuring Detection", Severity: models.SeverityHigh, AlertType: models.AlertTypeStructuring},
		{RuleName: "Rapid Fund Movement", Severity: models.SeverityHigh, AlertType: models.AlertTypeRapidMovement},
		{RuleName: "Watchlist Match", Severity: models.SeverityHigh, AlertType: models.AlertTypeWatchlistMatch},
		{RuleName: "Flow Through", Severity: models.SeverityHigh, AlertType: models.AlertTypeFlowThrough},
		{RuleName: "Counterparty Concentration", Severity: models.SeverityHigh, AlertType: models.AlertTypeCounterpartyConcentration},
	}

	risk := CalculateRisk(alerts)
	if risk.OverallScore != riskScoreCap {
		t.Errorf("expected score capped at %v, got %v", riskScoreCap, risk.OverallScore)
	}
	if risk.RiskLevel != models.RiskLevelCritical {
		t.Errorf("expected CRITICAL at the cap, got %s", risk.RiskLevel)
	}
}

func TestCalculateRisk_HighRiskCountrySplitsOnSeverity(t *testing.T) {
	blacklistOnly := CalculateRisk([]models.Alert{
		{RuleName: "High Risk Country", Severity: models.SeverityHigh, AlertType: models.AlertTypeHighRiskCountry},
	})
	greylistOnly := CalculateRisk([]models.Alert{
		{RuleName: "High Risk Country", Severity: models.SeverityMedium, AlertType: models.AlertTypeHighRiskCountry},
	})

	if blacklistOnly.OverallScore != riskWeights["high_risk_country_blacklist"] {
		t.Errorf("expected blacklist weight, got %v", blacklistOnly.OverallScore)
	}
	if greylistOnly.OverallScore != riskWeights["high_risk_country_greylist"] {
		t.Errorf("expected greylist weight, got %v", greylistOnly.OverallScore)
	}

	both := CalculateRisk([]models.Alert{
		{RuleName: "High Risk Country", Severity: models.SeverityHigh, AlertType: models.AlertTypeHighRiskCountry},
		{RuleName: "High Risk Country", Severity: models.SeverityMedium, AlertType: models.AlertTypeHighRiskCountry},
	})
	wantBoth := riskWeights["high_risk_country_blacklist"] + riskWeights["high_risk_country_greylist"]
	if both.OverallScore != wantBoth {
		t.Errorf("expected blacklist+greylist to both contribute (%v), got %v", wantBoth, both.OverallScore)
	}
}
