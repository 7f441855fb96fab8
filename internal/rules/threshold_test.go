package rules

import (
	"testing"

	"github.com/enterprise/aml-overview/internal/models"
)

func TestThresholdAlertRule_FlagsAtOrAboveThreshold(t *testing.T) {
	txs := []models.Transaction{
		mkTx(1, 10000),
		mkTx(2, 9999.99),
		mkTx(3, 25000),
	}

	alerts := NewThresholdAlertRule().Evaluate(txs, Context{})
	if len(alerts) != 2 {
		t.Fatalf("expected 2 threshold alerts, got %d", len(alerts))
	}
	for _, a := range alerts {
		if a.AlertType != models.AlertTypeThreshold {
			t.Errorf("unexpected alert type %s", a.AlertType)
		}
	}
}

func TestThresholdAlertRule_UnknownDateFallback(t *testing.T) {
	txs := []models.Transaction{
		{Amount: 15000, DateValid: false, Sender: "A", Receiver: "B"},
	}

	alerts := NewThresholdAlertRule().Evaluate(txs, Context{})
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	if got := alerts[0].Description; !contains(got, "unknown date") {
		t.Errorf("expected description to mention unknown date, got %q", got)
	}
}

func TestThresholdAlertRule_BelowThresholdProducesNoAlert(t *testing.T) {
	txs := []models.Transaction{mkTx(1, 500)}
	alerts := NewThresholdAlertRule().Evaluate(txs, Context{})
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}
