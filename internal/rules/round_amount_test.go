package rules

import (
	"testing"

	"github.com/enterprise/aml-overview/internal/models"
)

func TestRoundAmountPatternRule_HighRatioAndConsecutiveRun(t *testing.T) {
	txs := make([]models.Transaction, 0, 8)
	for i := 1; i <= 8; i++ {
		txs = append(txs, mkTx(i, 5000))
	}

	alerts := NewRoundAmountPatternRule().Evaluate(txs, Context{})

	var ratioAlerts, runAlerts int
	for _, a := range alerts {
		switch {
		case contains(a.Description, "High round-amount ratio"):
			ratioAlerts++
		case contains(a.Description, "consecutive round-amount"):
			runAlerts++
		}
	}

	if ratioAlerts != 1 {
		t.Errorf("expected exactly one high-ratio alert, got %d", ratioAlerts)
	}
	if runAlerts != 1 {
		t.Errorf("expected exactly one consecutive-run alert, got %d", runAlerts)
	}
}

func TestRoundAmountPatternRule_NoPatternBelowThreshold(t *testing.T) {
	txs := []models.Transaction{
		mkTx(1, 5000),
		mkTx(2, 1234.56),
		mkTx(3, 7890.12),
	}

	alerts := NewRoundAmountPatternRule().Evaluate(txs, Context{})
	if len(alerts) != 0 {
		t.Fatalf("expected no round-amount alerts, got %d", len(alerts))
	}
}

func TestRoundAmountPatternRule_TrailingRunFlushedAfterLoop(t *testing.T) {
	txs := []models.Transaction{
		mkTx(1, 1234),
		mkTx(2, 5000),
		mkTx(3, 1000),
		mkTx(4, 500),
	}

	alerts := NewRoundAmountPatternRule().Evaluate(txs, Context{})

	found := false
	for _, a := range alerts {
		if contains(a.Description, "consecutive round-amount") && len(a.AffectedTransactionIndices) == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the trailing 3-transaction round-amount run to be flushed after the scan loop")
	}
}
