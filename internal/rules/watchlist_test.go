package rules

import (
	"testing"

	"github.com/enterprise/aml-overview/internal/models"
)

func TestWatchlistMatchRule_HighScoreIsHighSeverity(t *testing.T) {
	txs := []models.Transaction{
		{Sender: "Volkov Enterprises LLC", Receiver: "Someone Else"},
	}
	ctx := Context{Watchlist: []models.WatchlistEntry{{Name: "Volkov Enterprises"}}}

	alerts := NewWatchlistMatchRule().Evaluate(txs, ctx)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 match, got %d", len(alerts))
	}
	if alerts[0].Severity != models.SeverityHigh {
		t.Errorf("expected HIGH severity for a near-exact match, got %s", alerts[0].Severity)
	}
}

func TestWatchlistMatchRule_RepeatHitsMergeIntoOneAlert(t *testing.T) {
	txs := []models.Transaction{
		{Sender: "Volkov Enterprises LLC", Receiver: "X"},
		{Sender: "Volkov Enterprises LLC", Receiver: "Y"},
	}
	ctx := Context{Watchlist: []models.WatchlistEntry{{Name: "Volkov Enterprises"}}}

	alerts := NewWatchlistMatchRule().Evaluate(txs, ctx)
	if len(alerts) != 1 {
		t.Fatalf("expected repeat hits to merge into a single alert, got %d", len(alerts))
	}
	if len(alerts[0].AffectedTransactionIndices) != 2 {
		t.Errorf("expected both transaction indices on the merged alert, got %v", alerts[0].AffectedTransactionIndices)
	}
}

func TestWatchlistMatchRule_NoWatchlistNoAlerts(t *testing.T) {
	txs := []models.Transaction{{Sender: "Anyone"}}
	alerts := NewWatchlistMatchRule().Evaluate(txs, Context{})
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts without a watchlist, got %d", len(alerts))
	}
}
