package engine

import (
	"testing"
	"time"

	"github.com/enterprise/aml-overview/internal/models"
	"github.com/enterprise/aml-overview/internal/rules"
)

type stubRule struct {
	name     string
	alerts   []models.Alert
	panicsOn bool
}

func (s *stubRule) RuleName() string    { return s.name }
func (s *stubRule) Description() string { return "stub" }
func (s *stubRule) Evaluate(transactions []models.Transaction, ctx rules.Context) []models.Alert {
	if s.panicsOn {
		panic("boom")
	}
	return s.alerts
}

func TestEngine_SeverityOrdering(t *testing.T) {
	e := &Engine{rules: []rules.Rule{
		&stubRule{name: "low-rule", alerts: []models.Alert{{RuleName: "low-rule", Severity: models.SeverityLow}}},
		&stubRule{name: "high-rule", alerts: []models.Alert{{RuleName: "high-rule", Severity: models.SeverityHigh}}},
		&stubRule{name: "medium-rule", alerts: []models.Alert{{RuleName: "medium-rule", Severity: models.SeverityMedium}}},
	}}

	alerts := e.Analyze(nil, rules.Context{})
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	want := []models.Severity{models.SeverityHigh, models.SeverityMedium, models.SeverityLow}
	for i, w := range want {
		if alerts[i].Severity != w {
			t.Errorf("position %d: expected severity %s, got %s", i, w, alerts[i].Severity)
		}
	}
}

func TestEngine_UnknownSeveritySortsLast(t *testing.T) {
	e := &Engine{rules: []rules.Rule{
		&stubRule{name: "weird-rule", alerts: []models.Alert{{RuleName: "weird-rule", Severity: models.Severity("UNKNOWN")}}},
		&stubRule{name: "low-rule", alerts: []models.Alert{{RuleName: "low-rule", Severity: models.SeverityLow}}},
	}}

	alerts := e.Analyze(nil, rules.Context{})
	if alerts[len(alerts)-1].RuleName != "weird-rule" {
		t.Errorf("expected unknown-severity alert to sort last, got order: %v", alerts)
	}
}

func TestEngine_IsolatesPanickingRule(t *testing.T) {
	e := &Engine{rules: []rules.Rule{
		&stubRule{name: "panics", panicsOn: true},
		&stubRule{name: "fine", alerts: []models.Alert{{RuleName: "fine", Severity: models.SeverityHigh}}},
	}}

	alerts := e.Analyze(nil, rules.Context{})
	if len(alerts) != 1 {
		t.Fatalf("expected only the non-panicking rule's alert to survive, got %d", len(alerts))
	}
	if alerts[0].RuleName != "fine" {
		t.Errorf("expected alert from 'fine' rule, got %s", alerts[0].RuleName)
	}
}

func TestEngine_RegistryOrderMatchesSpec(t *testing.T) {
	e := New()
	if len(e.rules) != 10 {
		t.Fatalf("expected 10 registered rules, got %d", len(e.rules))
	}
	want := []string{
		"Structuring Detection",
		"Large Transaction Threshold",
		"High Risk Country",
		"Watchlist Match",
		"Rapid Fund Movement",
		"Round Amount Pattern",
		"Dormant Account Activity",
		"Counterparty Concentration",
		"Profile Deviation",
		"Flow-Through Detection",
	}
	for i, w := range want {
		if e.rules[i].RuleName() != w {
			t.Errorf("position %d: expected registered rule %q, got %q", i, w, e.rules[i].RuleName())
		}
	}
}

func TestEngine_CleanCustomerProducesNoAlerts(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var txs []models.Transaction
	for i := 0; i < 6; i++ {
		txs = append(txs, models.Transaction{
			Date:                  base.AddDate(0, 0, i*10),
			DateValid:             true,
			Amount:                123.45 + float64(i),
			Sender:                "Clean Customer BV",
			Receiver:              "Regular Counterparty",
			IBAN:                  "NL00BANK0123456789",
			BIC:                   "ABNANL2A",
			Currency:              "EUR",
			TransactionType:       "credit",
			BusinessContactNumber: "BCN-005",
		})
	}

	e := New()
	alerts := e.Analyze(txs, rules.Context{})
	if len(alerts) != 0 {
		t.Fatalf("expected zero alerts for a clean transaction history, got %d: %+v", len(alerts), alerts)
	}
}
