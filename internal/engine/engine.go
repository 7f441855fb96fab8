// Package engine runs the registered detection rules over a customer's
// transaction view and assembles the ordered alert stream.
package engine

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/enterprise/aml-overview/internal/models"
	"github.com/enterprise/aml-overview/internal/rules"
)

var severityOrder = map[models.Severity]int{
	models.SeverityHigh:   0,
	models.SeverityMedium: 1,
	models.SeverityLow:    2,
}

// unknownSeverityRank is the sort rank given to any severity value the
// engine does not recognize. Per design, unknown severities sort last.
const unknownSeverityRank = 99

func severityRank(s models.Severity) int {
	if rank, ok := severityOrder[s]; ok {
		return rank
	}
	return unknownSeverityRank
}

// Engine runs every registered rule against the same transaction view and
// context, in registration order, isolating per-rule failures.
type Engine struct {
	rules []rules.Rule
}

// New builds an Engine with the default rule registry, in the exact order
// the Analysis Engine design requires.
func New() *Engine {
	return &Engine{rules: rules.Registry()}
}

// Analyze runs all rules and returns the combined alert stream, stably
// sorted by severity. A rule that panics is recovered and logged; its
// output for that invocation is empty but every other rule still runs.
func (e *Engine) Analyze(transactions []models.Transaction, ctx rules.Context) []models.Alert {
	var all []models.Alert

	for _, rule := range e.rules {
		alerts := e.runRule(rule, transactions, ctx)
		all = append(all, alerts...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return severityRank(all[i].Severity) < severityRank(all[j].Severity)
	})

	return all
}

func (e *Engine) runRule(rule rules.Rule, transactions []models.Transaction, ctx rules.Context) (result []models.Alert) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Str("rule", rule.RuleName()).
				Interface("panic", r).
				Msg("rule raised an exception")
			result = nil
		}
	}()

	return rule.Evaluate(transactions, ctx)
}
