// Package rules implements the ten independent AML detection rules and the
// capability-set contract they all satisfy.
package rules

import "github.com/enterprise/aml-overview/internal/models"

// Context is the bag of reference tables a rule may consult alongside the
// transaction slice it is evaluating. Rules must tolerate a nil or
// zero-valued Context.
type Context struct {
	Watchlist         []models.WatchlistEntry
	HighRiskCountries []models.HighRiskCountry
}

// Rule is the uniform contract every detector satisfies. Implementations
// must tolerate missing fields, empty input and unparseable dates by
// returning an empty alert list rather than failing.
type Rule interface {
	RuleName() string
	Description() string
	Evaluate(transactions []models.Transaction, ctx Context) []models.Alert
}

// Registry returns the ten rules in the exact order the Analysis Engine
// must run them in.
func Registry() []Rule {
	return []Rule{
		NewStructuringDetectionRule(),
		NewThresholdAlertRule(),
		NewHighRiskCountryRule(),
		NewWatchlistMatchRule(),
		NewRapidFundMovementRule(),
		NewRoundAmountPatternRule(),
		NewDormantAccountRule(),
		NewCounterpartyConcentrationRule(),
		NewProfileDeviationRule(),
		NewFlowThroughRule(),
	}
}
