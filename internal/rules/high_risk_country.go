package rules

import (
	"fmt"
	"strings"

	"github.com/enterprise/aml-overview/internal/models"
)

// HighRiskCountryRule flags transactions involving IBANs or BICs from
// high-risk jurisdictions.
type HighRiskCountryRule struct{}

func NewHighRiskCountryRule() *HighRiskCountryRule { return &HighRiskCountryRule{} }

func (r *HighRiskCountryRule) RuleName() string { return "High Risk Country" }

func (r *HighRiskCountryRule) Description() string {
	return "Flags transactions involving IBANs or BICs from high-risk countries."
}

// ibanCountry returns the first two characters of an IBAN, upper-cased,
// when they are alphabetic. Otherwise "".
func ibanCountry(iban string) string {
	s := strings.ToUpper(strings.TrimSpace(iban))
	if len(s) >= 2 && isAlpha(s[:2]) {
		return s[:2]
	}
	return ""
}

// bicCountry returns characters 5-6 (0-indexed 4:6) of a BIC, upper-cased,
// when they are alphabetic. Otherwise "".
func bicCountry(bic string) string {
	s := strings.ToUpper(strings.TrimSpace(bic))
	if len(s) >= 6 && isAlpha(s[4:6]) {
		return s[4:6]
	}
	return ""
}

func isAlpha(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

type countryHit struct {
	code   string
	source string
}

func (r *HighRiskCountryRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	if len(ctx.HighRiskCountries) == 0 || len(transactions) == 0 {
		return alerts
	}

	riskLookup := make(map[string]string)
	for _, c := range ctx.HighRiskCountries {
		code := strings.ToUpper(strings.TrimSpace(c.CountryCode))
		if code != "" {
			riskLookup[code] = strings.TrimSpace(c.RiskLevel)
		}
	}
	if len(riskLookup) == 0 {
		return alerts
	}

	for idx, tx := range transactions {
		var hits []countryHit

		if cc := ibanCountry(tx.IBAN); cc != "" {
			if _, ok := riskLookup[cc]; ok {
				hits = append(hits, countryHit{cc, "IBAN"})
			}
		}
		if cc := bicCountry(tx.BIC); cc != "" {
			if _, ok := riskLookup[cc]; ok {
				hits = append(hits, countryHit{cc, "BIC"})
			}
		}

		for _, hit := range hits {
			riskLevelStr := riskLookup[hit.code]
			isBlacklist := strings.Contains(strings.ToLower(riskLevelStr), "blacklist")
			severity := models.SeverityMedium
			label := "Greylisted"
			if isBlacklist {
				severity = models.SeverityHigh
				label = "Blacklisted"
			}

			dateStr := "unknown date"
			if tx.DateValid {
				dateStr = formatDate(tx.Date)
			}

			sender := tx.Sender
			if sender == "" {
				sender = "N/A"
			}
			receiver := tx.Receiver
			if receiver == "" {
				receiver = "N/A"
			}

			alerts = append(alerts, models.Alert{
				ID:       newAlertID(),
				RuleName: r.RuleName(),
				Severity: severity,
				Description: fmt.Sprintf(
					"%s country %s detected via %s on transaction dated %s, amount %.2f EUR. Sender: %s, Receiver: %s.",
					label, hit.code, hit.source, dateStr, tx.Amount, sender, receiver,
				),
				AffectedTransactionIndices: []int{idx},
				AlertType:                  models.AlertTypeHighRiskCountry,
			})
		}
	}

	return alerts
}
