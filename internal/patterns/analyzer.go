// Package patterns computes the aggregations and ratios that make up a
// customer's PatternData.
package patterns

import (
	"math"
	"strings"

	"github.com/enterprise/aml-overview/internal/models"
)

// Analyze produces month/type/currency aggregations, the round-amount
// ratio, average transaction size, and high-risk-country exposure ratio
// for the given transaction view. Empty input returns a zero-valued
// PatternData.
func Analyze(transactions []models.Transaction, highRiskCountries []models.HighRiskCountry) models.PatternData {
	data := models.PatternData{
		ByMonth:    map[string]float64{},
		ByType:     map[string]float64{},
		ByCurrency: map[string]float64{},
	}

	if len(transactions) == 0 {
		return data
	}

	for _, tx := range transactions {
		if tx.DateValid {
			month := tx.Date.Format("2006-01")
			data.ByMonth[month] += tx.Amount
		}

		if t := strings.TrimSpace(tx.TransactionType); t != "" {
			data.ByType[t] += tx.Amount
		}

		if c := strings.TrimSpace(tx.Currency); c != "" {
			data.ByCurrency[c] += tx.Amount
		}
	}

	roundCount := 0
	for _, tx := range transactions {
		if isRoundAmount(tx.Amount) {
			roundCount++
		}
	}
	data.RoundAmountRatio = round(float64(roundCount)/float64(len(transactions)), 4)

	sum := 0.0
	for _, tx := range transactions {
		sum += tx.Amount
	}
	data.AvgTransactionSize = round(sum/float64(len(transactions)), 2)

	hrCodes := make(map[string]bool, len(highRiskCountries))
	for _, c := range highRiskCountries {
		code := strings.ToUpper(strings.TrimSpace(c.CountryCode))
		if code != "" {
			hrCodes[code] = true
		}
	}

	exposed := 0
	for _, tx := range transactions {
		if hrCodes[ibanCountry(tx.IBAN)] || hrCodes[bicCountry(tx.BIC)] {
			exposed++
		}
	}
	data.HighRiskCountryExposure = round(float64(exposed)/float64(len(transactions)), 4)

	return data
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func isRoundAmount(amount float64) bool {
	abs := math.Abs(amount)
	if abs == 0 {
		return false
	}
	return isDivisible(abs, 1000) || isDivisible(abs, 500)
}

func isDivisible(amount, divisor float64) bool {
	const epsilon = 1e-6
	remainder := amount - math.Floor(amount/divisor)*divisor
	return remainder < epsilon && remainder > -epsilon
}

func ibanCountry(iban string) string {
	s := strings.ToUpper(strings.TrimSpace(iban))
	if len(s) >= 2 && isAlpha(s[:2]) {
		return s[:2]
	}
	return ""
}

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
