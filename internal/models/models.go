// Package models holds the shared data types that flow between the
// reference-data store, the detection rules, the scorer, the pattern
// analyzer and the HTTP layer.
package models

import "time"

// Severity ranks an Alert. Lower rank sorts first.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// AlertType identifies which rule produced an Alert.
type AlertType string

const (
	AlertTypeStructuring               AlertType = "STRUCTURING"
	AlertTypeThreshold                 AlertType = "THRESHOLD"
	AlertTypeHighRiskCountry           AlertType = "HIGH_RISK_COUNTRY"
	AlertTypeWatchlistMatch            AlertType = "WATCHLIST_MATCH"
	AlertTypeRapidMovement             AlertType = "RAPID_MOVEMENT"
	AlertTypeRoundAmount               AlertType = "ROUND_AMOUNT"
	AlertTypeDormantAccount            AlertType = "DORMANT_ACCOUNT"
	AlertTypeCounterpartyConcentration AlertType = "COUNTERPARTY_CONCENTRATION"
	AlertTypeProfileDeviation          AlertType = "PROFILE_DEVIATION"
	AlertTypeFlowThrough               AlertType = "FLOW_THROUGH"
)

// RiskLevel is the qualitative bucket a RiskAssessment falls into.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Transaction is one row of a customer's BCN-filtered transaction view.
// DateValid is false when the source date failed to parse; such rows are
// excluded from every temporal analysis but still participate in
// amount-only aggregations.
type Transaction struct {
	Date                  time.Time
	DateValid             bool
	Amount                float64
	Sender                string
	Receiver              string
	IBAN                  string
	BIC                   string
	Currency              string
	Description           string
	TransactionType       string
	BusinessContactNumber string
}

// HighRiskCountry is one row of the high-risk-country registry.
type HighRiskCountry struct {
	CountryCode string // two letters, upper-cased
	CountryName string
	RiskLevel   string // e.g. "Blacklist", "Greylist"
}

// WatchlistEntry is one row of the watchlist registry.
type WatchlistEntry struct {
	Name  string
	Type  string
	Notes string
}

// WorkInstruction is one row of the work-instructions registry.
type WorkInstruction struct {
	BusinessContactNumber string
	Instruction           string
}

// Alert is the output of a single detection rule firing once.
type Alert struct {
	ID                         string    `json:"id"`
	RuleName                   string    `json:"rule_name"`
	Severity                   Severity  `json:"severity"`
	Description                string    `json:"description"`
	AffectedTransactionIndices []int     `json:"affected_transaction_indices"`
	AlertType                  AlertType `json:"alert_type"`
}

// RiskAssessment is the Risk Scorer's output for one customer.
type RiskAssessment struct {
	OverallScore        float64   `json:"overall_score"`
	RiskLevel           RiskLevel `json:"risk_level"`
	ContributingFactors []string  `json:"contributing_factors"`
}

// PatternData is the Pattern Analyzer's output for one customer.
type PatternData struct {
	ByMonth                 map[string]float64 `json:"by_month"`
	ByType                  map[string]float64 `json:"by_type"`
	ByCurrency              map[string]float64 `json:"by_currency"`
	RoundAmountRatio        float64             `json:"round_amount_ratio"`
	AvgTransactionSize      float64             `json:"avg_transaction_size"`
	HighRiskCountryExposure float64             `json:"high_risk_country_exposure"`
}

// WatchlistMatch is one fuzzy hit produced by the standalone matcher.
type WatchlistMatch struct {
	MatchedEntity      string  `json:"matched_entity"`
	WatchlistEntry     string  `json:"watchlist_entry"`
	MatchScore         float64 `json:"match_score"`
	MatchField         string  `json:"match_field"` // "sender" or "receiver"
	TransactionIndices []int   `json:"transaction_indices"`
}

// FlaggedTransaction is a Transaction annotated with the rule names of
// every alert that referenced its index, shaped for the overview response.
type FlaggedTransaction struct {
	Index           int     `json:"index"`
	Date            string  `json:"date"` // "2006-01-02", or "" if the date failed to parse
	Amount          float64 `json:"amount"`
	Sender          string  `json:"sender"`
	Receiver        string  `json:"receiver"`
	IBAN            *string `json:"iban"`
	BIC             *string `json:"bic"`
	Currency        string  `json:"currency"`
	Description     *string  `json:"description"`
	TransactionType *string  `json:"transaction_type"`
	Flags           []string `json:"flags"`
}

// CustomerOverview is the full assembled response for a BCN.
type CustomerOverview struct {
	BusinessContactNumber string               `json:"business_contact_number"`
	CustomerName          string               `json:"customer_name"`
	RiskAssessment        RiskAssessment       `json:"risk_assessment"`
	Transactions          []FlaggedTransaction `json:"transactions"`
	Alerts                []Alert              `json:"alerts"`
	Patterns              PatternData          `json:"patterns"`
	WatchlistMatches      []WatchlistMatch     `json:"watchlist_matches"`
	WorkInstructions      []string             `json:"work_instructions"`
}

// UploadResponse is returned by every upload endpoint.
type UploadResponse struct {
	Status      string   `json:"status"`
	RecordCount int      `json:"record_count"`
	Warnings    []string `json:"warnings"`
}

// UploadStatus reports which datasets currently hold data.
type UploadStatus struct {
	Transactions      bool `json:"transactions"`
	Watchlist         bool `json:"watchlist"`
	HighRiskCountries bool `json:"high_risk_countries"`
	WorkInstructions  bool `json:"work_instructions"`
}

// SearchResult is one row of a BCN search.
type SearchResult struct {
	BusinessContactNumber string `json:"bcn"`
	Name                  string `json:"name"`
	TransactionCount      int    `json:"transaction_count"`
}
