package api

import (
	"sort"
	"strings"

	"github.com/enterprise/aml-overview/internal/engine"
	"github.com/enterprise/aml-overview/internal/fuzzy"
	"github.com/enterprise/aml-overview/internal/models"
	"github.com/enterprise/aml-overview/internal/patterns"
	"github.com/enterprise/aml-overview/internal/rules"
	"github.com/enterprise/aml-overview/internal/scoring"
	"github.com/enterprise/aml-overview/internal/store"
)

// analyzeCustomer runs the full rule/score/pattern/watchlist pipeline over
// one customer's BCN-filtered transaction view. ok is false when the view
// is empty.
func analyzeCustomer(st *store.Store, eng *engine.Engine, bcn string) (
	transactions []models.Transaction,
	alerts []models.Alert,
	risk models.RiskAssessment,
	patternData models.PatternData,
	watchlistMatches []models.WatchlistMatch,
	ok bool,
) {
	transactions = st.CustomerTransactions(bcn)
	if len(transactions) == 0 {
		return nil, nil, models.RiskAssessment{}, models.PatternData{}, nil, false
	}

	ctx := rules.Context{
		Watchlist:         st.Watchlist(),
		HighRiskCountries: st.HighRiskCountries(),
	}

	alerts = eng.Analyze(transactions, ctx)
	risk = scoring.CalculateRisk(alerts)
	patternData = patterns.Analyze(transactions, st.HighRiskCountries())
	watchlistMatches = matchWatchlist(transactions, st.Watchlist())

	return transactions, alerts, risk, patternData, watchlistMatches, true
}

// matchWatchlist runs the fuzzy matcher once over senders and once over
// receivers, mapping each lowercased entity name back to every transaction
// index (within the view) it appears at.
func matchWatchlist(transactions []models.Transaction, watchlist []models.WatchlistEntry) []models.WatchlistMatch {
	var matches []models.WatchlistMatch

	for _, field := range []string{"sender", "receiver"} {
		indicesByEntity := make(map[string][]int)
		var seenOrder []string

		for i, tx := range transactions {
			name := tx.Sender
			if field == "receiver" {
				name = tx.Receiver
			}
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			lower := strings.ToLower(name)
			if _, ok := indicesByEntity[lower]; !ok {
				seenOrder = append(seenOrder, name)
			}
			indicesByEntity[lower] = append(indicesByEntity[lower], i)
		}

		matches = append(matches, fuzzy.MatchNames(seenOrder, watchlist, field, indicesByEntity)...)
	}

	return matches
}

// buildCustomerOverview assembles the full CustomerOverview response for a
// BCN, or false if the customer has no transactions.
func buildCustomerOverview(st *store.Store, eng *engine.Engine, bcn string) (models.CustomerOverview, bool) {
	transactions, alerts, risk, patternData, watchlistMatches, ok := analyzeCustomer(st, eng, bcn)
	if !ok {
		return models.CustomerOverview{}, false
	}

	indexFlags := make(map[int][]string)
	for _, alert := range alerts {
		for _, idx := range alert.AffectedTransactionIndices {
			indexFlags[idx] = append(indexFlags[idx], alert.RuleName)
		}
	}

	flagged := make([]models.FlaggedTransaction, 0, len(transactions))
	for i, tx := range transactions {
		date := ""
		if tx.DateValid {
			date = tx.Date.Format("2006-01-02")
		}
		flagged = append(flagged, models.FlaggedTransaction{
			Index:           i,
			Date:            date,
			Amount:          tx.Amount,
			Sender:          tx.Sender,
			Receiver:        tx.Receiver,
			IBAN:            strPtr(tx.IBAN),
			BIC:             strPtr(tx.BIC),
			Currency:        tx.Currency,
			Description:     strPtr(tx.Description),
			TransactionType: strPtr(tx.TransactionType),
			Flags:           indexFlags[i],
		})
	}

	workInstructions := workInstructionsFor(st.WorkInstructions(), bcn)

	customerName := transactions[0].Sender

	return models.CustomerOverview{
		BusinessContactNumber: bcn,
		CustomerName:          customerName,
		RiskAssessment:        risk,
		Transactions:          flagged,
		Alerts:                alerts,
		Patterns:              patternData,
		WatchlistMatches:      watchlistMatches,
		WorkInstructions:      workInstructions,
	}, true
}

// workInstructionsFor returns every instruction text for bcn, falling back
// to every instruction on file when the BCN-filtered set is empty.
func workInstructionsFor(all []models.WorkInstruction, bcn string) []string {
	var matched []string
	for _, wi := range all {
		if wi.BusinessContactNumber == bcn {
			matched = append(matched, wi.Instruction)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	var everything []string
	for _, wi := range all {
		everything = append(everything, wi.Instruction)
	}
	return everything
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sortedBCNs returns every distinct BCN in the store, ascending.
func sortedBCNs(st *store.Store) []string {
	bcns := st.AllBCNs()
	sort.Strings(bcns)
	return bcns
}
