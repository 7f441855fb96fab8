package rules

import (
	"fmt"
	"strings"

	"github.com/enterprise/aml-overview/internal/fuzzy"
	"github.com/enterprise/aml-overview/internal/models"
)

const (
	fuzzyMatchHigh   = 85.0
	fuzzyMatchMedium = 70.0
)

// WatchlistMatchRule matches transaction sender/receiver names against the
// watchlist using fuzzy matching.
type WatchlistMatchRule struct{}

func NewWatchlistMatchRule() *WatchlistMatchRule { return &WatchlistMatchRule{} }

func (r *WatchlistMatchRule) RuleName() string { return "Watchlist Match" }

func (r *WatchlistMatchRule) Description() string {
	return "Matches transaction sender/receiver names against the watchlist using fuzzy matching."
}

type watchlistDedupKey struct {
	entityLower string
	wlLower     string
}

func (r *WatchlistMatchRule) Evaluate(transactions []models.Transaction, ctx Context) []models.Alert {
	var alerts []models.Alert

	names := make([]string, 0, len(ctx.Watchlist))
	for _, w := range ctx.Watchlist {
		n := strings.TrimSpace(w.Name)
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 || len(transactions) == 0 {
		return alerts
	}

	seen := make(map[watchlistDedupKey]int) // key -> index into alerts

	for _, field := range []string{"sender", "receiver"} {
		for idx, tx := range transactions {
			var entity string
			if field == "sender" {
				entity = strings.TrimSpace(tx.Sender)
			} else {
				entity = strings.TrimSpace(tx.Receiver)
			}
			if entity == "" {
				continue
			}

			for _, wlName := range names {
				score := fuzzy.TokenSortRatio(entity, wlName)
				if score < fuzzyMatchMedium {
					continue
				}

				key := watchlistDedupKey{strings.ToLower(entity), strings.ToLower(wlName)}
				if pos, ok := seen[key]; ok {
					existing := &alerts[pos]
					if !containsInt(existing.AffectedTransactionIndices, idx) {
						existing.AffectedTransactionIndices = append(existing.AffectedTransactionIndices, idx)
					}
					continue
				}

				severity := models.SeverityMedium
				if score >= fuzzyMatchHigh {
					severity = models.SeverityHigh
				}

				alerts = append(alerts, models.Alert{
					ID:       newAlertID(),
					RuleName: r.RuleName(),
					Severity: severity,
					Description: fmt.Sprintf(
						"Watchlist match: '%s' (%s) matches watchlist entry '%s' with score %.0f%%.",
						entity, field, wlName, score,
					),
					AffectedTransactionIndices: []int{idx},
					AlertType:                  models.AlertTypeWatchlistMatch,
				})
				seen[key] = len(alerts) - 1
			}
		}
	}

	return alerts
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
