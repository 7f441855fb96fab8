package fuzzy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/enterprise/aml-overview/internal/models"
)

const (
	matchThresholdMedium = 70.0
	maxCandidatesPerName = 5
)

type scoredCandidate struct {
	name  string
	score float64
}

// MatchNames scores every non-empty, trimmed entity name against the
// watchlist, keeps only the top 5 candidates per entity, discards anything
// below the medium threshold, and deduplicates globally by
// (entity_lower, watchlist_lower) — a pair is only ever emitted once
// regardless of how many entities it is found under.
//
// indicesByEntity maps a lowercased entity name to the transaction indices
// it appeared at; matchField is stamped onto every emitted match.
func MatchNames(
	entities []string,
	watchlist []models.WatchlistEntry,
	matchField string,
	indicesByEntity map[string][]int,
) []models.WatchlistMatch {
	var matches []models.WatchlistMatch

	names := make([]string, 0, len(watchlist))
	for _, w := range watchlist {
		n := strings.TrimSpace(w.Name)
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return matches
	}

	seen := make(map[string]bool)

	for _, rawEntity := range entities {
		entity := strings.TrimSpace(rawEntity)
		if entity == "" {
			continue
		}
		entityLower := strings.ToLower(entity)

		candidates := make([]scoredCandidate, 0, len(names))
		for _, wlName := range names {
			candidates = append(candidates, scoredCandidate{wlName, TokenSortRatio(entity, wlName)})
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		if len(candidates) > maxCandidatesPerName {
			candidates = candidates[:maxCandidatesPerName]
		}

		for _, c := range candidates {
			if c.score < matchThresholdMedium {
				continue
			}
			wlLower := strings.ToLower(c.name)
			dedupKey := fmt.Sprintf("%s\x00%s", entityLower, wlLower)
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true

			matches = append(matches, models.WatchlistMatch{
				MatchedEntity:      entity,
				WatchlistEntry:     c.name,
				MatchScore:         c.score,
				MatchField:         matchField,
				TransactionIndices: indicesByEntity[entityLower],
			})
		}
	}

	return matches
}
