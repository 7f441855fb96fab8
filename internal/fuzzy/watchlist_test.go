package fuzzy

import (
	"testing"

	"github.com/enterprise/aml-overview/internal/models"
)

func TestMatchNames_FiltersBelowThresholdAndDedups(t *testing.T) {
	watchlist := []models.WatchlistEntry{
		{Name: "Volkov Enterprises"},
		{Name: "Completely Unrelated Corp"},
	}
	indices := map[string][]int{
		"volkov enterprises llc": {0, 2},
	}

	matches := MatchNames([]string{"Volkov Enterprises LLC"}, watchlist, "sender", indices)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match above threshold, got %d", len(matches))
	}
	if matches[0].WatchlistEntry != "Volkov Enterprises" {
		t.Errorf("expected match against 'Volkov Enterprises', got %q", matches[0].WatchlistEntry)
	}
	if matches[0].MatchField != "sender" {
		t.Errorf("expected match field 'sender', got %q", matches[0].MatchField)
	}
	if len(matches[0].TransactionIndices) != 2 {
		t.Errorf("expected transaction indices to be stamped from the caller map, got %v", matches[0].TransactionIndices)
	}
}

func TestMatchNames_EmptyWatchlistProducesNoMatches(t *testing.T) {
	matches := MatchNames([]string{"Anyone"}, nil, "sender", nil)
	if len(matches) != 0 {
		t.Fatalf("expected no matches against an empty watchlist, got %d", len(matches))
	}
}

func TestMatchNames_GlobalDedupAcrossEntities(t *testing.T) {
	watchlist := []models.WatchlistEntry{{Name: "Acme Corp"}}
	indices := map[string][]int{
		"acme corp": {0},
	}

	matches := MatchNames([]string{"Acme Corp", "Acme Corp"}, watchlist, "sender", indices)
	if len(matches) != 1 {
		t.Fatalf("expected the (entity, watchlist) pair to be emitted once, got %d", len(matches))
	}
}
