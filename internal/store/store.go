// Package store holds the four uploaded reference datasets in process
// memory behind an atomically-swapped snapshot. It is explicitly not a
// database: there is no persistence, no multi-tenant keying, and no
// locking on the read path.
package store

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/enterprise/aml-overview/internal/models"
)

// Snapshot is one immutable, fully-populated set of the four datasets.
type Snapshot struct {
	Transactions      []models.Transaction
	Watchlist         []models.WatchlistEntry
	HighRiskCountries []models.HighRiskCountry
	WorkInstructions  []models.WorkInstruction
}

func emptySnapshot() *Snapshot {
	return &Snapshot{}
}

// Store is the reference-data holder injected into HTTP handlers. Uploads
// build a new Snapshot and swap it in atomically; readers always see a
// fully-formed snapshot, old or new, never a torn intermediate.
type Store struct {
	ptr atomic.Pointer[Snapshot]
}

// New returns a Store with an empty snapshot installed.
func New() *Store {
	s := &Store{}
	s.ptr.Store(emptySnapshot())
	return s
}

func (s *Store) current() *Snapshot {
	return s.ptr.Load()
}

// SetTransactions replaces the transaction table wholesale.
func (s *Store) SetTransactions(transactions []models.Transaction) {
	prev := s.current()
	next := *prev
	next.Transactions = transactions
	s.ptr.Store(&next)
}

// SetWatchlist replaces the watchlist table wholesale.
func (s *Store) SetWatchlist(entries []models.WatchlistEntry) {
	prev := s.current()
	next := *prev
	next.Watchlist = entries
	s.ptr.Store(&next)
}

// SetHighRiskCountries replaces the high-risk-country registry wholesale.
func (s *Store) SetHighRiskCountries(countries []models.HighRiskCountry) {
	prev := s.current()
	next := *prev
	next.HighRiskCountries = countries
	s.ptr.Store(&next)
}

// SetWorkInstructions replaces the work-instruction table wholesale.
func (s *Store) SetWorkInstructions(instructions []models.WorkInstruction) {
	prev := s.current()
	next := *prev
	next.WorkInstructions = instructions
	s.ptr.Store(&next)
}

// ClearAll wipes every dataset.
func (s *Store) ClearAll() {
	s.ptr.Store(emptySnapshot())
}

// Watchlist returns the current watchlist table.
func (s *Store) Watchlist() []models.WatchlistEntry {
	return s.current().Watchlist
}

// HighRiskCountries returns the current high-risk-country registry.
func (s *Store) HighRiskCountries() []models.HighRiskCountry {
	return s.current().HighRiskCountries
}

// WorkInstructions returns the current work-instruction table.
func (s *Store) WorkInstructions() []models.WorkInstruction {
	return s.current().WorkInstructions
}

// CustomerTransactions returns every transaction for the given BCN, in
// original upload order.
func (s *Store) CustomerTransactions(bcn string) []models.Transaction {
	all := s.current().Transactions
	var out []models.Transaction
	for _, tx := range all {
		if tx.BusinessContactNumber == bcn {
			out = append(out, tx)
		}
	}
	return out
}

// UploadStatus reports which datasets currently hold at least one row.
func (s *Store) UploadStatus() models.UploadStatus {
	snap := s.current()
	return models.UploadStatus{
		Transactions:      len(snap.Transactions) > 0,
		Watchlist:         len(snap.Watchlist) > 0,
		HighRiskCountries: len(snap.HighRiskCountries) > 0,
		WorkInstructions:  len(snap.WorkInstructions) > 0,
	}
}

// searchRow is an intermediate aggregate built while answering SearchBCN.
type searchRow struct {
	bcn              string
	name             string
	transactionCount int
	group            int // 0: BCN prefix, 1: BCN substring, 2: sender substring
}

// SearchBCN finds every BCN whose number matches query as a prefix, every
// BCN whose number merely contains query, and every BCN with a transaction
// whose sender contains query — in that priority order, with BCN ascending
// as the tiebreaker within each group.
func (s *Store) SearchBCN(query string) []models.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	grouped := make(map[string]*searchRow)
	var order []string

	addRow := func(tx models.Transaction, group int) {
		row, ok := grouped[tx.BusinessContactNumber]
		if !ok {
			row = &searchRow{bcn: tx.BusinessContactNumber, name: tx.Sender, group: group}
			grouped[tx.BusinessContactNumber] = row
			order = append(order, tx.BusinessContactNumber)
		}
		row.transactionCount++
		if group < row.group {
			row.group = group
		}
	}

	for _, tx := range s.current().Transactions {
		bcnLower := strings.ToLower(tx.BusinessContactNumber)
		switch {
		case strings.HasPrefix(bcnLower, q):
			addRow(tx, 0)
		case strings.Contains(bcnLower, q):
			addRow(tx, 1)
		case strings.Contains(strings.ToLower(tx.Sender), q):
			addRow(tx, 2)
		}
	}

	results := make([]models.SearchResult, 0, len(order))
	for _, bcn := range order {
		row := grouped[bcn]
		results = append(results, models.SearchResult{
			BusinessContactNumber: row.bcn,
			Name:                  row.name,
			TransactionCount:      row.transactionCount,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := grouped[results[i].BusinessContactNumber], grouped[results[j].BusinessContactNumber]
		if ri.group != rj.group {
			return ri.group < rj.group
		}
		return results[i].BusinessContactNumber < results[j].BusinessContactNumber
	})

	return results
}

// AllBCNs returns every distinct BCN present in the transaction table.
func (s *Store) AllBCNs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range s.current().Transactions {
		if !seen[tx.BusinessContactNumber] {
			seen[tx.BusinessContactNumber] = true
			out = append(out, tx.BusinessContactNumber)
		}
	}
	return out
}
