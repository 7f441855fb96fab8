package rules

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/enterprise/aml-overview/internal/models"
)

func newAlertID() string {
	return uuid.New().String()
}

// datedIndices returns the original-view indices of every transaction with
// a valid date, sorted ascending by that date. Ties preserve original order
// (sort.SliceStable).
func datedIndices(transactions []models.Transaction) []int {
	idx := make([]int, 0, len(transactions))
	for i, tx := range transactions {
		if tx.DateValid {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return transactions[idx[a]].Date.Before(transactions[idx[b]].Date)
	})
	return idx
}

// isRoundAmount reports whether amount is nonzero and divisible by 1000 or
// 500.
func isRoundAmount(amount float64) bool {
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	if abs == 0 {
		return false
	}
	return isDivisible(abs, 1000) || isDivisible(abs, 500)
}

func isDivisible(amount, divisor float64) bool {
	const epsilon = 1e-6
	remainder := amount - float64(int64(amount/divisor))*divisor
	return remainder < epsilon && remainder > -epsilon
}

// direction is the in/out classification shared by RapidMovement and
// FlowThrough.
type direction int

const (
	directionIn direction = iota
	directionOut
)

var inTypes = map[string]bool{
	"credit": true, "incoming": true, "deposit": true, "receive": true, "received": true,
}

var outTypes = map[string]bool{
	"debit": true, "outgoing": true, "withdrawal": true, "send": true, "sent": true, "transfer_out": true,
}

// classifyDirection follows transaction_type first, falling back to the
// sign of the amount (>=0 is treated as incoming).
func classifyDirection(tx models.Transaction) direction {
	t := strings.ToLower(strings.TrimSpace(tx.TransactionType))
	if inTypes[t] {
		return directionIn
	}
	if outTypes[t] {
		return directionOut
	}
	if tx.Amount >= 0 {
		return directionIn
	}
	return directionOut
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// allIndicesSortedByDate returns every original-view index, transactions
// with a valid date sorted ascending first, followed by the transactions
// with an unparseable date in their original relative order.
func allIndicesSortedByDate(transactions []models.Transaction) []int {
	var valid, invalid []int
	for i, tx := range transactions {
		if tx.DateValid {
			valid = append(valid, i)
		} else {
			invalid = append(invalid, i)
		}
	}
	sort.SliceStable(valid, func(a, b int) bool {
		return transactions[valid[a]].Date.Before(transactions[valid[b]].Date)
	})
	return append(valid, invalid...)
}
