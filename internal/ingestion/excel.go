// Package ingestion reads uploaded .xlsx/.xls spreadsheets into the
// normalized tabular rows the reference-data store and rule engine expect.
// Only the OOXML workbook format is readable; a legacy binary .xls file
// fails to open.
package ingestion

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/enterprise/aml-overview/internal/models"
)

var requiredColumnsTransactions = []string{
	"date", "amount", "sender", "receiver", "iban", "bic",
	"currency", "description", "transaction_type", "business_contact_number",
}
var requiredColumnsWatchlist = []string{"name"}
var requiredColumnsHighRiskCountries = []string{"country_code", "country_name", "risk_level"}
var requiredColumnsWorkInstructions = []string{"business_contact_number", "instruction"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeHeader trims, lowercases, and collapses internal whitespace runs
// to a single underscore, matching the original column-normalization rule.
func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	return whitespaceRun.ReplaceAllString(h, "_")
}

// sheetRows reads the first sheet of an OOXML workbook and returns the
// normalized header row plus every data row below it, as raw cell strings.
func sheetRows(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeHeader(h)
	}

	return header, rows[1:], nil
}

// columnIndex returns a header->column-index lookup.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

func cell(row []string, idx map[string]int, column string) (string, bool) {
	col, ok := idx[column]
	if !ok || col >= len(row) {
		return "", ok
	}
	return strings.TrimSpace(row[col]), ok
}

func validateColumns(header []string, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("Missing expected columns: %s", strings.Join(missing, ", "))}
}

// parseAmount coerces a raw cell to a float, defaulting to 0 on failure.
func parseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	time.RFC3339,
}

// parseDate best-effort parses a raw cell into a time.Time. ok is false
// when every known layout fails.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTransactions reads a transactions workbook into Transaction rows.
func ParseTransactions(data []byte) ([]models.Transaction, []string, error) {
	header, rows, err := sheetRows(data)
	if err != nil {
		return nil, nil, err
	}
	idx := columnIndex(header)
	warnings := validateColumns(header, requiredColumnsTransactions)

	txs := make([]models.Transaction, 0, len(rows))
	unparseableDates := 0

	for _, row := range rows {
		tx := models.Transaction{Currency: "EUR"}

		if raw, ok := cell(row, idx, "date"); ok {
			if t, valid := parseDate(raw); valid {
				tx.Date = t
				tx.DateValid = true
			} else {
				unparseableDates++
			}
		}
		if raw, ok := cell(row, idx, "amount"); ok {
			tx.Amount = parseAmount(raw)
		}
		if raw, ok := cell(row, idx, "sender"); ok {
			tx.Sender = raw
		}
		if raw, ok := cell(row, idx, "receiver"); ok {
			tx.Receiver = raw
		}
		if raw, ok := cell(row, idx, "iban"); ok {
			tx.IBAN = raw
		}
		if raw, ok := cell(row, idx, "bic"); ok {
			tx.BIC = raw
		}
		if raw, ok := cell(row, idx, "currency"); ok && raw != "" {
			tx.Currency = raw
		}
		if raw, ok := cell(row, idx, "description"); ok {
			tx.Description = raw
		}
		if raw, ok := cell(row, idx, "transaction_type"); ok {
			tx.TransactionType = raw
		}
		if raw, ok := cell(row, idx, "business_contact_number"); ok {
			tx.BusinessContactNumber = raw
		}

		txs = append(txs, tx)
	}

	if unparseableDates > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows have unparseable dates", unparseableDates))
	}

	return txs, warnings, nil
}

// ParseWatchlist reads a watchlist workbook into WatchlistEntry rows.
func ParseWatchlist(data []byte) ([]models.WatchlistEntry, []string, error) {
	header, rows, err := sheetRows(data)
	if err != nil {
		return nil, nil, err
	}
	idx := columnIndex(header)
	warnings := validateColumns(header, requiredColumnsWatchlist)

	entries := make([]models.WatchlistEntry, 0, len(rows))
	for _, row := range rows {
		var entry models.WatchlistEntry
		if raw, ok := cell(row, idx, "name"); ok {
			entry.Name = raw
		}
		if raw, ok := cell(row, idx, "type"); ok {
			entry.Type = raw
		}
		if raw, ok := cell(row, idx, "notes"); ok {
			entry.Notes = raw
		}
		entries = append(entries, entry)
	}

	return entries, warnings, nil
}

// ParseHighRiskCountries reads a high-risk-country workbook.
func ParseHighRiskCountries(data []byte) ([]models.HighRiskCountry, []string, error) {
	header, rows, err := sheetRows(data)
	if err != nil {
		return nil, nil, err
	}
	idx := columnIndex(header)
	warnings := validateColumns(header, requiredColumnsHighRiskCountries)

	countries := make([]models.HighRiskCountry, 0, len(rows))
	for _, row := range rows {
		var c models.HighRiskCountry
		if raw, ok := cell(row, idx, "country_code"); ok {
			c.CountryCode = strings.ToUpper(raw)
		}
		if raw, ok := cell(row, idx, "country_name"); ok {
			c.CountryName = raw
		}
		if raw, ok := cell(row, idx, "risk_level"); ok {
			c.RiskLevel = raw
		}
		countries = append(countries, c)
	}

	return countries, warnings, nil
}

// ParseWorkInstructions reads a work-instructions workbook.
func ParseWorkInstructions(data []byte) ([]models.WorkInstruction, []string, error) {
	header, rows, err := sheetRows(data)
	if err != nil {
		return nil, nil, err
	}
	idx := columnIndex(header)
	warnings := validateColumns(header, requiredColumnsWorkInstructions)

	instructions := make([]models.WorkInstruction, 0, len(rows))
	for _, row := range rows {
		var wi models.WorkInstruction
		if raw, ok := cell(row, idx, "business_contact_number"); ok {
			wi.BusinessContactNumber = raw
		}
		if raw, ok := cell(row, idx, "instruction"); ok {
			wi.Instruction = raw
		}
		instructions = append(instructions, wi)
	}

	return instructions, warnings, nil
}
