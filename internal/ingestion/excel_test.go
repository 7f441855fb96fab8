package ingestion

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, h := range header {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetCellValue(sheet, cellRef, h); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cellRef, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestParseTransactions_HappyPath(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Date", "Amount", "Sender", "Receiver", "IBAN", "BIC", "Currency", "Description", "Transaction Type", "Business Contact Number"},
		[][]string{
			{"2026-01-05", "9500", "Jan de Vries", "Someone", "NL00BANK0123456789", "ABCDNLAA", "EUR", "payment", "debit", "BCN-001"},
		},
	)

	txs, warnings, err := ParseTransactions(data)
	if err != nil {
		t.Fatalf("ParseTransactions: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for a complete sheet, got %v", warnings)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	tx := txs[0]
	if tx.Amount != 9500 {
		t.Errorf("expected amount 9500, got %v", tx.Amount)
	}
	if !tx.DateValid {
		t.Errorf("expected date to parse")
	}
	if tx.BusinessContactNumber != "BCN-001" {
		t.Errorf("expected BCN-001, got %q", tx.BusinessContactNumber)
	}
}

func TestParseTransactions_MissingColumnsWarns(t *testing.T) {
	data := buildWorkbook(t, []string{"Date", "Amount"}, [][]string{{"2026-01-05", "100"}})

	_, warnings, err := ParseTransactions(data)
	if err != nil {
		t.Fatalf("ParseTransactions: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatalf("expected a missing-columns warning")
	}
}

func TestParseTransactions_UnparseableDateDefaultsInvalid(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Date", "Amount", "Sender", "Receiver", "IBAN", "BIC", "Currency", "Description", "Transaction Type", "Business Contact Number"},
		[][]string{
			{"not-a-date", "100", "A", "B", "", "", "EUR", "", "", "BCN-001"},
		},
	)

	txs, warnings, err := ParseTransactions(data)
	if err != nil {
		t.Fatalf("ParseTransactions: %v", err)
	}
	if txs[0].DateValid {
		t.Errorf("expected DateValid false for an unparseable date")
	}
	found := false
	for _, w := range warnings {
		if w == "1 rows have unparseable dates" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unparseable-dates warning, got %v", warnings)
	}
}

func TestParseAmount_DefaultsToZeroOnFailure(t *testing.T) {
	if got := parseAmount("not-a-number"); got != 0 {
		t.Errorf("expected 0 for unparseable amount, got %v", got)
	}
	if got := parseAmount("1234.56"); got != 1234.56 {
		t.Errorf("expected 1234.56, got %v", got)
	}
}

func TestNormalizeHeader_CollapsesWhitespaceAndLowercases(t *testing.T) {
	if got := normalizeHeader("Business   Contact  Number"); got != "business_contact_number" {
		t.Errorf("expected normalized header, got %q", got)
	}
}
