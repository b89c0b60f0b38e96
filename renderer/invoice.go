package renderer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/stoier/date"
	"github.com/shopspring/decimal"
)

// Invoice is an invoice issued to, or received from, the counterparty of an
// account.
type Invoice struct {
	Number      string          `json:"number"`
	Date        date.Date       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
}

// LoadInvoices reads the invoices of dir, organized as <account>/*.json.
// Invoices of an account are sorted by date.
func LoadInvoices(dir string) (map[string][]Invoice, error) {
	res := make(map[string][]Invoice)
	if dir == "" {
		return res, nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "*", "*.json"))
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var inv Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return nil, fmt.Errorf("invalid invoice %q: %w", file, err)
		}
		if inv.Number == "" {
			inv.Number = strings.TrimSuffix(filepath.Base(file), ".json")
		}
		account := filepath.Base(filepath.Dir(file))
		res[account] = append(res[account], inv)
	}
	for _, invoices := range res {
		slices.SortStableFunc(invoices, func(a, b Invoice) int { return a.Date.Compare(b.Date) })
	}
	return res, nil
}
