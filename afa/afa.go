// Package afa computes the straight-line depreciation (Absetzung für
// Abnutzung) of business assets.
//
// An asset is depreciated over its estimated lifetime in years. The year of
// purchase only counts the months from the month of purchase on, the
// remaining months are depreciated in the year following the last full one.
package afa

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/stoier/date"
	"github.com/shopspring/decimal"
)

// Round is the number of decimal places of a depreciation value.
const Round = 3

// ErrNotPurchased is returned for a year before the purchase of the asset.
var ErrNotPurchased = errors.New("asset not purchased yet")

// YearError reports a year in which an asset cannot be depreciated.
type YearError struct {
	Asset string
	Year  int
}

func (e *YearError) Error() string {
	return fmt.Sprintf("%s was not purchased yet in %d", e.Asset, e.Year)
}

func (e *YearError) Is(target error) bool { return target == ErrNotPurchased }

// Asset is a depreciable purchase.
type Asset struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Purchase    date.Date       `json:"date_of_purchase"`
	Lifetime    int             `json:"estimated_lifetime_years"`
}

// Decode reads an asset from its json description.
func Decode(r io.Reader) (Asset, error) {
	var a Asset
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Asset{}, fmt.Errorf("invalid asset: %w", err)
	}
	if a.Lifetime <= 0 {
		return Asset{}, fmt.Errorf("asset %q: estimated lifetime must be positive, got %d", a.Name, a.Lifetime)
	}
	if a.Purchase.IsZero() {
		return Asset{}, fmt.Errorf("asset %q: missing date of purchase", a.Name)
	}
	return a, nil
}

// LoadDir decodes every asset (*.json) of dir, sorted by file name. Every
// invalid file is reported.
func LoadDir(dir string) ([]Asset, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	assets := make([]Asset, 0, len(files))
	var errs []error
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a, err := Decode(f)
		f.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		assets = append(assets, a)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return assets, nil
}

// Value returns the depreciation of the asset for year.
func (a Asset) Value(year int) (decimal.Decimal, error) {
	if year < a.Purchase.Year() {
		return decimal.Zero, &YearError{Asset: a.Name, Year: year}
	}
	firstMonths := 13 - int(a.Purchase.Month())
	var months int
	switch n := year - a.Purchase.Year(); {
	case n == 0:
		months = firstMonths
	case n < a.Lifetime:
		months = 12
	case n == a.Lifetime:
		months = 12 - firstMonths
	default:
		return decimal.Zero, nil
	}
	total := decimal.NewFromInt(int64(12 * a.Lifetime))
	return a.Price.Mul(decimal.NewFromInt(int64(months))).Div(total).RoundBank(Round), nil
}
