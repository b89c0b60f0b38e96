package afa

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/stoier/date"
	"github.com/shopspring/decimal"
)

func TestValue(t *testing.T) {
	laptop := Asset{Name: "laptop", Price: decimal.NewFromInt(1200), Purchase: date.New(2020, 4, 15), Lifetime: 3}
	testCases := []struct {
		year int
		want string
	}{
		{2020, "300"},
		{2021, "400"},
		{2022, "400"},
		{2023, "100"},
		{2024, "0"},
	}
	total := decimal.Zero
	for _, tc := range testCases {
		got, err := laptop.Value(tc.year)
		if err != nil {
			t.Fatalf("Value(%d) error = %v", tc.year, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("Value(%d) = %s, want %s", tc.year, got, tc.want)
		}
		total = total.Add(got)
	}
	if !total.Equal(laptop.Price) {
		t.Errorf("total depreciation = %s, want the price %s", total, laptop.Price)
	}

	if _, err := laptop.Value(2019); !errors.Is(err, ErrNotPurchased) {
		t.Errorf("Value(2019) error = %v, want ErrNotPurchased", err)
	}
}

func TestValue_Rounding(t *testing.T) {
	desk := Asset{Name: "desk", Price: decimal.NewFromInt(1000), Purchase: date.New(2021, 1, 1), Lifetime: 3}
	got, err := desk.Value(2021)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "333.333" {
		t.Errorf("Value(2021) = %s, want 333.333", got)
	}
	if got, _ := desk.Value(2024); !got.IsZero() {
		t.Errorf("Value(2024) = %s, want 0 when bought in january", got)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"laptop.json": `{"name":"laptop","description":"work laptop","price":"1200.00","date_of_purchase":"2020-04-15","estimated_lifetime_years":3}`,
		"notes.txt":   `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	assets, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(assets) != 1 || assets[0].Description != "work laptop" || assets[0].Purchase != date.New(2020, 4, 15) {
		t.Errorf("LoadDir() = %+v", assets)
	}

	for _, bad := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(dir, bad), []byte(`{"name":"x"}`), 0644); err != nil {
			t.Fatal(err)
		}
	}
	_, err = LoadDir(dir)
	if err == nil || !strings.Contains(err.Error(), "a.json") || !strings.Contains(err.Error(), "b.json") {
		t.Errorf("LoadDir() error = %v, want both invalid files reported", err)
	}

	if _, err := Decode(strings.NewReader(`{"name":"x","price":1,"date_of_purchase":"2020-01-01","estimated_lifetime_years":0}`)); err == nil {
		t.Errorf("Decode() with no lifetime succeeded")
	}
}
