// Package renderer renders accounts, sums and records as markdown, and
// account statements as a static HTML report.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/etnz/stoier"
	"github.com/shopspring/decimal"
)

//go:embed *.md *.html *.css
var templates embed.FS

// funcs are available in every markdown template.
var funcs = template.FuncMap{
	"cell": cell,
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// Money formats an amount in the given currency. It shows at least the
// currency fraction and up to stoier.Round places, so booked amounts keep
// their precision.
func Money(amount decimal.Decimal, currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, currency).Currency()
	places := min(max(cur.Fraction, significantPlaces(amount)), stoier.Round)
	minor := amount.Shift(int32(places)).RoundBank(0)
	return money.NewFormatter(places, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template).Format(minor.IntPart())
}

// significantPlaces returns the number of decimal places of d without
// trailing zeros.
func significantPlaces(d decimal.Decimal) int {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// renderTemplate renders the main template that depends on partials.
// Partials are aliased by name in the main template.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) (string, error) {
	mainContent, err := templates.ReadFile(mainFile)
	if err != nil {
		return "", fmt.Errorf("error reading main template %q: %w", mainFile, err)
	}
	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return "", fmt.Errorf("error parsing main template %q: %w", mainFile, err)
	}
	for name, file := range partials {
		// An empty file name is a valid case, resulting in an empty template.
		var content []byte
		if file != "" {
			if content, err = templates.ReadFile(file); err != nil {
				return "", fmt.Errorf("error reading partial template %q: %w", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return "", fmt.Errorf("error parsing partial template %q for %q: %w", file, name, err)
		}
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return "", fmt.Errorf("error executing template %q: %w", templateName, err)
	}
	return b.String(), nil
}
