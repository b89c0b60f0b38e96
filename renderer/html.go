package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/etnz/stoier"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

var page = template.Must(template.ParseFS(templates, "page.html"))

// HTML converts markdown into a standalone HTML page.
func HTML(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("could not convert %q to html: %w", title, err)
	}
	var b bytes.Buffer
	err := page.Execute(&b, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Report is the static HTML report of an accounts snapshot.
type Report struct {
	Accounts []*stoier.AccountSnapshot // sorted by name
	Invoices map[string][]Invoice      // by account name
	Currency string
}

// Write writes one page per account, linked to its neighbours, an index page
// with the sums, and the style sheet into dir. It returns the written files.
func (r *Report) Write(dir string) ([]string, error) {
	var written []string
	write := func(name string, content []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0644); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	for i, acc := range r.Accounts {
		s := NewStatement(acc, r.Invoices[acc.Name()], r.Currency)
		if i > 0 {
			s.Previous = r.Accounts[i-1].Name() + ".html"
		}
		if i < len(r.Accounts)-1 {
			s.Next = r.Accounts[i+1].Name() + ".html"
		}
		markdown, err := RenderStatement(s)
		if err != nil {
			return written, err
		}
		html, err := HTML(acc.Name(), markdown)
		if err != nil {
			return written, err
		}
		if err := write(acc.Name()+".html", html); err != nil {
			return written, err
		}
	}

	markdown, err := RenderSums(NewSums(r.Accounts, r.Currency))
	if err != nil {
		return written, err
	}
	html, err := HTML("Sums", markdown)
	if err != nil {
		return written, err
	}
	if err := write("index.html", html); err != nil {
		return written, err
	}
	css, err := templates.ReadFile("style.css")
	if err != nil {
		return written, err
	}
	return written, write("style.css", css)
}
