package dashboard

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed dashboard.html
var pageHTML string

var page = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Rows []Row
}

// WritePage writes the full dashboard document with the current rows.
func (t *Table) WritePage(w io.Writer) error {
	return page.Execute(w, pageData{Rows: t.Rows()})
}

// WriteBody writes only the <tbody> element, for replacing the table body of
// an already loaded page.
func (t *Table) WriteBody(w io.Writer) error {
	return page.ExecuteTemplate(w, "tbody", t.Rows())
}
