package output

import (
	"encoding/csv"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table is a titled grid of strings.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// AddRow appends a row.
func (t *Table) AddRow(values ...string) {
	t.Rows = append(t.Rows, values)
}

// records returns the rows as column-keyed maps for JSON and YAML.
func (t *Table) records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// Table renders t in the effective mode. Text and Markdown end with a row
// count; an empty table prints "(0 rows)" only.
func (r *Renderer) Table(t Table) error {
	mode := r.EffectiveMode()
	switch mode {
	case ModeJSON, ModeYAML:
		return r.Data(t.records())
	case ModeCSV:
		return r.csv(t)
	}

	if len(t.Rows) == 0 {
		if t.Title != "" {
			r.Header(2, t.Title)
		}
		r.Println("(0 rows)")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		tw.AppendRow(tr)
	}

	if mode == ModeMarkdown {
		if t.Title != "" {
			tw.SetTitle(t.Title)
		}
		tw.RenderMarkdown()
	} else {
		tw.SetStyle(table.StyleLight)
		if t.Title != "" {
			tw.SetTitle(r.styles.Bold.Render(t.Title))
		}
		tw.Render()
	}
	r.Printf("(%d rows)\n", len(t.Rows))
	return nil
}

// csv writes t as RFC 4180 records with a header row.
func (r *Renderer) csv(t Table) error {
	w := csv.NewWriter(r.out)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// List renders a single-column list of values.
func (r *Renderer) List(title, column string, values []string) error {
	t := Table{Title: title, Columns: []string{column}}
	for _, v := range values {
		t.AddRow(v)
	}
	return r.Table(t)
}
