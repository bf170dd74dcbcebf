package report

import (
	"bytes"
	"fmt"
	"html/template"

	"qgate/core/sheet"
)

// reportTemplate renders one severity slice of a validation report.
// Template text is trusted; all report values pass through html/template
// escaping because message text and cell values originate from uploaded
// spreadsheet content.
const reportTemplate = `{{- range .Sections -}}
<div class="report-section">
<h3 class="report-dataset">{{.Dataset}}</h3>
{{- range .Items}}
<p class="report-message report-{{$.Severity}}">{{.Text}}</p>
{{- if .Header}}
<table class="report-excerpt"><tr>{{range .Header}}<th class="cell-{{$.Severity}}">{{.}}</th>{{end}}</tr></table>
{{- end}}
{{- if .Cells}}
<table class="report-excerpt"><tr>{{range .Cells}}<th>{{.Column}}</th>{{end}}</tr><tr>{{range .Cells}}<td class="cell-{{$.Severity}}">{{if .Blank}}&nbsp;{{else}}{{.Value}}{{end}}</td>{{end}}</tr></table>
{{- end}}
{{- end}}
</div>
{{- end -}}`

type reportView struct {
	Severity string
	Sections []sectionView
}

type sectionView struct {
	Dataset string
	Items   []itemView
}

// itemView is one rendered message. Header and Cells are mutually
// exclusive: Header carries the synthesized column-name row for
// header-scoped messages, Cells the single-row excerpt for data-row
// messages. Both empty means the message renders as a standalone line.
type itemView struct {
	Text   string
	Header []string
	Cells  []cellView
}

type cellView struct {
	Column string
	Value  string
	Blank  bool
}

// Formatter renders validation reports as HTML fragments. It is safe
// for concurrent use and produces byte-identical output for identical
// input, so rendered reports may be cached or compared.
type Formatter struct {
	tmpl *template.Template
}

func NewFormatter() *Formatter {
	return &Formatter{
		tmpl: template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Format renders every message of the given severity, sections in
// insertion order, messages in insertion order. File-scoped messages
// render as standalone lines; header-scoped messages add a synthesized
// row of the affected column names; data-row messages add a one-row
// excerpt of the dataset restricted to the flagged columns, with blank
// or missing values shown as an empty placeholder rather than a
// literal marker.
func (f *Formatter) Format(r *sheet.Report, sev sheet.Severity) (template.HTML, error) {
	if r == nil {
		return "", ErrNilReport
	}

	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, buildView(r, sev)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return template.HTML(buf.String()), nil
}

func buildView(r *sheet.Report, sev sheet.Severity) reportView {
	view := reportView{Severity: string(sev)}
	for _, sec := range r.Sections {
		msgs := sec.Messages(sev)
		if len(msgs) == 0 {
			continue
		}
		sv := sectionView{Dataset: sec.Dataset}
		for _, m := range msgs {
			sv.Items = append(sv.Items, buildItem(r, sec.Dataset, m))
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func buildItem(r *sheet.Report, dataset string, m sheet.Message) itemView {
	item := itemView{Text: m.Text}
	switch {
	case m.Row == sheet.HeaderRow && len(m.Columns) > 0:
		item.Header = m.Columns
	case m.Row >= 1 && len(m.Columns) > 0:
		// A missing dataset or out-of-range row degrades to a
		// standalone line instead of failing the whole render.
		item.Cells = buildCells(r, dataset, m)
	}
	return item
}

func buildCells(r *sheet.Report, dataset string, m sheet.Message) []cellView {
	d, ok := r.Dataset(dataset)
	if !ok {
		return nil
	}
	row, ok := d.Row(m.Row)
	if !ok {
		return nil
	}

	cells := make([]cellView, 0, len(m.Columns))
	for _, col := range m.Columns {
		cell := cellView{Column: col, Blank: true}
		if idx := d.ColumnIndex(col); idx >= 0 && idx < len(row) {
			if v := row[idx]; v != "" {
				cell.Value = v
				cell.Blank = false
			}
		}
		cells = append(cells, cell)
	}
	return cells
}
