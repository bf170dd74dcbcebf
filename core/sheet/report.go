package sheet

// Severity tags a validation message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Row locator sentinels. Data rows are 1-based; HeaderRow marks problems
// with the column names themselves; FileScope marks problems that have no
// row at all (a missing sheet, an unreadable workbook).
const (
	FileScope = -1
	HeaderRow = 0
)

// FileSection is the reserved section name for file-scoped messages.
const FileSection = "program"

// requiredSheets is the workbook contract: every submission must carry
// these sheets.
var requiredSheets = []string{"telcfg", "inscfg", "envcfg", "targets", "ob", "proposal"}

// RequiredSheets returns the sheets every submission must contain, in
// checking order.
func RequiredSheets() []string {
	out := make([]string, len(requiredSheets))
	copy(out, requiredSheets)
	return out
}

// Message is one validation finding. Text may originate from untrusted
// spreadsheet cells; renderers must escape it.
type Message struct {
	Row     int      `json:"row"`
	Columns []string `json:"columns,omitempty"`
	Text    string   `json:"text"`
}

// Dataset is the tabular content of one sheet, kept for excerpt rendering.
type Dataset struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Row returns the 1-based data row n.
func (d Dataset) Row(n int) ([]string, bool) {
	if n < 1 || n > len(d.Rows) {
		return nil, false
	}
	return d.Rows[n-1], true
}

// ColumnIndex returns the position of a named column, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Section groups the findings for one dataset, errors and warnings apart,
// both in insertion order.
type Section struct {
	Dataset  string    `json:"dataset"`
	Errors   []Message `json:"errors,omitempty"`
	Warnings []Message `json:"warnings,omitempty"`
}

// Messages returns the section's findings for one severity.
func (s Section) Messages(sev Severity) []Message {
	if sev == SeverityError {
		return s.Errors
	}
	return s.Warnings
}

// Report aggregates every finding for one submitted file. Sections and
// messages keep insertion order so rendering is deterministic.
type Report struct {
	Proposal string    `json:"proposal"`
	Datasets []Dataset `json:"datasets,omitempty"`
	Sections []Section `json:"sections"`
}

// NewReport starts an empty report for a proposal.
func NewReport(proposal string) *Report {
	return &Report{Proposal: proposal}
}

// AddDataset attaches a dataset for excerpt rendering, replacing any
// previous dataset of the same name.
func (r *Report) AddDataset(d Dataset) {
	for i := range r.Datasets {
		if r.Datasets[i].Name == d.Name {
			r.Datasets[i] = d
			return
		}
	}
	r.Datasets = append(r.Datasets, d)
}

// Dataset looks a dataset up by name.
func (r *Report) Dataset(name string) (Dataset, bool) {
	for _, d := range r.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

// AddError records an error finding under the named dataset section.
func (r *Report) AddError(dataset string, m Message) {
	s := r.section(dataset)
	s.Errors = append(s.Errors, m)
}

// AddWarning records a warning finding under the named dataset section.
func (r *Report) AddWarning(dataset string, m Message) {
	s := r.section(dataset)
	s.Warnings = append(s.Warnings, m)
}

// AddFileError records a file-scoped error under the reserved section.
func (r *Report) AddFileError(text string) {
	r.AddError(FileSection, Message{Row: FileScope, Text: text})
}

// AddFileWarning records a file-scoped warning under the reserved section.
func (r *Report) AddFileWarning(text string) {
	r.AddWarning(FileSection, Message{Row: FileScope, Text: text})
}

// ErrorCount is the aggregate number of error findings.
func (r *Report) ErrorCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Errors)
	}
	return n
}

// WarningCount is the aggregate number of warning findings.
func (r *Report) WarningCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Warnings)
	}
	return n
}

// Clean reports whether the file passed without findings of either
// severity.
func (r *Report) Clean() bool {
	return r.ErrorCount() == 0 && r.WarningCount() == 0
}

func (r *Report) section(name string) *Section {
	for i := range r.Sections {
		if r.Sections[i].Dataset == name {
			return &r.Sections[i]
		}
	}
	r.Sections = append(r.Sections, Section{Dataset: name})
	return &r.Sections[len(r.Sections)-1]
}
