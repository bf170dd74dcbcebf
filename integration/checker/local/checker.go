package local

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"qgate/core/sheet"
)

// Compile-time check that Checker implements the checker contract.
var _ sheet.Checker = (*Checker)(nil)

// Checker performs structural validation of an observation workbook:
// required sheets present and non-empty, plus dataset extraction so
// downstream findings can render row excerpts. Semantic rule checking
// is the remote engine's job.
type Checker struct{}

func New() *Checker {
	return &Checker{}
}

// Check never returns an error: an unreadable workbook is itself a
// validation finding, reported at file scope. Legacy .xls containers
// are not parseable here and surface the same way; deployments that
// accept .xls need the remote checker.
func (c *Checker) Check(_ context.Context, proposal, _ string, data []byte) (*sheet.Report, error) {
	rep := sheet.NewReport(proposal)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		rep.AddFileError("file is not a readable Excel workbook")
		return rep, nil
	}
	defer func() { _ = f.Close() }()

	present := f.GetSheetList()
	for _, name := range sheet.RequiredSheets() {
		if !slices.Contains(present, name) {
			rep.AddFileError(fmt.Sprintf("required sheet %q is missing", name))
			continue
		}

		rows, err := f.GetRows(name)
		if err != nil {
			rep.AddFileError(fmt.Sprintf("sheet %q could not be read", name))
			continue
		}
		if len(rows) == 0 {
			rep.AddFileWarning(fmt.Sprintf("required sheet %q is empty", name))
			continue
		}

		rep.AddDataset(sheet.Dataset{
			Name:    name,
			Columns: rows[0],
			Rows:    rows[1:],
		})
	}

	return rep, nil
}
