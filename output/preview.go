package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/thomas6m/Unique-Extractor/extract"
)

// PreviewLimit bounds how many rows a dry run renders.
const PreviewLimit = 5

// Preview renders the first rows of the would-be output as a table. Used by
// dry-run mode, which performs every pipeline step except the final write.
func Preview(w io.Writer, res *extract.Result, spec extract.Spec) {
	d := Build(res, spec)
	fmt.Fprintln(w, "dry run: output not written")

	table := tablewriter.NewWriter(w)
	table.SetHeader(d.Columns)
	for i, row := range d.Rows {
		if i >= PreviewLimit {
			break
		}
		record := make([]string, len(d.Columns))
		for j, col := range d.Columns {
			record[j] = formatValue(row[col])
		}
		table.Append(record)
	}
	table.Render()

	if extra := d.Len() - PreviewLimit; extra > 0 {
		fmt.Fprintf(w, "... %d more rows\n", extra)
	}
}
