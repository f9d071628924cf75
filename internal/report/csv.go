package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// CSVHeader is the fixed column order of report.csv.
var CSVHeader = []string{
	"Module",
	"Relative Path",
	"Compatibility Module",
	"JS Files",
	"JS Line Count",
	"PHTML Files",
	"PHTML Line Count",
	"Layout Files",
	"Layout Line Count",
}

// WriteCSV writes one row per retained module. The summary has no module
// name or path and is not part of the table.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, module := range r.Modules {
		c := module.Classification
		row := []string{
			module.Identifier,
			r.RelativePath(module.Path),
			c.CompatibilityModule,
			strconv.Itoa(c.Script.Count()),
			strconv.Itoa(c.Script.LineCount),
			strconv.Itoa(c.Template.Count()),
			strconv.Itoa(c.Template.LineCount),
			strconv.Itoa(c.Layout.Count()),
			strconv.Itoa(c.Layout.LineCount),
		}
		for i := range row {
			row[i] = stripWhitespace(row[i])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", module.Identifier, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
