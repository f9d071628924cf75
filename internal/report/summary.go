package report

import "github.com/jakoblorz/hyva-compat/internal/models"

// Summarize adds up the typed category totals of records. It does not
// filter; pass the output of Filter.
func Summarize(records []*models.ModuleRecord) models.Summary {
	summary := models.Summary{
		Info:         models.SummaryLabel,
		TotalModules: len(records),
	}

	for _, record := range records {
		c := record.Classification
		if c == nil {
			continue
		}

		summary.JSFiles += c.Script.Count()
		summary.JSLineCount += c.Script.LineCount
		summary.JSFilesSize += c.Script.Size

		summary.PHTMLFiles += c.Template.Count()
		summary.PHTMLLineCount += c.Template.LineCount
		summary.PHTMLFilesSize += c.Template.Size

		summary.LayoutFiles += c.Layout.Count()
		summary.LayoutLineCount += c.Layout.LineCount
		summary.LayoutFilesSize += c.Layout.Size
	}

	return summary
}
