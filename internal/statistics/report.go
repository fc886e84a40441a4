package statistics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// RenderMarkdown renders the summary and per-period counts as a
// markdown report.
func RenderMarkdown(summary DiarySummary, periods []PeriodStatistics) string {
	var b strings.Builder

	b.WriteString("# Word Diary Report\n\n")
	b.WriteString("## Mastery\n\n")
	b.WriteString(fmt.Sprintf("- Words: %d\n", summary.TotalWords))
	b.WriteString(fmt.Sprintf("- Tested: %d\n", summary.TestedWords))
	b.WriteString(fmt.Sprintf("- Never tested: %d\n", summary.NeverTested))
	b.WriteString(fmt.Sprintf("- Recalls: %d (%d correct)\n", summary.TotalRecalls, summary.CorrectRecalls))
	b.WriteString(fmt.Sprintf("- Accuracy: %.0f%%\n", summary.Accuracy*100))

	if len(periods) > 0 {
		b.WriteString("\n## Words added per month\n\n")
		b.WriteString("| Month | Added |\n")
		b.WriteString("|-------|-------|\n")
		for _, period := range periods {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", period.Period, period.AddedWords))
		}
	}

	return b.String()
}

// ConvertMarkdownToPDF converts a markdown report file to PDF next to it
// and returns the PDF path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
