package report

import (
	"fmt"
	"os"
	"path/filepath"

	"IDXScreener/internal/model"
)

// Attachment names used in e-mail and chat deliveries.
const (
	PDFName         = "stock_analysis.pdf"
	SpreadsheetName = "stock_analysis.xlsx"

	PDFContentType         = "application/pdf"
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Attachments renders the PDF and spreadsheet for delivery, PDF first.
func Attachments(rep *model.Report) ([]model.Attachment, error) {
	pdf, err := RenderPDF(BuildDocument(rep))
	if err != nil {
		return nil, err
	}
	xlsx, err := RenderSpreadsheet(rep)
	if err != nil {
		return nil, err
	}
	return []model.Attachment{
		{Name: PDFName, ContentType: PDFContentType, Data: pdf},
		{Name: SpreadsheetName, ContentType: SpreadsheetContentType, Data: xlsx},
	}, nil
}

// FileStem is the per-run export name, e.g. stock_analysis_2026-10-16_1a2b3c4d.
func FileStem(rep *model.Report) string {
	id := rep.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("stock_analysis_%s_%s", rep.GeneratedAt.Format("2006-01-02"), id)
}

// WriteFiles writes the attachments under dir and returns their paths.
func WriteFiles(dir string, rep *model.Report, atts []model.Attachment) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	stem := FileStem(rep)
	paths := make([]string, 0, len(atts))
	for _, a := range atts {
		path := filepath.Join(dir, stem+filepath.Ext(a.Name))
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
