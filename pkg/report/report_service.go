package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"pantry-tracker/domain"
	"pantry-tracker/pkg/pantry"

	"github.com/jung-kurt/gofpdf"
)

type (
	ReportService interface {
		GeneratePantryReport(ctx context.Context, userID string) ([]byte, error)
	}

	reportService struct {
		pantryService pantry.PantryService
	}
)

func NewReportService(pantryService pantry.PantryService) ReportService {
	return &reportService{pantryService: pantryService}
}

// GeneratePantryReport renders the current inventory as a single-column PDF
// listing, one numbered line per item, paginating past y 280.
func (s *reportService) GeneratePantryReport(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.pantryService.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Pantry Inventory Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("January 2, 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 6, fmt.Sprintf("Total items: %d", len(items)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	for i, item := range items {
		if pdf.GetY() > 280 {
			pdf.AddPage()
		}
		pdf.Cell(0, 7, itemLine(i+1, item))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itemLine(n int, item domain.PantryItemResponse) string {
	line := fmt.Sprintf("%d. %s - %g %s", n, item.Name, item.Quantity, item.Unit)
	if item.ExpirationDate != "" {
		line = fmt.Sprintf("%s (expires %s)", line, item.ExpirationDate)
	}
	return line
}
