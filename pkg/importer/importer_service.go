package importer

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"pantry-tracker/domain"
	"pantry-tracker/pkg/pantry"

	"github.com/xuri/excelize/v2"
)

type (
	ImporterService interface {
		ImportSpreadsheet(ctx context.Context, file *multipart.FileHeader, userID string) (domain.ImportResponse, error)
	}

	importerService struct {
		pantryService pantry.PantryService
	}
)

func NewImporterService(pantryService pantry.PantryService) ImporterService {
	return &importerService{pantryService: pantryService}
}

// ImportSpreadsheet reads the first sheet of an Excel workbook, maps its
// headers heuristically and writes the rows one by one through the same
// optimistic add path as a manual add. A bad row is recorded and skipped;
// it never aborts the rows after it.
func (s *importerService) ImportSpreadsheet(ctx context.Context, file *multipart.FileHeader, userID string) (domain.ImportResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return domain.ImportResponse{}, domain.ErrUnsupportedFile
	}

	src, err := file.Open()
	if err != nil {
		return domain.ImportResponse{}, err
	}
	defer src.Close()

	workbook, err := excelize.OpenReader(src)
	if err != nil {
		return domain.ImportResponse{}, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return domain.ImportResponse{}, domain.ErrEmptySheet
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return domain.ImportResponse{}, err
	}
	if len(rows) == 0 {
		return domain.ImportResponse{}, domain.ErrEmptySheet
	}

	mapping := DetectHeaders(rows[0])
	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return domain.ImportResponse{}, domain.ErrEmptySheet
	}

	now := time.Now()
	res := domain.ImportResponse{Total: len(dataRows)}

	for i, row := range dataRows {
		if isBlankRow(row) {
			res.Total--
			continue
		}
		draft := MapRow(mapping, row, now)

		added, err := s.pantryService.AddItem(ctx, domain.AddPantryItemRequest{
			Name:           draft.Name,
			Quantity:       draft.Quantity,
			Unit:           draft.Unit,
			Category:       draft.Category,
			ExpirationDate: draft.ExpirationDate,
			Notes:          draft.Notes,
		}, userID)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, domain.ImportRowError{
				Row:   i + 2,
				Name:  draft.Name,
				Error: err.Error(),
			})
			continue
		}
		if !added.Persisted {
			res.Failed++
			res.Errors = append(res.Errors, domain.ImportRowError{
				Row:   i + 2,
				Name:  draft.Name,
				Error: domain.MessageWarningItemNotPersisted,
			})
			continue
		}
		res.Imported++
	}

	return res, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
