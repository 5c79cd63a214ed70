package importer

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"pantry-tracker/domain"
	"pantry-tracker/pkg/pantry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubPantryService struct {
	pantry.PantryService
	added       []domain.AddPantryItemRequest
	failPersist bool
}

func (s *stubPantryService) AddItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.AddPantryItemResponse, error) {
	s.added = append(s.added, req)
	return domain.AddPantryItemResponse{
		Item:      domain.PantryItemResponse{Name: req.Name},
		Persisted: !s.failPersist,
	}, nil
}

func workbookFile(t *testing.T, filename string, rows [][]interface{}) *multipart.FileHeader {
	t.Helper()

	wb := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}
	var content bytes.Buffer
	require.NoError(t, wb.Write(&content))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(10 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func TestImportSpreadsheet(t *testing.T) {
	stub := &stubPantryService{}
	svc := NewImporterService(stub)

	file := workbookFile(t, "pantry.xlsx", [][]interface{}{
		{"Product", "Qty", "Unit", "Category", "Expiry Date", "Notes"},
		{"Rice", "2", "kg", "Grains", "2025-06-01", "long grain"},
		{"Milk", "not a number", "L", "Dairy", "", ""},
		{"", "", "", "", "", ""},
	})

	res, err := svc.ImportSpreadsheet(context.Background(), file, "user-1")
	require.NoError(t, err)

	// The blank row is skipped entirely, not counted as failed.
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Failed)

	require.Len(t, stub.added, 2)
	assert.Equal(t, "Rice", stub.added[0].Name)
	assert.Equal(t, 2.0, stub.added[0].Quantity)
	assert.Equal(t, "2025-06-01", stub.added[0].ExpirationDate)
	assert.Equal(t, 1.0, stub.added[1].Quantity)
}

func TestImportSpreadsheetReportsUnpersistedRows(t *testing.T) {
	stub := &stubPantryService{failPersist: true}
	svc := NewImporterService(stub)

	file := workbookFile(t, "pantry.xlsx", [][]interface{}{
		{"Name", "Quantity"},
		{"Rice", "2"},
	})

	res, err := svc.ImportSpreadsheet(context.Background(), file, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, "Rice", res.Errors[0].Name)
}

func TestImportSpreadsheetRejectsUnsupportedExtension(t *testing.T) {
	svc := NewImporterService(&stubPantryService{})

	file := workbookFile(t, "pantry.csv", [][]interface{}{{"Name"}})

	_, err := svc.ImportSpreadsheet(context.Background(), file, "user-1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestImportSpreadsheetEmptySheet(t *testing.T) {
	svc := NewImporterService(&stubPantryService{})

	t.Run("no rows at all", func(t *testing.T) {
		file := workbookFile(t, "pantry.xlsx", nil)
		_, err := svc.ImportSpreadsheet(context.Background(), file, "user-1")
		assert.ErrorIs(t, err, domain.ErrEmptySheet)
	})

	t.Run("header only", func(t *testing.T) {
		file := workbookFile(t, "pantry.xlsx", [][]interface{}{{"Name", "Quantity"}})
		_, err := svc.ImportSpreadsheet(context.Background(), file, "user-1")
		assert.ErrorIs(t, err, domain.ErrEmptySheet)
	})
}
