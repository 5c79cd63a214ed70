package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessImport = "spreadsheet imported successfully"
	MessageFailedImport  = "failed to import spreadsheet"

	ErrEmptySheet      = errors.New("no rows found in the sheet")
	ErrUnsupportedFile = errors.New("only .xlsx and .xls files are supported")
)

type (
	// PantryItemDraft is a mapped spreadsheet row before persistence: no id
	// yet, AddedDate set to import time.
	PantryItemDraft struct {
		Name           string    `json:"name"`
		Quantity       float64   `json:"quantity"`
		Unit           string    `json:"unit"`
		Category       string    `json:"category"`
		ExpirationDate string    `json:"expiration_date"`
		Notes          string    `json:"notes"`
		AddedDate      time.Time `json:"added_date"`
	}

	ImportRowError struct {
		Row   int    `json:"row"`
		Name  string `json:"name"`
		Error string `json:"error"`
	}

	// Failed rows are reported but do not abort the remaining rows.
	ImportResponse struct {
		Total    int              `json:"total"`
		Imported int              `json:"imported"`
		Failed   int              `json:"failed"`
		Errors   []ImportRowError `json:"errors,omitempty"`
	}
)
