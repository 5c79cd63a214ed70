package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddItem          = "pantry item added successfully"
	MessageSuccessUpdateItem       = "pantry item updated successfully"
	MessageSuccessDeleteItem       = "pantry item deleted successfully"
	MessageSuccessGetItems         = "pantry items retrieved successfully"
	MessageSuccessUploadImage      = "item image uploaded successfully"
	MessageSuccessGetDashboard     = "dashboard retrieved successfully"
	MessageSuccessGetAnalysis      = "inventory analysis retrieved successfully"
	MessageSuccessSendDigest       = "expiry digest sent successfully"
	MessageWarningItemNotPersisted = "item kept locally but could not be saved remotely"

	MessageFailedAddItem      = "failed to add pantry item"
	MessageFailedUpdateItem   = "failed to update pantry item"
	MessageFailedDeleteItem   = "failed to delete pantry item"
	MessageFailedGetItems     = "failed to retrieve pantry items"
	MessageFailedUploadImage  = "failed to upload item image"
	MessageFailedGetDashboard = "failed to retrieve dashboard"
	MessageFailedGetAnalysis  = "failed to retrieve inventory analysis"
	MessageFailedSendDigest   = "failed to send expiry digest"

	ErrItemNotFound          = errors.New("pantry item not found")
	ErrInvalidExpirationDate = errors.New("invalid expiration date")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrUnauthorizedAccess    = errors.New("unauthorized access to pantry item")
	ErrDuplicateItemID       = errors.New("duplicate pantry item id")
	ErrMailNotConfigured     = errors.New("smtp credentials not configured")
)

// Fixed enumerations. The import mapper and validators treat anything
// outside these as "pieces" / "Other".
var (
	PantryUnits      = []string{"pieces", "kg", "g", "L", "mL", "cups", "oz", "lbs"}
	PantryCategories = []string{"Vegetables", "Fruits", "Dairy", "Meat", "Grains", "Snacks", "Beverages", "Other"}
)

type (
	AddPantryItemRequest struct {
		Name           string  `json:"name" validate:"required"`
		Quantity       float64 `json:"quantity" validate:"required,gt=0"`
		Unit           string  `json:"unit" validate:"required,oneof=pieces kg g L mL cups oz lbs"`
		Category       string  `json:"category" validate:"required,oneof=Vegetables Fruits Dairy Meat Grains Snacks Beverages Other"`
		ExpirationDate string  `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
		Notes          string  `json:"notes" validate:"omitempty"`
	}

	// Persisted is false when the remote write failed; the item then only
	// exists in the in-memory list under its temporary id.
	AddPantryItemResponse struct {
		Item      PantryItemResponse `json:"item"`
		Persisted bool               `json:"persisted"`
	}

	UpdatePantryItemRequest struct {
		Name           *string  `json:"name" validate:"omitempty,min=1"`
		Quantity       *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit           *string  `json:"unit" validate:"omitempty,oneof=pieces kg g L mL cups oz lbs"`
		Category       *string  `json:"category" validate:"omitempty,oneof=Vegetables Fruits Dairy Meat Grains Snacks Beverages Other"`
		ExpirationDate *string  `json:"expiration_date" validate:"omitempty"`
		Notes          *string  `json:"notes" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		ItemID string                `json:"item_id" form:"item_id" validate:"required"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	PantryItemResponse struct {
		ID                  string    `json:"id"`
		Name                string    `json:"name"`
		Quantity            float64   `json:"quantity"`
		Unit                string    `json:"unit"`
		Category            string    `json:"category"`
		ExpirationDate      string    `json:"expiration_date,omitempty"`
		Notes               string    `json:"notes,omitempty"`
		AddedDate           time.Time `json:"added_date"`
		ImageURL            string    `json:"image_url,omitempty"`
		DaysUntilExpiration *int      `json:"days_until_expiration,omitempty"`
		ExpirationStatus    string    `json:"expiration_status"`
	}

	// NeedsAttention is the union of expired and critical items. Banner
	// rule: the expiring-soon banner never renders while that union is
	// non-empty.
	DashboardResponse struct {
		TotalItems          int                  `json:"total_items"`
		CategoryCount       int                  `json:"category_count"`
		ExpiringSoon        []PantryItemResponse `json:"expiring_soon"`
		NeedsAttention      []PantryItemResponse `json:"needs_attention"`
		Expired             []PantryItemResponse `json:"expired"`
		ShowAttentionBanner bool                 `json:"show_attention_banner"`
		ShowExpiringBanner  bool                 `json:"show_expiring_banner"`
	}

	ExpirationBuckets struct {
		Expired  int `json:"expired"`
		Critical int `json:"critical"`
		Warning  int `json:"warning"`
		Good     int `json:"good"`
	}

	AnalysisResponse struct {
		TotalItems        int               `json:"total_items"`
		CategoryCount     int               `json:"category_count"`
		CategoryCounts    map[string]int    `json:"category_counts"`
		ExpirationBuckets ExpirationBuckets `json:"expiration_buckets"`
	}
)
