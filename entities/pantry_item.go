package entities

import (
	"time"

	"github.com/google/uuid"
)

type PantryItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`     // "pieces", "kg", "g", "L", "mL", "cups", "oz", "lbs"
	Category       string    `json:"category"` // "Vegetables", "Fruits", "Dairy", "Meat", "Grains", "Snacks", "Beverages", "Other"
	ExpirationDate string    `json:"expiration_date,omitempty"` // YYYY-MM-DD, empty when the item has no expiry
	Notes          string    `json:"notes,omitempty" gorm:"type:text"`
	AddedDate      time.Time `gorm:"index" json:"added_date"`
	ImageURL       string    `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type SavedRecipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CookTime     string    `json:"cook_time,omitempty"`
	Difficulty   string    `json:"difficulty,omitempty"`
	Servings     int       `json:"servings,omitempty"`
	Calories     float64   `json:"calories,omitempty"`
	Ingredients  string    `json:"ingredients" gorm:"type:text"`  // JSON array of {name, amount}
	Instructions string    `json:"instructions" gorm:"type:text"` // JSON array of step strings
	UserTags     string    `json:"user_tags" gorm:"type:text"`    // JSON array, subset of {best-worked, great-taste}
	SavedAt      time.Time `gorm:"index" json:"saved_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
