package pantry

import (
	"context"

	"pantry-tracker/entities"

	"gorm.io/gorm"
)

// ItemsLimit caps every list read.
const ItemsLimit = 200

type (
	PantryRepository interface {
		AddItem(ctx context.Context, item *entities.PantryItem) error
		GetItemByID(ctx context.Context, id string) (*entities.PantryItem, error)
		GetItems(ctx context.Context, userID string) ([]*entities.PantryItem, error)
		UpdateItemFields(ctx context.Context, id string, fields map[string]interface{}) error
		DeleteItem(ctx context.Context, id string) error
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) GetItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) GetItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_date desc").
		Limit(ItemsLimit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pantryRepository) UpdateItemFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entities.PantryItem{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *pantryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PantryItem{}).Error
}
