package repo

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webstack/services/backend/internal/db"
)

var (
	// ErrItemNotFound is returned when no row matches the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrNoFieldsToUpdate is returned when an update supplies neither
	// name nor description.
	ErrNoFieldsToUpdate = errors.New("at least one field to update is required")
)

// ItemUpdate carries the optional fields of a partial update. A nil field
// is left untouched; a non-nil field is written, including empty strings.
type ItemUpdate struct {
	Name        *string
	Description *string
}

// ItemRepository handles item persistence.
type ItemRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewItemRepository creates a new item repository.
func NewItemRepository(database *db.DB, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		db:  database,
		log: logger,
	}
}

// Ping probes database reachability with a trivial query.
func (r *ItemRepository) Ping(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("SELECT 1").Error
}

// List returns every item ordered by ascending id.
func (r *ItemRepository) List(ctx context.Context) ([]db.Item, error) {
	items := make([]db.Item, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		r.log.Error("Failed to list items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// Get retrieves an item by id.
func (r *ItemRepository) Get(ctx context.Context, id int64) (*db.Item, error) {
	var item db.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		r.log.Error("Failed to get item", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item and returns it with the assigned id.
func (r *ItemRepository) Create(ctx context.Context, name, description string) (*db.Item, error) {
	item := db.Item{
		Name:        name,
		Description: description,
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		r.log.Error("Failed to create item", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	r.log.Info("Item created", zap.Int64("id", item.ID), zap.String("name", item.Name))
	return &item, nil
}

// Update modifies the supplied fields of an existing item and returns the
// full updated row. Assignments are applied name then description; values
// are always bound as parameters, column names are fixed literals.
func (r *ItemRepository) Update(ctx context.Context, id int64, upd ItemUpdate) (*db.Item, error) {
	if upd.Name == nil && upd.Description == nil {
		return nil, ErrNoFieldsToUpdate
	}

	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{}, 2)
	if upd.Name != nil {
		updates["name"] = *upd.Name
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
		item.Description = *upd.Description
	}

	if err := r.db.WithContext(ctx).Model(&db.Item{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.log.Error("Failed to update item", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	r.log.Info("Item updated", zap.Int64("id", id))
	return item, nil
}

// Delete removes an item by id.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Item{})
	if result.Error != nil {
		r.log.Error("Failed to delete item", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	r.log.Info("Item deleted", zap.Int64("id", id))
	return nil
}

// Reset drops the items table and recreates it empty. Destructive; exists
// for test isolation.
func (r *ItemRepository) Reset(ctx context.Context) error {
	if err := db.ResetItems(r.db); err != nil {
		r.log.Error("Failed to reset items table", zap.Error(err))
		return err
	}

	r.log.Info("Items table reset")
	return nil
}
