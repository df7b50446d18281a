package repository

import (
	"errors"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"gorm.io/gorm"
)

// storeConfigRepository implements the StoreConfigRepository interface
type storeConfigRepository struct {
	db *gorm.DB
}

// NewStoreConfigRepository creates a new store config repository instance
func NewStoreConfigRepository(db *gorm.DB) StoreConfigRepository {
	return &storeConfigRepository{db: db}
}

// GetValue retrieves a value for the store, falling back to the default scope
func (r *storeConfigRepository) GetValue(storeID uint, path string) (string, error) {
	scopes := []uint{storeID}
	if storeID != models.DefaultStoreID {
		scopes = append(scopes, models.DefaultStoreID)
	}

	for _, scope := range scopes {
		var cfg models.StoreConfig
		err := r.db.Where("store_id = ? AND path = ?", scope, path).First(&cfg).Error
		if err == nil {
			return cfg.Value, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}
	return "", nil
}

// SetValue creates or updates a value for the store
func (r *storeConfigRepository) SetValue(storeID uint, path, value string) error {
	cfg := models.StoreConfig{StoreID: storeID, Path: path, Value: value}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var existing models.StoreConfig
	err := r.db.Where("store_id = ? AND path = ?", storeID, path).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&cfg).Error
	} else if err != nil {
		return err
	}

	existing.Value = value
	return r.db.Save(&existing).Error
}
