package repository

import (
	"github.com/ManuelReschke/AdyenBridge/app/models"
	"gorm.io/gorm"
)

// StateDataRepository defines the interface for checkout state data operations
type StateDataRepository interface {
	Create(stateData *models.StateData) error
	ListByQuoteID(quoteID uint, order string) ([]models.StateData, error)
	DeleteByQuoteID(quoteID uint) error
}

// StoreConfigRepository defines the interface for store scoped configuration
type StoreConfigRepository interface {
	// GetValue returns the value for path in storeID, falling back to the
	// default scope. Missing values return an empty string and no error.
	GetValue(storeID uint, path string) (string, error)
	SetValue(storeID uint, path, value string) error
}

// Repositories holds all repository instances
type Repositories struct {
	StateData   StateDataRepository
	StoreConfig StoreConfigRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		StateData:   NewStateDataRepository(db),
		StoreConfig: NewStoreConfigRepository(db),
	}
}
