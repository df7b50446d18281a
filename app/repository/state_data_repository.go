package repository

import (
	"strings"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"gorm.io/gorm"
)

// stateDataRepository implements the StateDataRepository interface
type stateDataRepository struct {
	db *gorm.DB
}

// NewStateDataRepository creates a new state data repository instance
func NewStateDataRepository(db *gorm.DB) StateDataRepository {
	return &stateDataRepository{db: db}
}

// Create stores a new state data row
func (r *stateDataRepository) Create(stateData *models.StateData) error {
	return r.db.Create(stateData).Error
}

// ListByQuoteID returns the rows of a quote ordered by insertion
func (r *stateDataRepository) ListByQuoteID(quoteID uint, order string) ([]models.StateData, error) {
	direction := models.SortAscending
	if strings.EqualFold(strings.TrimSpace(order), models.SortDescending) {
		direction = models.SortDescending
	}

	var rows []models.StateData
	err := r.db.Where("quote_id = ?", quoteID).Order("id " + direction).Find(&rows).Error
	return rows, err
}

// DeleteByQuoteID removes every row of a quote, e.g. after the order was placed
func (r *stateDataRepository) DeleteByQuoteID(quoteID uint) error {
	return r.db.Where("quote_id = ?", quoteID).Delete(&models.StateData{}).Error
}
