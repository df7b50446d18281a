package billing

import (
	"time"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	UpsertAgreement(agreement *models.BillingAgreement) error
	GetAgreement(customerID uint, referenceID string) (*models.BillingAgreement, error)
	ListAgreementsByCustomer(customerID uint) ([]models.BillingAgreement, error)
	UpdateAgreementStatus(id uint, status string) error
	CreateNotificationIfNotExists(event *models.NotificationEvent) (bool, *models.NotificationEvent, error)
	MarkNotificationProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertAgreement(agreement *models.BillingAgreement) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"},
			{Name: "reference_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"store_id",
			"method_code",
			"status",
			"agreement_label",
			"agreement_data",
			"token_created_at",
			"updated_at",
		}),
	}).Create(agreement).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("customer_id = ? AND reference_id = ?", agreement.CustomerID, agreement.ReferenceID).
		First(agreement).Error
}

func (r *gormRepository) GetAgreement(customerID uint, referenceID string) (*models.BillingAgreement, error) {
	var a models.BillingAgreement
	err := r.db.Where("customer_id = ? AND reference_id = ?", customerID, referenceID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *gormRepository) ListAgreementsByCustomer(customerID uint) ([]models.BillingAgreement, error) {
	var out []models.BillingAgreement
	err := r.db.Where("customer_id = ?", customerID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *gormRepository) UpdateAgreementStatus(id uint, status string) error {
	return r.db.Model(&models.BillingAgreement{}).Where("id = ?", id).Update("status", status).Error
}

func (r *gormRepository) CreateNotificationIfNotExists(event *models.NotificationEvent) (bool, *models.NotificationEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "psp_reference"},
			{Name: "event_code"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.NotificationEvent
	if err := r.db.Where("psp_reference = ? AND event_code = ?", event.PspReference, event.EventCode).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkNotificationProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.NotificationEvent{}).Where("id = ?", id).Updates(updates).Error
}
