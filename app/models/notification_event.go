package models

import "time"

// Adyen notification event codes handled by the service.
const (
	EventCodeRecurringContract = "RECURRING_CONTRACT"
	EventCodeAuthorisation     = "AUTHORISATION"
)

// NotificationEvent stores Adyen notification items with deduplication
// metadata for idempotent processing.
type NotificationEvent struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	PspReference        string     `gorm:"type:varchar(64);not null;index:ux_notification_events_psp_event,unique,priority:1" json:"psp_reference"`
	EventCode           string     `gorm:"type:varchar(64);not null;index:ux_notification_events_psp_event,unique,priority:2;index" json:"event_code"`
	MerchantReference   string     `gorm:"type:varchar(191);default:''" json:"merchant_reference"`
	MerchantAccountCode string     `gorm:"type:varchar(191);default:''" json:"merchant_account_code"`
	Success             bool       `gorm:"default:false" json:"success"`
	Live                bool       `gorm:"default:false" json:"live"`
	PayloadJSON         string     `gorm:"type:longtext;not null" json:"payload_json"`
	SignatureValid      bool       `gorm:"default:false;index" json:"signature_valid"`
	ProcessedAt         *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	ProcessingError     string     `gorm:"type:text" json:"processing_error"`
	CreatedAt           time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
