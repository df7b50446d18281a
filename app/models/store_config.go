package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Store scoped configuration paths read by the billing service.
const (
	ConfigPathRecurringType         = "payment/adyen_abstract/recurring_type"
	ConfigPathPosCloudRecurringType = "payment/adyen_pos_cloud/recurring_type"
)

// DefaultStoreID is the scope used when a value is not overridden per store.
const DefaultStoreID uint = 0

// StoreConfig is a store scoped configuration value.
type StoreConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;default:0;index:ux_store_configs_scope_path,unique,priority:1" json:"store_id"`
	Path      string    `gorm:"type:varchar(255);not null;index:ux_store_configs_scope_path,unique,priority:2" json:"path" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Validate validates the config entry
func (c *StoreConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
