package models

import "time"

// Sort directions accepted by repositories listing rows in insertion order.
const (
	SortAscending  = "ASC"
	SortDescending = "DESC"
)

// StateData stores the payment state data a shopper produced for a quote.
type StateData struct {
	ID        uint      `gorm:"primaryKey" json:"entity_id"`
	QuoteID   uint      `gorm:"not null;index" json:"quote_id"`
	StateData string    `gorm:"type:text;not null" json:"state_data"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the table name stable across refactors of the struct.
func (StateData) TableName() string {
	return "adyen_state_data"
}
