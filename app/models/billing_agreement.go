package models

import (
	"encoding/json"
	"time"
)

const (
	AgreementStatusActive   = "active"
	AgreementStatusCanceled = "canceled"
)

// BillingAgreement stores a recurring payment token for a customer.
// AgreementDataJSON never holds the full card number.
type BillingAgreement struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CustomerID        uint       `gorm:"not null;index:ux_billing_agreements_customer_ref,unique,priority:1" json:"customer_id"`
	StoreID           uint       `gorm:"not null;default:0;index" json:"store_id"`
	MethodCode        string     `gorm:"type:varchar(32);not null" json:"method_code"`
	ReferenceID       string     `gorm:"type:varchar(191);not null;index:ux_billing_agreements_customer_ref,unique,priority:2" json:"reference_id"`
	Status            string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	AgreementLabel    string     `gorm:"type:varchar(255);default:''" json:"agreement_label"`
	AgreementDataJSON string     `gorm:"column:agreement_data;type:text" json:"-"`
	TokenCreatedAt    *time.Time `gorm:"type:timestamp;default:null" json:"token_created_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CustomerReference is the shopper reference sent to Adyen. There is no
// separate per-customer reference, so it is the customer id.
func (a *BillingAgreement) CustomerReference() uint {
	return a.CustomerID
}

// IsActive reports whether the agreement can be charged.
func (a *BillingAgreement) IsActive() bool {
	return a.Status == AgreementStatusActive
}

// SetAgreementData encodes data, dropping the notification envelope keys
// that duplicate top-level fields.
func (a *BillingAgreement) SetAgreementData(data map[string]any) error {
	clean := make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case "creationDate", "recurringDetailReference", "payment_method":
			continue
		}
		clean[k] = v
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return err
	}
	a.AgreementDataJSON = string(raw)
	return nil
}

// AgreementData decodes the stored agreement data.
func (a *BillingAgreement) AgreementData() (map[string]any, error) {
	if a.AgreementDataJSON == "" {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(a.AgreementDataJSON), &out); err != nil {
		return nil, err
	}
	return out, nil
}
