package checkout

import (
	"encoding/json"
	"time"
)

// PaymentMethodTypeGiftcard is the state data payment method type for gift cards.
const PaymentMethodTypeGiftcard = "giftcard"

// StateDataRecord is one row of payment state data captured during checkout.
type StateDataRecord struct {
	ID        uint      `json:"entity_id"`
	QuoteID   uint      `json:"quote_id"`
	StateData string    `json:"state_data"`
	CreatedAt time.Time `json:"created_at"`
}

type stateDataPaymentMethod struct {
	PaymentMethod *struct {
		Type  *string `json:"type"`
		Brand *string `json:"brand"`
	} `json:"paymentMethod"`
}

// isGiftcard reports whether the record decodes to a gift card payment method
// with a brand. Undecodable records are not gift cards.
func (r StateDataRecord) isGiftcard() bool {
	var sd stateDataPaymentMethod
	if err := json.Unmarshal([]byte(r.StateData), &sd); err != nil {
		return false
	}
	pm := sd.PaymentMethod
	if pm == nil || pm.Type == nil || pm.Brand == nil {
		return false
	}
	return *pm.Type == PaymentMethodTypeGiftcard
}

// FilterGiftcardRecords keeps the gift card records in their original order.
func FilterGiftcardRecords(records []StateDataRecord) []StateDataRecord {
	out := make([]StateDataRecord, 0, len(records))
	for _, r := range records {
		if r.isGiftcard() {
			out = append(out, r)
		}
	}
	return out
}
