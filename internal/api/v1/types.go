package apiv1

import (
	"encoding/json"

	"github.com/ManuelReschke/AdyenBridge/app/models"
)

// Pong is the ping response.
type Pong struct {
	Ping string `json:"ping"`
}

// StateDataRequest carries the state data a checkout component produced.
// state_data may be a JSON object or a JSON encoded string.
type StateDataRequest struct {
	StateData json.RawMessage `json:"state_data" validate:"required"`
}

// AgreementResultRequest carries the additionalData of an authorisation.
type AgreementResultRequest struct {
	StoreID        uint           `json:"store_id"`
	AdditionalData map[string]any `json:"additional_data" validate:"required"`
}

// RecurringDetailsRequest mirrors a listRecurringDetails response.
type RecurringDetailsRequest struct {
	StoreID uint                     `json:"store_id"`
	Details []RecurringDetailWrapper `json:"details" validate:"required,min=1"`
}

type RecurringDetailWrapper struct {
	RecurringDetail map[string]any `json:"RecurringDetail"`
}

// ImportAgreementRequest imports an agreement from an order payment.
type ImportAgreementRequest struct {
	StoreID                  uint   `json:"store_id"`
	MethodCode               string `json:"method_code" validate:"required"`
	MethodTitle              string `json:"method_title"`
	BillingAgreementID       string `json:"billing_agreement_id"`
	RecurringDetailReference string `json:"recurring_detail_reference"`
}

// Agreement is the public representation of a billing agreement.
type Agreement struct {
	models.BillingAgreement
	CustomerReference uint           `json:"customer_reference"`
	AgreementData     map[string]any `json:"agreement_data"`
}

// RecurringDetailError reports a detail that could not be stored.
type RecurringDetailError struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// RecurringDetailsResponse lists stored agreements and per-detail failures.
type RecurringDetailsResponse struct {
	Stored []Agreement            `json:"stored"`
	Errors []RecurringDetailError `json:"errors"`
}

func toAgreement(a *models.BillingAgreement) Agreement {
	data, err := a.AgreementData()
	if err != nil {
		data = map[string]any{}
	}
	return Agreement{
		BillingAgreement:  *a,
		CustomerReference: a.CustomerReference(),
		AgreementData:     data,
	}
}
