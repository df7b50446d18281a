package billing

// OrderPayment is the subset of an order payment needed to import a billing
// agreement after a successful authorisation.
type OrderPayment struct {
	CustomerID         uint   `json:"customer_id" validate:"required"`
	StoreID            uint   `json:"store_id"`
	MethodCode         string `json:"method_code" validate:"required"`
	MethodTitle        string `json:"method_title"`
	BillingAgreementID string `json:"billing_agreement_id"`
}

// NotificationInput is the normalized input for notification persistence.
type NotificationInput struct {
	PspReference        string
	EventCode           string
	MerchantReference   string
	MerchantAccountCode string
	Success             bool
	Live                bool
	PayloadJSON         string
	SignatureValid      bool
}
