package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/recurring"
)

var (
	ErrNoNotificationItems     = errors.New("notification contains no items")
	ErrNotRecurringContract    = errors.New("notification item is not a RECURRING_CONTRACT event")
	ErrMissingShopperReference = errors.New("notification item has no numeric shopperReference")
)

// NotificationRequest is the JSON body Adyen posts to the webhook endpoint.
type NotificationRequest struct {
	Live              string                    `json:"live"`
	NotificationItems []NotificationItemWrapper `json:"notificationItems"`
}

type NotificationItemWrapper struct {
	Item NotificationRequestItem `json:"NotificationRequestItem"`
}

type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

type NotificationRequestItem struct {
	AdditionalData      map[string]string `json:"additionalData,omitempty"`
	Amount              Amount            `json:"amount"`
	EventCode           string            `json:"eventCode"`
	EventDate           string            `json:"eventDate"`
	MerchantAccountCode string            `json:"merchantAccountCode"`
	MerchantReference   string            `json:"merchantReference"`
	OriginalReference   string            `json:"originalReference,omitempty"`
	PaymentMethod       string            `json:"paymentMethod,omitempty"`
	PspReference        string            `json:"pspReference"`
	Reason              string            `json:"reason,omitempty"`
	Success             string            `json:"success"`
	Operations          []string          `json:"operations,omitempty"`
}

// ParseNotificationRequest decodes a webhook body.
func ParseNotificationRequest(body []byte) (*NotificationRequest, error) {
	var req NotificationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	if len(req.NotificationItems) == 0 {
		return nil, ErrNoNotificationItems
	}
	return &req, nil
}

func (r *NotificationRequest) IsLive() bool {
	return strings.EqualFold(strings.TrimSpace(r.Live), "true")
}

// Items unwraps the notification items.
func (r *NotificationRequest) Items() []NotificationRequestItem {
	out := make([]NotificationRequestItem, 0, len(r.NotificationItems))
	for _, w := range r.NotificationItems {
		out = append(out, w.Item)
	}
	return out
}

func (i NotificationRequestItem) IsSuccess() bool {
	return strings.EqualFold(strings.TrimSpace(i.Success), "true")
}

func (i NotificationRequestItem) IsRecurringContract() bool {
	return strings.EqualFold(strings.TrimSpace(i.EventCode), models.EventCodeRecurringContract)
}

// ToInput converts the item for notification persistence.
func (i NotificationRequestItem) ToInput(live, signatureValid bool) (NotificationInput, error) {
	raw, err := json.Marshal(i)
	if err != nil {
		return NotificationInput{}, err
	}
	return NotificationInput{
		PspReference:        i.PspReference,
		EventCode:           i.EventCode,
		MerchantReference:   i.MerchantReference,
		MerchantAccountCode: i.MerchantAccountCode,
		Success:             i.IsSuccess(),
		Live:                live,
		PayloadJSON:         string(raw),
		SignatureValid:      signatureValid,
	}, nil
}

// RecurringDetailFromItem converts a RECURRING_CONTRACT item into a recurring
// detail and returns the customer id taken from shopperReference.
func RecurringDetailFromItem(item NotificationRequestItem) (recurring.Notification, uint, error) {
	if !item.IsRecurringContract() {
		return nil, 0, ErrNotRecurringContract
	}

	ad := item.AdditionalData
	customerID, err := strconv.ParseUint(strings.TrimSpace(ad["shopperReference"]), 10, 64)
	if err != nil || customerID == 0 {
		return nil, 0, ErrMissingShopperReference
	}

	ref := strings.TrimSpace(item.PspReference)
	if v := strings.TrimSpace(ad[recurring.ResultReferenceKey]); v != "" {
		ref = v
	}

	n := recurring.Notification{
		"recurringDetailReference": ref,
		"creationDate":             item.EventDate,
		"variant":                  item.PaymentMethod,
	}

	if summary := strings.TrimSpace(ad["cardSummary"]); summary != "" {
		card := map[string]any{
			"number":     summary,
			"holderName": ad["cardHolderName"],
		}
		if expiry := strings.TrimSpace(ad["expiryDate"]); expiry != "" {
			if month, year, err := recurring.SplitExpiry(expiry); err == nil {
				card["expiryMonth"] = month
				card["expiryYear"] = year
			}
		}
		n["card"] = card
	}

	if iban := strings.TrimSpace(ad["bankAccount.iban"]); iban != "" {
		n["bank"] = map[string]any{
			"iban":      iban,
			"ownerName": ad["bankAccount.ownerName"],
		}
	}

	if email := strings.TrimSpace(ad["paypalEmail"]); email != "" {
		n["lastKnownShopperEmail"] = email
	} else if email := strings.TrimSpace(ad["shopperEmail"]); email != "" {
		n["lastKnownShopperEmail"] = email
	}

	if contracts := strings.TrimSpace(ad["recurring.contractTypes"]); contracts != "" {
		n["contractTypes"] = recurring.ParseContractTypes(contracts)
	}

	return n, uint(customerID), nil
}
