package recurring

import (
	"fmt"
	"strings"
)

// Result is the additionalData of a synchronous authorisation response.
type Result map[string]any

// ResultReferenceKey carries the recurring detail reference in a Result.
const ResultReferenceKey = "recurring.recurringDetailReference"

var requiredResultKeys = []string{"cardBin", "cardHolderName", "cardSummary", "expiryDate", "paymentMethod"}

// IsPOSPayment reports whether the result came from a point-of-sale terminal.
func (r Result) IsPOSPayment() bool {
	return truthy(r["pos_payment"])
}

// MissingFields lists required keys absent from the result.
func (r Result) MissingFields() []string {
	var missing []string
	for _, k := range requiredResultKeys {
		if v, ok := r[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	return missing
}

// SplitExpiry splits an "MM/YY" expiry into month and year.
func SplitExpiry(expiry string) (string, string, error) {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedExpiry, expiry)
	}
	return parts[0], parts[1], nil
}

// FromResult builds a card token from a synchronous authorisation result.
// recurringType is the store setting the contract types derive from.
func FromResult(r Result, recurringType string) (*Token, error) {
	if missing := r.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w (missing: %s)", ErrIncompleteResponse, strings.Join(missing, ", "))
	}

	ref, _ := stringAt(r, ResultReferenceKey)
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrMissingReference
	}

	expiry, _ := stringAt(r, "expiryDate")
	month, year, err := SplitExpiry(expiry)
	if err != nil {
		return nil, err
	}

	variant, _ := stringAt(r, "paymentMethod")
	holder, _ := stringAt(r, "cardHolderName")
	summary, _ := stringAt(r, "cardSummary")
	summary = MaskCardNumber(summary)

	contractTypes := ParseContractTypes(recurringType)
	payload := map[string]any{
		"card": map[string]any{
			"holderName":  holder,
			"number":      summary,
			"expiryMonth": month,
			"expiryYear":  year,
		},
		"variant":       variant,
		"contractTypes": contractTypes,
	}
	if r.IsPOSPayment() {
		payload["posPayment"] = true
	}

	return &Token{
		MethodCode:    MethodCodeOneClick,
		ReferenceID:   ref,
		Label:         cardLabel(BrandName(variant), holder, summary),
		Payload:       payload,
		ContractTypes: contractTypes,
	}, nil
}
