package recurring

import (
	"fmt"
	"strings"
	"time"
)

// Notification is a recurring detail as delivered asynchronously, either
// from a RECURRING_CONTRACT notification or a listRecurringDetails response.
type Notification map[string]any

var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02-15:04:05",
	"2006-01-02T15:04:05",
}

func parseCreationDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// FromNotification builds a token from an asynchronous recurring detail.
// When no bank, card or paypal data is present the token is returned with an
// empty label together with ErrUnrecognizedVariant.
func FromNotification(n Notification) (*Token, error) {
	ref, _ := stringAt(n, "recurringDetailReference")
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrMissingReference
	}

	tok := &Token{
		MethodCode:  MethodCodeOneClick,
		ReferenceID: ref,
	}
	if created, ok := stringAt(n, "creationDate"); ok {
		tok.CreatedAt = parseCreationDate(created)
	}

	payload := StripEnvelope(n)
	variant, _ := stringAt(n, "variant")
	matched := false

	if iban, ok := stringAt(n, "bank", "iban"); ok {
		owner, _ := stringAt(n, "bank", "ownerName")
		tok.Label = bankLabel(iban, owner)
		matched = true
	}

	if number, ok := stringAt(n, "card", "number"); ok {
		masked := MaskCardNumber(number)
		holder, _ := stringAt(n, "card", "holderName")
		tok.Label = fmt.Sprintf("%s, %s, **** %s", BrandName(variant), holder, masked)

		if card, ok := mapAt(n, "card"); ok {
			cardCopy := make(map[string]any, len(card))
			for k, v := range card {
				cardCopy[k] = v
			}
			cardCopy["number"] = masked
			payload["card"] = cardCopy
		}
		matched = true
	}

	if variant == "paypal" {
		email, ok := stringAt(n, "tokenDetails", "tokenData", "EmailId")
		if !ok {
			email, _ = stringAt(n, "lastKnownShopperEmail")
		}
		tok.Label = paypalLabel(email)
		matched = true
	}

	tok.Payload = payload
	tok.ContractTypes = contractTypesFrom(n["contractTypes"])

	if !matched {
		return tok, fmt.Errorf("%w: %q", ErrUnrecognizedVariant, variant)
	}
	return tok, nil
}
