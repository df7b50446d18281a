package recurring

import (
	"fmt"
	"strings"
	"time"
)

// MethodCodeOneClick is the billing agreement method code used for every
// stored Adyen token.
const MethodCodeOneClick = "adyen_oneclick"

// Token is the canonical recurring payment token built from either an
// asynchronous recurring detail or a synchronous authorisation result.
// Persistence is left to the caller.
type Token struct {
	MethodCode    string
	ReferenceID   string
	Label         string
	Payload       map[string]any
	ContractTypes []string
	CreatedAt     *time.Time
}

// envelopeKeys duplicate top-level token fields and are never stored.
var envelopeKeys = []string{"creationDate", "recurringDetailReference", "payment_method"}

// StripEnvelope returns a shallow copy of payload without the envelope keys.
func StripEnvelope(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, k := range envelopeKeys {
		delete(out, k)
	}
	return out
}

// MaskCardNumber keeps only the last four digits of a card number.
func MaskCardNumber(number string) string {
	n := strings.TrimSpace(number)
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

func cardLabel(brand, holderName, number string) string {
	if holderName == "" {
		return fmt.Sprintf("%s, **** %s", brand, number)
	}
	return fmt.Sprintf("%s, %s, **** %s", brand, holderName, number)
}

func bankLabel(iban, ownerName string) string {
	return fmt.Sprintf("%s, %s", iban, ownerName)
}

func paypalLabel(email string) string {
	return fmt.Sprintf("PayPal %s", email)
}

// stringAt walks nested maps and returns the string at path. Numbers are
// rendered without a fraction so numeric JSON fields still map cleanly.
func stringAt(m map[string]any, path ...string) (string, bool) {
	var cur any = m
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = obj[p]
		if !ok || cur == nil {
			return "", false
		}
	}
	switch v := cur.(type) {
	case string:
		return v, true
	case float64:
		return fmt.Sprintf("%.0f", v), true
	case int:
		return fmt.Sprintf("%d", v), true
	case bool:
		return fmt.Sprintf("%t", v), true
	default:
		return "", false
	}
}

func mapAt(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}

// truthy mirrors how loosely typed provider flags ("1", "true", true) are
// treated as set.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s != "" && s != "0" && s != "false"
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
