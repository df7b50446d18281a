package paymentmethods

import (
	"sort"
	"strings"
)

// Method describes the fixed capabilities of one Adyen payment method.
type Method struct {
	Code                          string `json:"code"`
	TxVariant                     string `json:"tx_variant"`
	Name                          string `json:"name"`
	SupportsRecurring             bool   `json:"supports_recurring"`
	SupportsManualCapture         bool   `json:"supports_manual_capture"`
	SupportsAutoCapture           bool   `json:"supports_auto_capture"`
	SupportsCardOnFile            bool   `json:"supports_card_on_file"`
	SupportsSubscription          bool   `json:"supports_subscription"`
	SupportsUnscheduledCardOnFile bool   `json:"supports_unscheduled_card_on_file"`
	IsWallet                      bool   `json:"is_wallet"`
}

const (
	CodeCC              = "adyen_cc"
	CodeSepaDirectDebit = "adyen_sepadirectdebit"
	CodePayPal          = "adyen_paypal"
	CodeGooglePay       = "adyen_googlepay"
	CodeApplePay        = "adyen_applepay"
	CodeIdeal           = "adyen_ideal"
	CodeGiftcard        = "adyen_giftcard"
	CodeGivex           = "adyen_givex"
	CodeSVS             = "adyen_svs"
	CodeVVVGiftcard     = "adyen_vvvgiftcard"
)

var registry = map[string]Method{
	CodeCC: {
		Code: CodeCC, TxVariant: "scheme", Name: "Cards",
		SupportsRecurring: true, SupportsManualCapture: true, SupportsAutoCapture: true,
		SupportsCardOnFile: true, SupportsSubscription: true, SupportsUnscheduledCardOnFile: true,
	},
	CodeSepaDirectDebit: {
		Code: CodeSepaDirectDebit, TxVariant: "sepadirectdebit", Name: "SEPA Direct Debit",
		SupportsRecurring: true, SupportsAutoCapture: true,
		SupportsCardOnFile: true, SupportsSubscription: true, SupportsUnscheduledCardOnFile: true,
	},
	CodePayPal: {
		Code: CodePayPal, TxVariant: "paypal", Name: "PayPal",
		SupportsRecurring: true, SupportsManualCapture: true, SupportsAutoCapture: true,
		SupportsCardOnFile: true, SupportsSubscription: true, SupportsUnscheduledCardOnFile: true,
		IsWallet: true,
	},
	CodeGooglePay: {
		Code: CodeGooglePay, TxVariant: "googlepay", Name: "Google Pay",
		SupportsRecurring: true, SupportsManualCapture: true, SupportsAutoCapture: true,
		SupportsCardOnFile: true, SupportsSubscription: true, SupportsUnscheduledCardOnFile: true,
		IsWallet: true,
	},
	CodeApplePay: {
		Code: CodeApplePay, TxVariant: "applepay", Name: "Apple Pay",
		SupportsRecurring: true, SupportsManualCapture: true, SupportsAutoCapture: true,
		SupportsCardOnFile: true, SupportsSubscription: true, SupportsUnscheduledCardOnFile: true,
		IsWallet: true,
	},
	CodeIdeal: {
		Code: CodeIdeal, TxVariant: "ideal", Name: "iDEAL",
		SupportsAutoCapture: true,
	},
	CodeGiftcard: {
		Code: CodeGiftcard, TxVariant: "giftcard", Name: "Gift Card",
	},
	CodeGivex: {
		Code: CodeGivex, TxVariant: "givex", Name: "Givex",
	},
	CodeSVS: {
		Code: CodeSVS, TxVariant: "svs", Name: "SVS",
	},
	CodeVVVGiftcard: {
		Code: CodeVVVGiftcard, TxVariant: "vvvgiftcard", Name: "VVV Giftcard",
	},
}

// Lookup returns the method registered under code.
func Lookup(code string) (Method, bool) {
	m, ok := registry[strings.TrimSpace(code)]
	return m, ok
}

// LookupByTxVariant finds a method by its Adyen transaction variant.
func LookupByTxVariant(variant string) (Method, bool) {
	v := strings.TrimSpace(variant)
	for _, m := range registry {
		if m.TxVariant == v {
			return m, true
		}
	}
	return Method{}, false
}

// All returns every registered method sorted by code.
func All() []Method {
	out := make([]Method, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
