package recurring

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeNotification(t *testing.T, raw string) Notification {
	t.Helper()
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	return n
}

func TestFromNotification_Bank(t *testing.T) {
	n := decodeNotification(t, `{
		"recurringDetailReference": "8315",
		"creationDate": "2017-03-01T11:53:11+01:00",
		"variant": "sepadirectdebit",
		"bank": {"iban": "NL00INGB1234", "ownerName": "J. Doe"}
	}`)

	tok, err := FromNotification(n)
	require.NoError(t, err)
	assert.Equal(t, MethodCodeOneClick, tok.MethodCode)
	assert.Equal(t, "8315", tok.ReferenceID)
	assert.Equal(t, "NL00INGB1234, J. Doe", tok.Label)
	require.NotNil(t, tok.CreatedAt)
	assert.Equal(t, 2017, tok.CreatedAt.Year())
}

func TestFromNotification_CardUsesBrandAlias(t *testing.T) {
	n := decodeNotification(t, `{
		"recurringDetailReference": "ref-1",
		"creationDate": "2017-03-01 11:53:11",
		"variant": "mc",
		"card": {"number": "1111", "holderName": "Jane", "expiryMonth": "8", "expiryYear": "2030"}
	}`)

	tok, err := FromNotification(n)
	require.NoError(t, err)
	assert.Equal(t, "MasterCard, Jane, **** 1111", tok.Label)
	require.NotNil(t, tok.CreatedAt)
}

func TestFromNotification_CardUnknownBrandFallsBack(t *testing.T) {
	n := Notification{
		"recurringDetailReference": "ref-2",
		"variant":                  "someNewBrand",
		"card":                     map[string]any{"number": "4242", "holderName": "Max"},
	}

	tok, err := FromNotification(n)
	require.NoError(t, err)
	assert.Equal(t, "someNewBrand, Max, **** 4242", tok.Label)
}

func TestFromNotification_CardNumberIsMasked(t *testing.T) {
	card := map[string]any{"number": "4111111111111111", "holderName": "Max"}
	n := Notification{
		"recurringDetailReference": "ref-3",
		"variant":                  "visa",
		"card":                     card,
	}

	tok, err := FromNotification(n)
	require.NoError(t, err)
	assert.Equal(t, "Visa, Max, **** 1111", tok.Label)

	storedCard, ok := tok.Payload["card"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1111", storedCard["number"])
	// input must not be mutated
	assert.Equal(t, "4111111111111111", card["number"])
}

func TestFromNotification_PayPalEmailResolution(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want string
	}{
		{
			name: "token data email wins",
			n: Notification{
				"recurringDetailReference": "pp-1",
				"variant":                  "paypal",
				"tokenDetails":             map[string]any{"tokenData": map[string]any{"EmailId": "a@example.com"}},
				"lastKnownShopperEmail":    "b@example.com",
			},
			want: "PayPal a@example.com",
		},
		{
			name: "last known shopper email",
			n: Notification{
				"recurringDetailReference": "pp-2",
				"variant":                  "paypal",
				"lastKnownShopperEmail":    "b@example.com",
			},
			want: "PayPal b@example.com",
		},
		{
			name: "no email",
			n: Notification{
				"recurringDetailReference": "pp-3",
				"variant":                  "paypal",
			},
			want: "PayPal ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := FromNotification(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tok.Label)
		})
	}
}

func TestFromNotification_Unrecognized(t *testing.T) {
	n := Notification{
		"recurringDetailReference": "x-1",
		"variant":                  "ideal",
	}

	tok, err := FromNotification(n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnrecognizedVariant))
	require.NotNil(t, tok)
	assert.Equal(t, "", tok.Label)
	assert.Equal(t, "x-1", tok.ReferenceID)
}

func TestFromNotification_MissingReference(t *testing.T) {
	_, err := FromNotification(Notification{"variant": "visa"})
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestFromNotification_StripsEnvelope(t *testing.T) {
	n := Notification{
		"recurringDetailReference": "ref-4",
		"creationDate":             "2020-01-01T00:00:00Z",
		"payment_method":           "visa",
		"variant":                  "visa",
		"contractTypes":            []any{"ONECLICK", "RECURRING"},
		"card":                     map[string]any{"number": "0004", "holderName": "A"},
	}

	tok, err := FromNotification(n)
	require.NoError(t, err)
	for _, k := range []string{"creationDate", "recurringDetailReference", "payment_method"} {
		assert.NotContains(t, tok.Payload, k)
	}
	assert.Equal(t, []string{"ONECLICK", "RECURRING"}, tok.ContractTypes)
	assert.Equal(t, "visa", tok.Payload["variant"])
}

func validResult() Result {
	return Result{
		"cardBin":                  "411111",
		"cardHolderName":           "Jane Doe",
		"cardSummary":              "1111",
		"expiryDate":               "09/26",
		"paymentMethod":            "visa",
		ResultReferenceKey:         "9915",
	}
}

func TestFromResult(t *testing.T) {
	tok, err := FromResult(validResult(), "ONECLICK,RECURRING")
	require.NoError(t, err)

	assert.Equal(t, "9915", tok.ReferenceID)
	assert.Equal(t, "Visa, Jane Doe, **** 1111", tok.Label)
	assert.Equal(t, []string{"ONECLICK", "RECURRING"}, tok.ContractTypes)

	card, ok := tok.Payload["card"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "09", card["expiryMonth"])
	assert.Equal(t, "26", card["expiryYear"])
	assert.Equal(t, "Jane Doe", card["holderName"])
	assert.Equal(t, "visa", tok.Payload["variant"])
	assert.NotContains(t, tok.Payload, "posPayment")
}

func TestFromResult_MissingField(t *testing.T) {
	for _, key := range requiredResultKeys {
		t.Run(key, func(t *testing.T) {
			r := validResult()
			delete(r, key)
			_, err := FromResult(r, "ONECLICK")
			assert.ErrorIs(t, err, ErrIncompleteResponse)
		})
	}
}

func TestFromResult_EmptyHolderAndUnmappedBrand(t *testing.T) {
	r := validResult()
	r["cardHolderName"] = ""
	r["paymentMethod"] = "brandx"

	tok, err := FromResult(r, "ONECLICK")
	require.NoError(t, err)
	assert.Equal(t, "brandx, **** 1111", tok.Label)
}

func TestFromResult_MalformedExpiry(t *testing.T) {
	r := validResult()
	r["expiryDate"] = "0926"

	_, err := FromResult(r, "ONECLICK")
	assert.ErrorIs(t, err, ErrMalformedExpiry)
}

func TestFromResult_POSPayment(t *testing.T) {
	r := validResult()
	r["pos_payment"] = "1"

	tok, err := FromResult(r, "RECURRING")
	require.NoError(t, err)
	assert.Equal(t, true, tok.Payload["posPayment"])
	assert.Equal(t, []string{"RECURRING"}, tok.ContractTypes)
}

func TestFromResult_MissingReference(t *testing.T) {
	r := validResult()
	delete(r, ResultReferenceKey)

	_, err := FromResult(r, "ONECLICK")
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestSplitExpiry(t *testing.T) {
	month, year, err := SplitExpiry("09/26")
	require.NoError(t, err)
	assert.Equal(t, "09", month)
	assert.Equal(t, "26", year)

	for _, bad := range []string{"0926", "09/26/01", ""} {
		_, _, err := SplitExpiry(bad)
		assert.ErrorIs(t, err, ErrMalformedExpiry, bad)
	}
}

func TestParseContractTypes(t *testing.T) {
	assert.Equal(t, []string{"ONECLICK"}, ParseContractTypes("ONECLICK"))
	assert.Equal(t, []string{"ONECLICK", "RECURRING"}, ParseContractTypes("ONECLICK, RECURRING,ONECLICK"))
	assert.Empty(t, ParseContractTypes(""))
}

func TestBrandName(t *testing.T) {
	assert.Equal(t, "American Express", BrandName("amex"))
	assert.Equal(t, "unknown", BrandName("unknown"))
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "1111", MaskCardNumber("4111111111111111"))
	assert.Equal(t, "123", MaskCardNumber("123"))
}

func TestStripEnvelopeRoundTrip(t *testing.T) {
	in := map[string]any{
		"creationDate":             "x",
		"recurringDetailReference": "y",
		"payment_method":           "z",
		"variant":                  "visa",
	}
	out := StripEnvelope(in)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, map[string]any{"variant": "visa"}, decoded)
	assert.Len(t, in, 4)
}
