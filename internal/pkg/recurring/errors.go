package recurring

import "errors"

// IncompleteResponseGuidance is shown to merchants when the authorisation
// result lacks the fields needed to create a billing agreement.
const IncompleteResponseGuidance = "In the Additional data in API response section, select: Card bin, " +
	"Card summary, Expiry Date, Cardholder name, Recurring details and Variant " +
	"to create billing agreements immediately after the payment is authorized."

var (
	// ErrIncompleteResponse is returned when a synchronous result misses a required field.
	ErrIncompleteResponse = errors.New(IncompleteResponseGuidance)
	// ErrMalformedExpiry is returned when expiryDate is not in MM/YY form.
	ErrMalformedExpiry = errors.New("malformed expiry date")
	// ErrUnrecognizedVariant marks a notification without bank, card or paypal data.
	// The token is still returned, with an empty label.
	ErrUnrecognizedVariant = errors.New("unrecognized recurring detail variant")
	// ErrMissingReference is returned when no recurring detail reference is present.
	ErrMissingReference = errors.New("recurring detail reference is required")
)
