package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// (POST /quotes/{quoteId}/state-data)
	PostStateData(c *fiber.Ctx, quoteID uint) error
	// (GET /quotes/{quoteId}/giftcard-request)
	GetGiftcardRequest(c *fiber.Ctx, quoteID uint) error
	// (GET /payment-methods)
	ListPaymentMethods(c *fiber.Ctx) error
	// (GET /payment-methods/{code})
	GetPaymentMethod(c *fiber.Ctx, code string) error
	// (POST /customers/{customerId}/agreements/result)
	PostAgreementResult(c *fiber.Ctx, customerID uint) error
	// (POST /customers/{customerId}/agreements/recurring-details)
	PostRecurringDetails(c *fiber.Ctx, customerID uint) error
	// (POST /customers/{customerId}/agreements/import)
	PostImportAgreement(c *fiber.Ctx, customerID uint) error
	// (GET /customers/{customerId}/agreements)
	ListAgreements(c *fiber.Ctx, customerID uint) error
	// (DELETE /customers/{customerId}/agreements/{reference})
	DeleteAgreement(c *fiber.Ctx, customerID uint, reference string) error
	// (POST /notifications/adyen)
	PostAdyenNotification(c *fiber.Ctx) error
}

// ServerInterfaceWrapper converts path parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetPing(c *fiber.Ctx) error {
	return w.Handler.GetPing(c)
}

func (w *ServerInterfaceWrapper) PostStateData(c *fiber.Ctx) error {
	quoteID, err := parseUintParam(c, "quoteId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	return w.Handler.PostStateData(c, quoteID)
}

func (w *ServerInterfaceWrapper) GetGiftcardRequest(c *fiber.Ctx) error {
	quoteID, err := parseUintParam(c, "quoteId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	return w.Handler.GetGiftcardRequest(c, quoteID)
}

func (w *ServerInterfaceWrapper) ListPaymentMethods(c *fiber.Ctx) error {
	return w.Handler.ListPaymentMethods(c)
}

func (w *ServerInterfaceWrapper) GetPaymentMethod(c *fiber.Ctx) error {
	return w.Handler.GetPaymentMethod(c, c.Params("code"))
}

func (w *ServerInterfaceWrapper) withCustomer(next func(c *fiber.Ctx, customerID uint) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := parseUintParam(c, "customerId")
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		return next(c, customerID)
	}
}

func (w *ServerInterfaceWrapper) DeleteAgreement(c *fiber.Ctx) error {
	customerID, err := parseUintParam(c, "customerId")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	return w.Handler.DeleteAgreement(c, customerID, c.Params("reference"))
}

func (w *ServerInterfaceWrapper) PostAdyenNotification(c *fiber.Ctx) error {
	return w.Handler.PostAdyenNotification(c)
}

// RouteOptions carries the middleware guarding route groups. Nil handlers
// leave the group unguarded.
type RouteOptions struct {
	APIKey      fiber.Handler
	WebhookAuth fiber.Handler
}

// RegisterHandlers registers every endpoint on router.
func RegisterHandlers(router fiber.Router, si ServerInterface, opts RouteOptions) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.Get("/ping", w.GetPing)

	webhook := []fiber.Handler{}
	if opts.WebhookAuth != nil {
		webhook = append(webhook, opts.WebhookAuth)
	}
	router.Post("/notifications/adyen", append(webhook, w.PostAdyenNotification)...)

	protected := router.Group("")
	if opts.APIKey != nil {
		protected = router.Group("", opts.APIKey)
	}

	protected.Post("/quotes/:quoteId/state-data", w.PostStateData)
	protected.Get("/quotes/:quoteId/giftcard-request", w.GetGiftcardRequest)

	protected.Get("/payment-methods", w.ListPaymentMethods)
	protected.Get("/payment-methods/:code", w.GetPaymentMethod)

	customers := protected.Group("/customers/:customerId/agreements")
	customers.Get("/", w.withCustomer(si.ListAgreements))
	customers.Post("/result", w.withCustomer(si.PostAgreementResult))
	customers.Post("/recurring-details", w.withCustomer(si.PostRecurringDetails))
	customers.Post("/import", w.withCustomer(si.PostImportAgreement))
	customers.Delete("/:reference", w.DeleteAgreement)
}
