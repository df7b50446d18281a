package apiv1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/billing"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/jobqueue"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/paymentmethods"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/recurring"
)

// AgreementService is the billing behavior the API exposes.
type AgreementService interface {
	StoreFromNotification(ctx context.Context, customerID, storeID uint, n recurring.Notification) (*models.BillingAgreement, error)
	StoreFromResult(ctx context.Context, customerID, storeID uint, r recurring.Result) (*models.BillingAgreement, error)
	ImportFromOrderPayment(ctx context.Context, p billing.OrderPayment, recurringDetailReference string) (*models.BillingAgreement, error)
	ListAgreements(ctx context.Context, customerID uint) ([]models.BillingAgreement, error)
	CancelAgreement(ctx context.Context, customerID uint, referenceID string) (*models.BillingAgreement, error)
	RecordNotification(ctx context.Context, in billing.NotificationInput) (bool, *models.NotificationEvent, error)
}

// GiftcardRequestBuilder builds the gift card part of a payments request.
type GiftcardRequestBuilder interface {
	Build(ctx context.Context, quoteID uint) (map[string]any, error)
}

// StateDataWriter persists checkout state data.
type StateDataWriter interface {
	Create(stateData *models.StateData) error
}

// Deps are the collaborators of the API server.
type Deps struct {
	StateData      StateDataWriter
	Giftcards      GiftcardRequestBuilder
	Agreements     AgreementService
	Jobs           jobqueue.Enqueuer
	HMACKey        string
	ArchiveEnabled bool
}

// APIServer implements the ServerInterface
type APIServer struct {
	deps     Deps
	validate *validator.Validate
}

// NewAPIServer creates a new API server instance
func NewAPIServer(deps Deps) *APIServer {
	if strings.TrimSpace(deps.HMACKey) == "" {
		log.Warn("[API] ADYEN_HMAC_KEY is not set, notifications are accepted without signature verification")
	}
	return &APIServer{deps: deps, validate: validator.New()}
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

func (s *APIServer) bindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("invalid JSON body")
	}
	return s.validate.Struct(out)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// PostStateData stores state data for a quote.
func (s *APIServer) PostStateData(c *fiber.Ctx, quoteID uint) error {
	var req StateDataRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	raw := strings.TrimSpace(string(req.StateData))
	var asString string
	if err := json.Unmarshal(req.StateData, &asString); err == nil {
		raw = strings.TrimSpace(asString)
	}
	if raw == "" || raw == "null" || !json.Valid([]byte(raw)) {
		return errorJSON(c, fiber.StatusBadRequest, "validation_failed", "state_data must be a JSON document")
	}

	row := &models.StateData{QuoteID: quoteID, StateData: raw}
	if err := s.deps.StateData.Create(row); err != nil {
		log.Errorf("[API] Failed to store state data for quote %d: %v", quoteID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store state data")
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// GetGiftcardRequest returns the gift card request parameters for a quote.
func (s *APIServer) GetGiftcardRequest(c *fiber.Ctx, quoteID uint) error {
	request, err := s.deps.Giftcards.Build(c.UserContext(), quoteID)
	if err != nil {
		log.Errorf("[API] Failed to build gift card request for quote %d: %v", quoteID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to build gift card request")
	}
	return c.JSON(request)
}

// ListPaymentMethods returns the capability registry.
func (s *APIServer) ListPaymentMethods(c *fiber.Ctx) error {
	return c.JSON(paymentmethods.All())
}

// GetPaymentMethod returns one registry entry.
func (s *APIServer) GetPaymentMethod(c *fiber.Ctx, code string) error {
	m, ok := paymentmethods.Lookup(code)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Unknown payment method")
	}
	return c.JSON(m)
}

// PostAgreementResult stores a token from a synchronous authorisation result.
func (s *APIServer) PostAgreementResult(c *fiber.Ctx, customerID uint) error {
	var req AgreementResultRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	a, err := s.deps.Agreements.StoreFromResult(c.UserContext(), customerID, req.StoreID, recurring.Result(req.AdditionalData))
	if err != nil {
		switch {
		case errors.Is(err, recurring.ErrIncompleteResponse):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "incomplete_response",
				"message": err.Error(),
				"errors":  []string{recurring.IncompleteResponseGuidance},
			})
		case errors.Is(err, recurring.ErrMalformedExpiry), errors.Is(err, recurring.ErrMissingReference):
			return errorJSON(c, fiber.StatusUnprocessableEntity, "invalid_result", err.Error())
		}
		log.Errorf("[API] Failed to store agreement for customer %d: %v", customerID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store agreement")
	}
	return c.Status(fiber.StatusCreated).JSON(toAgreement(a))
}

// PostRecurringDetails stores the details of a listRecurringDetails response.
func (s *APIServer) PostRecurringDetails(c *fiber.Ctx, customerID uint) error {
	var req RecurringDetailsRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	resp := RecurringDetailsResponse{Stored: []Agreement{}, Errors: []RecurringDetailError{}}
	for _, d := range req.Details {
		n := recurring.Notification(d.RecurringDetail)
		ref, _ := n["recurringDetailReference"].(string)
		a, err := s.deps.Agreements.StoreFromNotification(c.UserContext(), customerID, req.StoreID, n)
		if err != nil {
			resp.Errors = append(resp.Errors, RecurringDetailError{Reference: ref, Message: err.Error()})
			continue
		}
		resp.Stored = append(resp.Stored, toAgreement(a))
	}

	status := fiber.StatusOK
	if len(resp.Stored) == 0 {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(resp)
}

// PostImportAgreement imports an agreement from an order payment.
func (s *APIServer) PostImportAgreement(c *fiber.Ctx, customerID uint) error {
	var req ImportAgreementRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	a, err := s.deps.Agreements.ImportFromOrderPayment(c.UserContext(), billing.OrderPayment{
		CustomerID:         customerID,
		StoreID:            req.StoreID,
		MethodCode:         req.MethodCode,
		MethodTitle:        req.MethodTitle,
		BillingAgreementID: req.BillingAgreementID,
	}, req.RecurringDetailReference)
	if err != nil {
		if errors.Is(err, recurring.ErrMissingReference) {
			return errorJSON(c, fiber.StatusUnprocessableEntity, "invalid_payment", err.Error())
		}
		log.Errorf("[API] Failed to import agreement for customer %d: %v", customerID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to import agreement")
	}
	return c.Status(fiber.StatusCreated).JSON(toAgreement(a))
}

// ListAgreements lists a customer's agreements.
func (s *APIServer) ListAgreements(c *fiber.Ctx, customerID uint) error {
	list, err := s.deps.Agreements.ListAgreements(c.UserContext(), customerID)
	if err != nil {
		log.Errorf("[API] Failed to list agreements for customer %d: %v", customerID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list agreements")
	}
	out := make([]Agreement, 0, len(list))
	for i := range list {
		out = append(out, toAgreement(&list[i]))
	}
	return c.JSON(out)
}

// DeleteAgreement cancels an agreement.
func (s *APIServer) DeleteAgreement(c *fiber.Ctx, customerID uint, reference string) error {
	a, err := s.deps.Agreements.CancelAgreement(c.UserContext(), customerID, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Agreement not found")
		}
		log.Errorf("[API] Failed to cancel agreement %s for customer %d: %v", reference, customerID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to cancel agreement")
	}
	return c.JSON(toAgreement(a))
}

// PostAdyenNotification receives Adyen webhooks. Every item is recorded once;
// signed RECURRING_CONTRACT items are queued for storage.
func (s *APIServer) PostAdyenNotification(c *fiber.Ctx) error {
	req, err := billing.ParseNotificationRequest(c.Body())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	ctx := c.UserContext()
	verify := strings.TrimSpace(s.deps.HMACKey) != ""
	for _, item := range req.Items() {
		valid := verify && billing.VerifyNotificationHMAC(item, s.deps.HMACKey)
		if verify && !valid {
			log.Warnf("[Webhook] Invalid HMAC for %s/%s", item.PspReference, item.EventCode)
		}

		in, err := item.ToInput(req.IsLive(), valid)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		created, event, err := s.deps.Agreements.RecordNotification(ctx, in)
		if err != nil {
			log.Errorf("[Webhook] Failed to record %s/%s: %v", item.PspReference, item.EventCode, err)
			return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record notification")
		}
		if verify && !valid {
			continue
		}

		if created && s.deps.ArchiveEnabled {
			if _, err := jobqueue.EnqueueNotificationArchive(s.deps.Jobs, jobqueue.NotificationArchiveJobPayload{
				NotificationEventID: event.ID,
				PspReference:        event.PspReference,
				EventCode:           event.EventCode,
				PayloadJSON:         event.PayloadJSON,
			}); err != nil {
				log.Errorf("[Webhook] %v", err)
			}
		}

		if !item.IsRecurringContract() || !item.IsSuccess() || event.ProcessedAt != nil {
			continue
		}
		detail, customerID, err := billing.RecurringDetailFromItem(item)
		if err != nil {
			log.Warnf("[Webhook] Skipping recurring contract %s: %v", item.PspReference, err)
			continue
		}
		if _, err := jobqueue.EnqueueRecurringContract(s.deps.Jobs, jobqueue.RecurringContractJobPayload{
			CustomerID:          customerID,
			StoreID:             models.DefaultStoreID,
			NotificationEventID: event.ID,
			Detail:              detail,
		}); err != nil {
			log.Errorf("[Webhook] %v", err)
			return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to queue notification")
		}
	}

	return c.SendString("[accepted]")
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(v), nil
}
