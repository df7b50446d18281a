package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"github.com/ManuelReschke/AdyenBridge/app/repository"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/paymentmethods"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/recurring"
)

// Service stores Adyen recurring tokens as billing agreements.
type Service struct {
	repo   Repository
	config ConfigReader
}

// NewService creates a billing service from injected collaborators.
func NewService(repo Repository, config ConfigReader) *Service {
	return &Service{repo: repo, config: config}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	cfg := NewCachedConfigReader(repository.NewStoreConfigRepository(db), DefaultValueCache())
	return NewService(NewRepository(db), cfg)
}

func agreementFromToken(customerID, storeID uint, tok *recurring.Token) (*models.BillingAgreement, error) {
	a := &models.BillingAgreement{
		CustomerID:     customerID,
		StoreID:        storeID,
		MethodCode:     tok.MethodCode,
		ReferenceID:    tok.ReferenceID,
		Status:         models.AgreementStatusActive,
		AgreementLabel: tok.Label,
		TokenCreatedAt: tok.CreatedAt,
	}
	if err := a.SetAgreementData(tok.Payload); err != nil {
		return nil, fmt.Errorf("encode agreement data: %w", err)
	}
	return a, nil
}

// StoreFromNotification stores a token delivered asynchronously. Details
// without bank, card or paypal data are stored with an empty label.
func (s *Service) StoreFromNotification(ctx context.Context, customerID, storeID uint, n recurring.Notification) (*models.BillingAgreement, error) {
	_ = ctx
	if customerID == 0 {
		return nil, errors.New("customer_id is required")
	}

	tok, err := recurring.FromNotification(n)
	if err != nil {
		if !errors.Is(err, recurring.ErrUnrecognizedVariant) {
			return nil, err
		}
		log.Warnf("[Billing] storing agreement %s for customer %d without label: %v", tok.ReferenceID, customerID, err)
	}

	agreement, err := agreementFromToken(customerID, storeID, tok)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertAgreement(agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// StoreFromResult stores a card token from a synchronous authorisation result.
func (s *Service) StoreFromResult(ctx context.Context, customerID, storeID uint, r recurring.Result) (*models.BillingAgreement, error) {
	_ = ctx
	if customerID == 0 {
		return nil, errors.New("customer_id is required")
	}
	if missing := r.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w (missing: %s)", recurring.ErrIncompleteResponse, strings.Join(missing, ", "))
	}

	recurringType, err := recurringTypeFor(s.config, storeID, r.IsPOSPayment())
	if err != nil {
		return nil, err
	}

	tok, err := recurring.FromResult(r, recurringType)
	if err != nil {
		return nil, err
	}

	agreement, err := agreementFromToken(customerID, storeID, tok)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertAgreement(agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// ImportFromOrderPayment activates an agreement for an authorised order
// payment. The payment's billing agreement id wins over the recurring detail
// reference. Data of an existing agreement is kept.
func (s *Service) ImportFromOrderPayment(ctx context.Context, p OrderPayment, recurringDetailReference string) (*models.BillingAgreement, error) {
	_ = ctx
	if p.CustomerID == 0 || strings.TrimSpace(p.MethodCode) == "" {
		return nil, errors.New("customer_id and method_code are required")
	}

	ref := strings.TrimSpace(p.BillingAgreementID)
	if ref == "" {
		ref = strings.TrimSpace(recurringDetailReference)
	}
	if ref == "" {
		return nil, recurring.ErrMissingReference
	}

	label := strings.TrimSpace(p.MethodTitle)
	if label == "" {
		if m, ok := paymentmethods.Lookup(p.MethodCode); ok {
			label = m.Name
		}
	}

	agreement, err := s.repo.GetAgreement(p.CustomerID, ref)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		agreement = &models.BillingAgreement{
			CustomerID:  p.CustomerID,
			ReferenceID: ref,
		}
	}

	agreement.StoreID = p.StoreID
	agreement.MethodCode = strings.TrimSpace(p.MethodCode)
	agreement.Status = models.AgreementStatusActive
	if agreement.AgreementLabel == "" {
		agreement.AgreementLabel = label
	}
	if err := s.repo.UpsertAgreement(agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// ListAgreements returns every agreement of a customer.
func (s *Service) ListAgreements(ctx context.Context, customerID uint) ([]models.BillingAgreement, error) {
	_ = ctx
	if customerID == 0 {
		return nil, errors.New("customer_id is required")
	}
	return s.repo.ListAgreementsByCustomer(customerID)
}

// CancelAgreement marks an agreement as canceled.
func (s *Service) CancelAgreement(ctx context.Context, customerID uint, referenceID string) (*models.BillingAgreement, error) {
	_ = ctx
	ref := strings.TrimSpace(referenceID)
	if customerID == 0 || ref == "" {
		return nil, errors.New("customer_id and reference_id are required")
	}

	agreement, err := s.repo.GetAgreement(customerID, ref)
	if err != nil {
		return nil, err
	}
	if agreement.Status == models.AgreementStatusCanceled {
		return agreement, nil
	}
	if err := s.repo.UpdateAgreementStatus(agreement.ID, models.AgreementStatusCanceled); err != nil {
		return nil, err
	}
	agreement.Status = models.AgreementStatusCanceled
	return agreement, nil
}

// RecordNotification persists a notification item idempotently.
func (s *Service) RecordNotification(ctx context.Context, in NotificationInput) (bool, *models.NotificationEvent, error) {
	_ = ctx
	psp := strings.TrimSpace(in.PspReference)
	code := strings.ToUpper(strings.TrimSpace(in.EventCode))
	if psp == "" || code == "" {
		return false, nil, errors.New("psp_reference and event_code are required")
	}

	event := &models.NotificationEvent{
		PspReference:        psp,
		EventCode:           code,
		MerchantReference:   strings.TrimSpace(in.MerchantReference),
		MerchantAccountCode: strings.TrimSpace(in.MerchantAccountCode),
		Success:             in.Success,
		Live:                in.Live,
		PayloadJSON:         in.PayloadJSON,
		SignatureValid:      in.SignatureValid,
	}
	return s.repo.CreateNotificationIfNotExists(event)
}

// MarkNotificationProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkNotificationProcessed(ctx context.Context, eventID uint, processingErr error) error {
	_ = ctx
	if eventID == 0 {
		return errors.New("notification_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkNotificationProcessed(eventID, errMsg)
}
