package jobqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/archive"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/recurring"
)

// AgreementStore persists recurring details delivered by notifications.
type AgreementStore interface {
	StoreFromNotification(ctx context.Context, customerID, storeID uint, n recurring.Notification) (*models.BillingAgreement, error)
	MarkNotificationProcessed(ctx context.Context, eventID uint, processingErr error) error
}

// ObjectArchiver writes raw notification payloads to object storage.
type ObjectArchiver interface {
	Put(ctx context.Context, objectKey string, body []byte) error
	Config() *archive.Config
}

// Processors are the collaborators job handlers call into. A nil Archive
// turns notification_archive jobs into no-ops.
type Processors struct {
	Agreements AgreementStore
	Archive    ObjectArchiver
}

// dispatch runs the handler for job.Type.
func (q *Queue) dispatch(ctx context.Context, job *Job) error {
	switch job.Type {
	case JobTypeRecurringContract:
		return q.processRecurringContractJob(ctx, job)
	case JobTypeNotificationArchive:
		return q.processNotificationArchiveJob(ctx, job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (q *Queue) processRecurringContractJob(ctx context.Context, job *Job) error {
	p := q.getProcessors()
	if p.Agreements == nil {
		return errors.New("no agreement store configured")
	}

	payload, err := RecurringContractJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid recurring_contract payload: %w", err)
	}

	_, storeErr := p.Agreements.StoreFromNotification(ctx, payload.CustomerID, payload.StoreID, recurring.Notification(payload.Detail))
	if storeErr != nil && !errors.Is(storeErr, recurring.ErrMissingReference) {
		return storeErr
	}
	if storeErr != nil {
		log.Warnf("[JobQueue] Dropping recurring detail for customer %d: %v", payload.CustomerID, storeErr)
	}

	if payload.NotificationEventID > 0 {
		if err := p.Agreements.MarkNotificationProcessed(ctx, payload.NotificationEventID, storeErr); err != nil {
			log.Errorf("[JobQueue] Failed to mark notification %d processed: %v", payload.NotificationEventID, err)
		}
	}
	return nil
}

func (q *Queue) processNotificationArchiveJob(ctx context.Context, job *Job) error {
	p := q.getProcessors()
	if p.Archive == nil {
		log.Debugf("[JobQueue] Archive disabled, skipping job %s", job.ID)
		return nil
	}

	payload, err := NotificationArchiveJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid notification_archive payload: %w", err)
	}
	if payload.PspReference == "" {
		return errors.New("notification_archive payload has no psp_reference")
	}

	key := p.Archive.Config().ObjectKey(payload.PspReference, payload.EventCode, job.CreatedAt)
	return p.Archive.Put(ctx, key, []byte(payload.PayloadJSON))
}
