package jobqueue

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

// Enqueuer accepts new jobs. *Queue implements it.
type Enqueuer interface {
	EnqueueJob(jobType JobType, payload map[string]interface{}) (*Job, error)
}

// EnqueueRecurringContract schedules storage of a recurring detail.
func EnqueueRecurringContract(q Enqueuer, payload RecurringContractJobPayload) (*Job, error) {
	if payload.CustomerID == 0 || len(payload.Detail) == 0 {
		return nil, fmt.Errorf("cannot enqueue recurring contract without customer and detail")
	}

	job, err := q.EnqueueJob(JobTypeRecurringContract, payload.ToMap())
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue recurring contract for customer %d: %w", payload.CustomerID, err)
	}
	log.Infof("[JobQueue] Enqueued recurring contract job %s for customer %d", job.ID, payload.CustomerID)
	return job, nil
}

// EnqueueNotificationArchive schedules upload of a raw notification item.
func EnqueueNotificationArchive(q Enqueuer, payload NotificationArchiveJobPayload) (*Job, error) {
	if payload.PspReference == "" {
		return nil, fmt.Errorf("cannot enqueue notification archive without psp reference")
	}

	job, err := q.EnqueueJob(JobTypeNotificationArchive, payload.ToMap())
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue notification archive for %s: %w", payload.PspReference, err)
	}
	return job, nil
}
