package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeRecurringContract   JobType = "recurring_contract"
	JobTypeNotificationArchive JobType = "notification_archive"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// RecurringContractJobPayload carries a recurring detail taken from a
// RECURRING_CONTRACT notification.
type RecurringContractJobPayload struct {
	CustomerID          uint                   `json:"customer_id"`
	StoreID             uint                   `json:"store_id"`
	NotificationEventID uint                   `json:"notification_event_id"`
	Detail              map[string]interface{} `json:"detail"`
}

// ToMap converts the payload to a map for storage
func (p RecurringContractJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"customer_id":           p.CustomerID,
		"store_id":              p.StoreID,
		"notification_event_id": p.NotificationEventID,
		"detail":                p.Detail,
	}
}

// RecurringContractJobPayloadFromMap creates a payload from a map
func RecurringContractJobPayloadFromMap(data map[string]interface{}) (*RecurringContractJobPayload, error) {
	var payload RecurringContractJobPayload
	if err := decodePayload(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NotificationArchiveJobPayload carries a raw notification item for archiving.
type NotificationArchiveJobPayload struct {
	NotificationEventID uint   `json:"notification_event_id"`
	PspReference        string `json:"psp_reference"`
	EventCode           string `json:"event_code"`
	PayloadJSON         string `json:"payload_json"`
}

// ToMap converts the payload to a map for storage
func (p NotificationArchiveJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"notification_event_id": p.NotificationEventID,
		"psp_reference":         p.PspReference,
		"event_code":            p.EventCode,
		"payload_json":          p.PayloadJSON,
	}
}

// NotificationArchiveJobPayloadFromMap creates a payload from a map
func NotificationArchiveJobPayloadFromMap(data map[string]interface{}) (*NotificationArchiveJobPayload, error) {
	var payload NotificationArchiveJobPayload
	if err := decodePayload(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodePayload(data map[string]interface{}, out interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, out)
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
