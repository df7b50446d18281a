package jobqueue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

)

func TestJobType(t *testing.T) {
	tests := []struct {
		name     string
		jobType  JobType
		expected string
	}{
		{"Recurring Contract", JobTypeRecurringContract, "recurring_contract"},
		{"Notification Archive", JobTypeNotificationArchive, "notification_archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.jobType))
		})
	}
}

func TestJobStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{"Pending", JobStatusPending, "pending"},
		{"Processing", JobStatusProcessing, "processing"},
		{"Completed", JobStatusCompleted, "completed"},
		{"Failed", JobStatusFailed, "failed"},
		{"Retrying", JobStatusRetrying, "retrying"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.status))
		})
	}
}

func TestJob_IsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		job       *Job
		retryable bool
	}{
		{
			name: "Failed job with retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: true,
		},
		{
			name: "Failed job with no retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 3,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Completed job",
			job: &Job{
				Status:     JobStatusCompleted,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Pending job",
			job: &Job{
				Status:     JobStatusPending,
				RetryCount: 0,
				MaxRetries: 3,
			},
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.job.IsRetryable())
		})
	}
}

func TestJob_MarkAsProcessing(t *testing.T) {
	job := &Job{
		Status: JobStatusPending,
	}

	beforeTime := time.Now()
	job.MarkAsProcessing()
	afterTime := time.Now()

	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.True(t, job.UpdatedAt.After(beforeTime) || job.UpdatedAt.Equal(beforeTime))
	assert.True(t, job.UpdatedAt.Before(afterTime) || job.UpdatedAt.Equal(afterTime))
	assert.NotNil(t, job.ProcessedAt)
	assert.True(t, job.ProcessedAt.After(beforeTime) || job.ProcessedAt.Equal(beforeTime))
	assert.True(t, job.ProcessedAt.Before(afterTime) || job.ProcessedAt.Equal(afterTime))
}

func TestJob_MarkAsCompleted(t *testing.T) {
	job := &Job{
		Status:   JobStatusProcessing,
		ErrorMsg: "some error",
	}

	beforeTime := time.Now()
	job.MarkAsCompleted()
	afterTime := time.Now()

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.True(t, job.UpdatedAt.After(beforeTime) || job.UpdatedAt.Equal(beforeTime))
	assert.True(t, job.UpdatedAt.Before(afterTime) || job.UpdatedAt.Equal(afterTime))
	assert.NotNil(t, job.CompletedAt)
	assert.True(t, job.CompletedAt.After(beforeTime) || job.CompletedAt.Equal(beforeTime))
	assert.True(t, job.CompletedAt.Before(afterTime) || job.CompletedAt.Equal(afterTime))
	assert.Empty(t, job.ErrorMsg)
}

func TestJob_MarkAsFailed(t *testing.T) {
	job := &Job{
		Status:     JobStatusProcessing,
		RetryCount: 1,
	}

	errorMsg := "processing failed"
	beforeTime := time.Now()
	job.MarkAsFailed(errorMsg)
	afterTime := time.Now()

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.True(t, job.UpdatedAt.After(beforeTime) || job.UpdatedAt.Equal(beforeTime))
	assert.True(t, job.UpdatedAt.Before(afterTime) || job.UpdatedAt.Equal(afterTime))
	assert.Equal(t, errorMsg, job.ErrorMsg)
	assert.Equal(t, 2, job.RetryCount)
}

func TestJob_MarkAsRetrying(t *testing.T) {
	job := &Job{
		Status: JobStatusFailed,
	}

	beforeTime := time.Now()
	job.MarkAsRetrying()
	afterTime := time.Now()

	assert.Equal(t, JobStatusRetrying, job.Status)
	assert.True(t, job.UpdatedAt.After(beforeTime) || job.UpdatedAt.Equal(beforeTime))
	assert.True(t, job.UpdatedAt.Before(afterTime) || job.UpdatedAt.Equal(afterTime))
}

func TestRecurringContractJobPayload_RoundTrip(t *testing.T) {
	payload := RecurringContractJobPayload{
		CustomerID:          42,
		StoreID:             1,
		NotificationEventID: 9,
		Detail: map[string]interface{}{
			"recurringDetailReference": "8315",
			"variant":                  "visa",
		},
	}

	data := payload.ToMap()
	assert.Equal(t, uint(42), data["customer_id"])

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &stored))

	result, err := RecurringContractJobPayloadFromMap(stored)
	require.NoError(t, err)
	assert.Equal(t, &payload, result)
}

func TestNotificationArchiveJobPayloadFromMap(t *testing.T) {
	data := map[string]interface{}{
		"notification_event_id": float64(3),
		"psp_reference":         "PSP-1",
		"event_code":            "AUTHORISATION",
		"payload_json":          "{}",
	}

	payload, err := NotificationArchiveJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, &NotificationArchiveJobPayload{
		NotificationEventID: 3,
		PspReference:        "PSP-1",
		EventCode:           "AUTHORISATION",
		PayloadJSON:         "{}",
	}, payload)
}

func TestPayloadFromMap_InvalidData(t *testing.T) {
	data := map[string]interface{}{
		"customer_id": make(chan int), // channels can't be marshaled to JSON
	}

	payload, err := RecurringContractJobPayloadFromMap(data)
	assert.Error(t, err)
	assert.Nil(t, payload)

	archive, err := NotificationArchiveJobPayloadFromMap(map[string]interface{}{"psp_reference": 12})
	assert.Error(t, err)
	assert.Nil(t, archive)
}
