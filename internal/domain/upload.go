package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxSessionFiles caps both a session's total_files and the number of files a
// single batch request may carry.
const MaxSessionFiles = 100

type SessionStatus string

const (
	SessionInProgress      SessionStatus = "in_progress"
	SessionCompleted       SessionStatus = "completed"
	SessionPartiallyFailed SessionStatus = "partially_failed"
	SessionFailed          SessionStatus = "failed"
)

func (s SessionStatus) Terminal() bool {
	return s != SessionInProgress
}

type LogStatus string

const (
	LogPending   LogStatus = "pending"
	LogUploading LogStatus = "uploading"
	LogSuccess   LogStatus = "success"
	LogFailed    LogStatus = "failed"
	LogRetrying  LogStatus = "retrying"
)

func (s LogStatus) Terminal() bool {
	return s == LogSuccess || s == LogFailed
}

// UploadSession is the aggregate record of one batch-upload attempt by one
// user. It leaves in_progress exactly once, after which it is immutable.
type UploadSession struct {
	ID             uuid.UUID     `json:"id" db:"session_id"`
	RoomID         uuid.UUID     `json:"room_id" db:"room_id"`
	UserName       string        `json:"user_name" db:"user_name"`
	TotalFiles     int           `json:"total_files" db:"total_files"`
	CompletedFiles int           `json:"completed_files" db:"completed_files"`
	FailedFiles    int           `json:"failed_files" db:"failed_files"`
	Status         SessionStatus `json:"status" db:"status"`
	StartedAt      time.Time     `json:"started_at" db:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
}

// UploadLog is the per-file record within a session. A retried file reuses its
// log row, cycling retrying -> uploading -> terminal, rather than creating a
// new entry.
type UploadLog struct {
	ID               uuid.UUID  `json:"id" db:"log_id"`
	SessionID        uuid.UUID  `json:"session_id" db:"session_id"`
	RoomID           uuid.UUID  `json:"room_id" db:"room_id"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	FileSize         int64      `json:"file_size" db:"file_size"`
	MimeType         string     `json:"mime_type" db:"mime_type"`
	UploaderName     string     `json:"uploader_name" db:"uploader_name"`
	Status           LogStatus  `json:"status" db:"status"`
	PhotoID          *uuid.UUID `json:"photo_id,omitempty" db:"photo_id"`
	ErrorMessage     *string    `json:"error_message,omitempty" db:"error_message"`
	RetryCount       int        `json:"retry_count" db:"retry_count"`
	StartedAt        time.Time  `json:"started_at" db:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

type CreateSessionInput struct {
	RoomID     string `json:"room_id"`
	UserName   string `json:"user_name"`
	TotalFiles int    `json:"total_files"`
}

type CreateUploadLogInput struct {
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	UploaderName     string `json:"uploader_name"`
}

// BatchItem pairs a pending or retrying log with the payload to submit. Logs
// never retain file bytes, so retries must resupply them.
type BatchItem struct {
	LogID            uuid.UUID
	OriginalFilename string
	ContentType      string
	Data             []byte
}

// UploadResult is the aggregate summary returned by a batch run. FailedLogs
// carries enough per-file detail to drive the retry-failed-only workflow.
type UploadResult struct {
	SessionID         uuid.UUID   `json:"session_id"`
	TotalFiles        int         `json:"total_files"`
	SuccessfulUploads int         `json:"successful_uploads"`
	FailedUploads     int         `json:"failed_uploads"`
	FailedLogs        []UploadLog `json:"failed_files"`
}

// DeriveSessionStatus computes the terminal status from the resolved log
// counts: completed iff nothing failed, failed iff nothing succeeded.
func DeriveSessionStatus(completed, failed int) SessionStatus {
	switch {
	case failed == 0:
		return SessionCompleted
	case completed == 0:
		return SessionFailed
	default:
		return SessionPartiallyFailed
	}
}
