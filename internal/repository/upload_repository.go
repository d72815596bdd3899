package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"ruang-foto/internal/domain"
)

type UploadRepository interface {
	CreateSession(ctx context.Context, session *domain.UploadSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	FinalizeSession(ctx context.Context, id uuid.UUID, completed, failed int, status domain.SessionStatus, completedAt time.Time) error
	CreateLog(ctx context.Context, log *domain.UploadLog) error
	GetLog(ctx context.Context, id uuid.UUID) (*domain.UploadLog, error)
	ListLogsBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadLog, error)
	MarkLogUploading(ctx context.Context, id uuid.UUID) error
	MarkLogSuccess(ctx context.Context, id, photoID uuid.UUID) error
	MarkLogFailed(ctx context.Context, id uuid.UUID, message string) error
	MarkLogsRetrying(ctx context.Context, ids []uuid.UUID) ([]domain.UploadLog, error)
}

type uploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) CreateSession(ctx context.Context, session *domain.UploadSession) error {
	query := `
		INSERT INTO upload_sessions (session_id, room_id, user_name, total_files, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING started_at`

	return r.db.QueryRowxContext(ctx, query,
		session.ID, session.RoomID, session.UserName, session.TotalFiles, session.Status,
	).Scan(&session.StartedAt)
}

func (r *uploadRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	var session domain.UploadSession
	query := `SELECT * FROM upload_sessions WHERE session_id = $1`
	err := r.db.GetContext(ctx, &session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: upload session %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FinalizeSession is the single one-way transition out of in_progress; a
// session that already left it is never rewritten.
func (r *uploadRepository) FinalizeSession(ctx context.Context, id uuid.UUID, completed, failed int, status domain.SessionStatus, completedAt time.Time) error {
	query := `
		UPDATE upload_sessions
		SET completed_files = $1, failed_files = $2, status = $3, completed_at = $4
		WHERE session_id = $5 AND status = 'in_progress'`
	res, err := r.db.ExecContext(ctx, query, completed, failed, status, completedAt, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: session %s is already finalized", domain.ErrValidation, id)
	}
	return nil
}

func (r *uploadRepository) CreateLog(ctx context.Context, log *domain.UploadLog) error {
	query := `
		INSERT INTO upload_logs (log_id, session_id, room_id, original_filename,
			file_size, mime_type, uploader_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING started_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.SessionID, log.RoomID, log.OriginalFilename,
		log.FileSize, log.MimeType, log.UploaderName, log.Status,
	).Scan(&log.StartedAt)
}

func (r *uploadRepository) GetLog(ctx context.Context, id uuid.UUID) (*domain.UploadLog, error) {
	var log domain.UploadLog
	query := `SELECT * FROM upload_logs WHERE log_id = $1`
	err := r.db.GetContext(ctx, &log, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: upload log %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *uploadRepository) ListLogsBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadLog, error) {
	var logs []domain.UploadLog
	query := `SELECT * FROM upload_logs WHERE session_id = $1 ORDER BY started_at ASC, log_id ASC`
	err := r.db.SelectContext(ctx, &logs, query, sessionID)
	return logs, err
}

func (r *uploadRepository) MarkLogUploading(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE upload_logs SET status = 'uploading', started_at = NOW() WHERE log_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *uploadRepository) MarkLogSuccess(ctx context.Context, id, photoID uuid.UUID) error {
	query := `
		UPDATE upload_logs
		SET status = 'success', photo_id = $1, error_message = NULL, completed_at = NOW()
		WHERE log_id = $2`
	_, err := r.db.ExecContext(ctx, query, photoID, id)
	return err
}

func (r *uploadRepository) MarkLogFailed(ctx context.Context, id uuid.UUID, message string) error {
	query := `
		UPDATE upload_logs
		SET status = 'failed', error_message = $1, completed_at = NOW()
		WHERE log_id = $2`
	_, err := r.db.ExecContext(ctx, query, message, id)
	return err
}

// MarkLogsRetrying resets failed logs for re-submission: prior error state is
// cleared and the retry counter advances. Logs not in failed state are left
// untouched; the returned set reflects every requested id's current state.
func (r *uploadRepository) MarkLogsRetrying(ctx context.Context, ids []uuid.UUID) ([]domain.UploadLog, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	updateQuery := `
		UPDATE upload_logs
		SET status = 'retrying', error_message = NULL, photo_id = NULL,
			completed_at = NULL, retry_count = retry_count + 1
		WHERE log_id = ANY($1) AND status = 'failed'`
	if _, err := r.db.ExecContext(ctx, updateQuery, pq.Array(ids)); err != nil {
		return nil, err
	}

	var logs []domain.UploadLog
	selectQuery := `SELECT * FROM upload_logs WHERE log_id = ANY($1) ORDER BY started_at ASC, log_id ASC`
	err := r.db.SelectContext(ctx, &logs, selectQuery, pq.Array(ids))
	return logs, err
}
