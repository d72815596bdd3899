package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ruang-foto/internal/config"
	"ruang-foto/internal/domain"
	"ruang-foto/internal/pkg/validate"
	"ruang-foto/internal/repository"
)

// UploadService tracks multi-file upload batches: one session per batch
// attempt, one log per file. Files are pushed through the ingestion pipeline
// in fixed-size batches with bounded parallelism and an inter-batch pause, so
// one user's bulk upload cannot saturate the storage backend.
type UploadService interface {
	CreateSession(ctx context.Context, roomID uuid.UUID, userName string, totalFiles int) (*domain.UploadSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	CreateLog(ctx context.Context, sessionID uuid.UUID, input domain.CreateUploadLogInput) (*domain.UploadLog, error)
	SessionLogs(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadLog, error)
	RunBatch(ctx context.Context, sessionID uuid.UUID, items []domain.BatchItem) (*domain.UploadResult, error)
	Finalize(ctx context.Context, sessionID uuid.UUID) (*domain.UploadSession, error)
	RetryFailedUploads(ctx context.Context, logIDs []uuid.UUID) ([]domain.UploadLog, error)
	BeginLog(ctx context.Context, logID, roomID uuid.UUID, userName string) error
	CompleteLog(ctx context.Context, logID, roomID uuid.UUID, userName string, photoID *uuid.UUID, uploadErr error)
}

type uploadService struct {
	uploadRepo repository.UploadRepository
	roomRepo   repository.RoomRepository
	photos     PhotoService
	cfg        *config.Config
}

func NewUploadService(uploadRepo repository.UploadRepository, roomRepo repository.RoomRepository, photos PhotoService, cfg *config.Config) UploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		roomRepo:   roomRepo,
		photos:     photos,
		cfg:        cfg,
	}
}

func (s *uploadService) CreateSession(ctx context.Context, roomID uuid.UUID, userName string, totalFiles int) (*domain.UploadSession, error) {
	name, err := validate.UserName(userName)
	if err != nil {
		return nil, err
	}
	if totalFiles < 1 || totalFiles > domain.MaxSessionFiles {
		return nil, fmt.Errorf("%w: total files must be between 1 and %d", domain.ErrValidation, domain.MaxSessionFiles)
	}

	active, err := s.roomRepo.ExistsActive(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, roomID)
	}

	session := &domain.UploadSession{
		ID:         uuid.New(),
		RoomID:     roomID,
		UserName:   name,
		TotalFiles: totalFiles,
		Status:     domain.SessionInProgress,
	}
	if err := s.uploadRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *uploadService) GetSession(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	return s.uploadRepo.GetSession(ctx, id)
}

func (s *uploadService) CreateLog(ctx context.Context, sessionID uuid.UUID, input domain.CreateUploadLogInput) (*domain.UploadLog, error) {
	uploader, err := validate.UserName(input.UploaderName)
	if err != nil {
		return nil, err
	}
	if input.OriginalFilename == "" {
		return nil, fmt.Errorf("%w: original filename is required", domain.ErrValidation)
	}

	session, err := s.uploadRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, fmt.Errorf("%w: session %s is already finalized", domain.ErrValidation, sessionID)
	}

	log := &domain.UploadLog{
		ID:               uuid.New(),
		SessionID:        session.ID,
		RoomID:           session.RoomID,
		OriginalFilename: input.OriginalFilename,
		FileSize:         input.FileSize,
		MimeType:         input.MimeType,
		UploaderName:     uploader,
		Status:           domain.LogPending,
	}
	if err := s.uploadRepo.CreateLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *uploadService) SessionLogs(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadLog, error) {
	if _, err := s.uploadRepo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.uploadRepo.ListLogsBySession(ctx, sessionID)
}

// RunBatch submits the given files through the ingestion pipeline in batches
// of UploadBatchSize. Within a batch every file runs on its own goroutine and
// records its own outcome; a failure never aborts sibling files or later
// batches. Batches are separated by a fixed delay to throttle the backends.
func (s *uploadService) RunBatch(ctx context.Context, sessionID uuid.UUID, items []domain.BatchItem) (*domain.UploadResult, error) {
	session, err := s.uploadRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, fmt.Errorf("%w: session %s is already finalized", domain.ErrValidation, sessionID)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no files supplied", domain.ErrValidation)
	}

	outcomes := make([]error, len(items))
	for start := 0; start < len(items); start += s.cfg.UploadBatchSize {
		end := min(start+s.cfg.UploadBatchSize, len(items))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				outcomes[i] = s.submitOne(ctx, session, items[i])
			}(i)
		}
		wg.Wait()

		if end < len(items) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.UploadBatchDelay):
			}
		}
	}

	result := &domain.UploadResult{
		SessionID:  session.ID,
		TotalFiles: len(items),
	}
	for i, outcome := range outcomes {
		if outcome == nil {
			result.SuccessfulUploads++
			continue
		}
		result.FailedUploads++
		if log, err := s.uploadRepo.GetLog(ctx, items[i].LogID); err == nil {
			result.FailedLogs = append(result.FailedLogs, *log)
		}
	}
	return result, nil
}

// submitOne resolves a single file: pending/retrying -> uploading -> terminal.
// The returned error is the recorded outcome, not a batch abort.
func (s *uploadService) submitOne(ctx context.Context, session *domain.UploadSession, item domain.BatchItem) error {
	log, err := s.uploadRepo.GetLog(ctx, item.LogID)
	if err != nil {
		return err
	}
	if log.SessionID != session.ID {
		return fmt.Errorf("%w: log %s does not belong to session %s", domain.ErrValidation, log.ID, session.ID)
	}
	if log.Status != domain.LogPending && log.Status != domain.LogRetrying {
		return fmt.Errorf("%w: log %s is %s, not awaiting upload", domain.ErrValidation, log.ID, log.Status)
	}

	// Logs keep metadata only, never bytes; a retry without a resupplied
	// payload fails here instead of silently assuming retention.
	if len(item.Data) == 0 {
		msg := "no file data supplied; retrying requires resubmitting the original file"
		_ = s.uploadRepo.MarkLogFailed(ctx, log.ID, msg)
		return errors.New(msg)
	}

	if err := s.uploadRepo.MarkLogUploading(ctx, log.ID); err != nil {
		return err
	}

	contentType := item.ContentType
	if contentType == "" {
		contentType = log.MimeType
	}
	filename := item.OriginalFilename
	if filename == "" {
		filename = log.OriginalFilename
	}

	photo, upErr := s.photos.Upload(ctx, domain.UploadPhotoInput{
		RoomID:           session.RoomID,
		UploaderName:     log.UploaderName,
		OriginalFilename: filename,
		ContentType:      contentType,
		Data:             item.Data,
	})
	if upErr != nil {
		_ = s.uploadRepo.MarkLogFailed(ctx, log.ID, upErr.Error())
		return upErr
	}

	return s.uploadRepo.MarkLogSuccess(ctx, log.ID, photo.ID)
}

// Finalize computes the aggregate outcome once every log is terminal and
// moves the session out of in_progress. Finalizing an already-terminal
// session returns it unchanged.
func (s *uploadService) Finalize(ctx context.Context, sessionID uuid.UUID) (*domain.UploadSession, error) {
	session, err := s.uploadRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return session, nil
	}

	logs, err := s.uploadRepo.ListLogsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	completed, failed := 0, 0
	for _, log := range logs {
		switch log.Status {
		case domain.LogSuccess:
			completed++
		case domain.LogFailed:
			failed++
		default:
			return nil, fmt.Errorf("%w: log %s is still %s", domain.ErrValidation, log.ID, log.Status)
		}
	}
	if completed+failed != session.TotalFiles {
		return nil, fmt.Errorf("%w: %d of %d files have resolved logs", domain.ErrValidation, completed+failed, session.TotalFiles)
	}

	status := domain.DeriveSessionStatus(completed, failed)
	if err := s.uploadRepo.FinalizeSession(ctx, sessionID, completed, failed, status, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.uploadRepo.GetSession(ctx, sessionID)
}

// RetryFailedUploads resets the named failed logs so a subsequent RunBatch
// can re-attempt them. Only logs currently in failed state transition; the
// caller must resupply payloads for the re-run.
func (s *uploadService) RetryFailedUploads(ctx context.Context, logIDs []uuid.UUID) ([]domain.UploadLog, error) {
	if len(logIDs) == 0 {
		return nil, fmt.Errorf("%w: no log IDs provided", domain.ErrValidation)
	}
	return s.uploadRepo.MarkLogsRetrying(ctx, logIDs)
}

// BeginLog and CompleteLog bracket the single-photo upload endpoint when the
// client tracks it under an existing log. Both are scoped to the calling room
// and uploader, so a guessed log ID cannot touch another session's log. Both
// are best-effort: log updates never fail an upload that already succeeded.
func (s *uploadService) BeginLog(ctx context.Context, logID, roomID uuid.UUID, userName string) error {
	if _, err := s.ownedLog(ctx, logID, roomID, userName); err != nil {
		return err
	}
	return s.uploadRepo.MarkLogUploading(ctx, logID)
}

func (s *uploadService) CompleteLog(ctx context.Context, logID, roomID uuid.UUID, userName string, photoID *uuid.UUID, uploadErr error) {
	if _, err := s.ownedLog(ctx, logID, roomID, userName); err != nil {
		return
	}
	if uploadErr != nil {
		_ = s.uploadRepo.MarkLogFailed(ctx, logID, uploadErr.Error())
		return
	}
	if photoID != nil {
		_ = s.uploadRepo.MarkLogSuccess(ctx, logID, *photoID)
	}
}

func (s *uploadService) ownedLog(ctx context.Context, logID, roomID uuid.UUID, userName string) (*domain.UploadLog, error) {
	name, err := validate.UserName(userName)
	if err != nil {
		return nil, err
	}
	log, err := s.uploadRepo.GetLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log.RoomID != roomID || log.UploaderName != name {
		return nil, fmt.Errorf("%w: log %s does not belong to this uploader in this room", domain.ErrValidation, logID)
	}
	return log, nil
}
