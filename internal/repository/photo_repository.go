package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"ruang-foto/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	ExistsByHash(ctx context.Context, roomID uuid.UUID, contentHash string) (bool, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, params domain.PaginationParams) ([]domain.Photo, int64, error)
	ListVisibleByRoom(ctx context.Context, roomID uuid.UUID, userName string) ([]domain.PhotoWithStatus, error)
	Stats(ctx context.Context, roomID uuid.UUID) (*domain.RoomStats, error)
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create inserts the photo row with counters at zero. A concurrent upload of
// identical bytes to the same room loses the race on uq_photos_room_hash and
// surfaces as ErrDuplicateContent.
func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (photo_id, room_id, filename, original_filename, uploader_name,
			storage_path, thumbnail_path, file_size, mime_type, content_hash, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING uploaded_at`

	err := r.db.QueryRowxContext(ctx, query,
		photo.ID, photo.RoomID, photo.Filename, photo.OriginalFilename, photo.UploaderName,
		photo.StoragePath, photo.ThumbnailPath, photo.FileSize, photo.MimeType,
		photo.ContentHash, photo.TakenAt,
	).Scan(&photo.UploadedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "uq_photos_room_hash" {
		return fmt.Errorf("%w: an identical photo already exists in this room", domain.ErrDuplicateContent)
	}
	return err
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT * FROM photos WHERE photo_id = $1`
	err := r.db.GetContext(ctx, &photo, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: photo %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ExistsByHash(ctx context.Context, roomID uuid.UUID, contentHash string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM photos WHERE room_id = $1 AND content_hash = $2)`
	err := r.db.GetContext(ctx, &exists, query, roomID, contentHash)
	return exists, err
}

func (r *photoRepository) ListByRoom(ctx context.Context, roomID uuid.UUID, params domain.PaginationParams) ([]domain.Photo, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM photos WHERE room_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, roomID); err != nil {
		return nil, 0, err
	}

	var photos []domain.Photo
	query := `
		SELECT * FROM photos
		WHERE room_id = $1
		ORDER BY COALESCE(taken_at, uploaded_at) ASC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &photos, query, roomID, params.PageSize, params.Offset())
	return photos, total, err
}

// ListVisibleByRoom returns the gallery view: photos without any dislike,
// annotated with the caller's own reaction flags. Capture time drives the
// ordering, falling back to upload time for photos without metadata.
func (r *photoRepository) ListVisibleByRoom(ctx context.Context, roomID uuid.UUID, userName string) ([]domain.PhotoWithStatus, error) {
	var photos []domain.PhotoWithStatus
	query := `
		SELECT p.*,
			EXISTS (SELECT 1 FROM reactions r
				WHERE r.photo_id = p.photo_id AND r.user_name = $2 AND r.kind = 'like') AS user_liked,
			EXISTS (SELECT 1 FROM reactions r
				WHERE r.photo_id = p.photo_id AND r.user_name = $2 AND r.kind = 'dislike') AS user_disliked
		FROM photos p
		WHERE p.room_id = $1 AND p.dislike_count = 0
		ORDER BY COALESCE(p.taken_at, p.uploaded_at) ASC`
	err := r.db.SelectContext(ctx, &photos, query, roomID, userName)
	return photos, err
}

func (r *photoRepository) Stats(ctx context.Context, roomID uuid.UUID) (*domain.RoomStats, error) {
	var stats domain.RoomStats
	query := `
		SELECT COUNT(*) AS total_photos,
			COUNT(*) FILTER (WHERE dislike_count = 0) AS visible_photos,
			COALESCE(SUM(like_count), 0) AS total_likes,
			COALESCE(SUM(dislike_count), 0) AS total_dislikes
		FROM photos
		WHERE room_id = $1`
	if err := r.db.GetContext(ctx, &stats, query, roomID); err != nil {
		return nil, err
	}
	stats.HiddenPhotos = stats.TotalPhotos - stats.VisiblePhotos
	return &stats, nil
}
