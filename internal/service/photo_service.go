package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ruang-foto/internal/config"
	"ruang-foto/internal/domain"
	"ruang-foto/internal/media"
	"ruang-foto/internal/pkg/validate"
	"ruang-foto/internal/repository"
)

// allowedImageTypes mirrors the formats the gallery frontend can render.
// HEIC/HEIF are accepted for storage but have no in-process decoder, so they
// take the no-metadata, no-thumbnail path.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

type PhotoService interface {
	Upload(ctx context.Context, input domain.UploadPhotoInput) (*domain.Photo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
}

type photoService struct {
	photoRepo repository.PhotoRepository
	roomRepo  repository.RoomRepository
	storage   ObjectStorage
	redis     *redis.Client
	cfg       *config.Config
}

func NewPhotoService(photoRepo repository.PhotoRepository, roomRepo repository.RoomRepository, storage ObjectStorage, redis *redis.Client, cfg *config.Config) PhotoService {
	return &photoService{
		photoRepo: photoRepo,
		roomRepo:  roomRepo,
		storage:   storage,
		redis:     redis,
		cfg:       cfg,
	}
}

// Upload runs the ingestion pipeline for one file: validate, fingerprint,
// assign a storage identity, extract capture time, derive a thumbnail, then
// write objects and the photo row as one failure-atomic unit. Metadata and
// thumbnail steps degrade gracefully; every other failure is terminal for
// this file only.
func (s *photoService) Upload(ctx context.Context, input domain.UploadPhotoInput) (*domain.Photo, error) {
	uploader, err := validate.UserName(input.UploaderName)
	if err != nil {
		return nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: content type %q is not an allowed image type", domain.ErrValidation, input.ContentType)
	}
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrValidation)
	}
	if int64(len(input.Data)) > s.cfg.MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds maximum size of %d bytes", domain.ErrValidation, s.cfg.MaxUploadSize)
	}

	active, err := s.roomRepo.ExistsActive(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, input.RoomID)
	}

	sum := sha256.Sum256(input.Data)
	contentHash := hex.EncodeToString(sum[:])

	// Fast idempotent pre-check; the unique constraint on (room, hash) still
	// decides the true race at insert time.
	if exists, err := s.photoRepo.ExistsByHash(ctx, input.RoomID, contentHash); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: an identical photo already exists in this room", domain.ErrDuplicateContent)
	}

	// Storage identity is derived from a fresh UUID, never from the
	// user-supplied filename.
	photoID := uuid.New()
	filename := photoID.String() + ext
	storagePath := fmt.Sprintf("rooms/%s/%s", input.RoomID, filename)

	takenAt := media.ExtractTakenAt(input.Data)

	var thumbnailPath *string
	thumb, thumbErr := media.GenerateThumbnail(input.Data, s.cfg.ThumbnailMaxPx)
	if thumbErr != nil {
		log.Printf("thumbnail generation skipped for %s: %v", input.OriginalFilename, thumbErr)
	}

	if err := s.storage.Put(ctx, storagePath, input.Data, contentType); err != nil {
		return nil, fmt.Errorf("%w: writing original: %v", domain.ErrStorage, err)
	}

	if thumbErr == nil {
		tp := fmt.Sprintf("rooms/%s/thumbs/%s.jpg", input.RoomID, photoID)
		if err := s.storage.Put(ctx, tp, thumb, "image/jpeg"); err != nil {
			// Serve the original instead; the upload itself survives.
			log.Printf("thumbnail write skipped for %s: %v", input.OriginalFilename, err)
		} else {
			thumbnailPath = &tp
		}
	}

	photo := &domain.Photo{
		ID:               photoID,
		RoomID:           input.RoomID,
		Filename:         filename,
		OriginalFilename: input.OriginalFilename,
		UploaderName:     uploader,
		StoragePath:      storagePath,
		ThumbnailPath:    thumbnailPath,
		FileSize:         int64(len(input.Data)),
		MimeType:         contentType,
		ContentHash:      contentHash,
		TakenAt:          takenAt,
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// No orphaned objects: the row did not land, so the files must go.
		_ = s.storage.Remove(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Remove(ctx, *thumbnailPath)
		}
		return nil, err
	}

	invalidateRoomCache(ctx, s.redis, input.RoomID)

	s.hydrateURLs(photo)
	return photo, nil
}

func (s *photoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hydrateURLs(photo)
	return photo, nil
}

func (s *photoService) hydrateURLs(photo *domain.Photo) {
	photo.URL = s.storage.PublicURL(photo.StoragePath)
	if photo.ThumbnailPath != nil {
		u := s.storage.PublicURL(*photo.ThumbnailPath)
		photo.ThumbnailURL = &u
	}
}
