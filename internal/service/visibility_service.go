package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ruang-foto/internal/config"
	"ruang-foto/internal/domain"
	"ruang-foto/internal/pkg/validate"
	"ruang-foto/internal/repository"
)

// VisibilityService derives the viewable photo set and room statistics from
// photo and reaction state. It owns no storage of its own: visibility is
// purely "no dislikes yet", so a hidden photo reappears the moment its last
// dislike is withdrawn.
type VisibilityService interface {
	ListPhotos(ctx context.Context, roomID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Photo], error)
	VisiblePhotos(ctx context.Context, roomID uuid.UUID, userName string) ([]domain.PhotoWithStatus, error)
	RoomStatistics(ctx context.Context, roomID uuid.UUID) (*domain.RoomStats, error)
}

type visibilityService struct {
	photoRepo repository.PhotoRepository
	roomRepo  repository.RoomRepository
	storage   ObjectStorage
	redis     *redis.Client
	cfg       *config.Config
}

func NewVisibilityService(photoRepo repository.PhotoRepository, roomRepo repository.RoomRepository, storage ObjectStorage, redis *redis.Client, cfg *config.Config) VisibilityService {
	return &visibilityService{
		photoRepo: photoRepo,
		roomRepo:  roomRepo,
		storage:   storage,
		redis:     redis,
		cfg:       cfg,
	}
}

func (s *visibilityService) ListPhotos(ctx context.Context, roomID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Photo], error) {
	params.Validate()
	cacheKey := photoCacheKey(roomID, fmt.Sprintf("all:page:%d:size:%d", params.Page, params.PageSize))

	// Room state is checked before the cache so a deactivated room goes dark
	// immediately instead of serving cached reads until the TTL expires.
	if err := s.requireRoom(ctx, roomID); err != nil {
		return domain.PaginatedResponse[domain.Photo]{}, err
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Photo]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	photos, total, err := s.photoRepo.ListByRoom(ctx, roomID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Photo]{}, err
	}

	for i := range photos {
		s.hydrateURLs(&photos[i])
	}

	result := domain.NewPaginatedResponse(photos, params.Page, params.PageSize, total)

	if s.redis != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, s.cfg.CacheTTL).Err()
		}
	}

	return result, nil
}

func (s *visibilityService) VisiblePhotos(ctx context.Context, roomID uuid.UUID, userName string) ([]domain.PhotoWithStatus, error) {
	name, err := validate.UserName(userName)
	if err != nil {
		return nil, err
	}

	cacheKey := photoCacheKey(roomID, "visible:"+name)

	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var photos []domain.PhotoWithStatus
			if json.Unmarshal([]byte(cached), &photos) == nil {
				return photos, nil
			}
		}
	}

	photos, err := s.photoRepo.ListVisibleByRoom(ctx, roomID, name)
	if err != nil {
		return nil, err
	}

	for i := range photos {
		s.hydrateURLs(&photos[i].Photo)
	}

	if s.redis != nil {
		if data, err := json.Marshal(photos); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, s.cfg.CacheTTL).Err()
		}
	}

	return photos, nil
}

func (s *visibilityService) RoomStatistics(ctx context.Context, roomID uuid.UUID) (*domain.RoomStats, error) {
	cacheKey := statsCacheKey(roomID)

	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats domain.RoomStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.photoRepo.Stats(ctx, roomID)
	if err != nil {
		return nil, err
	}

	// Participant count belongs to the room collaborator, not this core.
	participants, err := s.roomRepo.ParticipantCount(ctx, roomID)
	if err != nil {
		return nil, err
	}
	stats.ParticipantCount = participants

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, s.cfg.CacheTTL).Err()
		}
	}

	return stats, nil
}

func (s *visibilityService) requireRoom(ctx context.Context, roomID uuid.UUID) error {
	active, err := s.roomRepo.ExistsActive(ctx, roomID)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w: room %s", domain.ErrNotFound, roomID)
	}
	return nil
}

func (s *visibilityService) hydrateURLs(photo *domain.Photo) {
	photo.URL = s.storage.PublicURL(photo.StoragePath)
	if photo.ThumbnailPath != nil {
		u := s.storage.PublicURL(*photo.ThumbnailPath)
		photo.ThumbnailURL = &u
	}
}
