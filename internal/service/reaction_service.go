package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ruang-foto/internal/domain"
	"ruang-foto/internal/pkg/validate"
	"ruang-foto/internal/repository"
)

type ReactionService interface {
	Toggle(ctx context.Context, kind domain.ReactionKind, photoID uuid.UUID, userName string) (*domain.ToggleResult, error)
	Status(ctx context.Context, photoID uuid.UUID, userName string) (*domain.ReactionStatus, error)
	Counts(ctx context.Context, photoID uuid.UUID) (*domain.ReactionCounts, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	photoRepo    repository.PhotoRepository
	redis        *redis.Client
}

func NewReactionService(reactionRepo repository.ReactionRepository, photoRepo repository.PhotoRepository, redis *redis.Client) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		photoRepo:    photoRepo,
		redis:        redis,
	}
}

// Toggle flips the caller's mark of the given kind. Callers cannot force a
// state: a present mark is removed, an absent one is created, and the
// returned count is read inside the same transaction as the row change.
func (s *reactionService) Toggle(ctx context.Context, kind domain.ReactionKind, photoID uuid.UUID, userName string) (*domain.ToggleResult, error) {
	name, err := validate.UserName(userName)
	if err != nil {
		return nil, err
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	result, err := s.reactionRepo.Toggle(ctx, photoID, name, kind)
	if err != nil {
		return nil, err
	}

	// A dislike toggle can flip the photo's visibility; drop the room's
	// cached reads either way.
	invalidateRoomCache(ctx, s.redis, photo.RoomID)

	return result, nil
}

func (s *reactionService) Status(ctx context.Context, photoID uuid.UUID, userName string) (*domain.ReactionStatus, error) {
	name, err := validate.UserName(userName)
	if err != nil {
		return nil, err
	}

	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return nil, err
	}
	return s.reactionRepo.Status(ctx, photoID, name)
}

func (s *reactionService) Counts(ctx context.Context, photoID uuid.UUID) (*domain.ReactionCounts, error) {
	return s.reactionRepo.Counts(ctx, photoID)
}
