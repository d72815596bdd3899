package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ruang-foto/internal/domain"
	"ruang-foto/internal/service"
)

func TestReactionService_Toggle(t *testing.T) {
	ctx := context.Background()
	photoID := uuid.New()
	photo := &domain.Photo{ID: photoID, RoomID: uuid.New(), StoragePath: "rooms/x/y.jpg"}

	t.Run("LikeOnThenOff", func(t *testing.T) {
		reactionRepo := new(mockReactionRepository)
		photoRepo := new(mockPhotoRepository)
		svc := service.NewReactionService(reactionRepo, photoRepo, nil)

		photoRepo.On("GetByID", ctx, photoID).Return(photo, nil).Twice()
		reactionRepo.On("Toggle", ctx, photoID, "siti", domain.ReactionLike).
			Return(&domain.ToggleResult{Active: true, Count: 1}, nil).Once()
		reactionRepo.On("Toggle", ctx, photoID, "siti", domain.ReactionLike).
			Return(&domain.ToggleResult{Active: false, Count: 0}, nil).Once()

		first, err := svc.Toggle(ctx, domain.ReactionLike, photoID, "siti")
		assert.NoError(t, err)
		assert.True(t, first.Active)
		assert.Equal(t, 1, first.Count)

		second, err := svc.Toggle(ctx, domain.ReactionLike, photoID, "siti")
		assert.NoError(t, err)
		assert.False(t, second.Active)
		assert.Equal(t, 0, second.Count)

		reactionRepo.AssertExpectations(t)
	})

	t.Run("TrimsUserName", func(t *testing.T) {
		reactionRepo := new(mockReactionRepository)
		photoRepo := new(mockPhotoRepository)
		svc := service.NewReactionService(reactionRepo, photoRepo, nil)

		photoRepo.On("GetByID", ctx, photoID).Return(photo, nil).Once()
		reactionRepo.On("Toggle", ctx, photoID, "siti", domain.ReactionDislike).
			Return(&domain.ToggleResult{Active: true, Count: 1}, nil).Once()

		_, err := svc.Toggle(ctx, domain.ReactionDislike, photoID, "  siti  ")
		assert.NoError(t, err)
		reactionRepo.AssertExpectations(t)
	})

	t.Run("InvalidUserName", func(t *testing.T) {
		reactionRepo := new(mockReactionRepository)
		svc := service.NewReactionService(reactionRepo, new(mockPhotoRepository), nil)

		_, err := svc.Toggle(ctx, domain.ReactionLike, photoID, "")
		assert.True(t, errors.Is(err, domain.ErrValidation))
		reactionRepo.AssertNotCalled(t, "Toggle")
	})

	t.Run("PhotoNotFound", func(t *testing.T) {
		reactionRepo := new(mockReactionRepository)
		photoRepo := new(mockPhotoRepository)
		svc := service.NewReactionService(reactionRepo, photoRepo, nil)

		photoRepo.On("GetByID", ctx, photoID).
			Return(nil, fmt.Errorf("%w: photo %s", domain.ErrNotFound, photoID)).Once()

		_, err := svc.Toggle(ctx, domain.ReactionLike, photoID, "siti")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		reactionRepo.AssertNotCalled(t, "Toggle")
	})
}

func TestReactionService_Status(t *testing.T) {
	ctx := context.Background()
	photoID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		reactionRepo := new(mockReactionRepository)
		photoRepo := new(mockPhotoRepository)
		svc := service.NewReactionService(reactionRepo, photoRepo, nil)

		photoRepo.On("GetByID", ctx, photoID).Return(&domain.Photo{ID: photoID}, nil).Once()
		reactionRepo.On("Status", ctx, photoID, "budi").
			Return(&domain.ReactionStatus{Liked: true, Disliked: false}, nil).Once()

		status, err := svc.Status(ctx, photoID, "budi")
		assert.NoError(t, err)
		assert.True(t, status.Liked)
		assert.False(t, status.Disliked)
	})

	t.Run("PhotoNotFound", func(t *testing.T) {
		photoRepo := new(mockPhotoRepository)
		svc := service.NewReactionService(new(mockReactionRepository), photoRepo, nil)

		photoRepo.On("GetByID", ctx, photoID).
			Return(nil, fmt.Errorf("%w: photo %s", domain.ErrNotFound, photoID)).Once()

		_, err := svc.Status(ctx, photoID, "budi")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestReactionService_Counts(t *testing.T) {
	ctx := context.Background()
	photoID := uuid.New()

	reactionRepo := new(mockReactionRepository)
	svc := service.NewReactionService(reactionRepo, new(mockPhotoRepository), nil)

	reactionRepo.On("Counts", ctx, photoID).
		Return(&domain.ReactionCounts{LikeCount: 3, DislikeCount: 1}, nil).Once()

	counts, err := svc.Counts(ctx, photoID)
	assert.NoError(t, err)
	assert.Equal(t, 3, counts.LikeCount)
	assert.Equal(t, 1, counts.DislikeCount)
}
