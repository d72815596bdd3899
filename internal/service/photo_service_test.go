package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ruang-foto/internal/config"
	"ruang-foto/internal/domain"
	"ruang-foto/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxUploadSize:    10 * 1024 * 1024,
		UploadBatchSize:  5,
		UploadBatchDelay: time.Millisecond,
		ThumbnailMaxPx:   800,
		CacheTTL:         time.Minute,
	}
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	assert.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, 64, 64)), nil))
	return buf.Bytes()
}

func isThumbKey(key string) bool {
	return strings.Contains(key, "/thumbs/")
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()

	input := func(data []byte) domain.UploadPhotoInput {
		return domain.UploadPhotoInput{
			RoomID:           roomID,
			UploaderName:     "budi",
			OriginalFilename: "holiday.jpg",
			ContentType:      "image/jpeg",
			Data:             data,
		}
	}

	t.Run("Success", func(t *testing.T) {
		photoRepo := new(mockPhotoRepository)
		roomRepo := new(mockRoomRepository)
		storage := new(mockObjectStorage)
		svc := service.NewPhotoService(photoRepo, roomRepo, storage, nil, testConfig())

		roomRepo.On("ExistsActive", ctx, roomID).Return(true, nil).Once()
		photoRepo.On("ExistsByHash", ctx, roomID, mock.AnythingOfType("string")).Return(false, nil).Once()
		storage.On("Put", ctx, mock.MatchedBy(func(k string) bool { return !isThumbKey(k) }), mock.Anything, "image/jpeg").Return(nil).Once()
		storage.On("Put", ctx, mock.MatchedBy(isThumbKey), mock.Anything, "image/jpeg").Return(nil).Once()
		photoRepo.On("Create", ctx, mock.AnythingOfType("*domain.Photo")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Photo).UploadedAt = time.Now()
		}).Return(nil).Once()
		storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://cdn.example/x")

		photo, err := svc.Upload(ctx, input(jpegBytes(t)))

		assert.NoError(t, err)
		assert.Equal(t, roomID, photo.RoomID)
		assert.Equal(t, "holiday.jpg", photo.OriginalFilename)
		assert.Equal(t, photo.ID.String()+".jpg", photo.Filename)
		assert.Len(t, photo.ContentHash, 64)
		assert.NotNil(t, photo.ThumbnailPath)
		assert.Equal(t, 0, photo.LikeCount)
		assert.Equal(t, 0, photo.DislikeCount)
		assert.NotContains(t, photo.StoragePath, "holiday")
		photoRepo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("RejectsContentType", func(t *testing.T) {
		svc := service.NewPhotoService(new(mockPhotoRepository), new(mockRoomRepository), new(mockObjectStorage), nil, testConfig())

		in := input(jpegBytes(t))
		in.ContentType = "application/pdf"
		_, err := svc.Upload(ctx, in)

		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("RejectsOversized", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxUploadSize = 16
		svc := service.NewPhotoService(new(mockPhotoRepository), new(mockRoomRepository), new(mockObjectStorage), nil, cfg)

		_, err := svc.Upload(ctx, input(jpegBytes(t)))

		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("RejectsEmptyFile", func(t *testing.T) {
		svc := service.NewPhotoService(new(mockPhotoRepository), new(mockRoomRepository), new(mockObjectStorage), nil, testConfig())

		_, err := svc.Upload(ctx, input(nil))

		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("RejectsBadUploaderName", func(t *testing.T) {
		svc := service.NewPhotoService(new(mockPhotoRepository), new(mockRoomRepository), new(mockObjectStorage), nil, testConfig())

		in := input(jpegBytes(t))
		in.UploaderName = "x"
		_, err := svc.Upload(ctx, in)

		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		roomRepo := new(mockRoomRepository)
		svc := service.NewPhotoService(new(mockPhotoRepository), roomRepo, new(mockObjectStorage), nil, testConfig())

		roomRepo.On("ExistsActive", ctx, roomID).Return(false, nil).Once()

		_, err := svc.Upload(ctx, input(jpegBytes(t)))

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("DuplicatePreCheck", func(t *testing.T) {
		photoRepo := new(mockPhotoRepository)
		roomRepo := new(mockRoomRepository)
		storage := new(mockObjectStorage)
		svc := service.NewPhotoService(photoRepo, roomRepo, storage, nil, testConfig())

		roomRepo.On("ExistsActive", ctx, roomID).Return(true, nil).Once()
		photoRepo.On("ExistsByHash", ctx, roomID, mock.AnythingOfType("string")).Return(true, nil).Once()

		_, err := svc.Upload(ctx, input(jpegBytes(t)))

		assert.True(t, errors.Is(err, domain.ErrDuplicateContent))
		storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateRaceLoserCleansUp", func(t *testing.T) {
		photoRepo := new(mockPhotoRepository)
		roomRepo := new(mockRoomRepository)
		storage := new(mockObjectStorage)
		svc := service.NewPhotoService(photoRepo, roomRepo, storage, nil, testConfig())

		roomRepo.On("ExistsActive", ctx, roomID).Return(true, nil).Once()
		photoRepo.On("ExistsByHash", ctx, roomID, mock.AnythingOfType("string")).Return(false, nil).Once()
		storage.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
		photoRepo.On("Create", ctx, mock.AnythingOfType("*domain.Photo")).
			Return(fmt.Errorf("%w: an identical photo already exists in this room", domain.ErrDuplicateContent)).Once()
		storage.On("Remove", ctx, mock.AnythingOfType("string")).Return(nil).Twice()

		_, err := svc.Upload(ctx, input(jpegBytes(t)))

		assert.True(t, errors.Is(err, domain.ErrDuplicateContent))
		storage.AssertExpectations(t)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		photoRepo := new(mockPhotoRepository)
		roomRepo := new(mockRoomRepository)
		storage := new(mockObjectStorage)
		svc := service.NewPhotoService(photoRepo, roomRepo, storage, nil, testConfig())

		roomRepo.On("ExistsActive", ctx, roomID).Return(true, nil).Once()
		photoRepo.On("ExistsByHash", ctx, roomID, mock.AnythingOfType("string")).Return(false, nil).Once()
		storage.On("Put", ctx, mock.MatchedBy(func(k string) bool { return !isThumbKey(k) }), mock.Anything, mock.Anything).
			Return(errors.New("disk full")).Once()

		_, err := svc.Upload(ctx, input(jpegBytes(t)))

		assert.True(t, errors.Is(err, domain.ErrStorage))
		photoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UndecodableImageDegradesGracefully", func(t *testing.T) {
		photoRepo := new(mockPhotoRepository)
		roomRepo := new(mockRoomRepository)
		storage := new(mockObjectStorage)
		svc := service.NewPhotoService(photoRepo, roomRepo, storage, nil, testConfig())

		roomRepo.On("ExistsActive", ctx, roomID).Return(true, nil).Once()
		photoRepo.On("ExistsByHash", ctx, roomID, mock.AnythingOfType("string")).Return(false, nil).Once()
		// Only the original is written; no thumbnail object.
		storage.On("Put", ctx, mock.MatchedBy(func(k string) bool { return !isThumbKey(k) }), mock.Anything, "image/heic").Return(nil).Once()
		photoRepo.On("Create", ctx, mock.AnythingOfType("*domain.Photo")).Return(nil).Once()
		storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://cdn.example/x")

		in := input([]byte("heic bytes with no go decoder"))
		in.ContentType = "image/heic"
		photo, err := svc.Upload(ctx, in)

		assert.NoError(t, err)
		assert.Nil(t, photo.ThumbnailPath)
		assert.Nil(t, photo.TakenAt)
		assert.Nil(t, photo.ThumbnailURL)
		storage.AssertExpectations(t)
	})
}
