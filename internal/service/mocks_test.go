package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ruang-foto/internal/domain"
)

type mockPhotoRepository struct {
	mock.Mock
}

func (m *mockPhotoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *mockPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoRepository) ExistsByHash(ctx context.Context, roomID uuid.UUID, contentHash string) (bool, error) {
	args := m.Called(ctx, roomID, contentHash)
	return args.Bool(0), args.Error(1)
}

func (m *mockPhotoRepository) ListByRoom(ctx context.Context, roomID uuid.UUID, params domain.PaginationParams) ([]domain.Photo, int64, error) {
	args := m.Called(ctx, roomID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *mockPhotoRepository) ListVisibleByRoom(ctx context.Context, roomID uuid.UUID, userName string) ([]domain.PhotoWithStatus, error) {
	args := m.Called(ctx, roomID, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PhotoWithStatus), args.Error(1)
}

func (m *mockPhotoRepository) Stats(ctx context.Context, roomID uuid.UUID) (*domain.RoomStats, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomStats), args.Error(1)
}

type mockRoomRepository struct {
	mock.Mock
}

func (m *mockRoomRepository) ExistsActive(ctx context.Context, roomID uuid.UUID) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoomRepository) ParticipantCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

type mockReactionRepository struct {
	mock.Mock
}

func (m *mockReactionRepository) Toggle(ctx context.Context, photoID uuid.UUID, userName string, kind domain.ReactionKind) (*domain.ToggleResult, error) {
	args := m.Called(ctx, photoID, userName, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

func (m *mockReactionRepository) Status(ctx context.Context, photoID uuid.UUID, userName string) (*domain.ReactionStatus, error) {
	args := m.Called(ctx, photoID, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionStatus), args.Error(1)
}

func (m *mockReactionRepository) Counts(ctx context.Context, photoID uuid.UUID) (*domain.ReactionCounts, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionCounts), args.Error(1)
}

type mockUploadRepository struct {
	mock.Mock
}

func (m *mockUploadRepository) CreateSession(ctx context.Context, session *domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockUploadRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *mockUploadRepository) FinalizeSession(ctx context.Context, id uuid.UUID, completed, failed int, status domain.SessionStatus, completedAt time.Time) error {
	args := m.Called(ctx, id, completed, failed, status, completedAt)
	return args.Error(0)
}

func (m *mockUploadRepository) CreateLog(ctx context.Context, log *domain.UploadLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockUploadRepository) GetLog(ctx context.Context, id uuid.UUID) (*domain.UploadLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadLog), args.Error(1)
}

func (m *mockUploadRepository) ListLogsBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadLog, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadLog), args.Error(1)
}

func (m *mockUploadRepository) MarkLogUploading(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUploadRepository) MarkLogSuccess(ctx context.Context, id, photoID uuid.UUID) error {
	args := m.Called(ctx, id, photoID)
	return args.Error(0)
}

func (m *mockUploadRepository) MarkLogFailed(ctx context.Context, id uuid.UUID, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *mockUploadRepository) MarkLogsRetrying(ctx context.Context, ids []uuid.UUID) ([]domain.UploadLog, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadLog), args.Error(1)
}

type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *mockObjectStorage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockObjectStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

type mockPhotoService struct {
	mock.Mock
}

func (m *mockPhotoService) Upload(ctx context.Context, input domain.UploadPhotoInput) (*domain.Photo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}
