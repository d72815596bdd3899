package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RoomRepository is the read-only view of the room collaborator this core
// consumes: the upload precondition and the statistics participant count.
type RoomRepository interface {
	ExistsActive(ctx context.Context, roomID uuid.UUID) (bool, error)
	ParticipantCount(ctx context.Context, roomID uuid.UUID) (int, error)
}

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) ExistsActive(ctx context.Context, roomID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM rooms WHERE room_id = $1 AND is_active)`
	err := r.db.GetContext(ctx, &exists, query, roomID)
	return exists, err
}

func (r *roomRepository) ParticipantCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM participants WHERE room_id = $1`
	err := r.db.GetContext(ctx, &count, query, roomID)
	return count, err
}
