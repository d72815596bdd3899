package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ruang-foto/internal/domain"
)

type ReactionRepository interface {
	Toggle(ctx context.Context, photoID uuid.UUID, userName string, kind domain.ReactionKind) (*domain.ToggleResult, error)
	Status(ctx context.Context, photoID uuid.UUID, userName string) (*domain.ReactionStatus, error)
	Counts(ctx context.Context, photoID uuid.UUID) (*domain.ReactionCounts, error)
}

type reactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle flips the (photo, user, kind) mark inside one transaction. The photo
// row is locked first, which serializes concurrent toggles on the same photo
// and keeps the denormalized counter equal to the reaction row count.
func (r *reactionRepository) Toggle(ctx context.Context, photoID uuid.UUID, userName string, kind domain.ReactionKind) (*domain.ToggleResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown reaction kind %q", domain.ErrValidation, kind)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var roomID uuid.UUID
	err = tx.GetContext(ctx, &roomID, `SELECT room_id FROM photos WHERE photo_id = $1 FOR UPDATE`, photoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: photo %s", domain.ErrNotFound, photoID)
	}
	if err != nil {
		return nil, err
	}

	counterCol := "like_count"
	if kind == domain.ReactionDislike {
		counterCol = "dislike_count"
	}

	var reactionID uuid.UUID
	err = tx.GetContext(ctx, &reactionID,
		`SELECT reaction_id FROM reactions WHERE photo_id = $1 AND user_name = $2 AND kind = $3`,
		photoID, userName, kind)

	result := &domain.ToggleResult{}
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `DELETE FROM reactions WHERE reaction_id = $1`, reactionID); err != nil {
			return nil, err
		}
		query := fmt.Sprintf(`UPDATE photos SET %s = %s - 1 WHERE photo_id = $1 RETURNING %s`, counterCol, counterCol, counterCol)
		if err := tx.GetContext(ctx, &result.Count, query, photoID); err != nil {
			return nil, err
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reactions (reaction_id, photo_id, user_name, kind) VALUES ($1, $2, $3, $4)`,
			uuid.New(), photoID, userName, kind)
		if err != nil {
			return nil, err
		}
		query := fmt.Sprintf(`UPDATE photos SET %s = %s + 1 WHERE photo_id = $1 RETURNING %s`, counterCol, counterCol, counterCol)
		if err := tx.GetContext(ctx, &result.Count, query, photoID); err != nil {
			return nil, err
		}
		result.Active = true
	default:
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reactionRepository) Status(ctx context.Context, photoID uuid.UUID, userName string) (*domain.ReactionStatus, error) {
	var status domain.ReactionStatus
	query := `
		SELECT
			EXISTS (SELECT 1 FROM reactions WHERE photo_id = $1 AND user_name = $2 AND kind = 'like') AS liked,
			EXISTS (SELECT 1 FROM reactions WHERE photo_id = $1 AND user_name = $2 AND kind = 'dislike') AS disliked`
	err := r.db.QueryRowxContext(ctx, query, photoID, userName).Scan(&status.Liked, &status.Disliked)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *reactionRepository) Counts(ctx context.Context, photoID uuid.UUID) (*domain.ReactionCounts, error) {
	var counts domain.ReactionCounts
	query := `SELECT like_count, dislike_count FROM photos WHERE photo_id = $1`
	err := r.db.QueryRowxContext(ctx, query, photoID).Scan(&counts.LikeCount, &counts.DislikeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: photo %s", domain.ErrNotFound, photoID)
	}
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
