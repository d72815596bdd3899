package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Room     RoomRepository
	Photo    PhotoRepository
	Reaction ReactionRepository
	Upload   UploadRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Room:     NewRoomRepository(db),
		Photo:    NewPhotoRepository(db),
		Reaction: NewReactionRepository(db),
		Upload:   NewUploadRepository(db),
	}
}
