package domain

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID               uuid.UUID  `json:"id" db:"photo_id"`
	RoomID           uuid.UUID  `json:"room_id" db:"room_id"`
	Filename         string     `json:"filename" db:"filename"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	UploaderName     string     `json:"uploader_name" db:"uploader_name"`
	StoragePath      string     `json:"-" db:"storage_path"`
	ThumbnailPath    *string    `json:"-" db:"thumbnail_path"`
	URL              string     `json:"url" db:"-"`
	ThumbnailURL     *string    `json:"thumbnail_url,omitempty" db:"-"`
	FileSize         int64      `json:"file_size" db:"file_size"`
	MimeType         string     `json:"mime_type" db:"mime_type"`
	ContentHash      string     `json:"-" db:"content_hash"`
	TakenAt          *time.Time `json:"taken_at,omitempty" db:"taken_at"`
	UploadedAt       time.Time  `json:"uploaded_at" db:"uploaded_at"`
	LikeCount        int        `json:"like_count" db:"like_count"`
	DislikeCount     int        `json:"dislike_count" db:"dislike_count"`
}

// PhotoWithStatus annotates a photo with the requesting user's own reactions,
// used to hydrate a gallery after a user rejoins a room.
type PhotoWithStatus struct {
	Photo
	UserLiked    bool `json:"user_liked" db:"user_liked"`
	UserDisliked bool `json:"user_disliked" db:"user_disliked"`
}

type UploadPhotoInput struct {
	RoomID           uuid.UUID
	UploaderName     string
	OriginalFilename string
	ContentType      string
	Data             []byte
}

type RoomStats struct {
	TotalPhotos      int `json:"total_photos" db:"total_photos"`
	VisiblePhotos    int `json:"visible_photos" db:"visible_photos"`
	HiddenPhotos     int `json:"hidden_photos" db:"-"`
	TotalLikes       int `json:"total_likes" db:"total_likes"`
	TotalDislikes    int `json:"total_dislikes" db:"total_dislikes"`
	ParticipantCount int `json:"participant_count" db:"-"`
}
