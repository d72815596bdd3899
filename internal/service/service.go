package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"ruang-foto/internal/config"
	"ruang-foto/internal/repository"
)

type Services struct {
	Photo      PhotoService
	Reaction   ReactionService
	Visibility VisibilityService
	Upload     UploadService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	storage := NewMinIOStorage(minioClient, cfg)

	photoService := NewPhotoService(repos.Photo, repos.Room, storage, redis, cfg)
	reactionService := NewReactionService(repos.Reaction, repos.Photo, redis)
	visibilityService := NewVisibilityService(repos.Photo, repos.Room, storage, redis, cfg)
	uploadService := NewUploadService(repos.Upload, repos.Room, photoService, cfg)

	return &Services{
		Photo:      photoService,
		Reaction:   reactionService,
		Visibility: visibilityService,
		Upload:     uploadService,
	}
}
