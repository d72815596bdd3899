package handler

import (
	"github.com/gofiber/fiber/v2"

	"ruang-foto/internal/domain"
	"ruang-foto/internal/service"
)

type Handlers struct {
	Photo    *PhotoHandler
	Reaction *ReactionHandler
	Upload   *UploadHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Photo:    NewPhotoHandler(services.Photo, services.Visibility, services.Upload),
		Reaction: NewReactionHandler(services.Reaction),
		Upload:   NewUploadHandler(services.Upload),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return domain.DefaultPagination()
	}
	params.Validate()
	return params
}
