package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ruang-foto/internal/domain"
	"ruang-foto/internal/middleware"
	"ruang-foto/internal/service"
)

type PhotoHandler struct {
	photoService      service.PhotoService
	visibilityService service.VisibilityService
	uploadService     service.UploadService
}

func NewPhotoHandler(photoService service.PhotoService, visibilityService service.VisibilityService, uploadService service.UploadService) *PhotoHandler {
	return &PhotoHandler{
		photoService:      photoService,
		visibilityService: visibilityService,
		uploadService:     uploadService,
	}
}

// Upload ingests one photo into a room. When the client tracks this file
// under an upload log it passes log_id, and the log follows the outcome.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return middleware.BadRequest("Invalid room ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	var logID *uuid.UUID
	if raw := c.FormValue("log_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid log ID")
		}
		logID = &id
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}

	uploaderName := c.FormValue("uploader_name")

	if logID != nil {
		_ = h.uploadService.BeginLog(c.Context(), *logID, roomID, uploaderName)
	}

	photo, err := h.photoService.Upload(c.Context(), domain.UploadPhotoInput{
		RoomID:           roomID,
		UploaderName:     uploaderName,
		OriginalFilename: file.Filename,
		ContentType:      file.Header.Get("Content-Type"),
		Data:             data,
	})

	if logID != nil {
		var photoID *uuid.UUID
		if photo != nil {
			photoID = &photo.ID
		}
		h.uploadService.CompleteLog(c.Context(), *logID, roomID, uploaderName, photoID, err)
	}

	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return middleware.BadRequest("Invalid room ID")
	}

	result, err := h.visibilityService.ListPhotos(c.Context(), roomID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PhotoHandler) Visible(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return middleware.BadRequest("Invalid room ID")
	}

	userName := c.Query("user_name")
	if userName == "" {
		return middleware.BadRequest("user_name is required")
	}

	photos, err := h.visibilityService.VisiblePhotos(c.Context(), roomID, userName)
	if err != nil {
		return err
	}
	if photos == nil {
		photos = []domain.PhotoWithStatus{}
	}
	return c.Status(fiber.StatusOK).JSON(photos)
}

func (h *PhotoHandler) Stats(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return middleware.BadRequest("Invalid room ID")
	}

	stats, err := h.visibilityService.RoomStatistics(c.Context(), roomID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return middleware.BadRequest("Invalid photo ID")
	}

	photo, err := h.photoService.GetByID(c.Context(), photoID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(photo)
}
