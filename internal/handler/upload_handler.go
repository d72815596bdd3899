package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ruang-foto/internal/domain"
	"ruang-foto/internal/middleware"
	"ruang-foto/internal/service"
)

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) CreateSession(c *fiber.Ctx) error {
	var input domain.CreateSessionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	roomID, err := uuid.Parse(input.RoomID)
	if err != nil {
		return middleware.BadRequest("Invalid room ID")
	}

	session, err := h.uploadService.CreateSession(c.Context(), roomID, input.UserName, input.TotalFiles)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *UploadHandler) GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return middleware.BadRequest("Invalid session ID")
	}

	session, err := h.uploadService.GetSession(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *UploadHandler) CreateLog(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return middleware.BadRequest("Invalid session ID")
	}

	var input domain.CreateUploadLogInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	log, err := h.uploadService.CreateLog(c.Context(), sessionID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

func (h *UploadHandler) SessionLogs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return middleware.BadRequest("Invalid session ID")
	}

	logs, err := h.uploadService.SessionLogs(c.Context(), sessionID)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []domain.UploadLog{}
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}

// RunBatch accepts a multipart form with repeated "files" parts and matching
// "log_ids" values, paired by position. The whole batch is processed before
// the aggregate summary is returned.
func (h *UploadHandler) RunBatch(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return middleware.BadRequest("Invalid session ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.BadRequest("Multipart form is required")
	}

	files := form.File["files"]
	logIDs := form.Value["log_ids"]
	if len(files) == 0 {
		return middleware.BadRequest("At least one file is required")
	}
	if len(files) != len(logIDs) {
		return middleware.BadRequest("files and log_ids must match in count and order")
	}

	items := make([]domain.BatchItem, 0, len(files))
	for i, file := range files {
		logID, err := uuid.Parse(logIDs[i])
		if err != nil {
			return middleware.BadRequest("Invalid log ID: " + logIDs[i])
		}

		reader, err := file.Open()
		if err != nil {
			return middleware.BadRequest("Failed to read file " + file.Filename)
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return middleware.BadRequest("Failed to read file " + file.Filename)
		}

		items = append(items, domain.BatchItem{
			LogID:            logID,
			OriginalFilename: file.Filename,
			ContentType:      file.Header.Get("Content-Type"),
			Data:             data,
		})
	}

	result, err := h.uploadService.RunBatch(c.Context(), sessionID, items)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *UploadHandler) Finalize(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return middleware.BadRequest("Invalid session ID")
	}

	session, err := h.uploadService.Finalize(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(session)
}

type retryRequest struct {
	LogIDs []string `json:"log_ids"`
}

func (h *UploadHandler) Retry(c *fiber.Ctx) error {
	var req retryRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	ids := make([]uuid.UUID, 0, len(req.LogIDs))
	for _, raw := range req.LogIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid log ID: " + raw)
		}
		ids = append(ids, id)
	}

	logs, err := h.uploadService.RetryFailedUploads(c.Context(), ids)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []domain.UploadLog{}
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}
