package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"agencydash/internal/model"
	"agencydash/internal/service"
)

type settledAppsRequest struct {
	Data []model.SettledApp `json:"data"`
}

type fyCommissionRequest struct {
	Data []model.FYCommission `json:"data"`
}

// UploadSettledApps handles POST /api/admin/upload/settled-apps.
// The admin gate runs in middleware; by the time this handler executes the
// caller is an authenticated admin.
func UploadSettledApps(uploadSvc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req settledAppsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a data array")
		}
		if len(req.Data) == 0 {
			return writeError(c, fiber.StatusBadRequest, "EMPTY_DATA", "data array is empty")
		}

		res, err := uploadSvc.UploadSettledApps(c.UserContext(), req.Data)
		if err != nil {
			if errors.Is(err, service.ErrEmptyBatch) {
				return writeError(c, fiber.StatusBadRequest, "EMPTY_DATA", "data array is empty")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadFYCommission handles POST /api/admin/upload/fy-commission.
func UploadFYCommission(uploadSvc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req fyCommissionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a data array")
		}
		if len(req.Data) == 0 {
			return writeError(c, fiber.StatusBadRequest, "EMPTY_DATA", "data array is empty")
		}

		res, err := uploadSvc.UploadFYCommissions(c.UserContext(), req.Data)
		if err != nil {
			if errors.Is(err, service.ErrEmptyBatch) {
				return writeError(c, fiber.StatusBadRequest, "EMPTY_DATA", "data array is empty")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadSettledAppsFile handles POST /api/admin/upload/settled-apps/file
// (multipart/form-data, field name: file). The raw workbook is archived to
// object storage before its rows run through the dedup pipeline.
func UploadSettledAppsFile(uploadSvc service.UploadService) fiber.Handler {
	return uploadWorkbook(func(c *fiber.Ctx, f io.Reader, filename string) (*service.UploadResult, error) {
		return uploadSvc.UploadSettledAppsWorkbook(c.UserContext(), f, filename)
	})
}

// UploadFYCommissionFile handles POST /api/admin/upload/fy-commission/file.
func UploadFYCommissionFile(uploadSvc service.UploadService) fiber.Handler {
	return uploadWorkbook(func(c *fiber.Ctx, f io.Reader, filename string) (*service.UploadResult, error) {
		return uploadSvc.UploadFYCommissionsWorkbook(c.UserContext(), f, filename)
	})
}

func uploadWorkbook(run func(c *fiber.Ctx, f io.Reader, filename string) (*service.UploadResult, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := run(c, f, fh.Filename)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyBatch):
				return writeError(c, fiber.StatusBadRequest, "EMPTY_DATA", "workbook has no data rows")
			case errors.Is(err, service.ErrWorkbookParse):
				return writeError(c, fiber.StatusBadRequest, "INVALID_WORKBOOK", "workbook could not be parsed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}
