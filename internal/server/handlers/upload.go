package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Edustart-Tech/App-Release-Manager/internal/publish"
)

// Upload handles POST /upload (multipart form). On success the
// response is 201 with the public download URL as a JSON string.
func (h *Handler) Upload(c *fiber.Ctx) error {
	sub := publish.Submission{
		AppName:   c.FormValue("app_name"),
		Version:   c.FormValue("version"),
		Target:    c.FormValue("target"),
		Arch:      c.FormValue("arch"),
		Notes:     c.FormValue("notes"),
		Signature: c.FormValue("signature"),
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		sub.FileName = fh.Filename
		if sub.FileName == "" {
			sub.FileName = "installer"
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read file: "+err.Error())
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read file: "+err.Error())
		}
		sub.FileData = data
	}

	url, err := h.Publisher.Publish(c.Context(), sub)
	if err != nil {
		var upstream *publish.UpstreamError
		switch {
		case errors.Is(err, publish.ErrEmptyArtifact):
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded or file is empty")
		case errors.Is(err, publish.ErrAssetConflict):
			return fiber.NewError(fiber.StatusConflict, "Asset already exists in this release")
		case errors.As(err, &upstream):
			h.Log.Error("publish failed upstream", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, upstream.Error())
		default:
			h.Log.Error("publish failed", zap.Error(err))
			return fiber.ErrInternalServerError
		}
	}

	return c.Status(fiber.StatusCreated).JSON(url)
}
