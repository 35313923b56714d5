package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Edustart-Tech/App-Release-Manager/internal/catalog"
	"github.com/Edustart-Tech/App-Release-Manager/internal/models"
	"github.com/Edustart-Tech/App-Release-Manager/internal/publish"
)

// Handler bundles the dependencies the HTTP layer needs. Constructed
// once in main; there is no package-level state.
type Handler struct {
	Catalog   *catalog.Catalog
	Publisher *publish.Publisher
	Log       *zap.Logger
}

func Root(c *fiber.Ctx) error {
	return c.SendString("Updater Service Running")
}

// CheckUpdate handles GET /:app_name/:target/:arch/:current_version.
// 200 with update info when a strictly newer version exists, 204 when
// not, 400 when the client's version string is malformed.
func (h *Handler) CheckUpdate(c *fiber.Ctx) error {
	appName := c.Params("app_name")
	target := c.Params("target")
	arch := c.Params("arch")
	currentVersion := c.Params("current_version")

	h.Log.Info("update check",
		zap.String("app_name", appName),
		zap.String("target", target),
		zap.String("arch", arch),
		zap.String("version", currentVersion))

	release, err := h.Catalog.ResolveUpdate(appName, target, arch, currentVersion)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidVersion) {
			h.Log.Warn("bad current version", zap.String("version", currentVersion))
			return c.Status(fiber.StatusBadRequest).JSON(nil)
		}
		return fiber.ErrInternalServerError
	}
	if release == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	h.Log.Info("update available",
		zap.String("from", currentVersion),
		zap.String("to", release.Version))
	return c.JSON(models.UpdateInfoFrom(release))
}

// LatestVersion handles GET /latest/:app_name/:target/:arch without
// any newer-than filtering.
func (h *Handler) LatestVersion(c *fiber.Ctx) error {
	appName := c.Params("app_name")
	target := c.Params("target")
	arch := c.Params("arch")

	release, err := h.Catalog.ResolveLatest(appName, target, arch)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if release == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(models.UpdateInfoFrom(release))
}

// DownloadLatest handles GET /download/latest/:app_name/:target/:arch
// with a temporary redirect to the artifact URL.
func (h *Handler) DownloadLatest(c *fiber.Ctx) error {
	appName := c.Params("app_name")
	target := c.Params("target")
	arch := c.Params("arch")

	release, err := h.Catalog.ResolveLatest(appName, target, arch)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if release == nil {
		return fiber.NewError(fiber.StatusNotFound, "No release found")
	}
	h.Log.Info("redirecting to artifact", zap.String("url", release.URL))
	return c.Redirect(release.URL, fiber.StatusTemporaryRedirect)
}

// ListReleases handles GET /releases: every stored row, newest first,
// pretty-printed with four-space indentation.
func (h *Handler) ListReleases(c *fiber.Ctx) error {
	releases, err := h.Catalog.ListAll()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	body, err := json.MarshalIndent(releases, "", "    ")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to serialize releases")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
