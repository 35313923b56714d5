package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Edustart-Tech/App-Release-Manager/internal/server/handlers"
)

// RegisterRoutes wires the update API onto the app. The catch-all
// update-check route is registered last so it cannot shadow the
// /latest and /download trees, which also have path-only segments.
func RegisterRoutes(app *fiber.App, h *handlers.Handler) {
	app.Use(cors.New()) // permissive by default

	app.Get("/", handlers.Root)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "time": time.Now()})
	})

	app.Get("/releases", h.ListReleases)
	app.Get("/latest/:app_name/:target/:arch", h.LatestVersion)
	app.Get("/download/latest/:app_name/:target/:arch", h.DownloadLatest)
	app.Post("/upload", h.Upload)

	app.Get("/:app_name/:target/:arch/:current_version", h.CheckUpdate)
}
