package routes

import (
	"github.com/gofiber/fiber/v2"

	"shiftwrite/handlers"
	"shiftwrite/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler, jwtSecret []byte) {
	api := app.Group("/api/v1")
	authenticated := middleware.Authenticate(jwtSecret)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
	auth.Post("/logout", authenticated, h.HandleLogout)

	// --- Report Pipeline Routes ---
	report := api.Group("/report", authenticated)
	report.Get("/record", h.HandleGetRecord)
	report.Put("/record", h.HandleUpdateRecord)
	report.Post("/generate", h.HandleGenerate)
	report.Get("/display", h.HandleDisplay)
	report.Get("/plain", h.HandlePlain)
	report.Get("/mailto", h.HandleMailto)

	// --- History Routes ---
	history := api.Group("/history", authenticated)
	history.Get("/", h.HandleListHistory)
	history.Get("/:id", h.HandleGetHistoryEntry)
}
