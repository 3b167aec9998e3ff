package handlers

import "github.com/gofiber/fiber/v3"

// Register mounts the designer API on app.
func Register(app *fiber.App, health *HealthHandler, orders *OrderHandler, sessions *SessionHandler) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)

	// ============================================================
	// Order Routes
	// ============================================================

	app.Get("/orders", orders.ListOrders)
	app.Post("/orders/draft", orders.Draft)
	app.Get("/orders/:id/profiles", orders.ListProfiles)
	app.Get("/orders/:id/cutlist", orders.Cutlist)
	app.Get("/orders/:id/sheet.svg", orders.SheetSVG)
	app.Get("/orders/:id/profiles/:pid/card.png", orders.CardPNG)

	// ============================================================
	// Session Routes
	// ============================================================

	app.Post("/sessions", sessions.Open)
	app.Get("/sessions/:token", sessions.State)
	app.Delete("/sessions/:token", sessions.Close)
	app.Post("/sessions/:token/refresh", sessions.Refresh)
	app.Get("/sessions/:token/frame", sessions.Frame)
	app.Get("/sessions/:token/cutlist", sessions.Cutlist)

	app.Post("/sessions/:token/click", sessions.Click)
	app.Post("/sessions/:token/touch", sessions.Touch)
	app.Post("/sessions/:token/dimension", sessions.Dimension)
	app.Post("/sessions/:token/angle", sessions.Angle)
	app.Post("/sessions/:token/rotate", sessions.Rotate)
	app.Post("/sessions/:token/undo", sessions.Undo)
	app.Post("/sessions/:token/clear", sessions.Clear)
	app.Put("/sessions/:token/meta", sessions.Meta)
	app.Post("/sessions/:token/comments", sessions.Comment)
	app.Post("/sessions/:token/import", sessions.Import)

	app.Post("/sessions/:token/done", sessions.Done)
	app.Post("/sessions/:token/new", sessions.NewProfile)
	app.Post("/sessions/:token/profiles/:pid/edit", sessions.EditProfile)
	app.Delete("/sessions/:token/profiles/:pid", sessions.DeleteProfile)
}
