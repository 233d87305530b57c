package server

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires the public and admin API surfaces.
func SetupRoutes(app *fiber.App, webApp *WebApp, adminKey string) {
	app.Get("/health", HealthCheck(webApp))

	api := app.Group("/api")

	badgeRoutes := api.Group("/badges")
	badgeRoutes.Post("/check", CheckBadges(webApp))
	badgeRoutes.Get("/search", SearchBadges(webApp))
	badgeRoutes.Get("/progress/:userId", GetProgress(webApp))
	badgeRoutes.Get("/stats/:userId", GetStats(webApp))

	notificationRoutes := api.Group("/notifications")
	notificationRoutes.Get("/:userId", GetNotifications(webApp))
	notificationRoutes.Post("/:userId/read", MarkNotificationsRead(webApp))

	admin := api.Group("/admin/badges", AdminKeyRequired(adminKey))
	admin.Post("/award", AuditLogMiddleware("badge_award"), AwardBadge(webApp))
	admin.Post("/catalog", AuditLogMiddleware("catalog_load"), LoadCatalog(webApp))
	admin.Post("/sweep", AuditLogMiddleware("badge_sweep"), RunSweep(webApp))
	admin.Delete("/icon/:badgeId", AuditLogMiddleware("icon_delete"), DeleteBadgeIcon(webApp))
}
