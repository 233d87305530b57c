package server

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hatakesocial/badge-engine/badgeengine/assets"
	"github.com/hatakesocial/badge-engine/badgeengine/badges"
	"github.com/hatakesocial/badge-engine/badgeengine/database"
	"github.com/hatakesocial/badge-engine/badgeengine/database/repositories"
	"github.com/hatakesocial/badge-engine/badgeengine/logger"
)

// WebApp bundles the dependencies the HTTP handlers need.
type WebApp struct {
	DB            *database.DB
	Badges        *badges.Service
	Notifications repositories.NotificationRepository
	Assets        *assets.SpacesService
	Version       string
	Commit        string
}

// badgeView is the wire form of a badge definition served to clients.
type badgeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl,omitempty"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Points      int64  `json:"points"`
}

// HealthCheck reports service and database health
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "connected"
		if err := webApp.DB.GetPool().Ping(c.Context()); err != nil {
			dbStatus = "unreachable"
		}
		return SendSuccess(c, fiber.Map{
			"status":   "running",
			"database": dbStatus,
			"version":  webApp.Version,
			"commit":   webApp.Commit,
		}, "Health check")
	}
}

// CheckBadges runs a full award pass for one user
func CheckBadges(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			UserID       string `json:"userId"`
			ActivityType string `json:"activityType"`
		}
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "Invalid request body", nil)
		}
		if req.UserID == "" {
			return SendBadRequest(c, "userId is required", nil)
		}
		if req.ActivityType == "" {
			req.ActivityType = "manual_check"
		}

		awarded, err := webApp.Badges.CheckAndAward(c.Context(), req.UserID, req.ActivityType)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return SendNotFound(c, "User not found")
			}
			logger.LogError("Badge check failed", err,
				slog.String("user_id", req.UserID))
			return SendInternalServerError(c, "Badge check failed")
		}

		return SendSuccess(c, fiber.Map{
			"userId":       req.UserID,
			"newBadges":    awarded,
			"awardedCount": len(awarded),
		}, "Badge check complete")
	}
}

// GetProgress reports per-badge progress for a user without writing anything
func GetProgress(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		if userID == "" {
			return SendBadRequest(c, "userId is required", nil)
		}

		progress, err := webApp.Badges.GetProgress(c.Context(), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return SendNotFound(c, "User not found")
			}
			return SendInternalServerError(c, "Failed to compute badge progress")
		}

		return SendSuccess(c, progress, "Badge progress")
	}
}

// GetStats returns a user's denormalized badge aggregates
func GetStats(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		if userID == "" {
			return SendBadRequest(c, "userId is required", nil)
		}

		stats, err := webApp.Badges.GetStats(c.Context(), userID)
		if err != nil {
			return SendInternalServerError(c, "Failed to load badge stats")
		}

		return SendSuccess(c, stats, "Badge stats")
	}
}

// SearchBadges fuzzy-searches the badge catalog by name
func SearchBadges(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")

		defs, err := webApp.Badges.SearchDefinitions(c.Context(), query)
		if err != nil {
			return SendInternalServerError(c, "Failed to search badges")
		}

		views := make([]badgeView, 0, len(defs))
		for _, def := range defs {
			view := badgeView{
				ID:          def.BadgeID,
				Name:        def.Name,
				Description: def.Description,
				IconURL:     def.Icon,
				Category:    def.Category,
				Rarity:      def.Rarity,
				Points:      def.Points,
			}
			if view.IconURL == "" && webApp.Assets != nil {
				view.IconURL = webApp.Assets.IconURL(c.Context(), def.BadgeID)
			}
			views = append(views, view)
		}

		return SendSuccess(c, views, "Badge catalog")
	}
}

// GetNotifications lists a user's unread badge notifications
func GetNotifications(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		if userID == "" {
			return SendBadRequest(c, "userId is required", nil)
		}

		notifications, err := webApp.Notifications.GetUnread(c.Context(), userID)
		if err != nil {
			return SendInternalServerError(c, "Failed to load notifications")
		}

		return SendSuccess(c, notifications, "Unread notifications")
	}
}

// MarkNotificationsRead flags a set of notifications as read
func MarkNotificationsRead(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		if userID == "" {
			return SendBadRequest(c, "userId is required", nil)
		}

		var req struct {
			IDs []string `json:"ids"`
		}
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "Invalid request body", nil)
		}
		if len(req.IDs) == 0 {
			return SendBadRequest(c, "ids is required", nil)
		}

		if err := webApp.Notifications.MarkRead(c.Context(), userID, req.IDs); err != nil {
			return SendInternalServerError(c, "Failed to mark notifications read")
		}

		return SendSuccess(c, fiber.Map{"marked": len(req.IDs)}, "Notifications marked read")
	}
}

// AwardBadge grants a badge outside the automatic pass, with an audit trail
func AwardBadge(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			UserID  string `json:"userId"`
			BadgeID string `json:"badgeId"`
			AdminID string `json:"adminId"`
		}
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "Invalid request body", nil)
		}
		if req.UserID == "" || req.BadgeID == "" {
			return SendBadRequest(c, "userId and badgeId are required", nil)
		}
		if req.AdminID == "" {
			req.AdminID = "admin"
		}

		err := webApp.Badges.AwardManually(c.Context(), req.UserID, req.BadgeID, req.AdminID)
		switch {
		case errors.Is(err, repositories.ErrBadgeNotFound):
			return SendNotFound(c, "Badge not found")
		case errors.Is(err, badges.ErrBadgeAlreadyOwned):
			return SendConflict(c, "User already has this badge", nil)
		case err != nil:
			logger.LogError("Manual award failed", err,
				slog.String("user_id", req.UserID),
				slog.String("badge_id", req.BadgeID))
			return SendInternalServerError(c, "Failed to award badge")
		}

		return SendCreated(c, fiber.Map{
			"userId":  req.UserID,
			"badgeId": req.BadgeID,
		}, "Badge awarded")
	}
}

// LoadCatalog bulk-upserts badge definitions and refreshes the cache
func LoadCatalog(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []badges.CatalogEntry
		if err := c.BodyParser(&entries); err != nil {
			return SendBadRequest(c, "Invalid catalog payload", nil)
		}

		defs, err := badges.CatalogToDefinitions(entries)
		if err != nil {
			return SendBadRequest(c, err.Error(), nil)
		}

		if err := webApp.Badges.LoadCatalog(c.Context(), defs); err != nil {
			return SendInternalServerError(c, "Failed to load catalog")
		}

		return SendSuccess(c, fiber.Map{"loaded": len(defs)}, "Catalog loaded")
	}
}

// RunSweep runs the award pass over every known user
func RunSweep(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		awarded, err := webApp.Badges.RunSweep(c.Context())
		if err != nil {
			return SendInternalServerError(c, "Sweep failed")
		}

		return SendSuccess(c, fiber.Map{"awardedTotal": awarded}, "Sweep complete")
	}
}

// DeleteBadgeIcon removes a badge icon from object storage and evicts its
// cached URL, so the badge falls back to the default icon.
func DeleteBadgeIcon(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		badgeID := c.Params("badgeId")
		if badgeID == "" {
			return SendBadRequest(c, "badgeId is required", nil)
		}
		if webApp.Assets == nil {
			return SendError(c, fiber.StatusServiceUnavailable, "ASSETS_DISABLED", "Icon storage is not configured", nil)
		}

		if err := webApp.Assets.DeleteIcon(c.Context(), badgeID); err != nil {
			logger.LogError("Icon delete failed", err, slog.String("badge_id", badgeID))
			return SendInternalServerError(c, "Failed to delete icon")
		}

		return SendSuccess(c, fiber.Map{"badgeId": badgeID}, "Icon deleted")
	}
}
