package plans

import (
	"github.com/joeyShea/travel-map/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		p, err := svc.UserPlans(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/activities/:id", authMiddleware, func(c *fiber.Ctx) error {
		activityID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "activity id must be an integer")
		}
		p, err := svc.ToggleActivity(c.Context(), auth.UserID(c), int64(activityID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/lodgings/:id", authMiddleware, func(c *fiber.Ctx) error {
		lodgeID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lodge id must be an integer")
		}
		p, err := svc.ToggleLodging(c.Context(), auth.UserID(c), int64(lodgeID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})
}
