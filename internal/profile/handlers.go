package profile

import (
	"errors"

	"github.com/joeyShea/travel-map/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the profile surface at the app root: the routes
// span /profile and /users prefixes. /users/me/trips must be registered
// before /users/:id/profile so "me" is not read as an id.
func RegisterRoutes(app fiber.Router, svc *Service, authMiddleware, viewerMiddleware fiber.Handler) {
	app.Post("/profile/setup", authMiddleware, func(c *fiber.Ctx) error {
		var req SetupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		user, err := svc.Setup(c.Context(), auth.UserID(c), req)
		if err != nil {
			return profileError(err)
		}
		return c.JSON(fiber.Map{"message": "profile updated", "user": user})
	})

	app.Get("/users/me/trips", authMiddleware, func(c *fiber.Ctx) error {
		trips, err := svc.MyTrips(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"trips": trips})
	})

	app.Get("/users/:id/profile", viewerMiddleware, func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "user id must be an integer")
		}
		user, trips, err := svc.Profile(c.Context(), int64(userID), auth.UserID(c))
		if err != nil {
			return profileError(err)
		}
		return c.JSON(fiber.Map{"user": user, "trips": trips})
	})
}

func profileError(err error) *fiber.Error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadAccountType):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
