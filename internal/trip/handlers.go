package trip

import (
	"errors"

	"github.com/joeyShea/travel-map/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireAuth, viewerAuth fiber.Handler) {
	r.Get("/", viewerAuth, func(c *fiber.Ctx) error {
		trips, err := svc.ListTrips(c.Context(), auth.UserID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(fiber.Map{"trips": trips})
	})

	r.Get("/:id", viewerAuth, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "trip id must be an integer")
		}
		t, err := svc.GetTrip(c.Context(), int64(tripID), auth.UserID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(fiber.Map{"trip": t})
	})

	r.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var req CreateTripRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		t, err := svc.CreateTrip(c.Context(), auth.UserID(c), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "trip created", "trip": t})
	})

	r.Post("/:id/lodgings", requireAuth, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "trip id must be an integer")
		}
		var req PlaceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		lodging, err := svc.AddLodging(c.Context(), int64(tripID), auth.UserID(c), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "lodging created", "lodging": lodging})
	})

	r.Post("/:id/activities", requireAuth, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "trip id must be an integer")
		}
		var req PlaceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		activity, err := svc.AddActivity(c.Context(), int64(tripID), auth.UserID(c), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "activity created", "activity": activity})
	})

	r.Delete("/:id", requireAuth, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "trip id must be an integer")
		}
		if err := svc.DeleteTrip(c.Context(), int64(tripID), auth.UserID(c)); err != nil {
			return httpError(err)
		}
		return c.JSON(fiber.Map{"message": "trip deleted"})
	})
}

// httpError maps service failures onto the response taxonomy: malformed
// input 400, missing 404, owner mismatch 403, everything else 500.
func httpError(err error) *fiber.Error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrTripNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrTripForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
