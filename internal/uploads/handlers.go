package uploads

import (
	"errors"
	"io"

	"github.com/joeyShea/travel-map/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/images", authMiddleware, func(c *fiber.Ctx) error {
		header, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}

		file, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file could not be read")
		}

		folder := c.FormValue("folder", "trips")
		contentType := header.Header.Get("Content-Type")

		url, err := svc.UploadImage(c.Context(), auth.UserID(c), folder, contentType, data)
		if err != nil {
			if errors.Is(err, ErrNotAnImage) || errors.Is(err, ErrInvalidImage) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	})
}
