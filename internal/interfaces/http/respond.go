package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// respondOK respuesta 200 con el sobre estándar.
func respondOK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(dto.Response{Success: true, Message: message, Data: data})
}

// respondCreated respuesta 201 con el sobre estándar.
func respondCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Message: message, Data: data})
}

// respondFieldErrors respuesta 400 con la lista de errores por campo.
func respondFieldErrors(c *fiber.Ctx, errs []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
		Success: false,
		Message: "validación fallida",
		Errors:  errs,
	})
}

// respondBadBody respuesta 400 para cuerpos que no parsean.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: "cuerpo inválido"})
}

// respondError mapea errores de dominio a códigos HTTP. Cualquier error no
// reconocido es un 500 con mensaje genérico (el detalle va al log, no al cliente).
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "error interno"

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrExchangeNotConfigured),
		errors.Is(err, domain.ErrExchangeRateZero):
		status, message = fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrLotRequired),
		errors.Is(err, domain.ErrUserAlreadyInactive),
		errors.Is(err, domain.ErrUserAlreadyActive):
		status, message = fiber.StatusBadRequest, err.Error()
	}

	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}
