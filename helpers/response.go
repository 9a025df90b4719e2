package helpers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func JSONCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func JSONStatus(c *fiber.Ctx, status int, message, detail string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    nil,
		"error":   detail,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return JSONStatus(c, fiber.StatusBadRequest, message, message)
}

// JSONFail renders err with its own status when it is an *AppError and as a 500 otherwise.
func JSONFail(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		detail := appErr.Detail
		if detail == "" {
			detail = appErr.Code
		}
		return JSONStatus(c, appErr.Status, appErr.Code, detail)
	}
	return JSONStatus(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

const maxPage = 10000

// Paginate reads ?page and ?limit, defaulting to page 1 of 20. Limit is capped at 100 and page at maxPage.
func Paginate(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

func PageMeta(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
	}
}
