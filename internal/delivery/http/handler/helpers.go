package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// usecaseError maps usecase sentinels onto HTTP statuses.
func usecaseError(err error) error {
	if err == nil {
		return nil
	}
	msg := usecase.Message(err)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msg+" not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, msg, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, msg, nil, err)
	case errors.Is(err, usecase.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, msg, nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, cause)
}

func notFound(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusNotFound, msg, nil, cause)
}

func paramID(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(key)))
	if err != nil {
		return uuid.Nil, badRequest(fmt.Sprintf("invalid %s", key), err)
	}
	return id, nil
}

func paramIndex(c fiber.Ctx, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(c.Params(key)))
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s", key), err)
	}
	return n, nil
}

// bindBody decodes a JSON body. An empty body leaves out untouched so PATCH
// with no fields is a no-op.
func bindBody(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		return badRequest("invalid JSON body", err)
	}
	return nil
}

func queryUUID(c fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("invalid %s", key), err)
	}
	return &id, nil
}

func queryBool(c fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("invalid %s", key), err)
	}
	return &b, nil
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s", key), err)
	}
	return n, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates, read in loc.
func queryTime(c fiber.Ctx, key string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("invalid %s: use RFC 3339 or YYYY-MM-DD", key), err)
	}
	return &t, nil
}

func deleted(c fiber.Ctx, id uuid.UUID) error {
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, fiber.Map{"id": id})
}
