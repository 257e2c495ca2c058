package response

import "github.com/gofiber/fiber/v3"

type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                    = "ok"
	MessageBadRequest            = "bad request"
	MessageUnauthorized          = "unauthorized"
	MessageForbidden             = "forbidden"
	MessageNotFound              = "not found"
	MessageCreated               = "created"
	MessageDeleted               = "deleted"
	MessageConflict              = "conflict"
	MessageRequestEntityTooLarge = "request entity too large"
	MessageUnprocessableEntity   = "unprocessable entity"
	MessageInternalServerError   = "internal server error"
	MessageBadGateway            = "bad gateway"
	MessageServiceUnavailable    = "service unavailable"
	MessageError                 = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return defaultMessageForStatus(status)
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusCreated:
		return MessageCreated
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusRequestEntityTooLarge:
		return MessageRequestEntityTooLarge
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusBadGateway:
		return MessageBadGateway
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}

func OK(c fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusOK, MessageOK, data)
}

func Created(c fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, MessageCreated, data)
}
