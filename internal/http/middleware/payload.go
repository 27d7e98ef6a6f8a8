package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/logging"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/sanitize"
)

const bytesPerMB = 1024 * 1024

// PayloadGuard bounds the serialized size of JSON request bodies at maxMB megabytes.
//
// An oversized body is sanitized and measured again. If it now fits, the sanitized
// body replaces the original for downstream handlers; otherwise the request is
// rejected with 413. Bodies that are not valid JSON are rejected with 400.
func PayloadGuard(maxMB int, rec metrics.Recorder, l *zap.Logger) fiber.Handler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	l = logging.Component(l, "payload_guard")
	limit := maxMB * bytesPerMB

	return func(c *fiber.Ctx) error {
		raw := c.Body()
		if len(raw) == 0 {
			return c.Next()
		}

		var body any
		if err := json.Unmarshal(raw, &body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
		}

		size, err := sanitize.SerializedSize(body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
		}
		if size <= limit {
			return c.Next()
		}

		clean := sanitize.Payload(body)
		b, err := json.Marshal(clean)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
		}
		rec.PayloadStripped(size - len(b))
		l.Warn("oversized payload sanitized",
			zap.String("event", "payload_stripped"),
			zap.String("request_id", GetRequestID(c)),
			zap.Int("original_bytes", size),
			zap.Int("sanitized_bytes", len(b)),
		)

		if len(b) > limit {
			sizeMB := fmt.Sprintf("%.2f", float64(len(b))/bytesPerMB)
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error":         fmt.Sprintf("Payload too large. After removing previews/images: %sMB (limit: %dMB)", sizeMB, maxMB),
				"suggestion":    "Remove large image uploads and try again",
				"payloadSizeMB": sizeMB,
				"request_id":    GetRequestID(c),
			})
		}

		c.Request().SetBody(b)
		c.Request().Header.SetContentLength(len(b))
		return c.Next()
	}
}
