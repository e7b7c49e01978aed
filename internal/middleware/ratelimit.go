package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/dto"
	"github.com/dongkyukim1/confession-backend/internal/ratelimit"
)

// DeviceRateLimit throttles an action per device with a fixed window.
// The limiter fails open, so this never blocks on storage trouble.
func DeviceRateLimit(limiter *ratelimit.Limiter, action string, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := device.FromCtx(c)
		if !ok {
			return c.Next()
		}

		res := limiter.Allow(c.UserContext(), "rl:"+action+":"+id.String(), max, window)
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
			})
		}
		return c.Next()
	}
}
