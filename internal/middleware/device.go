package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dongkyukim1/confession-backend/internal/config"
	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/dto"
)

// Paths that don't require a device identity.
var deviceSkipPaths = []string{
	"/api/health",
	"/api/devices",
	"/metrics",
}

// DeviceRequired resolves the anonymous device identity: a Bearer
// device token when present, otherwise a raw X-Device-ID header that
// must be UUID-v4 shaped.
func DeviceRequired(cfg *config.Config) fiber.Handler {
	verify := jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.TokenSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c, "유효하지 않은 기기 토큰입니다.")
			}
			id, ok := device.DeviceIDFromToken(token)
			if !ok {
				return unauthorized(c, "유효하지 않은 기기 토큰입니다.")
			}
			device.Store(c, id)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return unauthorized(c, "기기 토큰이 만료되었거나 잘못되었습니다.")
		},
	})

	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, skip := range deviceSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
			return verify(c)
		}

		raw := c.Get("X-Device-ID")
		if raw == "" {
			return unauthorized(c, "기기 식별자가 필요합니다.")
		}
		id, ok := device.ValidateID(raw)
		if !ok {
			return unauthorized(c, "기기 식별자 형식이 올바르지 않습니다.")
		}
		device.Store(c, id)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: msg,
	})
}
