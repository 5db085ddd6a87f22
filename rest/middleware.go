package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	inventory "github.com/goliatone/go-inventory"
)

const identityContextKey = "identity"

// ErrMissingToken is returned when a protected route gets no usable bearer token.
var ErrMissingToken = errors.New("missing or malformed authorization header", errors.CategoryAuth).
	WithTextCode("MISSING_TOKEN").
	WithCode(errors.CodeUnauthorized)

// RequireAuth authenticates the bearer token on every request and stashes the
// resolved identity in the request context. Runs before any authorize check.
func RequireAuth(auther inventory.Authenticator, logger inventory.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return ErrMissingToken
		}

		identity, err := auther.Authenticate(c.Context(), token)
		if err != nil {
			logger.Debug("request authentication failed: %v", err)
			return err
		}

		c.Locals(identityContextKey, identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by RequireAuth.
func IdentityFromCtx(c *fiber.Ctx) (inventory.Identity, error) {
	identity, ok := c.Locals(identityContextKey).(inventory.Identity)
	if !ok || identity == nil {
		return nil, ErrMissingToken
	}
	return identity, nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}

	return ""
}
