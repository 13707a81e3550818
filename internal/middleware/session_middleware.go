package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// SessionUserKey is the session key under which the principal's user ID is
// stored. Handlers that establish or tear down sessions use the same key.
const SessionUserKey = "user_id"

const principalKey = "principal"

// AuthRequired resolves the session cookie to a principal and stores it in
// the request context. Requests without a live session, or whose session
// points at a user that no longer exists, are rejected with 401. The user is
// loaded fresh on every request; authorization state is never cached.
func AuthRequired(store *session.Store, users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		userID, ok := sess.Get(SessionUserKey).(int)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}

		user, err := users.GetByID(userID)
		if err != nil {
			// Stale session for a removed account.
			_ = sess.Destroy()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}

		c.Locals(principalKey, user)
		return c.Next()
	}
}

// AdminRequired rejects authenticated non-admin principals with 403. It must
// run after AuthRequired so anonymous requests get 401, not 403.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(principalKey).(*models.User)
		if !ok || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// Principal returns the authenticated user placed in the context by
// AuthRequired, or nil when the request is anonymous.
func Principal(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(principalKey).(*models.User)
	return user
}
