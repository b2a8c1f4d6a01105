package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/clearlane-advisory/clearlane-web/internal/web/session"
)

// RequireAdmin creates Fiber middleware that requires a logged-in user with
// the admin flag. Anonymous requests are redirected to the login page;
// authenticated users without the flag get a 403.
func RequireAdmin(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get session cookie
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Redirect("/login")
		}

		// Read session data
		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			log.Debug().Err(err).Msg("Failed to read session")
			return c.Redirect("/login")
		}

		// Check if the session is valid
		if sessionData.User.ID == 0 {
			return c.Redirect("/login")
		}

		// Check the admin flag
		isAdmin, err := authService.IsAdmin(sessionData.User.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).
				Msg("Failed to check admin flag")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !isAdmin {
			log.Warn().Uint64("user_id", sessionData.User.ID).
				Msg("User is not a panel administrator")

			return c.Status(fiber.StatusForbidden).
				SendString("Forbidden: You don't have permission to access this resource")
		}

		// Make the user available to handlers and templates
		c.Locals("user", sessionData.User)

		return c.Next()
	}
}
