package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/login"
	"github.com/clearlane-advisory/clearlane-web/internal/web/session"
)

// AuthMiddleware sends operators who are already logged in past the login
// page. The public site needs no session at all; panel routes carry their
// own admin check.
func AuthMiddleware(c *fiber.Ctx) error {
	if !IsLoginPage(c) {
		return c.Next()
	}

	loginCookie := c.Cookies("session")
	if loginCookie == "" {
		return c.Next()
	}

	sessData := new(session.Data)
	_ = sessData.Read(loginCookie)

	if sessData.User.ID > 0 {
		return c.Redirect("/admin")
	}

	return c.Next()
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, login.Path)
}
