// Package announcement exposes the site-wide announcement banner: a view
// helper consumed by every public page plus the dismiss and reset endpoints.
//
// The dismissal record lives in a browser cookie, base64-encoded because the
// raw record is JSON. The server never stores who dismissed what.
package announcement

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/announce"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/setting"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
)

const (
	// Path is the base path for announcement endpoints.
	Path = "/announcement"

	// DismissPath records a dismissal for the current announcement version.
	DismissPath = Path + "/dismiss"

	// ResetPath deletes the dismissal record so the banner can show again.
	ResetPath = Path + "/reset"
)

// Service is the announcement handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the announcement handler.
var Handler = Service{}

// Init initializes the announcement handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Post(DismissPath, s.Dismiss)
	app.Post(ResetPath, s.Reset)

	return nil
}

// LoadGate fetches the announcement settings and returns a loaded gate.
// On a settings fetch failure the gate stays unloaded, which resolves to
// the Loading state and keeps the banner off the page.
func LoadGate(db *gorm.DB) *announce.Gate {
	gate := new(announce.Gate)

	values, err := setting.GetMany(db, []string{
		models.SettingAnnouncementEnabled,
		models.SettingAnnouncementEndDate,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch announcement settings")
		return gate
	}

	gate.Load(announce.ParseFlags(values))

	return gate
}

// DismissalFromCookie decodes the dismissal record from the request cookie.
// A missing or garbled cookie yields nil, which the policy treats as "no
// dismissal".
func DismissalFromCookie(c *fiber.Ctx) *announce.Dismissal {
	raw := c.Cookies(announce.CookieName)
	if raw == "" {
		return nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	return announce.ParseDismissal(decoded)
}

// View resolves the banner for the current request. The returned map is
// merged into the render context of every public page.
func View(c *fiber.Ctx, db *gorm.DB) fiber.Map {
	gate := LoadGate(db)
	visibility := gate.Resolve(DismissalFromCookie(c), time.Now())

	return fiber.Map{
		"AnnouncementVisible": visibility == announce.Visible,
		"AnnouncementVersion": announce.CurrentVersion,
	}
}

// Dismiss writes the dismissal cookie for the current announcement version
// and sends the visitor back where they came from.
func (s *Service) Dismiss(c *fiber.Ctx) error {
	gate := LoadGate(s.db)

	dismissal := gate.Dismiss(time.Now())

	encoded, err := dismissal.Encode()
	if err != nil {
		log.Error().Err(err).Msg("failed to encode dismissal")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	cookie := &fiber.Cookie{
		Name:     announce.CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(encoded),
		MaxAge:   int(announce.DismissalTTL.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookie.Secure = false
	}

	c.Cookie(cookie)

	return redirectBack(c)
}

// Reset clears the dismissal cookie. The banner shows again on the next
// page load if the settings still allow it.
func (s *Service) Reset(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     announce.CookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return redirectBack(c)
}

func redirectBack(c *fiber.Ctx) error {
	if referer := c.Get(fiber.HeaderReferer); referer != "" {
		return c.Redirect(referer)
	}

	return c.Redirect(handler.RootPath)
}
