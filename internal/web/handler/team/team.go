// Package team serves the public team roster page.
package team

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/setting"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/team"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the path to the team page.
	Path = "/team"

	// TemplateName is the template rendered for the team page.
	TemplateName = "team"
)

// Service is the team handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the team handler.
var Handler = Service{}

// Init initializes the team handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Enabled reports whether the team page is switched on. The page defaults
// to enabled: only an explicit "false" setting hides it, so a missing or
// garbled value never takes the page down.
func Enabled(db *gorm.DB) bool {
	s, err := setting.Get(db, models.SettingShowTeamPage)
	if err != nil {
		if !errors.Is(err, setting.ErrSettingNotFound) {
			log.Error().Err(err).Msg("failed to read team page setting")
		}

		return true
	}

	return string(s.Value) != "false"
}

// Get renders the roster, or a 404 when the page is switched off.
func (s *Service) Get(c *fiber.Ctx) error {
	if !Enabled(s.db) {
		return fiber.ErrNotFound
	}

	members, err := team.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load team members")
		return fiber.ErrInternalServerError
	}

	nav := navigation.NewContext("Our Team", "team", "team").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Team", Path, true)

	bind := fiber.Map{
		"Navigation": nav,
		"Members":    members,
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}
