// Package settings serves the site settings form: the announcement banner
// switch and end date plus the team page switch.
package settings

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/auth"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/setting"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the base path for site settings.
	Path = handler.RootPath + "admin/settings"

	// TemplateName is the template for the settings form.
	TemplateName = "admin/settings"
)

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the settings handler.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, auth.RequireAdmin(authService), s.Get)
	app.Post(Path, auth.RequireAdmin(authService), s.Post)
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Site Settings", "admin", "settings").
		AddBreadcrumb("Panel", "/admin", false).
		AddBreadcrumb("Settings", Path, true)
}

func (s *Service) render(c *fiber.Ctx, extra fiber.Map) error {
	values, err := setting.GetMany(s.db, []string{
		models.SettingAnnouncementEnabled,
		models.SettingAnnouncementEndDate,
		models.SettingShowTeamPage,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		values = map[string]string{}
	}

	bind := fiber.Map{
		"Navigation":          s.nav(),
		"AnnouncementEnabled": values[models.SettingAnnouncementEnabled] == "true",
		"AnnouncementEndDate": values[models.SettingAnnouncementEndDate],
		"ShowTeamPage":        values[models.SettingShowTeamPage] != "false",
	}

	for k, v := range extra {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}

// Get renders the settings form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, nil)
}

// Post saves the settings. Checkbox inputs only post a value when checked,
// so absence means "false". The end date is stored as submitted; parsing
// happens on read, where an unparseable value means "never expires".
func (s *Service) Post(c *fiber.Ctx) error {
	endDate := c.FormValue("announcement_end_date")
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			return s.render(c, fiber.Map{
				"Error": "End date must look like 2026-01-31.",
			})
		}
	}

	updates := map[string]string{
		models.SettingAnnouncementEnabled: checkbox(c.FormValue("announcement_enabled")),
		models.SettingAnnouncementEndDate: endDate,
		models.SettingShowTeamPage:        checkbox(c.FormValue("show_team_page")),
	}

	for name, value := range updates {
		if _, err := setting.Set(s.db, name, []byte(value)); err != nil {
			log.Error().Err(err).Str("setting", name).Msg("failed to save setting")

			return s.render(c, fiber.Map{
				"Error": "Failed to save settings.",
			})
		}
	}

	return s.render(c, fiber.Map{
		"Saved": true,
	})
}

func checkbox(value string) string {
	if value == "on" || value == "true" {
		return "true"
	}

	return "false"
}
