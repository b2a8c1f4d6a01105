// Package home serves the landing page.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/post"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the path to the landing page.
	Path = "/"

	// TemplateName is the template rendered for the landing page.
	TemplateName = "home"

	// featuredPostCount is how many recent posts the landing page teases.
	featuredPostCount = 3
)

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get renders the landing page with the most recent posts.
func (s *Service) Get(c *fiber.Ctx) error {
	var featured []post.Item

	page, err := post.Query(s.db, post.Params{Page: 1})
	if err != nil {
		// the landing page still renders without the teaser section
		log.Error().Err(err).Msg("failed to query recent posts")
	} else {
		featured = page.Items
		if len(featured) > featuredPostCount {
			featured = featured[:featuredPostCount]
		}
	}

	nav := navigation.NewContext("Clearlane Advisory", "home", "home")

	bind := fiber.Map{
		"Navigation": nav,
		"Posts":      featured,
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}
