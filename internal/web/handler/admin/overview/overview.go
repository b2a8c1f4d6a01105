// Package overview serves the content-management panel landing page with
// content counts and the latest inbound leads.
package overview

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/auth"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the path to the panel landing page.
	Path = handler.RootPath + "admin"

	// TemplateName is the template rendered for the panel landing page.
	TemplateName = "admin/overview"

	recentLimit = 10
)

// Service is the overview handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the overview handler.
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
}

// Get renders the panel landing page.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Panel", "admin", "overview").
		AddBreadcrumb("Panel", Path, true)

	counts := map[string]int64{}

	for name, model := range map[string]interface{}{
		"Posts":     &models.BlogPost{},
		"Members":   &models.TeamMember{},
		"Documents": &models.Document{},
		"Messages":  &models.ContactMessage{},
		"Responses": &models.AssessmentResponse{},
	} {
		var n int64
		if err := s.db.Model(model).Count(&n).Error; err != nil {
			log.Error().Err(err).Str("model", name).Msg("count failed")
		}

		counts[name] = n
	}

	var messages []models.ContactMessage
	if err := s.db.Order("created_at DESC").Limit(recentLimit).Find(&messages).Error; err != nil {
		log.Error().Err(err).Msg("failed to load recent messages")
	}

	var responses []models.AssessmentResponse
	if err := s.db.Order("created_at DESC").Limit(recentLimit).Find(&responses).Error; err != nil {
		log.Error().Err(err).Msg("failed to load recent responses")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Counts":     counts,
		"Messages":   messages,
		"Responses":  responses,
	}, handler.BaseLayout)
}
