// Package contact serves the contact form and records submissions.
package contact

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/contact"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/notify"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the path to the contact page.
	Path = "/contact"

	// TemplateName is the template rendered for the contact page.
	TemplateName = "contact"

	notifyTimeout = 15 * time.Second
)

// form is the contact form payload.
type form struct {
	Name    string `form:"name"    validate:"required,max=200"`
	Email   string `form:"email"   validate:"required,email,max=255"`
	Company string `form:"company" validate:"max=200"`
	Message string `form:"message" validate:"required,max=5000"`
}

// Service is the contact handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	notifier  *notify.Notifier
	validator *validator.Validate
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.notifier = notify.New(cfg.Notify)
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Contact", "contact", "contact").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Contact", Path, true)
}

// Get renders the contact form.
func (s *Service) Get(c *fiber.Ctx) error {
	bind := fiber.Map{
		"Navigation": s.nav(),
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}

// Post records a submission and pings the lead webhook. The webhook is
// best-effort: a slow or broken endpoint never costs the visitor their
// confirmation.
func (s *Service) Post(c *fiber.Ctx) error {
	var f form

	if err := c.BodyParser(&f); err != nil {
		return s.renderError(c, "Please check the form and try again.", f)
	}

	if err := s.validator.Struct(&f); err != nil {
		return s.renderError(c, "Please fill in your name, a valid email address and a message.", f)
	}

	msg := &models.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Company: f.Company,
		Message: f.Message,
	}

	if err := contact.Create(s.db, msg); err != nil {
		log.Error().Err(err).Msg("failed to store contact message")
		return s.renderError(c, "Something went wrong on our side. Please try again later.", f)
	}

	go s.notifyLead(f)

	bind := fiber.Map{
		"Navigation": s.nav(),
		"Submitted":  true,
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}

func (s *Service) notifyLead(f form) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.Send(ctx, notify.Lead{
		Kind:    "contact",
		Name:    f.Name,
		Email:   f.Email,
		Company: f.Company,
		Summary: f.Message,
	})
	if err != nil && !errors.Is(err, notify.ErrDisabled) {
		log.Error().Err(err).Msg("lead webhook failed")
	}
}

func (s *Service) renderError(c *fiber.Ctx, message string, f form) error {
	bind := fiber.Map{
		"Navigation": s.nav(),
		"Error":      message,
		"Form":       f,
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Status(fiber.StatusBadRequest).Render(TemplateName, bind, handler.BaseLayout)
}
