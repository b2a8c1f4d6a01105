// Package team provides handlers for managing the team roster in the panel.
package team

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/auth"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	teamcontroller "github.com/clearlane-advisory/clearlane-web/internal/db/controller/team"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/storage"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the base path for team management.
	Path = handler.RootPath + "admin/team"

	// TemplateList is the template for listing members.
	TemplateList = "admin/team/list"
	// TemplateForm is the template for creating/updating a member.
	TemplateForm = "admin/team/form"
)

// form is the member editor payload.
type form struct {
	Name     string `form:"name"     validate:"required,max=200"`
	Position string `form:"position" validate:"max=200"`
	Bio      string `form:"bio"      validate:"max=5000"`
	Order    int    `form:"order"`
}

// Service provides CRUD operations for team members.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	store     *storage.Store
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.store = storage.New(cfg.Storage.Root, cfg.Storage.PublicBaseURL)
	s.validator = validator.New()

	app.Get(Path, auth.RequireAdmin(authService), s.List)
	app.Get(Path+"/new", auth.RequireAdmin(authService), s.New)
	app.Post(Path, auth.RequireAdmin(authService), s.Create)
	app.Get(Path+"/:id/edit", auth.RequireAdmin(authService), s.Edit)
	app.Post(Path+"/:id", auth.RequireAdmin(authService), s.Update)
	app.Post(Path+"/:id/delete", auth.RequireAdmin(authService), s.Delete)
}

// List shows the roster in display order.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Team", "admin", "team").
		AddBreadcrumb("Panel", "/admin", false).
		AddBreadcrumb("Team", Path, true)

	members, err := teamcontroller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load team members")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, fiber.Map{
			"Navigation": nav,
			"Error":      "Failed to load team members",
		}, handler.BaseLayout)
	}

	return c.Render(TemplateList, fiber.Map{
		"Navigation": nav,
		"Members":    members,
	}, handler.BaseLayout)
}

// New shows the creation form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, &models.TeamMember{}, "")
}

// Create stores a new member. The display order is assigned by the
// controller (appended after the current roster) unless one was given.
func (s *Service) Create(c *fiber.Ctx) error {
	m := new(models.TeamMember)

	if errMsg := s.apply(c, m); errMsg != "" {
		return s.renderForm(c, m, errMsg)
	}

	if err := teamcontroller.Create(s.db, m); err != nil {
		log.Error().Err(err).Msg("failed to create team member")
		return s.renderForm(c, m, "Failed to create team member.")
	}

	return c.Redirect(Path)
}

// Edit shows the edit form for an existing member.
func (s *Service) Edit(c *fiber.Ctx) error {
	m, err := s.load(c)
	if err != nil {
		return err
	}

	return s.renderForm(c, m, "")
}

// Update stores changes to an existing member.
func (s *Service) Update(c *fiber.Ctx) error {
	m, err := s.load(c)
	if err != nil {
		return err
	}

	if errMsg := s.apply(c, m); errMsg != "" {
		return s.renderForm(c, m, errMsg)
	}

	if err := teamcontroller.Update(s.db, m); err != nil {
		log.Error().Err(err).Uint64("member_id", m.ID).Msg("failed to update team member")
		return s.renderForm(c, m, "Failed to update team member.")
	}

	return c.Redirect(Path)
}

// Delete removes a member from the roster.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	if err := teamcontroller.Delete(s.db, uint64(id)); err != nil {
		log.Error().Err(err).Int("member_id", id).Msg("failed to delete team member")
		return fiber.ErrInternalServerError
	}

	return c.Redirect(Path)
}

func (s *Service) load(c *fiber.Ctx) (*models.TeamMember, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrNotFound
	}

	m, err := teamcontroller.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, teamcontroller.ErrMemberNotFound) {
			return nil, fiber.ErrNotFound
		}

		log.Error().Err(err).Int("member_id", id).Msg("failed to load team member")

		return nil, fiber.ErrInternalServerError
	}

	return m, nil
}

func (s *Service) apply(c *fiber.Ctx, m *models.TeamMember) string {
	var f form

	if err := c.BodyParser(&f); err != nil {
		return "Could not read the form."
	}

	if err := s.validator.Struct(&f); err != nil {
		return "A name is required."
	}

	m.Name = f.Name
	m.Position = f.Position
	m.Bio = f.Bio

	if f.Order > 0 {
		m.Order = f.Order
	}

	if url, errMsg := s.uploadPortrait(c); errMsg != "" {
		return errMsg
	} else if url != "" {
		m.ImageURL = url
	}

	return ""
}

// uploadPortrait stores an optional portrait and returns its public URL.
func (s *Service) uploadPortrait(c *fiber.Ctx) (string, string) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return "", ""
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", "Could not read the uploaded image."
	}
	defer f.Close()

	name := storage.ObjectName(fileHeader.Filename)

	if _, _, err := s.store.Upload(storage.BucketImages, name, f); err != nil {
		log.Error().Err(err).Msg("portrait upload failed")
		return "", "Failed to store the uploaded image."
	}

	return s.store.PublicURL(storage.BucketImages, name), ""
}

func (s *Service) renderForm(c *fiber.Ctx, m *models.TeamMember, errMsg string) error {
	title := "New Member"
	action := Path

	if m.ID != 0 {
		title = "Edit Member"
		action = Path + "/" + strconv.FormatUint(m.ID, 10)
	}

	nav := navigation.NewContext(title, "admin", "team").
		AddBreadcrumb("Panel", "/admin", false).
		AddBreadcrumb("Team", Path, false).
		AddBreadcrumb(title, "#", true)

	status := fiber.StatusOK
	if errMsg != "" {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).Render(TemplateForm, fiber.Map{
		"Navigation": nav,
		"Member":     m,
		"Error":      errMsg,
		"Action":     action,
	}, handler.BaseLayout)
}
