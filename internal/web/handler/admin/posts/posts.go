// Package posts provides handlers for managing blog posts (CRUD) in the panel.
package posts

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/auth"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	categorycontroller "github.com/clearlane-advisory/clearlane-web/internal/db/controller/category"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/post"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/storage"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the base path for post management.
	Path = handler.RootPath + "admin/posts"

	// TemplateList is the template for listing posts.
	TemplateList = "admin/posts/list"
	// TemplateForm is the template for creating/updating a post.
	TemplateForm = "admin/posts/form"
)

// form is the post editor payload. The image arrives as a separate
// multipart file and is not part of this struct.
type form struct {
	Title       string `form:"title"        validate:"required,max=300"`
	Slug        string `form:"slug"         validate:"required,max=300"`
	Excerpt     string `form:"excerpt"      validate:"required,max=1000"`
	Body        string `form:"body"         validate:"required"`
	Category    string `form:"category"     validate:"max=120"`
	PublishedAt string `form:"published_at" validate:"required"`
}

// Service provides CRUD operations for blog posts.
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

func listNav() *navigation.Context {
	return navigation.NewContext("Posts", "admin", "posts").
		AddBreadcrumb("Panel", "/admin", false).
		AddBreadcrumb("Posts", Path, true)
}

// List shows the paginated post index, reusing the public query engine so
// the panel and the site agree on ordering and paging.
func (s *Service) List(c *fiber.Ctx) error {
	params := post.Params{
		Search: c.Query("q", ""),
		Page:   c.QueryInt("page", 1),
	}

	if params.Page < 1 {
		params.Page = 1
	}

	page, err := post.Query(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("post query failed")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, fiber.Map{
			"Navigation": listNav(),
			"Error":      "Failed to load posts",
		}, handler.BaseLayout)
	}

	return c.Render(TemplateList, fiber.Map{
		"Navigation": listNav(),
		"Posts":      page.Items,
		"Search":     params.Search,
		"Page":       params.Page,
		"TotalPages": page.TotalPages,
		"HasPrev":    params.Page > 1,
		"HasNext":    params.Page < page.TotalPages,
		"PrevPage":   params.Page - 1,
		"NextPage":   params.Page + 1,
	}, handler.BaseLayout)
}

// New shows the creation form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, &models.BlogPost{PublishedAt: time.Now()}, "")
}

// Create stores a new post.
func (s *Service) Create(c *fiber.Ctx) error {
	p := new(models.BlogPost)

	if errMsg := s.apply(c, p); errMsg != "" {
		return s.renderForm(c, p, errMsg)
	}

	if err := post.Create(s.db, p); err != nil {
		log.Error().Err(err).Msg("failed to create post")
		return s.renderForm(c, p, "Failed to create post. Is the slug unique?")
	}

	return c.Redirect(Path)
}

// Edit shows the edit form for an existing post.
func (s *Service) Edit(c *fiber.Ctx) error {
	p, err := s.load(c)
	if err != nil {
		return err
	}

	return s.renderForm(c, p, "")
}

// Update stores changes to an existing post.
func (s *Service) Update(c *fiber.Ctx) error {
	p, err := s.load(c)
	if err != nil {
		return err
	}

	if errMsg := s.apply(c, p); errMsg != "" {
		return s.renderForm(c, p, errMsg)
	}

	if err := post.Update(s.db, p); err != nil {
		log.Error().Err(err).Uint64("post_id", p.ID).Msg("failed to update post")
		return s.renderForm(c, p, "Failed to update post.")
	}

	return c.Redirect(Path)
}

// Delete removes a post.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	if err := post.Delete(s.db, uint64(id)); err != nil {
		log.Error().Err(err).Int("post_id", id).Msg("failed to delete post")
		return fiber.ErrInternalServerError
	}

	return c.Redirect(Path)
}

func (s *Service) load(c *fiber.Ctx) (*models.BlogPost, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrNotFound
	}

	p, err := post.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, fiber.ErrNotFound
		}

		log.Error().Err(err).Int("post_id", id).Msg("failed to load post")

		return nil, fiber.ErrInternalServerError
	}

	return p, nil
}

// apply parses and validates the form into p. A non-empty return value is
// the message to show above the form.
func (s *Service) apply(c *fiber.Ctx, p *models.BlogPost) string {
	var f form

	if err := c.BodyParser(&f); err != nil {
		return "Could not read the form."
	}

	if err := s.validator.Struct(&f); err != nil {
		return "Title, slug, excerpt, body and publish date are required."
	}

	publishedAt, err := time.Parse("2006-01-02", f.PublishedAt)
	if err != nil {
		return "Publish date must look like 2026-01-31."
	}

	p.Title = f.Title
	p.Slug = f.Slug
	p.Excerpt = f.Excerpt
	p.Body = f.Body
	p.PublishedAt = publishedAt

	p.CategoryID = nil
	p.Category = nil

	if f.Category != "" {
		cat, err := categorycontroller.GetOrCreate(s.db, f.Category)
		if err != nil {
			log.Error().Err(err).Str("category", f.Category).Msg("failed to resolve category")
			return "Failed to save the category."
		}

		p.CategoryID = &cat.ID
	}

	if url, errMsg := s.uploadImage(c); errMsg != "" {
		return errMsg
	} else if url != "" {
		p.ImageURL = url
	}

	return ""
}

// uploadImage stores an optional header image and returns its public URL.
// No file selected is not an error.
func (s *Service) uploadImage(c *fiber.Ctx) (string, string) {
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
		log.Error().Err(err).Msg("image upload failed")
		return "", "Failed to store the uploaded image."
	}

	return s.store.PublicURL(storage.BucketImages, name), ""
}

func (s *Service) renderForm(c *fiber.Ctx, p *models.BlogPost, errMsg string) error {
	nav := navigation.NewContext("Edit Post", "admin", "posts").
		AddBreadcrumb("Panel", "/admin", false).
		AddBreadcrumb("Posts", Path, false).
		AddBreadcrumb(formTitle(p), "#", true)

	categories, err := categorycontroller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load categories")
	}

	status := fiber.StatusOK
	if errMsg != "" {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).Render(TemplateForm, fiber.Map{
		"Navigation": nav,
		"Post":       p,
		"Categories": categories,
		"Published":  p.PublishedAt.Format("2006-01-02"),
		"Error":      errMsg,
		"Action":     formAction(p),
	}, handler.BaseLayout)
}

func formTitle(p *models.BlogPost) string {
	if p.ID == 0 {
		return "New"
	}

	return "Edit"
}

func formAction(p *models.BlogPost) string {
	if p.ID == 0 {
		return Path
	}

	return Path + "/" + strconv.FormatUint(p.ID, 10)
}
