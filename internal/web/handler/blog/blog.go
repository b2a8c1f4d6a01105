// Package blog serves the public blog: a searchable, filterable, paginated
// index and a detail page per post.
package blog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/category"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/post"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the base path for the blog.
	Path = "/blog"

	// TemplateList is the template for the blog index.
	TemplateList = "blog/list"
	// TemplateDetail is the template for a single post.
	TemplateDetail = "blog/detail"
)

// Service is the blog handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the blog handler.
var Handler = Service{}

// Init initializes the blog handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:slug", s.Detail)
	})

	return nil
}

// List renders the blog index. Search and category arrive as query
// parameters. Category links and the search form never carry a page
// parameter, so changing either filter lands on page 1.
func (s *Service) List(c *fiber.Ctx) error {
	params := post.Params{
		Search:   c.Query("q", ""),
		Category: c.Query("category", post.AllCategories),
		Page:     c.QueryInt("page", 1),
	}

	if params.Page < 1 {
		params.Page = 1
	}

	nav := navigation.NewContext("Blog", "blog", "list").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Blog", Path, true)

	// A failed query degrades to the empty-result rendition of the page;
	// the failure itself goes to the log only.
	page, err := post.Query(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("blog query failed")

		page = new(post.Page)
	}

	categories, err := category.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load categories")
		// the filter bar simply renders without category pills
	}

	bind := fiber.Map{
		"Navigation": nav,
		"Posts":      page.Items,
		"Categories": categories,
		"Search":     params.Search,
		"Category":   params.Category,
		"AllLabel":   post.AllCategories,
		"TotalPosts": page.TotalPosts,
		"TotalPages": page.TotalPages,
		"Page":       params.Page,
		"HasPrev":    params.Page > 1,
		"HasNext":    params.Page < page.TotalPages,
		"PrevPage":   params.Page - 1,
		"NextPage":   params.Page + 1,
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateList, bind, handler.BaseLayout)
}

// Detail renders a single post looked up by slug.
func (s *Service) Detail(c *fiber.Ctx) error {
	slug := c.Params("slug")

	p, err := post.GetBySlug(s.db, slug)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Str("slug", slug).Msg("failed to load post")

		return fiber.ErrInternalServerError
	}

	nav := navigation.NewContext(p.Title, "blog", "detail").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Blog", Path, false).
		AddBreadcrumb(p.Title, Path+"/"+p.Slug, true)

	bind := fiber.Map{
		"Navigation": nav,
		"Post":       p,
		"Published":  p.PublishedAt.Format("January 2, 2006"),
		"Category":   p.CategoryName(),
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateDetail, bind, handler.BaseLayout)
}
