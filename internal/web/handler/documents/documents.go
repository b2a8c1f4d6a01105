// Package documents serves the public document library and streams the
// stored files themselves.
package documents

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/document"
	"github.com/clearlane-advisory/clearlane-web/internal/storage"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the path to the document library page.
	Path = "/documents"

	// FilesPath serves stored objects (documents and uploaded images).
	FilesPath = "/files"

	// TemplateName is the template rendered for the library page.
	TemplateName = "documents"
)

// Service is the documents handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	db    *gorm.DB
	store *storage.Store
}

// Handler is the documents handler.
var Handler = Service{}

// Init initializes the documents handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.store = storage.New(cfg.Storage.Root, cfg.Storage.PublicBaseURL)

	app.Get(Path, s.List)
	app.Get(FilesPath+"/:bucket/:name", s.Serve)

	return nil
}

// List renders the document library, newest upload first.
func (s *Service) List(c *fiber.Ctx) error {
	entries, err := document.GetAll(s.db, func(p string) string {
		return s.store.PublicURL(storage.BucketDocuments, p)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load documents")
		return fiber.ErrInternalServerError
	}

	nav := navigation.NewContext("Documents", "documents", "documents").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Documents", Path, true)

	bind := fiber.Map{
		"Navigation": nav,
		"Documents":  entries,
	}

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}

// Serve streams a stored object. The object name is the generated one, so
// guessing other visitors' uploads is not a concern; traversal is rejected
// by the store itself.
func (s *Service) Serve(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	name := c.Params("name")

	f, err := s.store.Open(bucket, name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) || errors.Is(err, storage.ErrEmptyPath) {
			return fiber.ErrBadRequest
		}

		return fiber.ErrNotFound
	}

	return c.SendStream(f)
}
