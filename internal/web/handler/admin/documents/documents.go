// Package documents provides handlers for managing the document library in
// the panel: upload, list and delete.
package documents

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/auth"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/document"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/storage"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the base path for document management.
	Path = handler.RootPath + "admin/documents"

	// TemplateName is the template for the library management page.
	TemplateName = "admin/documents"
)

// Service provides upload and delete operations for documents.
type Service struct {
	handler.Service
	cfg   *config.Config
	db    *gorm.DB
	store *storage.Store
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

	app.Get(Path, auth.RequireAdmin(authService), s.List)
	app.Post(Path, auth.RequireAdmin(authService), s.Upload)
	app.Post(Path+"/:id/delete", auth.RequireAdmin(authService), s.Delete)
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Documents", "admin", "documents").
		AddBreadcrumb("Panel", "/admin", false).
		AddBreadcrumb("Documents", Path, true)
}

func (s *Service) render(c *fiber.Ctx, extra fiber.Map) error {
	entries, err := document.GetAll(s.db, func(p string) string {
		return s.store.PublicURL(storage.BucketDocuments, p)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load documents")
	}

	bind := fiber.Map{
		"Navigation": s.nav(),
		"Documents":  entries,
	}

	for k, v := range extra {
		bind[k] = v
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}

// List shows the library with the upload form.
func (s *Service) List(c *fiber.Ctx) error {
	return s.render(c, nil)
}

// Upload stores a new document: bytes into the object store first, then
// the metadata row. If the row insert fails the stored object is removed
// again so the library and the store stay in step.
func (s *Service) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return s.render(c, fiber.Map{"Error": "Choose a file to upload."})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return s.render(c, fiber.Map{"Error": "Could not read the uploaded file."})
	}
	defer f.Close()

	name := storage.ObjectName(fileHeader.Filename)

	mimeType, size, err := s.store.Upload(storage.BucketDocuments, name, f)
	if err != nil {
		log.Error().Err(err).Msg("document upload failed")
		return s.render(c, fiber.Map{"Error": "Failed to store the uploaded file."})
	}

	doc := &models.Document{
		Filename:         name,
		OriginalFilename: fileHeader.Filename,
		FilePath:         name,
		FileSize:         size,
		MimeType:         mimeType,
		Description:      c.FormValue("description"),
	}

	if err := document.Create(s.db, doc); err != nil {
		log.Error().Err(err).Msg("failed to store document row")

		if delErr := s.store.Delete(storage.BucketDocuments, name); delErr != nil {
			log.Error().Err(delErr).Str("object", name).Msg("failed to remove orphaned object")
		}

		return s.render(c, fiber.Map{"Error": "Failed to save the document."})
	}

	return c.Redirect(Path)
}

// Delete removes a document row and its stored object.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	doc, err := document.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Int("document_id", id).Msg("failed to load document")

		return fiber.ErrInternalServerError
	}

	if err := document.Delete(s.db, doc.ID); err != nil {
		log.Error().Err(err).Uint64("document_id", doc.ID).Msg("failed to delete document row")
		return fiber.ErrInternalServerError
	}

	if err := s.store.Delete(storage.BucketDocuments, doc.FilePath); err != nil {
		log.Error().Err(err).Str("object", doc.FilePath).Msg("failed to delete stored object")
	}

	return c.Redirect(Path)
}
