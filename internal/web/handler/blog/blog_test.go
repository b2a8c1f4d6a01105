package blog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

// noOpViews writes the template name so tests can tell which template a
// handler picked without parsing HTML.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Setting{},
		&models.Category{},
		&models.BlogPost{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func newTestService(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	app := fiber.New(fiber.Config{Views: noOpViews{}})
	db := newTestDB(t)

	var s Service
	if err := s.Init(app, &config.Config{}, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	return app, db
}

func seedPost(t *testing.T, db *gorm.DB, slug, title string) {
	t.Helper()

	err := db.Create(&models.BlogPost{
		Slug:        slug,
		Title:       title,
		Excerpt:     "excerpt",
		Body:        "body",
		PublishedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}).Error
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)

	return resp, string(body)
}

func TestList_RendersIndexTemplate(t *testing.T) {
	app, db := newTestService(t)
	seedPost(t, db, "first-post", "First Post")

	resp, body := get(t, app, "/blog")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if body != TemplateList {
		t.Fatalf("expected template %q, got %q", TemplateList, body)
	}
}

func TestList_OutOfRangePageStillRenders(t *testing.T) {
	app, db := newTestService(t)
	seedPost(t, db, "only-post", "Only Post")

	resp, _ := get(t, app, "/blog?page=99")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("an out-of-range page must render empty, got %d", resp.StatusCode)
	}
}

func TestList_UnknownCategoryStillRenders(t *testing.T) {
	app, db := newTestService(t)
	seedPost(t, db, "a-post", "A Post")

	resp, _ := get(t, app, "/blog?category=Nope")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("an unknown category must render an empty list, got %d", resp.StatusCode)
	}
}

func TestList_QueryErrorRendersEmptyList(t *testing.T) {
	app, db := newTestService(t)

	// a broken posts table must not leak an error to the visitor
	if err := db.Migrator().DropTable(&models.BlogPost{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	resp, body := get(t, app, "/blog?q=anything")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("a query failure must degrade to the empty page, got %d", resp.StatusCode)
	}

	if body != TemplateList {
		t.Fatalf("expected template %q, got %q", TemplateList, body)
	}
}

func TestDetail_KnownSlug(t *testing.T) {
	app, db := newTestService(t)
	seedPost(t, db, "hello-world", "Hello World")

	resp, body := get(t, app, "/blog/hello-world")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if body != TemplateDetail {
		t.Fatalf("expected template %q, got %q", TemplateDetail, body)
	}
}

func TestDetail_UnknownSlugIs404(t *testing.T) {
	app, _ := newTestService(t)

	resp, _ := get(t, app, "/blog/nope")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
