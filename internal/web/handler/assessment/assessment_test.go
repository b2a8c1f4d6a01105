package assessment

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

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
		&models.AssessmentSession{},
		&models.AssessmentResponse{},
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
	if err := s.Init(app, &config.Config{DevMode: true}, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	return app, db
}

func getResults(t *testing.T, app *fiber.App, target, session string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: session})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)

	return resp, string(body)
}

func seedResponse(t *testing.T, db *gorm.DB, sessionID string) *models.AssessmentResponse {
	t.Helper()

	response := &models.AssessmentResponse{
		SessionID:    sessionID,
		ContactName:  "Ada Lovelace",
		ContactEmail: "ada@example.com",
		Result:       "summary text",
		Status:       models.ResponseStatusDone,
	}

	if err := db.Create(response).Error; err != nil {
		t.Fatalf("failed to seed response: %v", err)
	}

	return response
}

func TestResults_OwnSessionSeesSummary(t *testing.T) {
	app, db := newTestService(t)
	seedResponse(t, db, "session-one")

	resp, body := getResults(t, app, "/assessment/results/1", "session-one")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if body != TemplateResults {
		t.Fatalf("expected template %q, got %q", TemplateResults, body)
	}
}

func TestResults_NoCookieIs404(t *testing.T) {
	app, db := newTestService(t)
	seedResponse(t, db, "session-one")

	resp, _ := getResults(t, app, "/assessment/results/1", "")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("a cookieless request must not read stored responses, got %d", resp.StatusCode)
	}
}

func TestResults_ForeignSessionIs404(t *testing.T) {
	app, db := newTestService(t)
	seedResponse(t, db, "session-one")

	resp, _ := getResults(t, app, "/assessment/results/1", "session-two")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("another visitor's session must not read the response, got %d", resp.StatusCode)
	}
}

func TestResults_UnknownIDIs404(t *testing.T) {
	app, _ := newTestService(t)

	resp, _ := getResults(t, app, "/assessment/results/99", "session-one")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHero_SetsSessionCookie(t *testing.T) {
	app, _ := newTestService(t)

	resp, body := getResults(t, app, "/assessment", "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if body != TemplateHero {
		t.Fatalf("expected template %q, got %q", TemplateHero, body)
	}

	var found bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			found = true
		}
	}

	if !found {
		t.Fatal("expected a tracking session cookie")
	}
}
