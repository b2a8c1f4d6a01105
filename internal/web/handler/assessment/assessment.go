// Package assessment serves the multi-step AI readiness wizard.
//
// The flow is strictly linear: hero, questions, contact, results. Each form
// submission carries the step it was rendered for, and a submission for the
// wrong step restarts the wizard instead of erroring. A tracking session is
// created the moment a visitor lands on the hero page; abandoning the
// wizard leaves the session row without a completion timestamp, which is
// exactly the signal the funnel report needs.
package assessment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/assessment"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	controller "github.com/clearlane-advisory/clearlane-web/internal/db/controller/assessment"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
	"github.com/clearlane-advisory/clearlane-web/internal/generate"
	"github.com/clearlane-advisory/clearlane-web/internal/notify"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/navigation"
)

const (
	// Path is the base path for the assessment wizard.
	Path = "/assessment"

	// TemplateHero is the wizard's landing step.
	TemplateHero = "assessment/hero"
	// TemplateQuestions is the questionnaire step.
	TemplateQuestions = "assessment/questions"
	// TemplateContact is the contact capture step.
	TemplateContact = "assessment/contact"
	// TemplateResults is the final step showing the generated summary.
	TemplateResults = "assessment/results"

	// sessionCookie carries the tracking session ID between steps.
	sessionCookie = "clearlane_assessment"

	generateTimeout = 45 * time.Second
	notifyTimeout   = 15 * time.Second
)

// Service is the assessment handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	generator assessment.Generator
	notifier  *notify.Notifier
	validator *validator.Validate
}

// Handler is the assessment handler.
var Handler = Service{}

// Init initializes the assessment handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.generator = generate.New(cfg.Generation)
	s.notifier = notify.New(cfg.Notify)
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Hero)
		router.Get("/questions", s.Questions)
		router.Post("/questions", s.SubmitQuestions)
		router.Post("/submit", s.Submit)
		router.Get("/results/:id", s.Results)
	})

	return nil
}

func (s *Service) nav(title string) *navigation.Context {
	return navigation.NewContext(title, "assessment", "assessment").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("AI Readiness Assessment", Path, true)
}

func (s *Service) render(c *fiber.Ctx, template string, bind fiber.Map) error {
	bind["Navigation"] = s.nav("AI Readiness Assessment")

	for k, v := range announcement.View(c, s.db) {
		bind[k] = v
	}

	return c.Render(template, bind, handler.BaseLayout)
}

// Hero renders the wizard landing step and eagerly creates the tracking
// session. The insert runs in the background: session accounting must never
// delay or break the page.
func (s *Service) Hero(c *fiber.Ctx) error {
	if c.Cookies(sessionCookie) == "" {
		session := &models.AssessmentSession{
			ID:          uuid.NewString(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			UTMSource:   c.Query("utm_source"),
			UTMMedium:   c.Query("utm_medium"),
			UTMCampaign: c.Query("utm_campaign"),
			UTMTerm:     c.Query("utm_term"),
			UTMContent:  c.Query("utm_content"),
		}

		cookie := &fiber.Cookie{
			Name:     sessionCookie,
			Value:    session.ID,
			Secure:   true,
			HTTPOnly: true,
			SameSite: "Lax",
		}

		if s.cfg.DevMode {
			cookie.Secure = false
		}

		c.Cookie(cookie)

		go func() {
			if err := controller.InsertSession(s.db, session); err != nil {
				log.Error().Err(err).Msg("failed to record assessment session")
			}
		}()
	}

	return s.render(c, TemplateHero, fiber.Map{
		"Step": assessment.StepHero,
	})
}

// Questions renders the questionnaire step.
func (s *Service) Questions(c *fiber.Ctx) error {
	return s.render(c, TemplateQuestions, fiber.Map{
		"Step": assessment.StepQuestions,
	})
}

// SubmitQuestions validates the answers and advances to the contact step.
// The answers ride along as hidden fields; nothing is persisted until the
// visitor hands over their contact details.
func (s *Service) SubmitQuestions(c *fiber.Ctx) error {
	if err := s.checkStep(c, assessment.StepQuestions, assessment.StepContact); err != nil {
		return c.Redirect(Path)
	}

	var answers assessment.Answers
	if err := c.BodyParser(&answers); err != nil {
		return c.Redirect(Path)
	}

	if err := s.validator.Struct(&answers); err != nil {
		return s.render(c, TemplateQuestions, fiber.Map{
			"Step":    assessment.StepQuestions,
			"Error":   "Please answer every question.",
			"Answers": answers,
		})
	}

	return s.render(c, TemplateContact, fiber.Map{
		"Step":    assessment.StepContact,
		"Answers": answers,
	})
}

// Submit persists the response, runs generation and lands on the results
// page. Persistence and generation failures both degrade to the canned
// fallback summary; from the visitor's point of view the wizard always
// completes.
func (s *Service) Submit(c *fiber.Ctx) error {
	if err := s.checkStep(c, assessment.StepContact, assessment.StepResults); err != nil {
		return c.Redirect(Path)
	}

	var (
		answers assessment.Answers
		contact assessment.Contact
	)

	if err := c.BodyParser(&answers); err != nil {
		return c.Redirect(Path)
	}

	if err := c.BodyParser(&contact); err != nil {
		return c.Redirect(Path)
	}

	if err := s.validator.Struct(&answers); err != nil {
		return c.Redirect(Path)
	}

	if err := s.validator.Struct(&contact); err != nil {
		return s.render(c, TemplateContact, fiber.Map{
			"Step":    assessment.StepContact,
			"Error":   "Please fill in your name and a valid email address.",
			"Answers": answers,
			"Contact": contact,
		})
	}

	response := &models.AssessmentResponse{
		SessionID:      c.Cookies(sessionCookie),
		ContactName:    contact.Name,
		ContactEmail:   contact.Email,
		ContactCompany: contact.Company,
		Industry:       answers.Industry,
		TeamSize:       answers.TeamSize,
		DataUsage:      answers.DataUsage,
		Goals:          answers.Goals,
		Challenges:     answers.Challenges,
		Status:         models.ResponseStatusGenerating,
	}

	if err := controller.InsertResponse(s.db, response); err != nil {
		log.Error().Err(err).Msg("failed to store assessment response")

		// nothing to update later, show the canned summary directly
		return s.render(c, TemplateResults, fiber.Map{
			"Step":   assessment.StepResults,
			"Result": assessment.FallbackText,
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), generateTimeout)
	defer cancel()

	outcome := assessment.Generate(ctx, s.generator, answers, contact)

	status := models.ResponseStatusDone
	if outcome.Fallback {
		status = models.ResponseStatusFallback
	}

	if err := controller.SetResponseResult(s.db, response.ID, status, outcome.Text); err != nil {
		log.Error().Err(err).Uint64("response_id", response.ID).
			Msg("failed to store assessment result")
	}

	if sid := response.SessionID; sid != "" {
		if err := controller.MarkSessionCompleted(s.db, sid, time.Now()); err != nil {
			log.Debug().Err(err).Str("session_id", sid).
				Msg("failed to mark assessment session completed")
		}
	}

	go s.notifyLead(answers, contact)

	// Without a session cookie the results page has nothing to match the
	// response against, so render the summary directly instead.
	if response.SessionID == "" {
		return s.render(c, TemplateResults, fiber.Map{
			"Step":   assessment.StepResults,
			"Result": outcome.Text,
			"Name":   contact.Name,
		})
	}

	return c.Redirect(Path + "/results/" + strconv.FormatUint(response.ID, 10))
}

// Results renders the summary for a stored response. The response must
// belong to the visitor's own tracking session; the row ID alone is not
// enough, contact details must not be enumerable. A response still in the
// generating state renders a brief holding page that refreshes itself.
func (s *Service) Results(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	var response models.AssessmentResponse
	if err := s.db.First(&response, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Int("response_id", id).Msg("failed to load assessment response")

		return fiber.ErrInternalServerError
	}

	sid := c.Cookies(sessionCookie)
	if sid == "" || response.SessionID != sid {
		return fiber.ErrNotFound
	}

	return s.render(c, TemplateResults, fiber.Map{
		"Step":       assessment.StepResults,
		"Result":     response.Result,
		"Generating": response.Status == models.ResponseStatusGenerating,
		"Name":       response.ContactName,
	})
}

// checkStep verifies the submitted form belongs to the expected wizard step
// and that moving to the next step is a legal transition.
func (s *Service) checkStep(c *fiber.Ctx, expected, next assessment.Step) error {
	from := assessment.Step(c.FormValue("step"))
	if from != expected {
		return assessment.ErrInvalidTransition
	}

	return assessment.Advance(from, next)
}

func (s *Service) notifyLead(answers assessment.Answers, contact assessment.Contact) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.Send(ctx, notify.Lead{
		Kind:    "assessment",
		Name:    contact.Name,
		Email:   contact.Email,
		Company: contact.Company,
		Summary: "Industry: " + answers.Industry + ", team size: " + answers.TeamSize,
	})
	if err != nil && !errors.Is(err, notify.ErrDisabled) {
		log.Error().Err(err).Msg("lead webhook failed")
	}
}
