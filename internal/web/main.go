package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/auth"
	"github.com/clearlane-advisory/clearlane-web/internal/config"
	fiberlogger "github.com/clearlane-advisory/clearlane-web/internal/logger/adapter/fiber"
	admindocuments "github.com/clearlane-advisory/clearlane-web/internal/web/handler/admin/documents"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/admin/overview"
	adminposts "github.com/clearlane-advisory/clearlane-web/internal/web/handler/admin/posts"
	adminsettings "github.com/clearlane-advisory/clearlane-web/internal/web/handler/admin/settings"
	adminteam "github.com/clearlane-advisory/clearlane-web/internal/web/handler/admin/team"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/announcement"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/assessment"
	oidchandler "github.com/clearlane-advisory/clearlane-web/internal/web/handler/auth/oidc"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/blog"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/contact"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/documents"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/home"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/login"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/logout"
	"github.com/clearlane-advisory/clearlane-web/internal/web/handler/team"
)

// CheckAlivePath answers load balancer health checks.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// redirect logged-in operators past the login page
	app.Use(AuthMiddleware)

	// Initialize auth service
	authService := auth.NewService(db)

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}

	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// public site handlers
	_ = home.Handler.Init(app, cfg, db)
	_ = blog.Handler.Init(app, cfg, db)
	_ = team.Handler.Init(app, cfg, db)
	_ = documents.Handler.Init(app, cfg, db)
	_ = contact.Handler.Init(app, cfg, db)
	_ = assessment.Handler.Init(app, cfg, db)
	_ = announcement.Handler.Init(app, cfg, db)

	// panel authentication
	_ = login.Handler.Init(app, cfg, db)
	logout.Handler.Init(app, cfg)
	oidchandler.Handler.Init(app, cfg, db)

	// panel handlers (each route carries its own admin check)
	overview.Handler.Init(app, cfg, db, authService)
	adminsettings.Handler.Init(app, cfg, db, authService)
	adminposts.Handler.Init(app, cfg, db, authService)
	adminteam.Handler.Init(app, cfg, db, authService)
	admindocuments.Handler.Init(app, cfg, db, authService)

	return service
}
