package config

import (
	"time"

	"github.com/clearlane-advisory/clearlane-web/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode    bool // enable dev mode for development
	DB         DB
	Log        logger.Log
	Title      string
	Webserver  Webserver
	Storage    Storage
	Generation Generation
	Notify     Notify
	OIDC       OIDC
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool    // enable static file browsing (for development purposes only)
	CleanPath           bool    // use clean path middleware to allow multi slash requests
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Session             Session // session settings
}

// Storage holds the document and image object storage settings.
type Storage struct {
	Root          string // filesystem root holding all buckets
	PublicBaseURL string // base URL public object paths are served under
}

// Generation holds the settings for the OpenAI-compatible generation backend
// used by the AI-readiness assessment.
type Generation struct {
	Endpoint     string
	Model        string
	APIKey       string
	SystemPrompt string
	Timeout      time.Duration
}

// Notify holds the outbound lead-notification webhook settings.
type Notify struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// OIDC holds the optional OpenID Connect admin login settings.
type OIDC struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}
