// Package main provides the entry point for the Clearlane Advisory website.
// It initializes and runs a web server using the Fiber framework that serves
// the public marketing pages (blog, team, document library, lead-capture
// forms, AI-readiness assessment) together with a session-gated admin panel
// for managing site content. The application uses gorm for data persistence
// and a key-value settings table for runtime feature toggles such as the
// announcement banner.
package main
