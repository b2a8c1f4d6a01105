// Package announce implements the announcement banner visibility policy.
//
// The banner is gated by two remote settings (enabled flag and optional end
// date) combined with a client-persisted dismissal record. The decision
// core is a pure function over (flags, dismissal, now) so it can be tested
// without a database or cookie jar; fetching the settings and reading the
// cookie are the callers' concern.
package announce

import (
	"encoding/json"
	"time"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

const (
	// CurrentVersion is the announcement version compiled into this build.
	// Dismissals recorded against any other version are ignored.
	CurrentVersion = "glean_partnership_2024"

	// DismissalTTL is how long a matching dismissal suppresses the banner.
	DismissalTTL = 30 * 24 * time.Hour

	// CookieName holds the dismissal record in the visitor's browser.
	CookieName = "clearlane_announcement"
)

// Visibility is the computed banner state.
type Visibility int

const (
	// Loading is the zero state of a Gate before flags were loaded. A
	// loading gate never shows the banner.
	Loading Visibility = iota
	// Hidden means the banner must not render.
	Hidden
	// Visible means the banner renders with a dismiss control.
	Visible
)

// String implements fmt.Stringer for readable logs and tests.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "loading"
	}
}

// Flags are the remote announcement settings. The zero value is the
// fail-safe default: disabled, never shown.
type Flags struct {
	Enabled bool
	// EndDate is the moment after which the banner never shows. The zero
	// time means "never expires" (missing or unparseable setting).
	EndDate time.Time
}

// ParseFlags builds Flags from the raw settings values fetched for
// models.SettingAnnouncementEnabled and models.SettingAnnouncementEndDate.
// Missing keys and unparseable values default fail-safe: enabled only on an
// explicit "true", end date only on a parseable value.
func ParseFlags(values map[string]string) Flags {
	var f Flags

	f.Enabled = values[models.SettingAnnouncementEnabled] == "true"

	if raw, ok := values[models.SettingAnnouncementEndDate]; ok {
		f.EndDate = parseEndDate(raw)
	}

	return f
}

// parseEndDate accepts RFC 3339 timestamps and bare dates; anything else
// means "never expires".
func parseEndDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}

	return time.Time{}
}

// Dismissal is the client-persisted record written when a visitor dismisses
// the banner. It is owned by the client and never synced to the server.
type Dismissal struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ParseDismissal decodes a stored dismissal record. A malformed record is
// treated as "no dismissal" (fail-open: the banner shows again).
func ParseDismissal(raw []byte) *Dismissal {
	if len(raw) == 0 {
		return nil
	}

	var d Dismissal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil
	}

	if d.Version == "" || d.Timestamp.IsZero() {
		return nil
	}

	return &d
}

// Encode serializes the dismissal for client storage.
func (d *Dismissal) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// suppresses reports whether the dismissal is honored at the given time:
// the version must match the current build's version and the record must be
// at most DismissalTTL old.
func (d *Dismissal) suppresses(now time.Time) bool {
	if d == nil {
		return false
	}

	if d.Version != CurrentVersion {
		return false
	}

	return now.Sub(d.Timestamp) <= DismissalTTL
}

// expired reports whether now is strictly after the end date. A zero end
// date never expires.
func (f Flags) expired(now time.Time) bool {
	return !f.EndDate.IsZero() && now.After(f.EndDate)
}

// Resolve computes the banner visibility from the remote flags, the local
// dismissal record and the current time:
//
//  1. disabled (or flags missing/failed, which parse to disabled) → Hidden
//  2. end date present and now strictly after it → Hidden
//  3. dismissal present, current version, at most 30 days old → Hidden
//  4. otherwise → Visible
func Resolve(f Flags, d *Dismissal, now time.Time) Visibility {
	if !f.Enabled {
		return Hidden
	}

	if f.expired(now) {
		return Hidden
	}

	if d.suppresses(now) {
		return Hidden
	}

	return Visible
}

// Gate carries the last-fetched flags so dismiss and reset can recompute
// visibility without another settings round trip.
type Gate struct {
	flags  Flags
	loaded bool
}

// Load stores freshly fetched flags on the gate.
func (g *Gate) Load(f Flags) {
	g.flags = f
	g.loaded = true
}

// Flags returns the last-loaded flags (zero value while loading).
func (g *Gate) Flags() Flags {
	return g.flags
}

// Resolve computes visibility against the last-loaded flags. Before Load
// the gate reports Loading, during which nothing renders.
func (g *Gate) Resolve(d *Dismissal, now time.Time) Visibility {
	if !g.loaded {
		return Loading
	}

	return Resolve(g.flags, d, now)
}

// Dismiss produces the dismissal record to persist for the current version.
// The banner is Hidden from this point; no network effect is involved.
func (g *Gate) Dismiss(now time.Time) Dismissal {
	return Dismissal{
		Version:   CurrentVersion,
		Timestamp: now,
	}
}

// Reset recomputes visibility after the dismissal record was deleted. Only
// the enabled flag and the expiry check apply, reusing the cached flags.
func (g *Gate) Reset(now time.Time) Visibility {
	if !g.loaded {
		return Loading
	}

	return Resolve(g.flags, nil, now)
}
