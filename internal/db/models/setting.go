// Package models contains database model definitions.
package models

// Setting represents a site configuration setting stored in the database.
// Values carry no enforced schema; consumers parse them ad hoc
// ("true"/"false" strings, ISO date strings, plain text).
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}

// Well-known setting names consumed by the public site.
const (
	// SettingAnnouncementEnabled toggles the announcement banner ("true"/"false").
	SettingAnnouncementEnabled = "announcement_enabled"
	// SettingAnnouncementEndDate holds the RFC 3339 end date after which the
	// banner is never shown. Empty or unparseable means "never expires".
	SettingAnnouncementEndDate = "announcement_end_date"
	// SettingShowTeamPage toggles the public team roster page ("true"/"false").
	SettingShowTeamPage = "show_team_page"
)
