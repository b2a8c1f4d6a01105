package models

import (
	"time"
)

// ResponseStatus tags the generation state of an assessment response.
type ResponseStatus string

const (
	// ResponseStatusGenerating is set when the response row is written,
	// before the generation backend has been invoked.
	ResponseStatusGenerating ResponseStatus = "generating"
	// ResponseStatusDone is set after the generated text was stored.
	ResponseStatusDone ResponseStatus = "done"
	// ResponseStatusFallback is set when persistence or generation failed and
	// the canned fallback text was served instead. The visitor never sees
	// this state; it exists so operators can find masked failures.
	ResponseStatusFallback ResponseStatus = "fallback"
)

// AssessmentSession represents one instantiation of the AI-readiness
// assessment wizard. Created eagerly when the hero step renders, completed
// best-effort after a successful run, never deleted.
type AssessmentSession struct {
	ID          string `gorm:"primaryKey;size:36"` // UUID
	UserAgent   string `gorm:"size:500"`
	UTMSource   string `gorm:"size:200"`
	UTMMedium   string `gorm:"size:200"`
	UTMCampaign string `gorm:"size:200"`
	UTMTerm     string `gorm:"size:200"`
	UTMContent  string `gorm:"size:200"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// AssessmentResponse holds the answers and contact fields of one completed
// wizard run, linked to its owning session.
type AssessmentResponse struct {
	ID        uint64             `gorm:"primaryKey"`
	SessionID string             `gorm:"size:36;not null;index"`
	Session   *AssessmentSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE"`

	ContactName    string `gorm:"size:200"`
	ContactEmail   string `gorm:"size:255"`
	ContactCompany string `gorm:"size:200"`

	Industry   string `gorm:"size:200"`
	TeamSize   string `gorm:"size:100"`
	DataUsage  string `gorm:"type:text"`
	Goals      string `gorm:"type:text"`
	Challenges string `gorm:"type:text"`

	Status    ResponseStatus `gorm:"type:varchar(20);not null;default:'generating'"`
	Result    string         `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
