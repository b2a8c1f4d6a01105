package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
	"github.com/clearlane-advisory/clearlane-web/internal/db/controller/setting"
	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

// seed creates the initial operator account and the default settings on an
// empty database. Existing rows are never touched.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		// Default admin account. The password must be changed after the
		// first login.
		db.Create(
			&models.User{
				Username:   "admin",
				Password:   models.HashPassword("changeme"),
				Active:     true,
				Admin:      true,
				AuthSource: models.AuthSourceLocal,
			},
		)

		log.Info().Msg("seeded default admin account")
	}

	defaults := map[string]string{
		models.SettingAnnouncementEnabled: "true",
		models.SettingAnnouncementEndDate: "",
		models.SettingShowTeamPage:        "true",
	}

	for name, value := range defaults {
		if _, err := setting.Get(db, name); err == nil {
			continue
		}

		if _, err := setting.Set(db, name, []byte(value)); err != nil {
			log.Error().Err(err).Str("setting", name).Msg("failed to seed setting")
		}
	}
}
