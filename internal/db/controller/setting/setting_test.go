package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()
	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingName   string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingName:   "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			settingName:   "",
			expectedError: ErrSettingNameEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			settingName:   "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:        "successful get",
			dbParam:     db,
			settingName: models.SettingAnnouncementEnabled,
			seedData: []models.Setting{
				{Name: models.SettingAnnouncementEnabled, Value: []byte("true")},
			},
			expectedValue: []byte("true"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Get(tc.dbParam, tc.settingName)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, setting)
				assert.Equal(t, tc.settingName, setting.Name)
				assert.Equal(t, tc.expectedValue, setting.Value)
			}
		})
	}
}

func TestGetMany(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Name: models.SettingAnnouncementEnabled, Value: []byte("true")},
		{Name: models.SettingAnnouncementEndDate, Value: []byte("2026-12-31T00:00:00Z")},
	})

	t.Run("nil database", func(t *testing.T) {
		_, err := GetMany(nil, []string{"x"})
		require.ErrorIs(t, err, ErrDBNil)
	})

	t.Run("missing keys are absent, not errors", func(t *testing.T) {
		values, err := GetMany(db, []string{
			models.SettingAnnouncementEnabled,
			models.SettingAnnouncementEndDate,
			models.SettingShowTeamPage,
		})
		require.NoError(t, err)

		assert.Equal(t, "true", values[models.SettingAnnouncementEnabled])
		assert.Equal(t, "2026-12-31T00:00:00Z", values[models.SettingAnnouncementEndDate])

		_, present := values[models.SettingShowTeamPage]
		assert.False(t, present)
	})

	t.Run("empty name list", func(t *testing.T) {
		values, err := GetMany(db, nil)
		require.NoError(t, err)
		assert.Empty(t, values)
	})
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	t.Run("empty name", func(t *testing.T) {
		_, err := Set(db, "", []byte("x"))
		require.ErrorIs(t, err, ErrSettingNameEmpty)
	})

	t.Run("creates then updates", func(t *testing.T) {
		created, err := Set(db, models.SettingShowTeamPage, []byte("true"))
		require.NoError(t, err)
		assert.Equal(t, []byte("true"), created.Value)

		updated, err := Set(db, models.SettingShowTeamPage, []byte("false"))
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, []byte("false"), updated.Value)

		var count int64
		db.Model(&models.Setting{}).Where("name = ?", models.SettingShowTeamPage).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestDeleteByName(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Name: "obsolete", Value: []byte("x")},
	})

	require.NoError(t, DeleteByName(db, "obsolete"))
	require.ErrorIs(t, DeleteByName(db, "obsolete"), ErrSettingNotFound)
	require.ErrorIs(t, DeleteByName(db, ""), ErrSettingNameEmpty)
	require.ErrorIs(t, DeleteByName(nil, "x"), ErrDBNil)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Name: "a", Value: []byte("1")},
		{Name: "b", Value: []byte("2")},
	})

	settings, err := GetAll(db)
	require.NoError(t, err)
	assert.Len(t, settings, 2)

	_, err = GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)
}
