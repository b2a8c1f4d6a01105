package document

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Document{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGetAllNewestFirstWithPublicURL(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"old.pdf", "mid.pdf", "new.pdf"} {
		require.NoError(t, db.Create(&models.Document{
			Filename:         name,
			OriginalFilename: name,
			FilePath:         name,
			CreatedAt:        base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	entries, err := GetAll(db, func(p string) string { return "/files/documents/" + p })
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "new.pdf", entries[0].OriginalFilename)
	assert.Equal(t, "old.pdf", entries[2].OriginalFilename)
	assert.Equal(t, "/files/documents/new.pdf", entries[0].PublicURL)
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)

	doc := &models.Document{
		Filename:         "abc123.pdf",
		OriginalFilename: "Quarterly Report.pdf",
		FilePath:         "abc123.pdf",
		FileSize:         2048,
		MimeType:         "application/pdf",
	}

	require.NoError(t, Create(db, doc))
	require.NotZero(t, doc.ID)

	got, err := GetByID(db, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Report.pdf", got.OriginalFilename)
	assert.EqualValues(t, 2048, got.FileSize)

	_, err = GetByID(db, doc.ID+1)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	doc := &models.Document{Filename: "x.pdf", OriginalFilename: "x.pdf", FilePath: "x.pdf"}
	require.NoError(t, Create(db, doc))

	require.NoError(t, Delete(db, doc.ID))
	assert.ErrorIs(t, Delete(db, doc.ID), ErrDocumentNotFound)
	assert.ErrorIs(t, Delete(nil, doc.ID), ErrDBNil)
}
