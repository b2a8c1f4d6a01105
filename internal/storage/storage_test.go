package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndOpen(t *testing.T) {
	s := New(t.TempDir(), "https://cdn.clearlane.example/files/")

	mime, size, err := s.Upload(BucketDocuments, "report.txt", strings.NewReader("hello clearlane"))
	require.NoError(t, err)
	assert.Equal(t, int64(15), size)
	assert.Contains(t, mime, "text/plain")

	r, err := s.Open(BucketDocuments, "report.txt")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello clearlane", string(data))
}

func TestPublicURL(t *testing.T) {
	s := New(t.TempDir(), "https://cdn.clearlane.example/files/")

	assert.Equal(t,
		"https://cdn.clearlane.example/files/documents/report.pdf",
		s.PublicURL(BucketDocuments, "report.pdf"),
	)
	assert.Empty(t, s.PublicURL(BucketDocuments, ""))
}

func TestPathValidation(t *testing.T) {
	s := New(t.TempDir(), "https://cdn.clearlane.example")

	_, _, err := s.Upload(BucketImages, "", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrEmptyPath)

	_, _, err = s.Upload(BucketImages, "../../etc/passwd", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrInvalidPath)

	// a ".." segment must not cross into a sibling bucket either
	_, _, err = s.Upload(BucketDocuments, "../images/logo.png", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Open(BucketDocuments, "sub/../../images/logo.png")
	require.ErrorIs(t, err, ErrInvalidPath)

	assert.Empty(t, s.PublicURL(BucketDocuments, "../images/logo.png"))
}

func TestDelete(t *testing.T) {
	s := New(t.TempDir(), "https://cdn.clearlane.example")

	_, _, err := s.Upload(BucketImages, "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(BucketImages, "logo.png"))

	// deleting again is not an error
	require.NoError(t, s.Delete(BucketImages, "logo.png"))

	_, err = s.Open(BucketImages, "logo.png")
	require.Error(t, err)
}

func TestObjectName(t *testing.T) {
	name := ObjectName("Quarterly Report.PDF")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, ObjectName("a.pdf"), ObjectName("a.pdf"))
}
