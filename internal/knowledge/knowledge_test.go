package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArticle(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestGetArticle(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "fhsa-basics.md", "# FHSA Basics\n\nRoom accrues after opening.")

	base := NewBase(dir)
	body, err := base.Get("fhsa-basics")
	require.NoError(t, err)
	assert.Contains(t, body, "FHSA Basics")

	// Second read comes from cache even if the file disappears.
	require.NoError(t, os.Remove(filepath.Join(dir, "fhsa-basics.md")))
	body, err = base.Get("fhsa-basics")
	require.NoError(t, err)
	assert.Contains(t, body, "FHSA Basics")
}

func TestGetMissingArticle(t *testing.T) {
	base := NewBase(t.TempDir())
	_, err := base.Get("never-written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRejectsUnsafeSlugs(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "safe.md", "content")
	base := NewBase(dir)

	for _, slug := range []string{"../etc/passwd", "UPPER", "a b", "", "trailing-", "-leading", "dot.dot"} {
		_, err := base.Get(slug)
		assert.ErrorIs(t, err, ErrNotFound, "slug %q must be rejected", slug)
	}
}

func TestSlugs(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "fhsa-basics.md", "a")
	writeArticle(t, dir, "tfsa-room.md", "b")
	writeArticle(t, dir, "notes.txt", "ignored")
	writeArticle(t, dir, "Bad Name.md", "ignored")

	base := NewBase(dir)
	slugs, err := base.Slugs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fhsa-basics", "tfsa-room"}, slugs)
}

func TestSlugsMissingDir(t *testing.T) {
	base := NewBase(filepath.Join(t.TempDir(), "absent"))
	slugs, err := base.Slugs()
	assert.NoError(t, err)
	assert.Empty(t, slugs)
}
