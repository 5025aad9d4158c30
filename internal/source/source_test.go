package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestEnumerateDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.JPG"))
	writeFile(t, filepath.Join(dir, "b.txt"))
	writeFile(t, filepath.Join(dir, "sub", "c.png"))

	got, err := Enumerate(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "sub", "c.png"),
	}, got)
}

func TestEnumerateDirNoImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"))

	_, err := Enumerate(Options{Dir: dir})
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestEnumerateURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "http://example.com/a.png\n" +
		"\n" +
		"  # a comment\n" +
		"  http://example.com/b.jpg  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := Enumerate(Options{URLFile: path})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://example.com/a.png",
		"http://example.com/b.jpg",
	}, got)
}

func TestEnumerateURLFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n\n"), 0644))

	_, err := Enumerate(Options{URLFile: path})
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestEnumerateSingleImage(t *testing.T) {
	got, err := Enumerate(Options{Image: "photos/cat.jpeg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"photos/cat.jpeg"}, got)
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"b.Tiff", true},
		{"c.webp", true},
		{"d.txt", false},
		{"noext", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, isImageFile(tc.path), tc.path)
	}
}
