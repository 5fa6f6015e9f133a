package laads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	urls := []string{"https://example.com/a.hdf", "https://example.com/b.hdf"}

	require.NoError(t, WriteURLFile(path, urls, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.hdf\nhttps://example.com/b.hdf\n", string(data))
}

func TestWriteURLFile_ExistingFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	err := WriteURLFile(path, []string{"https://example.com/a.hdf"}, false)
	assert.ErrorIs(t, err, ErrOutputExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(data))
}

func TestWriteURLFile_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	require.NoError(t, WriteURLFile(path, []string{"https://example.com/a.hdf"}, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.hdf\n", string(data))
}

func TestWriteURLFile_NoURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")

	err := WriteURLFile(path, nil, false)
	assert.ErrorIs(t, err, ErrNoURLs)
	assert.NoFileExists(t, path)
}
