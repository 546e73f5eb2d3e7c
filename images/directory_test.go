package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestDirectory_PrefersJPG(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", []byte("png"))
	writeFile(t, dir, "c.jpg", []byte("jpg-c"))
	writeFile(t, dir, "b.jpg", []byte("jpg-b"))
	writeFile(t, dir, "notes.txt", []byte("text"))

	img, err := NewDirectory(dir).FindImage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "b.jpg", img.Name)
	assert.Equal(t, []byte("jpg-b"), img.Data)
}

func TestDirectory_FallsBackToPNG(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	img, err := NewDirectory(dir).FindImage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "photo.png", img.Name)
}

func TestDirectory_NoImage(t *testing.T) {
	img, err := NewDirectory(filepath.Join(t.TempDir(), "missing")).FindImage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, img)

	dir := t.TempDir()
	writeFile(t, dir, "readme.md", []byte("#"))
	img, err = NewDirectory(dir).FindImage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, img)
}

func TestDirectory_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", []byte("jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirectory(dir).FindImage(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory(t *testing.T) {
	m := NewMemory("fixed.jpg", []byte("bytes"))
	img, err := m.FindImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed.jpg", img.Name)
	assert.Equal(t, "memory:fixed.jpg", m.Describe())

	empty := &Memory{}
	img, err = empty.FindImage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, img)
}
