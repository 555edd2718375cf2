package fsmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	service := NewService()

	stat, err := service.Stat(context.Background(), "file://"+file)
	require.NoError(t, err)
	assert.False(t, stat.IsDirectory)

	stat, err = service.Stat(context.Background(), "file://"+dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDirectory)
}

func TestStatMissingResource(t *testing.T) {
	service := NewService()

	_, err := service.Stat(context.Background(), "file:///does/not/exist.txt")
	assert.Error(t, err)
}

func TestStatCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewService()
	_, err := service.Stat(ctx, "file:///anything")
	assert.ErrorIs(t, err, context.Canceled)
}
