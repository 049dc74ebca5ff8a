package buildhook

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shivansh.dev/internal/thumbnail"
)

type fakeBatch struct {
	report *thumbnail.Report
	err    error
	dirs   []string
}

func (f *fakeBatch) Run(_ context.Context, dir string) (*thumbnail.Report, error) {
	f.dirs = append(f.dirs, dir)
	return f.report, f.err
}

func newTestHook(batch BatchRunner, found bool) (*Hook, *bytes.Buffer) {
	var out bytes.Buffer
	h := &Hook{
		Out:      &out,
		MediaDir: "public/media",
		Batch:    batch,
		LookPath: func(string) (string, error) {
			if found {
				return "/usr/bin/ffmpeg", nil
			}
			return "", exec.ErrNotFound
		},
		styles: newStyles(false),
	}
	return h, &out
}

func TestHook_NoFFmpeg(t *testing.T) {
	batch := &fakeBatch{}
	h, out := newTestHook(batch, false)

	require.NoError(t, h.Run(context.Background()))
	assert.Empty(t, batch.dirs, "batch must not run without ffmpeg")
	assert.Contains(t, out.String(), "✗ ffmpeg not found")
	assert.Contains(t, out.String(), "2. Commit the generated thumbnails to your repository")
}

func TestHook_RunsBatch(t *testing.T) {
	batch := &fakeBatch{report: &thumbnail.Report{
		Found:     3,
		Generated: []string{"thumbnail-a.jpg"},
		Skipped:   []string{"b.mp4"},
		Failures:  []thumbnail.Failure{{Video: "c.mp4", Err: errors.New("decode error")}},
	}}
	h, out := newTestHook(batch, true)

	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, []string{"public/media"}, batch.dirs)
	assert.Contains(t, out.String(), "3 found, 1 generated, 1 already present, 1 failed")
	assert.Contains(t, out.String(), "c.mp4: decode error")
	assert.Contains(t, out.String(), "✓ Thumbnail generation completed")
}

func TestHook_BatchError(t *testing.T) {
	h, out := newTestHook(&fakeBatch{err: errors.New("no such directory")}, true)

	err := h.Run(context.Background())
	assert.ErrorContains(t, err, "no such directory")
	assert.Contains(t, out.String(), "Error generating thumbnails")
}
