package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/science"
)

func TestBatch_Destination(t *testing.T) {
	t.Parallel()

	b := batch{outDir: "/out"}
	assert.Equal(t, "/out/a.png", b.destination("/in/a.png"))

	b.ext = ".jpg"
	assert.Equal(t, "/out/a.jpg", b.destination("/in/a.png"))
	assert.Equal(t, "/out/noext.jpg", b.destination("noext"))
}

func TestBatch_Run(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()

	var files []string
	for i := 0; i < 6; i++ {
		path := filepath.Join(in, fmt.Sprintf("img%d.png", i))
		writeImage(t, path, 40+i, 20)
		files = append(files, path)
	}
	// Duplicates are processed once.
	files = append(files, files[0])

	b := batch{
		job:         &job{op: opThumbnail, size: 10},
		outDir:      out,
		ext:         ".gif",
		concurrency: 3,
	}
	require.NoError(t, b.run(context.Background(), files))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	info, err := codec.Stat(filepath.Join(out, "img0.gif"))
	require.NoError(t, err)
	assert.Equal(t, codec.GIF, info.Format)
	assert.Equal(t, 10, info.Width)
	assert.Equal(t, 5, info.Height)
}

func TestBatch_Run_PartialFailure(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()

	good := filepath.Join(in, "good.png")
	writeImage(t, good, 30, 30)
	bad := filepath.Join(in, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))

	b := batch{
		job:         &job{op: opResize, width: 15, height: 15},
		outDir:      out,
		concurrency: 2,
	}
	err := b.run(context.Background(), []string{bad, good, filepath.Join(in, "missing.png")})
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "2 of 3 files failed")

	assert.FileExists(t, filepath.Join(out, "good.png"))
	assert.NoFileExists(t, filepath.Join(out, "bad.png"))
}

func TestBatch_Run_DuplicateDestination(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(in, "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(in, "b"), 0o755))
	first := filepath.Join(in, "a", "x.png")
	second := filepath.Join(in, "b", "x.png")
	other := filepath.Join(in, "b", "y.png")
	writeImage(t, first, 30, 30)
	writeImage(t, second, 40, 40)
	writeImage(t, other, 20, 20)

	b := batch{
		job:         &job{op: opResize, width: 10, height: 10},
		outDir:      out,
		concurrency: 2,
	}
	err := b.run(context.Background(), []string{first, second, other})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDuplicateDestination)
	assert.Contains(t, err.Error(), "2 of 3 files failed")

	// Neither colliding input is written, the unrelated one is.
	assert.NoFileExists(t, filepath.Join(out, "x.png"))
	assert.FileExists(t, filepath.Join(out, "y.png"))
}

func TestOutputExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op, format string
		want       string
		wantErr    error
	}{
		{opThumbnail, "", "", nil},
		{opThumbnail, "png", ".png", nil},
		{opResize, "jpeg", ".jpg", nil},
		{opResize, "xcf", "", codec.ErrUnsupportedFormat},
		{opRotateJPG, "", "", nil},
		{opRotateJPG, "jpg", ".jpg", nil},
		{opRotateJPG, "png", "", science.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.op+"/"+tt.format, func(t *testing.T) {
			got, err := outputExtension(tt.op, tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
