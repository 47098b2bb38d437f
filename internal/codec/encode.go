package codec

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-science/internal/raster"
)

// EncodeOptions controls encoding.
type EncodeOptions struct {
	// JPEGQuality ranges from 1 to 100. Zero selects 95.
	JPEGQuality int
	// PNGCompression is the zlib level used for PNG output.
	PNGCompression png.CompressionLevel
}

// DefaultEncodeOptions returns the options used when none are configured.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{JPEGQuality: 95, PNGCompression: png.DefaultCompression}
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *raster.Buffer, format Format, opts EncodeOptions) error {
	f, err := format.imaging()
	if err != nil {
		return err
	}
	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = 95
	}
	return imaging.Encode(w, ToImage(buf), f,
		imaging.JPEGQuality(quality),
		imaging.PNGCompressionLevel(opts.PNGCompression),
	)
}

// WriteFile encodes buf into path atomically.
func WriteFile(path string, buf *raster.Buffer, format Format, opts EncodeOptions) error {
	if !format.Encodable() {
		return fmt.Errorf("%w: cannot encode %s to %s", ErrUnsupportedFormat, format, path)
	}
	return AtomicWrite(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if err := Encode(bw, buf, format, opts); err != nil {
			return err
		}
		return bw.Flush()
	})
}

// AtomicWrite creates path with the content produced by write. The file
// appears at path only if write and the final close succeed; otherwise no
// file is left behind and any existing file at path is untouched.
func AtomicWrite(path string, write func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", path, err)
	}
	return nil
}
