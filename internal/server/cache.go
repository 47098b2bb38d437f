package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/motoki317/sc"

	"github.com/ironsheep/image-science/internal/codec"
)

const infoCacheTTL = 10 * time.Minute

// infoKey identifies one version of a file; a rewrite changes size or
// modification time and therefore misses the cache.
type infoKey struct {
	path    string
	size    int64
	modTime int64
}

func newInfoCache(size int) *sc.Cache[infoKey, *codec.Info] {
	return sc.NewMust(func(_ context.Context, key infoKey) (*codec.Info, error) {
		return codec.Stat(key.path)
	}, infoCacheTTL, infoCacheTTL, sc.With2QBackend(size))
}

// stat returns the header information of path. Cached values are shared and
// must not be modified.
func (s *Server) stat(ctx context.Context, path string) (*codec.Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", codec.ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", codec.ErrUnsupportedFormat, path)
	}
	return s.infos.Get(ctx, infoKey{path: path, size: fi.Size(), modTime: fi.ModTime().UnixNano()})
}
