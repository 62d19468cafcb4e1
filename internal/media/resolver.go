package media

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// VideoFileName is the media file looked up at startup.
// Override at build time with -ldflags "-X github.com/Taro3/linux-mp4-test/internal/media.VideoFileName=..."
var VideoFileName = "TestVideo.mp4"

// ErrNotFound is returned when no candidate media file exists
var ErrNotFound = errors.New("media file not found")

// Resolver locates the startup media file
type Resolver struct {
	logger     *zap.Logger
	fs         afero.Fs
	moviesDirs func() []string
	fileName   string
}

// NewResolver creates a resolver over the OS filesystem and the platform movies directories
func NewResolver(logger *zap.Logger) *Resolver {
	return NewResolverWithFs(logger, afero.NewOsFs(), MoviesDirs)
}

// NewResolverWithFs creates a resolver over an arbitrary filesystem and directory source
func NewResolverWithFs(logger *zap.Logger, fs afero.Fs, moviesDirs func() []string) *Resolver {
	return &Resolver{
		logger:     logger,
		fs:         fs,
		moviesDirs: moviesDirs,
		fileName:   VideoFileName,
	}
}

// Resolve returns the media path: the file in the first movies directory,
// else the file in the working directory. ErrNotFound when neither exists.
func (r *Resolver) Resolve() (string, error) {
	dirs := r.moviesDirs()
	if len(dirs) == 0 {
		r.logger.Warn("No movies directory available")
		return "", ErrNotFound
	}

	candidates := []string{
		filepath.Join(dirs[0], r.fileName),
		"." + string(filepath.Separator) + r.fileName,
	}

	for _, path := range candidates {
		exists, err := afero.Exists(r.fs, path)
		if err != nil {
			r.logger.Debug("Failed to stat media candidate", zap.String("path", path), zap.Error(err))
			continue
		}
		if exists {
			r.logger.Info("Media file resolved", zap.String("path", path))
			return path, nil
		}
	}

	r.logger.Warn("Media file not found",
		zap.String("file", r.fileName),
		zap.Strings("candidates", candidates))
	return "", ErrNotFound
}
