// Package safe holds guarded file and numeric helpers.
package safe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

// DefaultMaxFileSize is used when ReadOptions.MaxSize is zero (64 MiB).
const DefaultMaxFileSize = 64 << 20

// ReadOptions configures ReadFile and ReadAll.
type ReadOptions struct {
	// MaxSize is the maximum allowed size in bytes. Zero means DefaultMaxFileSize.
	MaxSize int64
	// AllowSymlinks allows reading through a symlink. Default is false.
	AllowSymlinks bool
}

func (o *ReadOptions) maxSize() int64 {
	if o == nil || o.MaxSize <= 0 {
		return DefaultMaxFileSize
	}
	return o.MaxSize
}

// ReadFile reads a regular file with size and symlink checks.
// All failures match apperrors.ErrIO.
func ReadFile(path string, opts *ReadOptions) ([]byte, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	maxSize := opts.maxSize()

	cleanPath := filepath.Clean(path)

	info, err := os.Lstat(cleanPath)
	if err != nil {
		return nil, apperrors.IO(err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !opts.AllowSymlinks {
			return nil, apperrors.IO(fmt.Errorf("file %q is a symlink, which is not allowed", path))
		}
		info, err = os.Stat(cleanPath)
		if err != nil {
			return nil, apperrors.IO(err)
		}
	}

	if !info.Mode().IsRegular() {
		return nil, apperrors.IO(fmt.Errorf("path %q is not a regular file", path))
	}

	if info.Size() > maxSize {
		return nil, apperrors.IO(fmt.Errorf("file %q is %s, larger than the %s limit",
			path, humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(maxSize))))
	}

	// #nosec G304 - the path was validated above.
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	return data, nil
}

// ReadAll reads r to the end, failing once more than the size limit was
// read. It serves streams such as stdin whose size is not known upfront.
func ReadAll(r io.Reader, opts *ReadOptions) ([]byte, error) {
	maxSize := opts.maxSize()

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, apperrors.IO(err)
	}
	if int64(len(data)) > maxSize {
		return nil, apperrors.IO(fmt.Errorf("input is larger than the %s limit", humanize.IBytes(uint64(maxSize))))
	}
	return data, nil
}

// CreateFile creates or truncates path for writing with perm.
func CreateFile(path string, perm os.FileMode) (*os.File, error) {
	// #nosec G304 - output path chosen by the user.
	f, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	return f, nil
}

// RemoveFile removes gracefully a file, handling and logging the error.
func RemoveFile(f *os.File, logger zerolog.Logger) {
	if f == nil {
		return
	}
	if err := os.Remove(f.Name()); err != nil {
		logger.Error().Err(err).Msg("failed to remove file")
	}
}
