package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sink stores a downloaded export and returns where it ended up.
type Sink interface {
	Store(ctx context.Context, name string, r io.Reader) (string, error)
}

// TempFileSink writes exports to uniquely named files in a temp directory.
type TempFileSink struct {
	dir string
}

// NewTempFileSink stores into dir, or os.TempDir() when dir is empty.
func NewTempFileSink(dir string) *TempFileSink {
	return &TempFileSink{dir: dir}
}

func (s *TempFileSink) Store(ctx context.Context, name string, r io.Reader) (string, error) {
	pattern := "onesignal-*-" + filepath.Base(name)
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	if err := writeAndClose(ctx, f, r); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// LocalSink writes exports below a base directory.
// Names that resolve outside the directory are rejected.
type LocalSink struct {
	baseDir string
}

// NewLocalSink resolves baseDir to an absolute path and creates it.
func NewLocalSink(baseDir string) (*LocalSink, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: base directory is required", ErrInvalidConfig)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	return &LocalSink{baseDir: abs}, nil
}

func (s *LocalSink) Store(ctx context.Context, name string, r io.Reader) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	if err := writeAndClose(ctx, f, r); err != nil {
		return "", err
	}
	return path, nil
}

func (s *LocalSink) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidPath)
	}
	abs, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(name)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if !strings.HasPrefix(abs, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, name)
	}
	return abs, nil
}

// writeAndClose copies r into f and removes f on failure.
func writeAndClose(ctx context.Context, f *os.File, r io.Reader) error {
	_, err := io.Copy(f, contextReader{ctx: ctx, r: r})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ErrOperationCanceled, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
