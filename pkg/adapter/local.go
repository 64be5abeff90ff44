package adapter

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// localStorage implements Storage on a local directory. Writes go to a
// temporary file and are renamed into place on Close, so Get never
// observes a partially written object.
type localStorage struct {
	dir string
}

// NewLocalStorage creates a Storage backed by a local directory,
// creating it if needed.
func NewLocalStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.Value("dir", dir))
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temporary file")
	}

	return &localWriter{
		file: tmp,
		path: filepath.Join(s.dir, key),
	}, nil
}

func (s *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.Value("key", key))
	}
	return f, nil
}

type localWriter struct {
	file *os.File
	path string
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *localWriter) Close() error {
	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return goerr.Wrap(err, "failed to close temporary file")
	}
	if err := os.Rename(w.file.Name(), w.path); err != nil {
		os.Remove(w.file.Name())
		return goerr.Wrap(err, "failed to finalize object", goerr.Value("path", w.path))
	}
	return nil
}
