package filesvc

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core"
)

// LocalStorage stores blobs on the local filesystem under a single directory.
// Refs are flat file names; a uuid prefix keeps same-named uploads apart.
type LocalStorage struct {
	dir           string
	publicBaseURL string
}

var _ core.FileStorage = (*LocalStorage)(nil)

func NewLocalStorage(conf *core.Config) (*LocalStorage, error) {
	if err := os.MkdirAll(conf.Storage.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating storage dir")
	}
	return &LocalStorage{
		dir:           conf.Storage.Dir,
		publicBaseURL: strings.TrimSuffix(conf.Storage.PublicBaseURL, "/"),
	}, nil
}

func (s *LocalStorage) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	ref := uuid.New().String() + "_" + filepath.Base(name)
	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", errors.Wrap(err, "creating blob file")
	}
	defer f.Close()

	if _, err = io.Copy(f, content); err != nil {
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "writing blob file")
	}
	return ref, nil
}

func (s *LocalStorage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil {
		return nil, errors.Wrap(err, "opening blob file")
	}
	return f, nil
}

func (s *LocalStorage) Remove(ctx context.Context, ref string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing blob file")
	}
	return nil
}

func (s *LocalStorage) PublicURL(ref string) (string, bool) {
	if s.publicBaseURL == "" {
		return "", false
	}
	return s.publicBaseURL + "/" + path.Base(ref), true
}
