package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidPath = errors.New("invalid file path")

// StoredFile describes a file after it has been written.
type StoredFile struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type FileStore interface {
	Save(name string, r io.Reader) (*StoredFile, error)
	Open(name string) (io.ReadCloser, error)
	Delete(name string) error
}

// LocalStore keeps uploaded documents on disk under a root directory and
// serves them below /files.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", root, err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Root is the directory served at /files.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) resolve(name string) (string, error) {
	name = filepath.FromSlash(strings.TrimPrefix(name, "/"))
	if name == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return filepath.Join(s.root, name), nil
}

// Save writes r to name atomically and sniffs its content type.
func (s *LocalStore) Save(name string, r io.Reader) (*StoredFile, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}

	mtype, err := mimetype.DetectFile(tmp.Name())
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}

	rel := filepath.ToSlash(strings.TrimPrefix(name, "/"))
	return &StoredFile{
		Path:        rel,
		URL:         s.baseURL + "/files/" + rel,
		ContentType: mtype.String(),
		Size:        size,
	}, nil
}

func (s *LocalStore) Open(name string) (io.ReadCloser, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a stored file; a missing file is not an error.
func (s *LocalStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
