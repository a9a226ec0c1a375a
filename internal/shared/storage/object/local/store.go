package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobassist-backend/internal/shared/storage/object"
)

var errBadKey = errors.New("invalid storage key")

// Store keeps objects as plain files under a root directory. It backs the
// dev and test environments.
type Store struct {
	root string
	now  func() time.Time
}

func New(root string) *Store {
	return &Store{root: root, now: time.Now}
}

func (s *Store) Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, "", err
	}
	key, err := object.UserKey(userID, fileName, s.now())
	if err != nil {
		return "", 0, "", err
	}
	mime, body, err := object.Sniff(r)
	if err != nil {
		return "", 0, "", err
	}
	n, err := s.writeFile(key, body)
	if err != nil {
		return "", 0, "", err
	}
	return key, n, mime, nil
}

// SaveWithKey ignores contentType; the filesystem has nowhere to keep it.
func (s *Store) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.writeFile(storageKey, r)
}

func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Delete is idempotent.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(storageKey)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("delete %s: %w", storageKey, err)
}

// writeFile streams r into a temp file next to the target and renames it, so
// readers never see a partial CV.
func (s *Store) writeFile(storageKey string, r io.Reader) (int64, error) {
	p, err := s.path(storageKey)
	if err != nil {
		return 0, err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", storageKey, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return 0, fmt.Errorf("commit %s: %w", storageKey, err)
	}
	return n, nil
}

func (s *Store) path(storageKey string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(storageKey))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errBadKey
	}
	return filepath.Join(s.root, rel), nil
}

var _ object.ObjectStore = (*Store)(nil)
