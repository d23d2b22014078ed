package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jenbot/jenbot/internal/zodiac"
)

// DriverJSON selects the JSON file backend.
const DriverJSON = "json"

// jsonStore keeps the whole mapping in one pretty-printed JSON file. Every
// mutation reads the file, applies one change and rewrites it. All access is
// serialised by mu, and writes land through a temporary file and rename so a
// reader never observes a partial file.
type jsonStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewJSONStore returns a file-backed Store. The file is created on the first
// mutation; its parent directory is created immediately.
func NewJSONStore(path string, logger *slog.Logger) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("json store path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
		}
	}
	return &jsonStore{
		path:   path,
		logger: logger.With("component", "store", "driver", DriverJSON),
	}, nil
}

func (s *jsonStore) Get(ctx context.Context, userID string) (zodiac.Sign, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load(ctx)
	sign, ok := users[userID]
	return sign, ok, nil
}

func (s *jsonStore) All(ctx context.Context) (map[string]zodiac.Sign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx), nil
}

func (s *jsonStore) Put(ctx context.Context, userID string, sign zodiac.Sign) (bool, error) {
	if err := validate(userID, sign); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load(ctx)
	_, existed := users[userID]
	users[userID] = sign
	if err := s.save(users); err != nil {
		return false, err
	}

	s.logger.DebugContext(ctx, "Saved sign", "user_id", userID, "sign", sign, "updated", existed)
	return existed, nil
}

func (s *jsonStore) Delete(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load(ctx)
	if _, ok := users[userID]; !ok {
		return false, nil
	}
	delete(users, userID)
	if err := s.save(users); err != nil {
		return false, err
	}

	s.logger.DebugContext(ctx, "Deleted sign", "user_id", userID)
	return true, nil
}

func (s *jsonStore) Close() error {
	return nil
}

// load reads the mapping. A missing or malformed file yields an empty map.
func (s *jsonStore) load(ctx context.Context) map[string]zodiac.Sign {
	users := make(map[string]zodiac.Sign)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "Failed to read store file, treating as empty", "path", s.path, "error", err)
		}
		return users
	}

	if err := json.Unmarshal(data, &users); err != nil {
		s.logger.WarnContext(ctx, "Store file is malformed, treating as empty", "path", s.path, "error", err)
		return make(map[string]zodiac.Sign)
	}
	if users == nil {
		users = make(map[string]zodiac.Sign)
	}
	return users
}

func (s *jsonStore) save(users map[string]zodiac.Sign) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write store file %s: %w", s.path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
