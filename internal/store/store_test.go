package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/zodiac"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backends returns a fresh instance of every backend that runs without
// external services.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	js, err := New(config.StoreConfig{Driver: DriverJSON, Path: filepath.Join(dir, "users.json")}, discardLogger())
	require.NoError(t, err)

	sq, err := New(config.StoreConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "users.db")}, discardLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = js.Close()
		_ = sq.Close()
	})
	return map[string]Store{"json": js, "sqlite": sq}
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			existed, err := s.Put(ctx, "100", zodiac.Leo)
			require.NoError(t, err)
			assert.False(t, existed, "first registration")

			existed, err = s.Put(ctx, "100", zodiac.Virgo)
			require.NoError(t, err)
			assert.True(t, existed, "modification")

			sign, ok, err := s.Get(ctx, "100")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, zodiac.Virgo, sign)

			existed, err = s.Delete(ctx, "100")
			require.NoError(t, err)
			assert.True(t, existed)

			_, ok, err = s.Get(ctx, "100")
			require.NoError(t, err)
			assert.False(t, ok, "removed user must be absent")

			existed, err = s.Delete(ctx, "100")
			require.NoError(t, err)
			assert.False(t, existed, "second delete")
		})
	}
}

func TestStoreIndependentUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Put(ctx, "1", zodiac.Aries)
			require.NoError(t, err)
			_, err = s.Put(ctx, "2", zodiac.Pisces)
			require.NoError(t, err)

			all, err := s.All(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]zodiac.Sign{"1": zodiac.Aries, "2": zodiac.Pisces}, all)

			all["3"] = zodiac.Leo
			again, err := s.All(ctx)
			require.NoError(t, err)
			assert.Len(t, again, 2, "snapshot must be a copy")
		})
	}
}

func TestStoreRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Put(ctx, "", zodiac.Leo)
			assert.Error(t, err)
			_, err = s.Put(ctx, "1", zodiac.Sign("Ophiuchus"))
			assert.Error(t, err)
		})
	}
}

func TestJSONStoreFileHandling(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		t.Parallel()
		s, err := NewJSONStore(filepath.Join(t.TempDir(), "nested", "users.json"), discardLogger())
		require.NoError(t, err)
		all, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("malformed file is empty", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		s, err := NewJSONStore(path, discardLogger())
		require.NoError(t, err)
		all, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		existed, err := s.Put(ctx, "7", zodiac.Cancer)
		require.NoError(t, err)
		assert.False(t, existed)
	})

	t.Run("file is a pretty-printed object", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "users.json")
		s, err := NewJSONStore(path, discardLogger())
		require.NoError(t, err)
		_, err = s.Put(ctx, "42", zodiac.Gemini)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"42\": \"Gemini\"\n}\n", string(data))

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, map[string]string{"42": "Gemini"}, decoded)
	})

	t.Run("existing file is honoured", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"9": "Libra"}`), 0o600))

		s, err := NewJSONStore(path, discardLogger())
		require.NoError(t, err)
		sign, ok, err := s.Get(ctx, "9")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, zodiac.Libra, sign)
	})
}

func TestJSONStoreConcurrentWritersKeepEveryUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := NewJSONStore(filepath.Join(t.TempDir(), "users.json"), discardLogger())
	require.NoError(t, err)

	const writers = 40
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Put(ctx, fmt.Sprint(i), zodiac.All()[i%12])
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, writers)
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"storage.db", "storage.db"},
		{"file:storage.db", "storage.db"},
		{"file:data/storage.db?_pragma=busy_timeout(5000)", "data/storage.db"},
		{"my%20bot.db", "my bot.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ExtractDBNameFromPath(tt.input))
		})
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	t.Parallel()
	_, err := New(config.StoreConfig{Driver: "redis"}, nil)
	assert.Error(t, err)
}
