package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCheckConfig(t *testing.T, path string) (string, error) {
	t.Helper()
	code := 0
	root := newRootCmd(&code)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"check-config", "--config", path})
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheckConfig(t *testing.T) {
	t.Setenv("JENBOT_DISCORD_TOKEN", "")
	t.Setenv("DISCORD_BOT_TOKEN", "")

	t.Run("valid", func(t *testing.T) {
		path := writeConfig(t, "discord:\n  token: abc\nstore:\n  driver: json\n  path: users.json\n")
		out, err := runCheckConfig(t, path)
		require.NoError(t, err)
		assert.Contains(t, out, "configuration OK (store=json")
	})

	t.Run("missing token", func(t *testing.T) {
		path := writeConfig(t, "log:\n  level: debug\n")
		out, err := runCheckConfig(t, path)
		require.Error(t, err)
		assert.Contains(t, out, "configuration error")
	})
}

func TestExecuteRejectsUnknownArguments(t *testing.T) {
	assert.Equal(t, 1, execute(context.Background(), []string{"unexpected"}))
}

func TestRunFailsFastOnInvalidConfig(t *testing.T) {
	t.Setenv("JENBOT_DISCORD_TOKEN", "")
	t.Setenv("DISCORD_BOT_TOKEN", "")

	path := writeConfig(t, "store:\n  driver: redis\n")
	assert.Equal(t, 1, run(context.Background(), path))
}
