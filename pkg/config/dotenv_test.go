package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("sets variables from the file", func(t *testing.T) {
		for _, key := range []string{"TEST_DOTENV_A", "TEST_DOTENV_B", "TEST_DOTENV_C"} {
			key := key
			t.Cleanup(func() { os.Unsetenv(key) }) //nolint:errcheck
		}

		path := writeDotEnv(t, `
# comment line
TEST_DOTENV_A=hello
export TEST_DOTENV_B="quoted value"
TEST_DOTENV_C='single quoted'
`)

		found, err := LoadDotEnv(path)
		require.NoError(t, err)
		assert.True(t, found)

		assert.Equal(t, "hello", os.Getenv("TEST_DOTENV_A"))
		assert.Equal(t, "quoted value", os.Getenv("TEST_DOTENV_B"))
		assert.Equal(t, "single quoted", os.Getenv("TEST_DOTENV_C"))
	})

	t.Run("existing environment wins", func(t *testing.T) {
		t.Setenv("TEST_DOTENV_SHELL", "from-shell")

		path := writeDotEnv(t, "TEST_DOTENV_SHELL=from-file\n")

		found, err := LoadDotEnv(path)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "from-shell", os.Getenv("TEST_DOTENV_SHELL"))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		found, err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("malformed line is reported with position", func(t *testing.T) {
		path := writeDotEnv(t, "JUST_A_WORD\n")

		found, err := LoadDotEnv(path)
		assert.True(t, found)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ":1:")
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		path := writeDotEnv(t, "=value\n")

		_, err := LoadDotEnv(path)
		assert.Error(t, err)
	})
}
