package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional graph path with defaults", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, shouldExit, err := Parse([]string{"game.json"}, out)
		require.NoError(t, err)
		require.False(t, shouldExit)

		assert.Equal(t, "game.json", config.GraphPath)
		assert.Equal(t, "nodes", config.NodesPath)
		assert.Equal(t, "", config.OutPath)
		assert.Equal(t, "text", config.LogFormat)
		assert.Equal(t, "info", config.LogLevel)
	})

	t.Run("graph flag and shorthand", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, _, err := Parse([]string{"-graph", "a.json"}, out)
		require.NoError(t, err)
		assert.Equal(t, "a.json", config.GraphPath)

		config, _, err = Parse([]string{"-g", "b.json"}, out)
		require.NoError(t, err)
		assert.Equal(t, "b.json", config.GraphPath)
	})

	t.Run("flag takes precedence over positional", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, _, err := Parse([]string{"-graph", "flagged.json", "positional.json"}, out)
		require.NoError(t, err)
		assert.Equal(t, "flagged.json", config.GraphPath)
	})

	t.Run("all options", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, _, err := Parse([]string{
			"-nodes-path", "defs",
			"-o", "out.pulsar",
			"-log-format", "json",
			"-log-level", "debug",
			"game.json",
		}, out)
		require.NoError(t, err)

		assert.Equal(t, "defs", config.NodesPath)
		assert.Equal(t, "out.pulsar", config.OutPath)
		assert.Equal(t, "json", config.LogFormat)
		assert.Equal(t, "debug", config.LogLevel)
	})

	t.Run("no graph path prints usage and exits", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, shouldExit, err := Parse([]string{}, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, config)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-format", "xml", "game.json"}, out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-level", "loud", "game.json"}, out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-level")
	})

	t.Run("unknown flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--bogus"}, out)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
