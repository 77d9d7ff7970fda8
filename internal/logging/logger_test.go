package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{level: "trace", want: []string{"trace", "debug", "info", "warn"}},
		{level: "debug", want: []string{"debug", "info", "warn"}},
		{level: "info", want: []string{"info", "warn"}},
		{level: "warn", want: []string{"warn"}},
		{level: "error", want: nil},
		{level: "bogus", want: []string{"info", "warn"}},
		{level: "", want: []string{"info", "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Output: &buf})

			logger.Trace().Msg("trace")
			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Warn().Msg("warn")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &entry))
				got = append(got, entry["message"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "report")
	logger.Info().Msg("built")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "report", entry["component"])
	assert.Equal(t, "built", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, NoColor: true, Output: &buf})
	logger.Info().Str("path", "profile.json").Msg("reading profile")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "reading profile")
	assert.Contains(t, out, "path=profile.json")
	assert.NotContains(t, out, "\x1b[")
}
