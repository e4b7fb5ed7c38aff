package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/logger"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Messages(t *testing.T) {
	tests := []struct {
		name   string
		log    func(lg *logger.Logger)
		golden string
	}{
		{
			name:   "info",
			log:    func(lg *logger.Logger) { lg.Info("reloaded common/config/rush/pnpm-lock.yaml") },
			golden: "info_basic",
		},
		{
			name:   "info without text",
			log:    func(lg *logger.Logger) { lg.Info("") },
			golden: "info_empty",
		},
		{
			name:   "info spanning lines",
			log:    func(lg *logger.Logger) { lg.Info("watching pnpm-lock.yaml\npress ctrl-c to stop") },
			golden: "info_multiline",
		},
		{
			name: "warn",
			log: func(lg *logger.Logger) {
				lg.Warn("failed to read lockfile after remove; keeping the previous version")
			},
			golden: "warn_basic",
		},
		{
			name:   "warn without text",
			log:    func(lg *logger.Logger) { lg.Warn("") },
			golden: "warn_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			goldie.New(t).Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: line 3: did not find expected key\nwhile parsing importers"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain with metadata",
			err: zerr.Wrap(
				zerr.With(zerr.With(domain.ErrUnresolvedDependency, "target_id", "/left-pad/9.9.9"), "line", 12),
				"failed to load lockfile",
			),
			goldenName: "error_chain",
		},
		{
			name:       "wrapped sentinel",
			err:        zerr.Wrap(domain.ErrMissingRoot, "failed to build lockfile"),
			goldenName: "error_wrapped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("loaded")
	lg.Error(zerr.With(domain.ErrEntryNotFound, "query", "react"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "loaded", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, domain.ErrEntryNotFound.Error(), failure["msg"])
	assert.Equal(t, "react", failure["query"])
	assert.Contains(t, failure["error"], domain.ErrEntryNotFound.Error())
}

func TestLogger_SetOutputKeepsFormat(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("still json")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "got %q", buf.String())
}
