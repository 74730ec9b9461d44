package wire

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/mdserve/internal/logging"
	"github.com/mithrel/mdserve/internal/segment"
)

func testApp(t *testing.T, set map[string]any) *App {
	t.Helper()
	v := viper.New()
	v.Set("log.level", "DEBUG")
	v.Set("log.dir", "")
	v.Set("segment.lang", "mermaid")
	for k, val := range set {
		v.Set(k, val)
	}
	var console bytes.Buffer
	app, err := BuildApp(context.Background(), v, func(o *logging.Options) { o.Console = zapcore.AddSync(&console) })
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("a\n```mermaid\nx\n```\nb"), 0o600))

	app := testApp(t, nil)
	doc, blocks, err := app.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Len(t, blocks, 3)
}

func TestLoadUnterminatedError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("a\n```mermaid\nx\n"), 0o600))

	app := testApp(t, map[string]any{"segment.unterminated": "error"})
	_, _, err := app.Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, segment.ErrUnterminatedFence))
}

func TestBuildAppBadLevel(t *testing.T) {
	v := viper.New()
	v.Set("log.level", "nope")
	_, err := BuildApp(context.Background(), v)
	assert.Error(t, err)
}

func TestSegmenterBadPolicy(t *testing.T) {
	app := testApp(t, map[string]any{"segment.unterminated": "maybe"})
	_, err := app.Segmenter()
	assert.Error(t, err)
}
