package web

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.tmpl"), `{{define "base"}}{{template "content" .}}{{end}}`)
	writeFile(t, filepath.Join(dir, "partials", "x.tmpl"), `{{define "x"}}{{end}}`)
	page := filepath.Join(dir, "pages", "one.tmpl")
	writeFile(t, page, `{{define "one"}}{{template "base" .}}{{end}}{{define "content"}}antes{{end}}`)

	r, err := NewDevRenderer(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, Watch(ctx, dir, r))

	writeFile(t, page, `{{define "one"}}{{template "base" .}}{{end}}{{define "content"}}después{{end}}`)

	assert.Eventually(t, func() bool {
		var buf bytes.Buffer
		return r.Render(&buf, "one", nil) == nil && buf.String() == "después"
	}, 5*time.Second, 50*time.Millisecond)
}
