package render_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/landing/render"
)

func setupRenderer(t *testing.T, files fstest.MapFS) *render.TemplateRenderer {
	r, err := render.NewTemplateRenderer(files, "", zaptest.NewLogger(t))
	require.NoError(t, err)
	return r
}

func TestTemplateRenderer_Render_Default(t *testing.T) {
	r, err := render.NewTemplateRenderer(render.DefaultFS(), render.DefaultExtension, zaptest.NewLogger(t))
	require.NoError(t, err)

	body, err := r.Render("base", nil)
	require.NoError(t, err)

	assert.Contains(t, string(body), "<!DOCTYPE html>")
	assert.Contains(t, string(body), "<title>Welcome!</title>")
}

func TestTemplateRenderer_Render_WithData(t *testing.T) {
	r := setupRenderer(t, fstest.MapFS{
		"pages/hello.html": {Data: []byte(`<p>Hello {{.Name}}</p>`)},
	})

	body, err := r.Render("pages/hello", map[string]string{"Name": "<world>"})
	require.NoError(t, err)

	assert.Equal(t, "<p>Hello &lt;world&gt;</p>", string(body))
}

func TestTemplateRenderer_Render_NameWithExtension(t *testing.T) {
	r := setupRenderer(t, fstest.MapFS{
		"base.html": {Data: []byte(`base`)},
	})

	body, err := r.Render("base.html", nil)
	require.NoError(t, err)

	assert.Equal(t, "base", string(body))
}

func TestTemplateRenderer_Render_NotFound(t *testing.T) {
	r := setupRenderer(t, fstest.MapFS{
		"base.html": {Data: []byte(`base`)},
	})

	body, err := r.Render("missing", nil)

	assert.Nil(t, body)
	assert.True(t, render.IsRenderError(err))
	assert.ErrorIs(t, err, render.ErrTemplateNotFound)

	var renderErr *render.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "missing", renderErr.Name)
}

func TestTemplateRenderer_Render_SyntaxError(t *testing.T) {
	r := setupRenderer(t, fstest.MapFS{
		"base.html":   {Data: []byte(`base`)},
		"broken.html": {Data: []byte(`{{if .}}never closed`)},
	})

	_, err := r.Render("broken", nil)
	assert.True(t, render.IsRenderError(err))
	assert.NotErrorIs(t, err, render.ErrTemplateNotFound)

	// a broken template does not affect the others
	body, err := r.Render("base", nil)
	require.NoError(t, err)
	assert.Equal(t, "base", string(body))
}

func TestTemplateRenderer_Render_ExecutionError(t *testing.T) {
	r := setupRenderer(t, fstest.MapFS{
		"base.html": {Data: []byte(`before {{template "undefined"}} after`)},
	})

	body, err := r.Render("base", nil)

	assert.Nil(t, body)
	assert.True(t, render.IsRenderError(err))
}

func TestTemplateRenderer_Render_Idempotent(t *testing.T) {
	r, err := render.NewTemplateRenderer(render.DefaultFS(), "", zaptest.NewLogger(t))
	require.NoError(t, err)

	first, err := r.Render("base", nil)
	require.NoError(t, err)

	second, err := r.Render("base", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTemplateRenderer_IgnoresOtherExtensions(t *testing.T) {
	r := setupRenderer(t, fstest.MapFS{
		"base.html":     {Data: []byte(`base`)},
		"README.md":     {Data: []byte(`# templates`)},
		"style.css":     {Data: []byte(`body {}`)},
		"nested/a.html": {Data: []byte(`a`)},
	})

	assert.Equal(t, []string{"base", "nested/a"}, r.Templates())
}

func TestTemplateRenderer_CustomExtension(t *testing.T) {
	r, err := render.NewTemplateRenderer(fstest.MapFS{
		"base.html.tmpl": {Data: []byte(`tmpl`)},
		"other.html":     {Data: []byte(`html`)},
	}, ".html.tmpl", zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"base"}, r.Templates())
}

func TestTemplateRenderer_Reload(t *testing.T) {
	files := fstest.MapFS{
		"base.html": {Data: []byte(`v1`)},
	}
	r := setupRenderer(t, files)

	files["base.html"] = &fstest.MapFile{Data: []byte(`v2`)}
	require.NoError(t, r.Reload())

	body, err := r.Render("base", nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(body))
}

// switchFS serves files until broken is set.
type switchFS struct {
	files  fstest.MapFS
	broken bool
}

func (f *switchFS) Open(name string) (fs.File, error) {
	if f.broken {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}

	return f.files.Open(name)
}

func TestTemplateRenderer_Reload_FailureKeepsTemplates(t *testing.T) {
	fsys := &switchFS{files: fstest.MapFS{
		"base.html": &fstest.MapFile{Data: []byte(`v1`)},
	}}

	r, err := render.NewTemplateRenderer(fsys, "", zaptest.NewLogger(t))
	require.NoError(t, err)

	fsys.files["base.html"] = &fstest.MapFile{Data: []byte(`v2`)}
	fsys.broken = true

	assert.ErrorIs(t, r.Reload(), fs.ErrPermission)

	body, err := r.Render("base", nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(body))
	assert.Equal(t, []string{"base"}, r.Templates())
}

func TestNewTemplateRenderer_MissingDir(t *testing.T) {
	_, err := render.NewTemplateRenderer(os.DirFS(filepath.Join(t.TempDir(), "missing")), "", zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.html")
	require.NoError(t, os.WriteFile(path, []byte(`v1`), 0o644))

	log := zaptest.NewLogger(t)

	r, err := render.NewTemplateRenderer(os.DirFS(dir), "", log)
	require.NoError(t, err)

	w := render.NewWatcher(dir, r, log)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`v2`), 0o644))

	require.Eventually(t, func() bool {
		body, err := r.Render("base", nil)
		return err == nil && string(body) == "v2"
	}, 5*time.Second, 20*time.Millisecond)
}
