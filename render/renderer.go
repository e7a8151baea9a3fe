package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultExtension is the file extension of template sources.
const DefaultExtension = ".html"

//go:embed templates
var defaultTemplates embed.FS

// DefaultFS returns the template set shipped with the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("render: embedded templates: %v", err))
	}

	return sub
}

// Renderer is the interface for rendering templates by name.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

type templateSet struct {
	templates map[string]*template.Template

	// errs holds the parse error of every template that failed to parse
	errs map[string]error
}

// TemplateRenderer renders html/template files loaded from a file system.
// A template is addressed by its slash separated path relative to the
// root, without the extension.
type TemplateRenderer struct {
	fsys fs.FS
	ext  string
	set  atomic.Pointer[templateSet]
	log  *zap.Logger
}

var _ Renderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer creates a renderer and loads all templates below
// the root of fsys. An error is returned only if fsys cannot be read;
// templates that fail to parse are reported when they are rendered.
func NewTemplateRenderer(fsys fs.FS, ext string, log *zap.Logger) (*TemplateRenderer, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	if log == nil {
		log = zap.NewNop()
	}

	r := &TemplateRenderer{
		fsys: fsys,
		ext:  ext,
		log:  log,
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

// Reload parses all templates again and swaps them in at once. On error
// the previously loaded templates stay active.
func (r *TemplateRenderer) Reload() error {
	set, err := r.load()
	if err != nil {
		r.log.Error("failed to load templates", zap.Error(err))
		return err
	}

	r.set.Store(set)

	r.log.Debug("loaded templates",
		zap.Int("templates", len(set.templates)),
		zap.Int("invalid", len(set.errs)),
	)

	return nil
}

// Render executes the named template with data. The name may carry the
// template extension.
func (r *TemplateRenderer) Render(name string, data any) ([]byte, error) {
	name = strings.TrimSuffix(name, r.ext)

	set := r.set.Load()

	if err, ok := set.errs[name]; ok {
		return nil, newRenderError(name, err)
	}

	tmpl, ok := set.templates[name]
	if !ok {
		return nil, newRenderError(name, ErrTemplateNotFound)
	}

	// execute into a buffer, a failed execution must not leak partial output
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, newRenderError(name, err)
	}

	return buf.Bytes(), nil
}

// Templates returns the sorted names of all known templates, including
// the ones that failed to parse.
func (r *TemplateRenderer) Templates() []string {
	set := r.set.Load()

	names := make([]string, 0, len(set.templates)+len(set.errs))
	for name := range set.templates {
		names = append(names, name)
	}
	for name := range set.errs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *TemplateRenderer) load() (*templateSet, error) {
	set := &templateSet{
		templates: make(map[string]*template.Template),
		errs:      make(map[string]error),
	}

	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(p, r.ext) {
			return nil
		}

		name := strings.TrimSuffix(p, r.ext)

		src, err := fs.ReadFile(r.fsys, p)
		if err != nil {
			return err
		}

		tmpl, err := template.New(name).Parse(string(src))
		if err != nil {
			r.log.Warn("invalid template", zap.String("template", name), zap.Error(err))
			set.errs[name] = err
			return nil
		}

		set.templates[name] = tmpl

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return set, nil
}
