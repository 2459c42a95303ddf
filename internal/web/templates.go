package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"et21/internal/site"
	"github.com/Masterminds/sprig/v3"
)

//go:embed tpl
var tplFS embed.FS

// Renderer executes named page templates. Each page is parsed together
// with the base layout and partials once, then cached.
type Renderer struct {
	mu    sync.RWMutex
	fsys  fs.FS
	pages map[string]*template.Template
}

// NewRenderer parses the templates compiled into the binary.
func NewRenderer() (*Renderer, error) {
	sub, err := fs.Sub(tplFS, "tpl")
	if err != nil {
		return nil, err
	}
	return NewRendererFS(sub)
}

// NewRendererFS parses templates from fsys, which must hold base.tmpl,
// partials/*.tmpl and pages/*.tmpl.
func NewRendererFS(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{fsys: fsys}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses every page. On error the previous set stays active.
func (r *Renderer) Reload() error {
	pages, err := parseAll(r.fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return t.ExecuteTemplate(w, name, data)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pages[name]
	return ok
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"fecha": func(t time.Time) string { return t.Format("02/01/2006") },

		"schoolName":     func() string { return site.Name },
		"schoolFullName": func() string { return site.FullName },
		"schoolContact":  func() site.Contact { return site.SchoolContact },
		"copyright":      func() string { return site.Copyright },
	}
}

func parseAll(fsys fs.FS) (map[string]*template.Template, error) {
	files, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".tmpl")
		t := template.New("root").Funcs(sprig.FuncMap()).Funcs(funcs())
		if _, err := t.ParseFS(fsys, "base.tmpl", "partials/*.tmpl"); err != nil {
			return nil, fmt.Errorf("parse layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("%s does not define template %q", f, name)
		}
		pages[name] = t
	}
	return pages, nil
}
