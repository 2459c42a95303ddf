package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"et21/internal/content"
	"et21/internal/site"
	"et21/internal/web"
)

type PageHandler struct {
	TPL     *web.Renderer
	Content *content.Table
	Public  *publicBundle
}

type landingContent struct {
	Tagline    string
	About      []string
	Programs   []site.Program
	Facilities []string
	Steps      []site.Step
	Contact    site.Contact
}

type searchContent struct {
	Query string
	Hits  []content.Hit
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	page := web.Page[landingContent]{
		Header: loadHeader(r),
		Content: landingContent{
			Tagline:    site.Tagline,
			About:      site.About,
			Programs:   site.Programs,
			Facilities: site.Facilities,
			Steps:      site.EnrollmentSteps,
			Contact:    site.SchoolContact,
		},
	}
	render(w, r, h.TPL, "landing", http.StatusOK, page)
}

// Info renders the content block for /{section} or /{section}/{sub}.
// Unknown keys get the fallback block with a 200, as any client-side
// route would.
func (h *PageHandler) Info(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	sub := strings.Trim(r.PathValue("sub"), "/")
	if h.Public.serve(w, r) {
		return
	}
	if strings.Contains(sub, "/") {
		h.Landing(w, r)
		return
	}
	entry := h.Content.Resolve(section, sub)
	page := web.Page[content.Entry]{
		Header:  loadHeader(r),
		Title:   entry.Title,
		Content: entry,
	}
	render(w, r, h.TPL, "info", http.StatusOK, page)
}

func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	page := web.Page[searchContent]{
		Header:  loadHeader(r),
		Title:   "Buscar",
		Content: searchContent{Query: q, Hits: h.Content.Search(q)},
	}
	render(w, r, h.TPL, "search", http.StatusOK, page)
}

// CatchAll serves a file from the public bundle when one exists at the
// request path and the landing page otherwise.
func (h *PageHandler) CatchAll(w http.ResponseWriter, r *http.Request) {
	if h.Public.serve(w, r) {
		return
	}
	h.Landing(w, r)
}

// publicBundle is the optional on-disk directory of extra public files.
type publicBundle struct {
	fsys fs.FS
}

// serve writes the file at the request path and reports whether it did.
// Directories and missing files are left to the caller.
func (b *publicBundle) serve(w http.ResponseWriter, r *http.Request) bool {
	if b == nil || b.fsys == nil {
		return false
	}
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || !fs.ValidPath(name) {
		return false
	}
	st, err := fs.Stat(b.fsys, name)
	if err != nil || st.IsDir() {
		return false
	}
	http.ServeFileFS(w, r, b.fsys, name)
	return true
}
