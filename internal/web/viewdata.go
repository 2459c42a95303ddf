package web

import "et21/internal/nav"

// HeaderData is rendered by the shared header partial on every page.
type HeaderData struct {
	LoggedIn bool
	Email    string
	Path     string
	Query    string
	Nav      []nav.RenderedItem
}

// Page wraps shared Header + page-specific Content. Bare pages (login)
// skip the header and footer.
type Page[T any] struct {
	Header  HeaderData
	Title   string
	Bare    bool
	Content T
}
