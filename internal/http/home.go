package http

import (
	"net/http"
	"strings"

	"et21/internal/content"
	"et21/internal/http/middleware"
	"et21/internal/site"
	"et21/internal/web"
)

type HomeHandler struct {
	TPL     *web.Renderer
	Content *content.Table
}

type dashboardTab struct {
	Key    string
	Label  string
	Active bool
}

var dashboardTabs = []dashboardTab{
	{Key: "inicio", Label: "Inicio"},
	{Key: "materias", Label: "Materias"},
	{Key: "buscador", Label: "Buscador"},
	{Key: "contactar", Label: "Contactar"},
}

type homeContent struct {
	Email    string
	Tab      string
	Tabs     []dashboardTab
	News     []site.NewsItem
	Subjects []site.Subject
	Query    string
	Hits     []content.Hit
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := selectTab(q.Get("tab"))

	c := homeContent{
		Email:    middleware.Email(r),
		Tab:      tab,
		News:     site.News,
		Subjects: site.Subjects,
	}
	for _, t := range dashboardTabs {
		t.Active = t.Key == tab
		c.Tabs = append(c.Tabs, t)
	}
	if tab == "buscador" {
		c.Query = strings.TrimSpace(q.Get("q"))
		c.Hits = h.Content.Search(c.Query)
	}

	page := web.Page[homeContent]{Header: loadHeader(r), Title: "Panel de Control", Content: c}
	render(w, r, h.TPL, "home", http.StatusOK, page)
}

// selectTab falls back to the first tab for unknown or missing keys.
func selectTab(key string) string {
	for _, t := range dashboardTabs {
		if t.Key == key {
			return key
		}
	}
	return dashboardTabs[0].Key
}
