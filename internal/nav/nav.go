package nav

import "strings"

// Item is one entry of the site menu. Items with children act as
// dropdowns; their Href, when set, is an in-page anchor.
type Item struct {
	Title string
	Href  string
	Items []Item
}

// RenderedItem is the template view of an Item.
type RenderedItem struct {
	Title  string
	Href   string
	Active bool
	Items  []RenderedItem
}

// MaxDepth is the deepest nesting the menu templates render.
const MaxDepth = 3

// Main is the site menu shared by every page.
var Main = []Item{
	{
		Title: "Institucional",
		Href:  "#institucional",
		Items: []Item{
			{Title: "Autoridades", Href: "/autoridades"},
			{Title: "Nuestra Historia", Href: "/nuestra-historia"},
			{Title: "Nuestros Objetivos", Href: "/objetivos"},
			{Title: "Perfil de Preceptor", Href: "/perfil-preceptor"},
			{Title: "Perfil de Egresado", Href: "/perfil-egresado"},
			{Title: "Cooperadora", Href: "/cooperadora"},
			{
				Title: "Biblioteca",
				Items: []Item{
					{Title: "Historia", Href: "/biblioteca/historia"},
					{Title: "Reglamento", Href: "/biblioteca/reglamento"},
					{Title: "Servicios", Href: "/biblioteca/servicios"},
					{Title: "Usuarios", Href: "/biblioteca/usuarios"},
				},
			},
		},
	},
	{
		Title: "Académico",
		Href:  "#academico",
		Items: []Item{
			{Title: "Turno Noche", Href: "/turno-noche"},
			{
				Title: "Plan de Estudios",
				Items: []Item{
					{Title: "Ciclo Básico 4145", Href: "/plan-estudios/ciclo-basico"},
					{Title: "Taller", Href: "/plan-estudios/taller"},
					{Title: "Ciclo Superior Maestro Mayor de Obras 4150", Href: "/plan-estudios/mmo"},
					{Title: "Técnico en Computación 4147", Href: "/plan-estudios/computacion"},
				},
			},
		},
	},
	{
		Title: "Alumnos",
		Href:  "#alumnos",
		Items: []Item{
			{Title: "Atención a Víctimas de Violencia", Href: "/atencion-victimas"},
			{Title: "Tutorías", Href: "/tutorias"},
			{Title: "Documentación", Href: "/documentacion"},
		},
	},
}

// Build renders the menu with active state given the current path. A
// parent is active when any descendant is.
func Build(currentPath string) []RenderedItem {
	return build(Main, normalize(currentPath))
}

func build(items []Item, current string) []RenderedItem {
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		r := RenderedItem{Title: it.Title, Href: it.Href}
		if len(it.Items) > 0 {
			r.Items = build(it.Items, current)
			for _, c := range r.Items {
				if c.Active {
					r.Active = true
					break
				}
			}
		} else {
			r.Active = it.Href == current
		}
		out = append(out, r)
	}
	return out
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Walk visits every item depth first. depth is 1 for top-level items.
func Walk(fn func(it Item, depth int)) {
	walk(Main, 1, fn)
}

func walk(items []Item, depth int, fn func(Item, int)) {
	for _, it := range items {
		fn(it, depth)
		walk(it.Items, depth+1, fn)
	}
}

// Leaves returns the hrefs of every item without children.
func Leaves() []string {
	var out []string
	Walk(func(it Item, _ int) {
		if len(it.Items) == 0 && it.Href != "" {
			out = append(out, it.Href)
		}
	})
	return out
}
