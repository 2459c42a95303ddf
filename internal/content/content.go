package content

import (
	"embed"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotFoundText is the body shown for any segment outside the table.
const NotFoundText = "Contenido no encontrado."

//go:embed pages/*.md
var pagesFS embed.FS

// Entry is one static content block addressed by its URL segment key,
// e.g. "autoridades" or "biblioteca/historia".
type Entry struct {
	Key     string
	Title   string
	Body    template.HTML
	Text    string
	Missing bool

	order int
}

// Table is the immutable set of known entries, in display order.
type Table struct {
	entries []Entry
	byKey   map[string]int
}

// Default holds the pages compiled into the binary.
var Default = MustLoad(pagesFS, "pages")

// Lookup matches key against the table by literal equality.
func (t *Table) Lookup(key string) (Entry, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Resolve maps the one or two path parameters of a content route to an
// entry. Unknown keys never fail: they produce the not-found block titled
// after the last segment.
func (t *Table) Resolve(section, sub string) Entry {
	key := section
	last := section
	if sub != "" {
		key = section + "/" + sub
		last = sub
	}
	if e, ok := t.Lookup(key); ok {
		return e
	}
	return NotFound(last)
}

// Keys returns the known keys in display order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Key
	}
	return out
}

// NotFound builds the fallback block for an unknown segment.
func NotFound(segment string) Entry {
	return Entry{
		Key:     segment,
		Title:   TitleFromSegment(segment),
		Body:    template.HTML("<p>" + NotFoundText + "</p>"),
		Text:    NotFoundText,
		Missing: true,
	}
}

// Lookup, Resolve and Keys on the compiled-in table.
func Lookup(key string) (Entry, bool)    { return Default.Lookup(key) }
func Resolve(section, sub string) Entry { return Default.Resolve(section, sub) }
func Keys() []string                    { return Default.Keys() }

// TitleFromSegment turns "nuestra-historia" into "Nuestra historia".
func TitleFromSegment(seg string) string {
	s := strings.ReplaceAll(seg, "-", " ")
	if s == "" {
		return s
	}
	r := []rune(s)
	return cases.Upper(language.Spanish).String(string(r[0])) + string(r[1:])
}
