package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Hit is a search match with a short excerpt around the first term.
type Hit struct {
	Key     string
	Title   string
	Snippet string
}

const snippetRadius = 60

// Search returns the entries whose title or text contains every term of q,
// ignoring case and accents. Hits keep table order.
func (t *Table) Search(q string) []Hit {
	terms := strings.Fields(q)
	if len(terms) == 0 {
		return nil
	}
	folded := make([][]rune, len(terms))
	for i, term := range terms {
		folded[i] = foldRunes(term)
	}

	var hits []Hit
	for _, e := range t.entries {
		title := foldRunes(e.Title)
		text := []rune(e.Text)
		body := foldRunes(e.Text)

		first := -1
		matched := true
		for i, term := range folded {
			at := indexRunes(body, term)
			if at < 0 && indexRunes(title, term) < 0 {
				matched = false
				break
			}
			if i == 0 {
				first = at
			}
		}
		if !matched {
			continue
		}
		hits = append(hits, Hit{Key: e.Key, Title: e.Title, Snippet: excerpt(text, first, len(folded[0]))})
	}
	return hits
}

// Search on the compiled-in table.
func Search(q string) []Hit { return Default.Search(q) }

// foldRunes folds rune by rune so indexes into the result are valid
// indexes into the original text. Casers and transformers are stateful,
// so each call builds its own.
func foldRunes(s string) []rune {
	f := folder{
		caser: cases.Fold(),
		marks: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
	src := []rune(s)
	out := make([]rune, len(src))
	for i, r := range src {
		out[i] = f.rune(r)
	}
	return out
}

type folder struct {
	caser cases.Caser
	marks transform.Transformer
}

func (f folder) rune(r rune) rune {
	if r < unicode.MaxASCII {
		return unicode.ToLower(r)
	}
	s, _, err := transform.String(f.marks, f.caser.String(string(r)))
	if err == nil {
		if rs := []rune(s); len(rs) == 1 {
			return rs[0]
		}
	}
	return unicode.ToLower(r)
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func excerpt(text []rune, at, n int) string {
	if at < 0 {
		at, n = 0, 0
	}
	start := max(at-snippetRadius, 0)
	end := min(at+n+snippetRadius, len(text))
	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}
	b.WriteString(strings.TrimSpace(string(text[start:end])))
	if end < len(text) {
		b.WriteString("…")
	}
	return b.String()
}
