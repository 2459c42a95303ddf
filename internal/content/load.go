package content

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type frontMatter struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Order int    `yaml:"order"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

func bodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4")
	p.AllowElements("br")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnFullyQualifiedLinks(true)
	return p
}

// Load reads every markdown page under dir. Each page must declare a
// unique key in its front matter.
func Load(fsys fs.FS, dir string) (*Table, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	policy := bodyPolicy()
	strip := bluemonday.StrictPolicy()

	t := &Table{byKey: make(map[string]int, len(files))}
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var fm frontMatter
		rest, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
		if err != nil {
			return nil, fmt.Errorf("front matter %s: %w", name, err)
		}
		fm.Key = strings.TrimSpace(fm.Key)
		if fm.Key == "" {
			return nil, fmt.Errorf("%s: missing key", name)
		}
		if _, dup := t.byKey[fm.Key]; dup {
			return nil, fmt.Errorf("%s: duplicate key %q", name, fm.Key)
		}

		var buf bytes.Buffer
		if err := md.Convert(rest, &buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		body := policy.SanitizeBytes(buf.Bytes())

		title := fm.Title
		if title == "" {
			title = TitleFromSegment(path.Base(fm.Key))
		}
		t.byKey[fm.Key] = len(t.entries)
		t.entries = append(t.entries, Entry{
			Key:   fm.Key,
			Title: title,
			Body:  template.HTML(body),
			Text:  plainText(strip.Sanitize(strings.ReplaceAll(string(body), "<", " <"))),
			order: fm.Order,
		})
	}

	sort.SliceStable(t.entries, func(i, j int) bool { return t.entries[i].order < t.entries[j].order })
	for i, e := range t.entries {
		t.byKey[e.Key] = i
	}
	return t, nil
}

// MustLoad is Load for the compiled-in pages.
func MustLoad(fsys fs.FS, dir string) *Table {
	t, err := Load(fsys, dir)
	if err != nil {
		panic("content: " + err.Error())
	}
	return t
}

func plainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
