package web

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"et21/internal/nav"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPagesParse(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	for _, name := range []string{"landing", "info", "login", "home", "search"} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("base"))
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", nil))
}

func TestNavRendersThreeLevels(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	type searchData struct {
		Query string
		Hits  []struct{ Key, Title, Snippet string }
	}
	var buf bytes.Buffer
	err = r.Render(&buf, "search", Page[searchData]{
		Header: HeaderData{Path: "/plan-estudios/mmo", Nav: nav.Build("/plan-estudios/mmo")},
	})
	require.NoError(t, err)

	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Find("#site-nav .nav-level-1 > li").Length())
	assert.Equal(t, 1, d.Find(".nav-level-3 a[aria-current='page'][href='/plan-estudios/mmo']").Length())
	assert.Equal(t, "Iniciar sesión", d.Find(".session a").Text())
}

func testFS(page string) fstest.MapFS {
	return fstest.MapFS{
		"base.tmpl":           {Data: []byte(`{{define "base"}}<p>{{template "content" .}}</p>{{end}}`)},
		"partials/empty.tmpl": {Data: []byte(`{{define "empty"}}{{end}}`)},
		"pages/one.tmpl":      {Data: []byte(page)},
	}
}

func TestReloadKeepsPreviousSetOnError(t *testing.T) {
	fsys := testFS(`{{define "one"}}{{template "base" .}}{{end}}{{define "content"}}{{fecha .}}{{end}}`)
	r, err := NewRendererFS(fsys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "one", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "<p>09/03/2024</p>", buf.String())

	fsys["pages/one.tmpl"] = &fstest.MapFile{Data: []byte(`{{define "one"}}{{.Broken`)}
	assert.Error(t, r.Reload())
	assert.True(t, r.Has("one"))
}

func TestPageMustDefineItsName(t *testing.T) {
	_, err := NewRendererFS(testFS(`{{define "other"}}x{{end}}`))
	assert.ErrorContains(t, err, `does not define template "one"`)
}

func TestSchoolFuncs(t *testing.T) {
	fsys := testFS(`{{define "one"}}{{schoolName}}|{{(schoolContact).Phone}}|{{copyright}}{{end}}`)
	r, err := NewRendererFS(fsys)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "one", nil))
	assert.Equal(t, "Fragata Escuela Libertad|011 4546-3878|© 2024 Escuela Técnica Nº 21 D.E. 10. Todos los derechos reservados.", buf.String())
}
