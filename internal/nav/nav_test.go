package nav

import (
	"strings"
	"testing"

	"et21/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryLeafResolvesToContent(t *testing.T) {
	leaves := Leaves()
	require.Len(t, leaves, 18)
	for _, href := range leaves {
		key := strings.TrimPrefix(href, "/")
		_, ok := content.Lookup(key)
		assert.True(t, ok, "nav link %s has no content entry", href)
	}
}

func TestDepthIsBounded(t *testing.T) {
	deepest := 0
	Walk(func(_ Item, depth int) {
		deepest = max(deepest, depth)
	})
	assert.Equal(t, MaxDepth, deepest)
}

func TestBuildMarksActivePath(t *testing.T) {
	items := Build("/biblioteca/reglamento")
	require.Len(t, items, 3)

	inst := items[0]
	assert.True(t, inst.Active)
	assert.False(t, items[1].Active)
	assert.False(t, items[2].Active)

	lib := inst.Items[6]
	require.Equal(t, "Biblioteca", lib.Title)
	assert.True(t, lib.Active)
	for _, it := range lib.Items {
		assert.Equal(t, it.Href == "/biblioteca/reglamento", it.Active, it.Href)
	}
}

func TestBuildTrailingSlash(t *testing.T) {
	items := Build("/tutorias/")
	assert.True(t, items[2].Active)
}

func TestBuildHomeHasNothingActive(t *testing.T) {
	for _, it := range Build("") {
		assert.False(t, it.Active, it.Title)
	}
}

func TestBuildDoesNotAliasMain(t *testing.T) {
	items := Build("/autoridades")
	items[0].Items[0].Title = "changed"
	assert.Equal(t, "Autoridades", Main[0].Items[0].Title)
}
