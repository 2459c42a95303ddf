package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitKeys(hits []Hit) []string {
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.Key)
	}
	return out
}

func TestSearchIgnoresCaseAndAccents(t *testing.T) {
	a := hitKeys(Search("Jose Hernandez"))
	b := hitKeys(Search("JOSÉ hernández"))
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "biblioteca/historia")
	assert.Contains(t, a, "biblioteca/reglamento")
}

func TestSearchRequiresEveryTerm(t *testing.T) {
	assert.Equal(t, []string{"turno-noche"}, hitKeys(Search("23:10")))
	assert.Empty(t, Search("23:10 hojalateria"))
	assert.Equal(t, []string{"plan-estudios/ciclo-basico"}, hitKeys(Search("hojalateria")))
}

func TestSearchMatchesTitles(t *testing.T) {
	hits := Search("tutorias")
	require.NotEmpty(t, hits)
	assert.Equal(t, "tutorias", hits[0].Key)
}

func TestSearchSnippetKeepsOriginalText(t *testing.T) {
	hits := Search("folino")
	require.Len(t, hits, 1)
	assert.Equal(t, "autoridades", hits[0].Key)
	assert.Contains(t, hits[0].Snippet, "Pablo Daniel Folino")
}

func TestSearchEmptyQuery(t *testing.T) {
	assert.Nil(t, Search(""))
	assert.Nil(t, Search("   "))
}
