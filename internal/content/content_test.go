package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wantKeys = []string{
	"autoridades",
	"nuestra-historia",
	"objetivos",
	"perfil-preceptor",
	"perfil-egresado",
	"cooperadora",
	"biblioteca/historia",
	"biblioteca/reglamento",
	"biblioteca/servicios",
	"biblioteca/usuarios",
	"turno-noche",
	"plan-estudios",
	"plan-estudios/ciclo-basico",
	"plan-estudios/taller",
	"plan-estudios/mmo",
	"plan-estudios/computacion",
	"atencion-victimas",
	"tutorias",
	"documentacion",
}

func TestKeysInDisplayOrder(t *testing.T) {
	assert.Equal(t, wantKeys, Keys())
}

func TestResolveKnownSegments(t *testing.T) {
	cases := []struct {
		section, sub string
		title        string
		contains     string
	}{
		{"autoridades", "", "Autoridades", "Prof. Ing. Pablo Daniel Folino"},
		{"nuestra-historia", "", "Nuestra historia", "creada el 12 de abril de 1945"},
		{"objetivos", "", "Objetivos", "Que la Institución logre:"},
		{"perfil-preceptor", "", "Perfil preceptor", "Que el preceptor sea capaz de:"},
		{"perfil-egresado", "", "Perfil egresado", "Que el alumno sea capaz de:"},
		{"cooperadora", "", "Cooperadora", "Gastos e Ingresos de Cooperadora"},
		{"biblioteca", "historia", "Historia", "Historia de la Biblioteca"},
		{"biblioteca", "reglamento", "Reglamento", "Sanciones"},
		{"biblioteca", "servicios", "Servicios", "Servicios de la Biblioteca"},
		{"biblioteca", "usuarios", "Usuarios", "Usuarios de la Biblioteca"},
		{"turno-noche", "", "Turno noche", "18:00 a 23:10 hs."},
		{"plan-estudios", "", "Plan estudios", "Contenido de Plan de Estudios"},
		{"plan-estudios", "ciclo-basico", "Ciclo basico", "Lengua y Literatura"},
		{"plan-estudios", "taller", "Taller", "Contenido de Taller"},
		{"plan-estudios", "mmo", "Mmo", "Contenido de Ciclo Superior Maestro Mayor de Obras 4150"},
		{"plan-estudios", "computacion", "Computacion", "Contenido de Técnico en Computación 4147"},
		{"atencion-victimas", "", "Atencion victimas", "Contenido de Atención a Víctimas de Violencia"},
		{"tutorias", "", "Tutorias", "Contenido de Tutorías"},
		{"documentacion", "", "Documentacion", "Documentación Importante para Descargar"},
	}
	for _, tc := range cases {
		name := tc.section
		if tc.sub != "" {
			name += "/" + tc.sub
		}
		t.Run(name, func(t *testing.T) {
			e := Resolve(tc.section, tc.sub)
			assert.False(t, e.Missing)
			assert.Equal(t, name, e.Key)
			assert.Equal(t, tc.title, e.Title)
			assert.Contains(t, e.Text, tc.contains)
			assert.NotContains(t, string(e.Body), NotFoundText)
		})
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	for _, seg := range [][2]string{
		{"no-existe", ""},
		{"Autoridades", ""},
		{"autoridades ", ""},
		{"historia", ""},
		{"biblioteca", ""},
		{"biblioteca", "prestamos"},
		{"autoridades", "historia"},
		{"", ""},
	} {
		e := Resolve(seg[0], seg[1])
		assert.True(t, e.Missing, "%q/%q", seg[0], seg[1])
		assert.Equal(t, "<p>"+NotFoundText+"</p>", string(e.Body))
	}
}

func TestNotFoundTitleUsesLastSegment(t *testing.T) {
	assert.Equal(t, "Algo raro", Resolve("seccion", "algo-raro").Title)
	assert.Equal(t, "Ñandú", NotFound("ñandú").Title)
	assert.Equal(t, "", NotFound("").Title)
}

func TestLookupIsLiteral(t *testing.T) {
	_, ok := Lookup("biblioteca/historia")
	assert.True(t, ok)
	_, ok = Lookup("/biblioteca/historia")
	assert.False(t, ok)
	_, ok = Lookup("BIBLIOTECA/historia")
	assert.False(t, ok)
}

func TestBodiesAreSanitisedMarkup(t *testing.T) {
	e, ok := Lookup("plan-estudios/ciclo-basico")
	require.True(t, ok)
	body := string(e.Body)
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, `target="_blank"`)
	assert.Equal(t, 22, strings.Count(body, "<tr>")-1, "22 subject rows after the header row")

	e, _ = Lookup("autoridades")
	assert.Contains(t, string(e.Body), "<strong>RECTOR:</strong>")
}

func TestLoadRejectsBadPages(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"p/a.md": {Data: []byte("---\nkey: a\n---\nuno\n")},
		"p/b.md": {Data: []byte("---\nkey: a\n---\ndos\n")},
	}, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")

	_, err = Load(fstest.MapFS{
		"p/a.md": {Data: []byte("---\ntitle: Sin clave\n---\nuno\n")},
	}, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing key")
}

func TestLoadStripsScripts(t *testing.T) {
	tbl, err := Load(fstest.MapFS{
		"p/a.md": {Data: []byte("---\nkey: a\ntitle: Prueba\norder: 2\n---\nhola <script>alert(1)</script>\n")},
		"p/b.md": {Data: []byte("---\nkey: b\norder: 1\n---\nchau\n")},
	}, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, tbl.Keys())

	e, ok := tbl.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "Prueba", e.Title)
	assert.NotContains(t, string(e.Body), "<script>")
}
