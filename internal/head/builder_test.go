package head

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_EmptyOnNew(t *testing.T) {
	b := New()
	assert.Empty(t, b.Styles())
	assert.Empty(t, b.Scripts())
	assert.Equal(t, "", string(b.RenderStyles()))
	assert.Equal(t, "", string(b.RenderScripts()))
}

func TestBuilder_RenderOrder(t *testing.T) {
	b := New()
	b.AddScript("A", 1)
	b.AddScript("B", 3)
	b.AddScript("C", 3)
	b.AddScript("D", 0)

	assert.Equal(t, "B\nC\nA\nD", string(b.RenderScripts()))
}

func TestBuilder_StableAmongEqualPriority(t *testing.T) {
	b := New()
	for _, s := range []string{"one", "two", "three", "four"} {
		b.AddStyle(s, 0)
	}
	b.AddStyle("first", 5)
	b.AddStyle("last", -1)

	assert.Equal(t, "first\none\ntwo\nthree\nfour\nlast", string(b.RenderStyles()))
}

func TestBuilder_RenderIsIdempotent(t *testing.T) {
	b := New()
	b.AddStyle(`<link rel="stylesheet" href="/a.css">`, 0)
	b.AddStyle(`<link rel="stylesheet" href="/b.css">`, 2)

	first := b.RenderStyles()
	second := b.RenderStyles()
	assert.Equal(t, first, second)

	// Insertion order survives rendering.
	styles := b.Styles()
	assert.Equal(t, `<link rel="stylesheet" href="/a.css">`, styles[0].Content)
	assert.Equal(t, 0, styles[0].Priority)
}

func TestBuilder_DuplicatesPreserved(t *testing.T) {
	b := New()
	b.AddScript("x", 0)
	b.AddScript("x", 0)
	assert.Equal(t, "x\nx", string(b.RenderScripts()))
}

func TestBuilder_StylesAndScriptsIndependent(t *testing.T) {
	b := New()
	b.AddStyle("s", 0)
	assert.Empty(t, b.Scripts())
	assert.Equal(t, "s", string(b.RenderStyles()))
}

func TestBuilder_Title(t *testing.T) {
	b := New()
	assert.Equal(t, "", string(b.Title()))
	b.SetTitle("Courses & Programs")
	b.SetTitle("Faculty <Directory>")
	assert.Equal(t, "<title>Faculty &lt;Directory&gt;</title>", string(b.Title()))
}

func TestTags(t *testing.T) {
	assert.Equal(t, `<link rel="stylesheet" href="/static/css/a.css?v=1&amp;x=2">`,
		Stylesheet("/static/css/a.css?v=1&x=2"))
	assert.Equal(t, `<script src="/static/js/app.js" defer></script>`, ScriptSrc("/static/js/app.js"))
}
