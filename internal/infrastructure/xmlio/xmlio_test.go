package xmlio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReader(t *testing.T, doc string) *Reader {
	t.Helper()
	r := NewReader(strings.NewReader(doc))
	require.NoError(t, r.MoveToRoot())
	return r
}

func TestReader_MoveToRoot(t *testing.T) {
	r := newTestReader(t, `<?xml version="1.0"?><root a="1"/>`)
	assert.Equal(t, "root", r.Name())
}

func TestReader_MoveToRoot_Empty(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	err := r.MoveToRoot()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReader_Attributes(t *testing.T) {
	r := newTestReader(t, `<root name="plains" cost="3" deep="true"/>`)

	v, ok := r.Attr("name")
	assert.True(t, ok)
	assert.Equal(t, "plains", v)

	_, ok = r.Attr("missing")
	assert.False(t, ok)

	assert.Equal(t, "plains", r.StringAttr("name", "x"))
	assert.Equal(t, "x", r.StringAttr("missing", "x"))

	n, err := r.IntAttr("cost", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = r.IntAttr("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	b, err := r.BoolAttr("deep", false)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = r.BoolAttr("missing", true)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestReader_IntAttr_Malformed(t *testing.T) {
	r := newTestReader(t, `<root cost="three"/>`)
	_, err := r.IntAttr("cost", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReader_BoolAttr_Malformed(t *testing.T) {
	r := newTestReader(t, `<root deep="yes"/>`)
	_, err := r.BoolAttr("deep", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReader_NextChild(t *testing.T) {
	r := newTestReader(t, `<root><a/><b><c/></b><d/></root>`)

	var names []string
	for {
		ok, err := r.NextChild()
		require.NoError(t, err)
		if !ok {
			break
		}
		names = append(names, r.Name())
		// Consume the child's subtree so iteration stays at root level.
		require.NoError(t, r.Skip())
	}
	assert.Equal(t, []string{"a", "b", "d"}, names)
}

func TestReader_NextChild_Nested(t *testing.T) {
	r := newTestReader(t, `<root><outer><inner x="1"/></outer></root>`)

	ok, err := r.NextChild()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "outer", r.Name())

	ok, err = r.NextChild()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "inner", r.Name())
	require.NoError(t, r.Skip())

	// End of outer.
	ok, err = r.NextChild()
	require.NoError(t, err)
	assert.False(t, ok)

	// End of root.
	ok, err = r.NextChild()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReader_Warnings(t *testing.T) {
	r := newTestReader(t, `<root/>`)
	assert.Empty(t, r.Warnings())

	r.Warnf("skipping %s", "thing")
	r.Warnf("other")

	warnings := r.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "skipping thing", warnings[0])

	// The returned slice is a copy.
	warnings[0] = "mutated"
	assert.Equal(t, "skipping thing", r.Warnings()[0])
}

func TestReader_ClearContainers(t *testing.T) {
	r := newTestReader(t, `<root/>`)
	assert.False(t, r.ClearContainers())
	r.SetClearContainers(true)
	assert.True(t, r.ClearContainers())
}

func TestWriter_NestedElements(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.StartElement("root"))
	w.Attr("id", "x")
	w.IntAttr("cost", 3)
	w.BoolAttr("deep", false)
	require.NoError(t, w.StartElement("child"))
	w.Attr("name", "a")
	require.NoError(t, w.EndElement())
	require.NoError(t, w.EndElement())
	require.NoError(t, w.Flush())

	want := "<root id=\"x\" cost=\"3\" deep=\"false\">\n" +
		"  <child name=\"a\"></child>\n" +
		"</root>"
	assert.Equal(t, want, buf.String())
}

func TestWriter_AttributeOrderPreserved(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.StartElement("e"))
	w.Attr("b", "2")
	w.Attr("a", "1")
	require.NoError(t, w.EndElement())
	require.NoError(t, w.Flush())

	assert.Equal(t, `<e b="2" a="1"></e>`, buf.String())
}

func TestWriter_EndWithoutStart(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	assert.Error(t, w.EndElement())
}

func TestWriter_RoundTripsThroughReader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.StartElement("root"))
	require.NoError(t, w.StartElement("child"))
	w.IntAttr("v", 42)
	require.NoError(t, w.EndElement())
	require.NoError(t, w.EndElement())
	require.NoError(t, w.Flush())

	r := newTestReader(t, buf.String())
	ok, err := r.NextChild()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "child", r.Name())
	v, err := r.IntAttr("v", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
