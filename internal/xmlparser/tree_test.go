package xmlparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTree(t *testing.T, doc string) *Node {
	t.Helper()
	tree, err := BuildTree([]byte(doc), DefaultLimits())
	require.NoError(t, err)
	return tree
}

func child(t *testing.T, n *Node, key string) *Node {
	t.Helper()
	c, ok := n.Get(key)
	require.True(t, ok, "missing key %q", key)
	return c
}

func TestBuildTree_Shapes(t *testing.T) {
	tree := mustTree(t, `<a x="1"><b>t</b><b>u</b><c/>text</a>`)

	assert.Equal(t, []string{"a"}, tree.Keys)
	a := child(t, tree, "a")
	require.Equal(t, Object, a.Kind)
	assert.Equal(t, []string{"@_x", "b", "c", "#text"}, a.Keys)

	assert.Equal(t, "1", child(t, a, "@_x").Text)

	b := child(t, a, "b")
	require.Equal(t, Array, b.Kind)
	require.Len(t, b.Items, 2)
	assert.Equal(t, "t", b.Items[0].Text)
	assert.Equal(t, "u", b.Items[1].Text)

	c := child(t, a, "c")
	assert.Equal(t, Scalar, c.Kind)
	assert.True(t, c.IsEmpty())

	assert.Equal(t, "text", child(t, a, TextKey).Text)
}

func TestBuildTree_LeafTextTrimmed(t *testing.T) {
	tree := mustTree(t, "<v>\n  100,00 \n</v>")

	assert.Equal(t, "100,00", child(t, tree, "v").Text)
}

func TestBuildTree_RepeatedMoreThanTwice(t *testing.T) {
	tree := mustTree(t, `<l><i>1</i><i>2</i><i>3</i></l>`)

	i := child(t, child(t, tree, "l"), "i")
	require.Equal(t, Array, i.Kind)
	assert.Len(t, i.Items, 3)
}

func TestBuildTree_Namespaces(t *testing.T) {
	tree := mustTree(t, `<ns:doc xmlns:ns="urn:x" xmlns="urn:y"><ns:valor>1</ns:valor></ns:doc>`)

	doc := child(t, tree, "doc")
	assert.Equal(t, []string{"valor"}, doc.Keys)
}

func TestBuildTree_Latin1(t *testing.T) {
	data := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><nome>JOS`), 0xC9, '<', '/', 'n', 'o', 'm', 'e', '>')

	tree, err := BuildTree(data, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, "JOSÉ", child(t, tree, "nome").Text)
}

func TestBuildTree_DepthLimit(t *testing.T) {
	doc := `<a><b><c><d><e/></d></c></b></a>`

	_, err := BuildTree([]byte(doc), Limits{MaxDepth: 4})
	assert.ErrorIs(t, err, ErrLimitExceeded)

	_, err = BuildTree([]byte(doc), Limits{MaxDepth: 5})
	assert.NoError(t, err)
}

func TestBuildTree_DefaultDepthLimit(t *testing.T) {
	doc := strings.Repeat("<n>", DefaultMaxDepth+1) + strings.Repeat("</n>", DefaultMaxDepth+1)

	_, err := BuildTree([]byte(doc), Limits{})
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestBuildTree_NodeLimit(t *testing.T) {
	doc := `<a><b/><b/><b/></a>`

	_, err := BuildTree([]byte(doc), Limits{MaxNodes: 3})
	assert.ErrorIs(t, err, ErrLimitExceeded)

	_, err = BuildTree([]byte(doc), Limits{MaxNodes: 4})
	assert.NoError(t, err)

	_, err = BuildTree([]byte(`<a k1="1" k2="2"/>`), Limits{MaxNodes: 2})
	assert.ErrorIs(t, err, ErrLimitExceeded, "attributes count as nodes")
}

func TestBuildTree_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"mismatched tag", `<a><b></a>`},
		{"unclosed", `<a><b>`},
		{"garbage", `<<<`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTree([]byte(tt.doc), DefaultLimits())
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrLimitExceeded))
		})
	}
}

func TestBuildTree_NoRoot(t *testing.T) {
	for _, doc := range []string{"", "   ", `<?xml version="1.0"?>`} {
		_, err := BuildTree([]byte(doc), DefaultLimits())
		assert.ErrorIs(t, err, ErrNoRootElement, "doc %q", doc)
	}
}

func TestNode_ScalarText(t *testing.T) {
	tree := mustTree(t, `<d><s> a  b </s><o k="v">1.234,56</o><bare k="v"/><arr></arr><arr>x</arr><obj><in>1</in></obj></d>`)
	d := child(t, tree, "d")

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"s", "a b", true},
		{"o", "1.234,56", true},
		{"bare", "", false},
		{"arr", "x", true},
		{"obj", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := child(t, d, tt.key).ScalarText()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	var nilNode *Node
	_, ok := nilNode.ScalarText()
	assert.False(t, ok)
}
