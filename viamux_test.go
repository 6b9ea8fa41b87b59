package viamux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineIdempotent(t *testing.T) {
	m := New[string]()
	first, err := m.Define("/users/:id")
	require.NoError(t, err)
	second, err := m.Define("/users/:id")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDefineTrailingSlashDistinct(t *testing.T) {
	m := New[string]()
	bare, err := m.Define("/users")
	require.NoError(t, err)
	slashed, err := m.Define("/users/")
	require.NoError(t, err)
	assert.NotSame(t, bare, slashed)
	assert.Equal(t, "/users", bare.Pattern())
	assert.Equal(t, "/users/", slashed.Pattern())
}

func TestDefineMultiSlash(t *testing.T) {
	m := New[string]()
	for _, pattern := range []string{"//", "//users", "/users//42", "/users//"} {
		_, err := m.Define(pattern)
		assert.ErrorIs(t, err, ErrMultiSlash, pattern)
	}
}

func TestDefineWildcardNotFinal(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/files/:rest*")
	require.NoError(t, err)

	_, err = m.Define("/files/:rest*/manifest")
	assert.ErrorIs(t, err, ErrWildcardNotFinal)

	// Same failure when the catch-all is created by this very call.
	_, err = m.Define("/assets/:rest*/manifest")
	assert.ErrorIs(t, err, ErrWildcardNotFinal)
}

func TestDefinePatternSetOnce(t *testing.T) {
	m := New[string]()
	first, err := m.Define("/Books")
	require.NoError(t, err)

	// With case folding enabled both spellings resolve to the same node;
	// the stored canonical text is the first one.
	second, err := m.Define("/books")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "/Books", second.Pattern())
}

func TestRemovePrunesUselessAncestors(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/h/i/j")
	require.NoError(t, err)
	_, err = m.Define("/h/k")
	require.NoError(t, err)

	removed, err := m.Remove("/h/i/j")
	require.NoError(t, err)
	assert.True(t, removed)

	// /h/i/j and /h/i are gone, /h survives for /h/k.
	h := m.root.children["h"]
	require.NotNil(t, h)
	assert.Nil(t, h.children["i"])
	assert.NotNil(t, h.children["k"])

	res, err := m.Match("/h/k")
	require.NoError(t, err)
	assert.NotNil(t, res.Node)
}

func TestRemoveLastRouteEmptiesTrie(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/h/i/j")
	require.NoError(t, err)

	removed, err := m.Remove("/h/i/j")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, m.root.children)
	assert.Empty(t, m.root.varyChildren)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/users")
	require.NoError(t, err)

	for _, path := range []string{"/posts", "/users/42", "/users/"} {
		removed, err := m.Remove(path)
		require.NoError(t, err)
		assert.False(t, removed, path)
	}

	res, err := m.Match("/users")
	require.NoError(t, err)
	assert.NotNil(t, res.Node)
}

func TestRemoveInvalidPath(t *testing.T) {
	m := New[string]()
	for _, path := range []string{"", "users"} {
		_, err := m.Remove(path)
		assert.ErrorIs(t, err, ErrInvalidPath)
	}
}

func TestRemoveDynamicByRawSegment(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/d/:id(\\d+)")
	require.NoError(t, err)

	// The walk is structural: the raw segment text must match verbatim.
	removed, err := m.Remove("/d/:id")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = m.Remove("/d/:id(\\d+)")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, m.root.children)
}

func TestRemoveKeepsReachableDescendants(t *testing.T) {
	m := New[string]()
	parent, err := m.Define("/a")
	require.NoError(t, err)
	require.NoError(t, parent.Handle("GET", "ha"))
	_, err = m.Define("/a/b")
	require.NoError(t, err)

	removed, err := m.Remove("/a")
	require.NoError(t, err)
	assert.True(t, removed)

	// The node stays as an intermediate step, stripped of its route data.
	res, err := m.Match("/a")
	require.NoError(t, err)
	assert.Nil(t, res.Node)
	assert.Equal(t, "", parent.Allow())
	assert.Equal(t, "", parent.Pattern())
	_, ok := parent.Handler("GET")
	assert.False(t, ok)

	res, err = m.Match("/a/b")
	require.NoError(t, err)
	assert.NotNil(t, res.Node)
}

func TestRedefineAfterRemove(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/a")
	require.NoError(t, err)

	removed, err := m.Remove("/a")
	require.NoError(t, err)
	require.True(t, removed)

	n, err := m.Define("/a")
	require.NoError(t, err)
	assert.Equal(t, "/a", n.Pattern())

	res, err := m.Match("/a")
	require.NoError(t, err)
	assert.NotNil(t, res.Node)
}

func TestRemoveEscapedColon(t *testing.T) {
	m := New[string]()
	_, err := m.Define("/a/::b")
	require.NoError(t, err)

	removed, err := m.Remove("/a/::b")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, m.root.children)
}

func TestPatterns(t *testing.T) {
	m := New[string]()
	for _, pattern := range []string{"/users/:id", "/users", "/files/:rest*", "/about"} {
		_, err := m.Define(pattern)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"/about", "/files/:rest*", "/users", "/users/:id"}, m.Patterns())

	_, err := m.Remove("/users")
	require.NoError(t, err)
	assert.Equal(t, []string{"/about", "/files/:rest*", "/users/:id"}, m.Patterns())
}

func TestMust(t *testing.T) {
	m := New[string]()
	n := Must(m.Define("/users"))
	assert.Equal(t, "/users", n.Pattern())

	assert.Panics(t, func() {
		Must(m.Define("//users"))
	})
}
