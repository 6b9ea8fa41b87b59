// Copyright 2024 Viamux Authors. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/viamux/viamux/blob/master/LICENSE.

// Package viamux implements a trie based URL path router.
//
// A [Mux] maps registered path patterns to the most specific matching route
// for an incoming path, extracts parameter values, and proposes canonical
// redirect targets when a path differs from a registered route only by
// duplicate slashes or a trailing slash. It stores one opaque handler value
// per method on each route but never invokes, inspects or dispatches them;
// that is the owning framework's job.
//
// A pattern is a slash-separated list of segments:
//
//	| Syntax          | Description                                        |
//	|-----------------|----------------------------------------------------|
//	| literal         | exact static segment                               |
//	| :name           | named parameter, matches one segment               |
//	| :name(regexp)   | named parameter constrained by a regexp            |
//	| :name+suffix    | named parameter with a required literal tail       |
//	| :name(re)+sufx  | both constraints combined                          |
//	| :name*          | catch-all, captures the rest of the path           |
//	| ::literal       | escapes a leading colon, matches ":literal"        |
//
// A catch-all must be the final segment of its pattern. Parameter names are
// word characters and must not start with a digit.
//
// Define and Remove mutate the trie and need external synchronization when
// used concurrently. Match only reads; once the setup phase is over, any
// number of concurrent Match calls is safe.
package viamux

import (
	"fmt"
	"strings"

	"github.com/viamux/viamux/internal/pathutil"
)

// Mux is a trie of registered patterns over handler values of type H.
// The zero value is not usable; use [New].
type Mux[H any] struct {
	root       *Node[H]
	ignoreCase bool
	fpr        bool
	tsr        bool
}

// New returns an empty Mux. All options default to enabled:
//
//	m := viamux.New[http.Handler]()
//	// disable case folding, keep the redirect heuristics
//	m := viamux.New[http.Handler](viamux.WithIgnoreCase(false))
func New[H any](opts ...Option) *Mux[H] {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(&cfg)
	}
	return &Mux[H]{
		root:       newNode[H](nil),
		ignoreCase: cfg.ignoreCase,
		fpr:        cfg.fixedPathRedirect,
		tsr:        cfg.trailingSlashRedirect,
	}
}

// Define registers pattern on the trie and returns its endpoint node.
// Defining the same pattern twice returns the same node both times:
//
//	m := viamux.New[string]()
//	a, _ := m.Define("/a")
//	b, _ := m.Define("/a/b")
//	// b's parent is a; a second Define("/a/b") returns b again
func (m *Mux[H]) Define(pattern string) (*Node[H], error) {
	if strings.Contains(pattern, "//") {
		return nil, fmt.Errorf("%w: %q", ErrMultiSlash, pattern)
	}

	segs := pathutil.Segments(pattern)
	n := m.root
	for i, seg := range segs {
		child, err := m.child(n, seg)
		if err != nil {
			return nil, err
		}
		if child.wildcard && i < len(segs)-1 {
			return nil, fmt.Errorf("%w: %q", ErrWildcardNotFinal, pattern)
		}
		n = child
	}

	n.endpoint = true
	if n.pattern == "" {
		n.pattern = pattern
	}
	return n, nil
}

// Must is a convenience for the setup phase, panicking on registration
// failure:
//
//	node := viamux.Must(m.Define("/users/:id"))
func Must[H any](n *Node[H], err error) *Node[H] {
	if err != nil {
		panic(err)
	}
	return n
}

// Remove unregisters the route at path and prunes trie nodes that no longer
// lead to any route. The walk is by structural identity, not by matching:
// path must spell the registered pattern, with dynamic segments written
// verbatim ("/users/:id"). Removing an unknown path is a no-op; the returned
// bool reports whether a route was actually cleared.
func (m *Mux[H]) Remove(path string) (bool, error) {
	if path == "" || path[0] != '/' {
		return false, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	n := m.root
	for _, seg := range pathutil.Segments(path) {
		n = m.structuralChild(n, seg)
		if n == nil {
			return false, nil
		}
	}
	if !n.endpoint {
		return false, nil
	}

	n.endpoint = false
	n.handlers = nil
	n.allow = ""
	n.pattern = ""

	// Prune upward: a node survives while it is an endpoint or still leads
	// to one. The root is never removed.
	for n != m.root && !n.endpoint && len(n.children) == 0 && len(n.varyChildren) == 0 {
		parent := n.parent
		parent.removeChild(n)
		n = parent
	}
	return true, nil
}

// structuralChild resolves one removal step: static children by normalized
// key, then vary children by their original raw segment text.
func (m *Mux[H]) structuralChild(parent *Node[H], seg string) *Node[H] {
	key := seg
	if escapedColonRe.MatchString(seg) {
		key = seg[1:]
	}
	if n, ok := parent.children[m.staticKey(key)]; ok {
		return n
	}
	for _, vc := range parent.varyChildren {
		if vc.segment == seg {
			return vc
		}
	}
	return nil
}

// Patterns returns every registered pattern in deterministic tree order:
// static children by sorted key, then dynamic children by priority.
func (m *Mux[H]) Patterns() []string {
	var patterns []string
	m.root.walk(func(n *Node[H]) {
		if n.endpoint {
			patterns = append(patterns, n.pattern)
		}
	})
	return patterns
}

// String returns an indented dump of the trie for debugging.
func (m *Mux[H]) String() string {
	return m.root.String()
}
