package viamux

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Node is a trie vertex representing one path segment position.
// Nodes are created by [Mux.Define] and returned by [Mux.Match]; a Node at
// which a pattern terminates is an endpoint and carries the per-method
// handler table for that route.
type Node[H any] struct {
	// segment is the raw segment text as written in the defining pattern.
	segment string

	// key is the normalized lookup key for static nodes: case-folded when
	// ignore-case is enabled, with the escape colon stripped for the
	// double-colon form. Empty for dynamic nodes and the index node.
	key string

	// name is the parameter name, empty for static and index nodes.
	name string

	// pattern is the full registered pattern, set once on the node where a
	// pattern terminates.
	pattern string

	// allow accumulates registered method names, comma-joined in call order.
	allow string

	// priority orders dynamic siblings, highest probed first.
	priority int

	// suffix is a literal tail the matched segment must carry, stripped from
	// the captured value.
	suffix string

	regex    *regexp.Regexp
	wildcard bool
	endpoint bool

	// parent is a non-owning back-reference used for diagnostics and for
	// upward pruning. The parent owns the child, never the reverse.
	parent *Node[H]

	// children maps normalized literal keys to static child nodes.
	children map[string]*Node[H]

	// varyChildren holds dynamic child nodes sorted by descending priority,
	// insertion order preserved among equal priorities.
	varyChildren []*Node[H]

	handlers map[string]H
}

func newNode[H any](parent *Node[H]) *Node[H] {
	return &Node[H]{
		parent:   parent,
		children: make(map[string]*Node[H]),
	}
}

// Handle registers handler for the given method on this node. Registering
// the same method twice is rejected, not overwritten.
func (n *Node[H]) Handle(method string, handler H) error {
	if any(handler) == nil {
		return fmt.Errorf("%w: method %s on pattern %q", ErrNilHandler, method, n.pattern)
	}
	if _, ok := n.handlers[method]; ok {
		return fmt.Errorf("%w: method %s on pattern %q", ErrMethodExist, method, n.pattern)
	}
	if n.handlers == nil {
		n.handlers = make(map[string]H)
	}
	n.handlers[method] = handler
	if n.allow == "" {
		n.allow = method
	} else {
		n.allow += ", " + method
	}
	return nil
}

// Handler returns the handler registered for method, if any.
func (n *Node[H]) Handler(method string) (H, bool) {
	h, ok := n.handlers[method]
	return h, ok
}

// Allow returns the methods registered on this node, comma-joined in
// registration order, e.g. "GET, PUT".
func (n *Node[H]) Allow() string {
	return n.allow
}

// Pattern returns the pattern defined at this node, or an empty string for
// intermediate nodes.
func (n *Node[H]) Pattern() string {
	return n.pattern
}

// Name returns the parameter name captured by this node, or an empty string
// for static nodes.
func (n *Node[H]) Name() string {
	return n.name
}

// Wildcard reports whether this node is a catch-all parameter.
func (n *Node[H]) Wildcard() bool {
	return n.wildcard
}

// Segments reconstructs the slash-joined path from the root to this node by
// following parent links. It is meant for diagnostics, not for matching.
func (n *Node[H]) Segments() string {
	if n.parent == nil {
		return ""
	}
	return n.parent.Segments() + "/" + n.segment
}

func (n *Node[H]) regexSource() string {
	if n.regex == nil {
		return ""
	}
	return n.regex.String()
}

// matchesSignature reports whether this node's structural matcher is
// identical to the given type signature.
func (n *Node[H]) matchesSignature(wildcard bool, suffix, regexSrc string) bool {
	return n.wildcard == wildcard && n.suffix == suffix && n.regexSource() == regexSrc
}

// addVaryChild appends child and restores the priority order. The sort is
// stable so siblings with equal priority keep their insertion order, which
// keeps matching deterministic.
func (n *Node[H]) addVaryChild(child *Node[H]) {
	n.varyChildren = append(n.varyChildren, child)
	sort.SliceStable(n.varyChildren, func(i, j int) bool {
		return n.varyChildren[i].priority > n.varyChildren[j].priority
	})
}

// removeChild detaches child from whichever collection holds it.
func (n *Node[H]) removeChild(child *Node[H]) {
	if c, ok := n.children[child.key]; ok && c == child {
		delete(n.children, child.key)
		return
	}
	for i, vc := range n.varyChildren {
		if vc == child {
			n.varyChildren = append(n.varyChildren[:i], n.varyChildren[i+1:]...)
			return
		}
	}
}

// walk visits n and every descendant, static children in sorted key order
// then dynamic children in priority order.
func (n *Node[H]) walk(fn func(*Node[H])) {
	fn(n)
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.children[k].walk(fn)
	}
	for _, vc := range n.varyChildren {
		vc.walk(fn)
	}
}

func (n *Node[H]) String() string {
	return n.string(0)
}

func (n *Node[H]) string(space int) string {
	sb := strings.Builder{}
	sb.WriteString(strings.Repeat(" ", space))
	if n.parent == nil {
		sb.WriteString("root")
	} else {
		sb.WriteString("segment: ")
		sb.WriteString(n.segment)
	}
	if n.endpoint {
		sb.WriteString(" (endpoint")
		if n.wildcard {
			sb.WriteString(" & catch-all")
		}
		sb.WriteByte(')')
	}
	sb.WriteByte('\n')

	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(n.children[k].string(space + 2))
	}
	for _, vc := range n.varyChildren {
		sb.WriteString(vc.string(space + 2))
	}
	return sb.String()
}
