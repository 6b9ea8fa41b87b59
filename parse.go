package viamux

import (
	"fmt"
	"regexp"
	"strings"
)

// Sibling order among dynamic nodes, higher probed first. A more constrained
// matcher must win over a less constrained one at the same trie level, so
// that "/a/:id(^\d+$)" is preferred over "/a/:id" over "/a/:rest*".
const (
	priorityIndex       = 100
	priorityStatic      = 50
	priorityRegexSuffix = 7
	prioritySuffix      = 4
	priorityRegex       = 3
	priorityParam       = 2
	priorityWildcard    = 1
)

var (
	// nameRe validates parameter names: word characters, no leading digit.
	nameRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

	// escapedColonRe recognizes the double-colon escape form. The pattern
	// segment "::name" matches the literal path segment ":name".
	escapedColonRe = regexp.MustCompile(`^::\w*$`)
)

// child returns the child of parent to use for the raw pattern segment seg,
// creating it when no structurally identical child exists.
func (m *Mux[H]) child(parent *Node[H], seg string) (*Node[H], error) {
	switch {
	case seg == "":
		// The index child marks the exact-trailing-slash position.
		return m.staticChild(parent, seg, "", priorityIndex), nil
	case escapedColonRe.MatchString(seg):
		return m.staticChild(parent, seg, m.staticKey(seg[1:]), priorityStatic), nil
	case seg[0] == ':':
		return m.varyChild(parent, seg)
	case seg[0] == '*' || seg[0] == '(' || seg[0] == ')':
		// Reserved outside the dynamic-segment grammar.
		return nil, &PatternError{Segment: seg, Path: parent.Segments() + "/" + seg, Err: ErrInvalidPattern}
	default:
		return m.staticChild(parent, seg, m.staticKey(seg), priorityStatic), nil
	}
}

func (m *Mux[H]) staticKey(seg string) string {
	if m.ignoreCase {
		return strings.ToLower(seg)
	}
	return seg
}

func (m *Mux[H]) staticChild(parent *Node[H], seg, key string, priority int) *Node[H] {
	if n, ok := parent.children[key]; ok {
		return n
	}
	n := newNode(parent)
	n.segment = seg
	n.key = key
	n.priority = priority
	parent.children[key] = n
	return n
}

// varyChild parses a dynamic segment (leading single colon) and returns the
// matching vary child of parent, reusing an existing child with an identical
// type signature (catch-all flag, suffix, regexp source).
func (m *Mux[H]) varyChild(parent *Node[H], seg string) (*Node[H], error) {
	invalid := func() error {
		return &PatternError{Segment: seg, Path: parent.Segments() + "/" + seg, Err: ErrInvalidPattern}
	}

	name := seg[1:]
	var (
		wildcard bool
		suffix   string
		regexSrc string
	)
	switch {
	case name == "":
		return nil, invalid()
	case name[len(name)-1] == '*':
		name = name[:len(name)-1]
		wildcard = true
	case name[len(name)-1] == ')':
		// ":name(regex)". The body runs from the first '(' to the final ')'
		// and may itself contain parentheses.
		if lp := strings.IndexByte(name, '('); lp > 0 {
			regexSrc = name[lp+1 : len(name)-1]
			if regexSrc == "" {
				return nil, invalid()
			}
			name = name[:lp]
		}
	case strings.IndexByte(name, '(') > 0:
		// ":name(regex)+suffix". The regexp body may contain '+', so the
		// suffix clause is located from the final ')' instead.
		lp := strings.IndexByte(name, '(')
		rp := strings.LastIndexByte(name, ')')
		if rp < lp || rp+1 >= len(name) || name[rp+1] != '+' {
			return nil, invalid()
		}
		regexSrc = name[lp+1 : rp]
		suffix = name[rp+2:]
		if regexSrc == "" || suffix == "" {
			return nil, invalid()
		}
		name = name[:lp]
	default:
		// ":name+suffix".
		if plus := strings.IndexByte(name, '+'); plus >= 0 {
			suffix = name[plus+1:]
			if suffix == "" {
				return nil, invalid()
			}
			name = name[:plus]
		}
	}

	if !nameRe.MatchString(name) {
		return nil, invalid()
	}

	for _, vc := range parent.varyChildren {
		if vc.matchesSignature(wildcard, suffix, regexSrc) {
			if vc.name != name {
				return nil, &NameConflictError{
					Segment:      seg,
					Name:         name,
					ExistingName: vc.name,
					Path:         parent.Segments() + "/" + seg,
				}
			}
			return vc, nil
		}
	}

	n := newNode(parent)
	n.segment = seg
	n.name = name
	n.suffix = suffix
	n.wildcard = wildcard
	if regexSrc != "" {
		re, err := regexp.Compile(regexSrc)
		if err != nil {
			return nil, &PatternError{
				Segment: seg,
				Path:    parent.Segments() + "/" + seg,
				Err:     fmt.Errorf("%w: %s", ErrInvalidPattern, err),
			}
		}
		n.regex = re
	}

	switch {
	case wildcard:
		n.priority = priorityWildcard
	case regexSrc != "" && suffix != "":
		n.priority = priorityRegexSuffix
	case suffix != "":
		n.priority = prioritySuffix
	case regexSrc != "":
		n.priority = priorityRegex
	default:
		n.priority = priorityParam
	}

	parent.addVaryChild(n)
	return n, nil
}
