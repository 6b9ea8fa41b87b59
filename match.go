// Copyright 2024 Viamux Authors. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/viamux/viamux/blob/master/LICENSE.

package viamux

import (
	"fmt"
	"strings"

	"github.com/viamux/viamux/internal/pathutil"
)

// Matched is the result of a [Mux.Match] call. At most one of Node, FPR and
// TSR carries information; FPR takes precedence over TSR whenever both
// redirect heuristics would apply. A fresh Matched is built per call and is
// never reused.
type Matched[H any] struct {
	// Node is the resolved endpoint, or nil when no route matched.
	Node *Node[H]

	// Params maps parameter names to the values captured along the path.
	// Nil when the matched route has no parameters.
	Params map[string]string

	// FPR proposes the canonical path after collapsing duplicate slashes,
	// when fixed-path redirect is enabled and the caller's path needed it.
	FPR string

	// TSR proposes the counterpart path with the trailing slash toggled,
	// when trailing-slash redirect is enabled and only that variant exists.
	TSR string
}

// Match resolves path against the registered patterns. A path that matches
// no route is not an error: the result simply carries a nil Node and no
// redirect proposal.
func (m *Mux[H]) Match(path string) (*Matched[H], error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	var fixedLen int
	if m.fpr {
		fixed := pathutil.CollapseSlashes(path)
		fixedLen = len(path) - len(fixed)
		path = fixed
	}

	res := new(Matched[H])
	parent := m.root
	end := len(path)
	start := 1
	// The sentinel slash turns the last segment into a regular iteration.
	buf := path + "/"
	for i := 1; i <= end; i++ {
		if buf[i] != '/' {
			continue
		}
		seg := buf[start:i]
		node, value, named := m.matchChild(parent, seg)
		if node == nil && m.ignoreCase {
			node, value, named = m.matchChild(parent, strings.ToLower(seg))
			if named && !node.wildcard {
				// Captured values keep the caller's original casing.
				value = seg[:len(seg)-len(node.suffix)]
			}
		}
		if node == nil {
			// Dead end. The only rescue is a trailing-slash redirect:
			// the path ends with a slash and the node reached so far is
			// itself a route, e.g. /a/b/ -> /a/b.
			if m.tsr && seg == "" && i == end && parent.endpoint {
				res.TSR = path[:end-1]
				if m.fpr && fixedLen > 0 {
					res.FPR, res.TSR = res.TSR, ""
				}
			}
			return res, nil
		}

		parent = node
		if named {
			if res.Params == nil {
				res.Params = make(map[string]string)
			}
			if node.wildcard {
				// The catch-all swallows the rest of the path, embedded
				// slashes included. Nothing beyond it is ever examined.
				res.Params[node.name] = path[start:end]
				break
			}
			res.Params[node.name] = value
		}
		start = i + 1
	}

	if parent.endpoint {
		res.Node = parent
		if m.fpr && fixedLen > 0 {
			res.FPR = path
			res.Node = nil
		}
	} else if m.tsr && parent.children[""] != nil {
		// The trailing-slash variant is the registered one: /a/b -> /a/b/.
		res.TSR = path + "/"
		if m.fpr && fixedLen > 0 {
			res.FPR, res.TSR = res.TSR, ""
		}
	}
	return res, nil
}

// matchChild resolves one path segment against parent: the static map
// first, then the vary children in priority order. For a dynamic match it
// returns the captured value with any declared suffix already stripped.
func (m *Mux[H]) matchChild(parent *Node[H], seg string) (node *Node[H], value string, named bool) {
	if n, ok := parent.children[seg]; ok {
		return n, "", false
	}
	for _, vc := range parent.varyChildren {
		v := seg
		if vc.suffix != "" {
			// The value must not be empty once the suffix is removed.
			if v == vc.suffix || !strings.HasSuffix(v, vc.suffix) {
				continue
			}
			v = v[:len(v)-len(vc.suffix)]
		}
		if vc.regex != nil && !vc.regex.MatchString(v) {
			continue
		}
		return vc, v, true
	}
	return nil, "", false
}
