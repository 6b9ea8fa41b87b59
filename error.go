// Copyright 2024 Viamux Authors. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/viamux/viamux/blob/master/LICENSE.

package viamux

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath      = errors.New("path must begin with '/'")
	ErrMultiSlash       = errors.New("pattern contains consecutive slashes")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrNameConflict     = errors.New("conflicting parameter name")
	ErrWildcardNotFinal = errors.New("catch-all must terminate the pattern")
	ErrNilHandler       = errors.New("nil handler")
	ErrMethodExist      = errors.New("method already registered")
)

// PatternError reports a pattern segment that violates the grammar.
// It carries the path accumulated up to the offending segment so the
// caller can locate the mistake in a long pattern.
type PatternError struct {
	// Segment is the raw segment text that failed to parse.
	Segment string
	// Path is the slash-joined path from the root up to and including Segment.
	Path string
	// Err is the sentinel describing the violation.
	Err error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s: segment %q in %q", e.Err, e.Segment, e.Path)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// NameConflictError reports two parameter names sharing one structural
// matcher at the same trie position. Matchers are compared by their type
// signature: catch-all flag, suffix string and regexp source.
type NameConflictError struct {
	// Segment is the raw segment text being registered.
	Segment string
	// Name is the parameter name carried by Segment.
	Name string
	// ExistingName is the name already registered for the same matcher.
	ExistingName string
	// Path is the slash-joined path from the root up to and including Segment.
	Path string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf(
		"conflicting parameter name: %q in %q collides with existing parameter %q",
		e.Name, e.Path, e.ExistingName,
	)
}

// Unwrap returns the sentinel value [ErrNameConflict].
func (e *NameConflictError) Unwrap() error {
	return ErrNameConflict
}
