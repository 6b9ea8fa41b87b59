// Copyright 2024 Viamux Authors. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/viamux/viamux/blob/master/LICENSE.

package viamux

type config struct {
	ignoreCase            bool
	fixedPathRedirect     bool
	trailingSlashRedirect bool
}

func defaultConfig() config {
	return config{
		ignoreCase:            true,
		fixedPathRedirect:     true,
		trailingSlashRedirect: true,
	}
}

// Option configures a [Mux] at construction time.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (o optionFunc) apply(c *config) {
	o(c)
}

// WithIgnoreCase controls case-insensitive matching of static and
// escaped-colon segments. Enabled by default. Dynamic segments are
// unaffected; their regexp decides what they accept.
func WithIgnoreCase(enable bool) Option {
	return optionFunc(func(c *config) {
		c.ignoreCase = enable
	})
}

// WithFixedPathRedirect controls duplicate-slash handling. When enabled
// (the default), a path containing runs of consecutive slashes is collapsed
// before matching and, if the collapsed path resolves to a route,
// [Matched.FPR] proposes the canonical path instead of serving the node.
// For example matching "/api//foo" when "/api/foo" is defined yields
// FPR "/api/foo".
func WithFixedPathRedirect(enable bool) Option {
	return optionFunc(func(c *config) {
		c.fixedPathRedirect = enable
	})
}

// WithTrailingSlashRedirect controls trailing-slash handling. When enabled
// (the default) and a path cannot be matched but its counterpart with
// (or without) the trailing slash is a registered route, [Matched.TSR]
// proposes the counterpart path. For example matching "/api/foo/" when only
// "/api/foo" is defined yields TSR "/api/foo".
func WithTrailingSlashRedirect(enable bool) Option {
	return optionFunc(func(c *config) {
		c.trailingSlashRedirect = enable
	})
}
