package viamux

import (
	"fmt"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alnumRanges keeps fuzzed segments clear of '/', the reserved leading
// characters and anything the grammar could reinterpret.
var alnumRanges = fuzz.UnicodeRanges{
	{First: 0x30, Last: 0x39},
	{First: 0x41, Last: 0x5A},
	{First: 0x61, Last: 0x7A},
}

func TestFuzzDefineMatch(t *testing.T) {
	f := fuzz.New().NilChance(0).Funcs(alnumRanges.CustomStringFuzzFunc())
	m := New[string]()
	for i := 0; i < 1000; i++ {
		var s1, s2, p string
		f.Fuzz(&s1)
		f.Fuzz(&s2)
		f.Fuzz(&p)
		if s1 == "" || s2 == "" || p == "" {
			continue
		}

		pattern := fmt.Sprintf("/%s/:p%s/%s", s1, p, s2)
		if _, err := m.Define(pattern); err != nil {
			// A previous iteration may already own the vary slot at this
			// level under a different name.
			require.ErrorIs(t, err, ErrNameConflict)
			continue
		}

		res, err := m.Match(fmt.Sprintf("/%s/xxxx/%s", s1, s2))
		require.NoError(t, err)
		require.NotNil(t, res.Node, pattern)
		assert.Equal(t, "xxxx", res.Params["p"+p])
	}
}

func TestFuzzMatchNeverErrors(t *testing.T) {
	m := New[string]()
	for _, pattern := range []string{"/", "/users", "/users/:id", "/files/:rest*"} {
		Must(m.Define(pattern))
	}

	f := fuzz.New().NilChance(0).NumElements(1000, 2000).Funcs(alnumRanges.CustomStringFuzzFunc())
	var paths []string
	f.Fuzz(&paths)
	for _, p := range paths {
		res, err := m.Match("/" + p)
		require.NoError(t, err)
		require.NotNil(t, res)
	}
}
