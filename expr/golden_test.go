package expr

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestParseTreeGolden pins the parenthesized form of a representative set
// of expressions, so precedence changes show up as fixture diffs.
func TestParseTreeGolden(t *testing.T) {
	inputs := []string{
		"Clone",
		"!Copy",
		"!!Copy",
		"Clone & !Copy & Send & Sync",
		"From[uint8] | From[uint16] ^ From[uint32] & From[uint64]",
		"((From[uint8] | From[uint16]) ^ From[uint32]) & From[uint64]",
		"Foo ^ Bar",
		"!(Read | Write) & Close",
		"Ref[int, string,]",
	}

	var buf bytes.Buffer
	for _, input := range inputs {
		node, err := Parse(input)
		require.NoError(t, err, "parse %q", input)
		fmt.Fprintf(&buf, "%s => %s\n", input, node.String())
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "parse_trees", buf.Bytes())
}
