package nativechange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oca-tools/addonscope/pkg/nativechange"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := nativechange.ParseVersion("16.0")
	require.NoError(t, err)
	assert.Equal(t, nativechange.Version{Major: 16, Minor: 0}, v)
	assert.Equal(t, "16.0", v.String())

	v, err = nativechange.ParseVersion("8.1")
	require.NoError(t, err)
	assert.Equal(t, nativechange.Version{Major: 8, Minor: 1}, v)
}

func TestParseVersion_Invalid(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"", "16", "16.0.1", "v16.0", "16.x", "origin/16.0", " 16.0"} {
		_, err := nativechange.ParseVersion(label)
		require.Error(t, err, "label %q", label)
		assert.ErrorIs(t, err, nativechange.ErrVersionSyntax, "label %q", label)
	}
}

func TestChain_NewestFirstInclusive(t *testing.T) {
	t.Parallel()

	chain := nativechange.Chain(
		nativechange.Version{Major: 17},
		nativechange.Version{Major: 15},
	)

	assert.Equal(t, []nativechange.Version{
		{Major: 17}, {Major: 16}, {Major: 15},
	}, chain)
}

// Argument order does not matter: the chain is always newest first.
func TestChain_OrderIndependent(t *testing.T) {
	t.Parallel()

	forward := nativechange.Chain(nativechange.Version{Major: 15}, nativechange.Version{Major: 17})
	backward := nativechange.Chain(nativechange.Version{Major: 17}, nativechange.Version{Major: 15})

	assert.Equal(t, backward, forward)
}

// Intermediate minor lines are dropped: only whole major releases survive.
func TestChain_DropsMinorReleases(t *testing.T) {
	t.Parallel()

	chain := nativechange.Chain(
		nativechange.Version{Major: 16, Minor: 1},
		nativechange.Version{Major: 15},
	)

	assert.Equal(t, []nativechange.Version{{Major: 16}, {Major: 15}}, chain)
}

func TestChain_EqualVersions_SingleElement(t *testing.T) {
	t.Parallel()

	chain := nativechange.Chain(nativechange.Version{Major: 16}, nativechange.Version{Major: 16})

	assert.Equal(t, []nativechange.Version{{Major: 16}}, chain)
}

func TestParseChain(t *testing.T) {
	t.Parallel()

	chain, err := nativechange.ParseChain("18.0", "15.0")
	require.NoError(t, err)
	require.Len(t, chain, 4)
	assert.Equal(t, "18.0", chain[0].String())
	assert.Equal(t, "15.0", chain[3].String())
}

func TestParseChain_PropagatesSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := nativechange.ParseChain("18.0", "nope")
	assert.ErrorIs(t, err, nativechange.ErrVersionSyntax)

	_, err = nativechange.ParseChain("nope", "15.0")
	assert.ErrorIs(t, err, nativechange.ErrVersionSyntax)
}
