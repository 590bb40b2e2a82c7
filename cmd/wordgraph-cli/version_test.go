package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadGoModFindsModulePath(t *testing.T) {
	path, _, ok := readGoMod()
	require.True(t, ok, "go.mod should be discoverable from the repo checkout")
	require.Equal(t, "github.com/lvlath-labs/wordgraph", path)
}

func TestVersionStringIsNonEmpty(t *testing.T) {
	require.NotEmpty(t, versionString())
}
