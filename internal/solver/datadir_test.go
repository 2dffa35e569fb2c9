package solver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTableDirMissingDirectory(t *testing.T) {
	set, err := LoadTableDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, set.Preflop)
	assert.Nil(t, set.Postflop)
}

func TestLoadTableDirEmptyDirectory(t *testing.T) {
	set, err := LoadTableDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, set.Preflop)
	assert.Nil(t, set.Postflop)
}

func TestLoadTableDirReadsPreflopStacks(t *testing.T) {
	dir := t.TempDir()
	dump := `{"meta":{"stack_bb":100},"states":{"root":{"num_actions":3,"probs_bp":[[[1000,3000,6000]]]}}}`
	for _, name := range []string{"preflop_20bb.json", "preflop_100bb.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(dump), 0o644))
	}
	// Names outside the convention are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preflop_notes.txt"), []byte("x"), 0o644))

	set, err := LoadTableDir(dir)
	require.NoError(t, err)
	require.NotNil(t, set.Preflop)
	assert.Nil(t, set.Postflop)
}

func TestLoadTableDirRejectsMalformedDump(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preflop_50bb.json"), []byte("{"), 0o644))

	_, err := LoadTableDir(dir)
	require.Error(t, err)
}

func TestLoadTableDirReadsPostflopWithOverrides(t *testing.T) {
	dir := t.TempDir()
	postflop := `{"meta":{"name":"test"},"states":{"s0|p0|spr0|pos0|agg0":{"mix_bp":[2000,5000,3000]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "postflop.json"), []byte(postflop), 0o644))

	set, err := LoadTableDir(dir)
	require.NoError(t, err)
	assert.NotNil(t, set.Postflop)
}
