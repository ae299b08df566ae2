// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicCreatesFinalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tx_ABCDEF[1.5].raw")

	require.NoError(t, WriteFileAtomic(path, []byte("artifact body"), 0600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "artifact body", string(got))
}

func TestWriteFileAtomicLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tx_ABCDEF[1.5].raw")
	require.NoError(t, WriteFileAtomic(path, []byte("x"), 0600))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "tx_ABCDEF[1.5].raw", entries[0].Name())
}

func TestWriteFileAtomicOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tx_ABCDEF[1.5].out")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))
}
