// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/mmwallet/chaincfg"
)

func mustParams(t *testing.T, symbol string) *chaincfg.Params {
	t.Helper()
	p, err := chaincfg.Get(symbol, false)
	require.NoError(t, err)
	return p
}

func TestWriteReadRoundTrip(t *testing.T) {
	p := mustParams(t, "btc")
	f := &File{
		SeedID: "DEADBEEF",
		Entries: []Entry{
			{Index: 2, Address: "1111111111111111111114oLvT2", Label: "change"},
			{Index: 1, Address: "1111111111111111111114oLvT2"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f, p))

	got, err := Read(&buf, p)
	require.NoError(t, err)
	require.Equal(t, "DEADBEEF", got.SeedID)
	require.Len(t, got.Entries, 2)
	require.Equal(t, uint32(1), got.Entries[0].Index)
	require.Equal(t, uint32(2), got.Entries[1].Index)
}

func TestWriteSortsByIndex(t *testing.T) {
	p := mustParams(t, "btc")
	f := &File{
		SeedID: "DEADBEEF",
		Entries: []Entry{
			{Index: 5, Address: "1111111111111111111114oLvT2"},
			{Index: 1, Address: "1111111111111111111114oLvT2"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f, p))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "1 "))
	require.True(t, strings.HasPrefix(strings.TrimSpace(lines[2]), "5 "))
}

func TestReadStripsCommentsAndBlankLines(t *testing.T) {
	p := mustParams(t, "btc")
	input := "# a comment\nDEADBEEF {\n\n  1 1111111111111111111114oLvT2\n}\n"
	got, err := Read(strings.NewReader(input), p)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
}

func TestReadRejectsBadSeedID(t *testing.T) {
	p := mustParams(t, "btc")
	_, err := Read(strings.NewReader("deadbeef {\n}\n"), p)
	require.ErrorIs(t, err, ErrBadSeedID)
}

func TestReadRejectsLeadingZeroIndex(t *testing.T) {
	p := mustParams(t, "btc")
	input := "DEADBEEF {\n  01 1111111111111111111114oLvT2\n}\n"
	_, err := Read(strings.NewReader(input), p)
	require.ErrorIs(t, err, ErrBadIndex)
}

func TestReadRejectsInvalidAddress(t *testing.T) {
	p := mustParams(t, "btc")
	input := "DEADBEEF {\n  1 not-an-address\n}\n"
	_, err := Read(strings.NewReader(input), p)
	require.Error(t, err)
}

func TestReadRejectsMissingFooter(t *testing.T) {
	p := mustParams(t, "btc")
	input := "DEADBEEF {\n  1 1111111111111111111114oLvT2\n"
	_, err := Read(strings.NewReader(input), p)
	require.ErrorIs(t, err, ErrMissingFooter)
}
