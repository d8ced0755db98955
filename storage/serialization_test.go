package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/stemma/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleTable = "3 4\nA1 0123\nA2 0120\nA3 ????\n"

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(exampleTable), "example.tx")
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumLeafs)
	assert.Equal(t, 4, table.NumSites)
	require.Len(t, table.Witnesses, 3)
	assert.Equal(t, "A1", table.Witnesses[0].Name)
	assert.Equal(t, []byte("0120"), table.Witnesses[1].Readings)
	assert.Equal(t, []byte("0123"), table.MaxReadings)
}

func TestReadTable_Whitespace(t *testing.T) {
	input := "  2\n4\n\nA1\t0a-?   A2\r\n01Z9\n trailing tokens are ignored\n"
	table, err := ReadTable(strings.NewReader(input), "")
	require.NoError(t, err)

	assert.Equal(t, 2, table.NumLeafs)
	assert.Equal(t, []byte("01Z9"), table.Witnesses[1].Readings)
}

func TestReadTable_ZeroSites(t *testing.T) {
	table, err := ReadTable(strings.NewReader("2 0\nA1\nA2\n"), "")
	require.NoError(t, err)

	assert.Equal(t, 0, table.NumSites)
	assert.Equal(t, "A2", table.Witnesses[1].Name)
	assert.Empty(t, table.MaxReadings)
}

func TestReadTable_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLine  int
		wantToken string
		wantErr   error
	}{
		{name: "empty input", input: "", wantLine: 0, wantToken: ""},
		{name: "non numeric header", input: "three 4\n", wantLine: 1, wantToken: "three"},
		{name: "missing nSites", input: "3\n", wantLine: 1, wantToken: ""},
		{name: "zero leafs", input: "0 4\n", wantLine: 1, wantToken: "0"},
		{name: "negative leafs", input: "-2 4\n", wantLine: 1, wantToken: "-2"},
		{name: "negative sites", input: "2 -4\n", wantLine: 1, wantToken: "-4"},
		{name: "missing record", input: "3 4\nA1 0123\nA2 0120\n", wantLine: 3, wantToken: ""},
		{name: "missing readings", input: "1 4\nA1\n", wantLine: 2, wantToken: ""},
		{name: "readings too short", input: "2 4\nA1 0123\nA2 012\n", wantLine: 3, wantToken: "012"},
		{name: "readings too long", input: "1 2\nA1 0123\n", wantLine: 2, wantToken: "0123"},
		{name: "header far beyond records", input: "100000000000000 1\nw 0\n", wantLine: 2, wantToken: ""},
		{
			name:      "reading outside alphabet",
			input:     "1 3\nA1 0*2\n",
			wantLine:  2,
			wantToken: "0*2",
			wantErr:   core.ErrInvalidReading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input), "bad.tx")
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrFormat), "got %v", err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}

			var fe *core.FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "bad.tx", fe.Source)
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.Equal(t, tt.wantToken, fe.Token)
		})
	}
}

func TestOpenTable(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mss.tx")
		require.NoError(t, os.WriteFile(path, []byte(exampleTable), 0o644))

		table, err := OpenTable(path)
		require.NoError(t, err)
		assert.Equal(t, 3, table.NumLeafs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenTable(filepath.Join(t.TempDir(), "missing.tx"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrIO))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("format errors name the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.tx")
		require.NoError(t, os.WriteFile(path, []byte("1 3\nA1 01\n"), 0o644))

		_, err := OpenTable(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.Contains(t, err.Error(), `"01"`)
	})
}

func TestWriteTable_RoundTrip(t *testing.T) {
	inputs := []string{
		exampleTable,
		"1 1\nsolo ?\n",
		"2 0\nA1\nA2\n",
		"4 6\n01 0a1?2-\n02 0b1?2-\nP46 ??????\n1739 9Z0000\n",
	}

	for _, input := range inputs {
		table, err := ReadTable(strings.NewReader(input), "")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteTable(&buf, table))
		assert.Equal(t, input, buf.String())
	}
}
