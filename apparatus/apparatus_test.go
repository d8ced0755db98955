package apparatus

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/stemma/core"
	"github.com/poiesic/stemma/similarity"
	"github.com/poiesic/stemma/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const romans = "@Rom 1:1\n" +
	">Lem: Paulos doulos Christou\n" +
	"^1 Paulos\n" +
	"=0 A1 A2 A3\n" +
	"^2 doulos\n" +
	"=1 A1 A2\n" +
	"=0 A3\n" +
	"^3 Christou\n" +
	"=0 A1 A3\n" +
	"=1 A2\n" +
	"\n" +
	"@Rom 1:2\n" +
	">Lem: ho proepeggeilato\n" +
	"^4 ho\n" +
	"=0 A1\n"

func loadTable(t *testing.T, input string) *core.Table {
	t.Helper()
	table, err := storage.ReadTable(strings.NewReader(input), "test.tx")
	require.NoError(t, err)
	return table
}

func romansTable(t *testing.T) *core.Table {
	return loadTable(t, "3 3\nA1 010\nA2 011\nA3 ?00\n")
}

func TestAnnotate(t *testing.T) {
	table := romansTable(t)
	a1, a2 := table.Witness(0), table.Witness(1)

	t.Run("type O with baseline agreement", func(t *testing.T) {
		var out bytes.Buffer
		stats, err := Annotate(&out, strings.NewReader(romans), table, similarity.MaskO, a1, a2)
		require.NoError(t, err)

		want := "@Rom 1:1\n" +
			"Paulos doulos Christou\n" +
			"  rest: A1 A2\n" +
			"1 Paulos\n" +
			"0 A1 A2 A3\n" +
			"\n" +
			"2 doulos\n" +
			"1 A1 A2\n" +
			"0 A3\n" +
			"\n"
		assert.Equal(t, want, out.String())
		assert.Equal(t, Stats{Lines: 15, Segments: 4, Selected: 2}, stats)
	})

	t.Run("type A holds the verse until a segment is kept", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Annotate(&out, strings.NewReader(romans), table, similarity.MaskA, a1, a2)
		require.NoError(t, err)

		want := "@Rom 1:1\n" +
			"Paulos doulos Christou\n" +
			"2 doulos\n" +
			"1 A1 A2\n" +
			"0 A3\n" +
			"\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("no matching type writes nothing", func(t *testing.T) {
		var out bytes.Buffer
		stats, err := Annotate(&out, strings.NewReader(romans), table, similarity.MaskAB, a1, a2)
		require.NoError(t, err)
		assert.Empty(t, out.String())
		assert.Equal(t, 0, stats.Selected)
	})

	t.Run("segments outside the table are dropped", func(t *testing.T) {
		input := "^0 zero\n" +
			"=0 A1 A2\n" +
			"^1 Paulos\n" +
			"=0 A1 A2 A3\n" +
			"^99 far\n" +
			"=0 A1 A2\n"

		var out bytes.Buffer
		stats, err := Annotate(&out, strings.NewReader(input), table, similarity.MaskAll, a1, a2)
		require.NoError(t, err)

		want := "  rest: A1 A2\n" +
			"1 Paulos\n" +
			"0 A1 A2 A3\n" +
			"\n"
		assert.Equal(t, want, out.String())
		assert.Equal(t, Stats{Lines: 6, Segments: 3, Selected: 1}, stats)
	})

	t.Run("custom rest label", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Annotate(&out, strings.NewReader(romans), table, similarity.MaskO, a1, a2, WithRestLabel("rell"))
		require.NoError(t, err)
		assert.Contains(t, out.String(), "  rell: A1 A2\n")
	})

	t.Run("argument checks", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Annotate(&out, strings.NewReader(romans), nil, similarity.MaskO, a1, a2)
		assert.ErrorIs(t, err, ErrTableRequired)
		_, err = Annotate(&out, strings.NewReader(romans), table, similarity.MaskO, a1, nil)
		assert.ErrorIs(t, err, ErrWitnessRequired)
		_, err = Annotate(&out, strings.NewReader(romans), table, 0, a1, a2)
		assert.ErrorIs(t, err, ErrNoAgreementType)
	})
}

func TestAnnotateByName(t *testing.T) {
	table := romansTable(t)

	t.Run("resolves names", func(t *testing.T) {
		var out bytes.Buffer
		stats, err := AnnotateByName(&out, strings.NewReader(romans), table, similarity.MaskO, "A1", "A2")
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Selected)
	})

	t.Run("unknown witness", func(t *testing.T) {
		var out bytes.Buffer
		_, err := AnnotateByName(&out, strings.NewReader(romans), table, similarity.MaskO, "A1", "a2")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrNotFound))
		assert.Empty(t, out.String())
	})
}

func TestSelectSegments(t *testing.T) {
	var out bytes.Buffer
	stats, err := SelectSegments(&out, strings.NewReader(romans), []int{3, 0})
	require.NoError(t, err)

	want := "@Rom 1:1\n" +
		"Paulos doulos Christou\n" +
		"3 Christou\n" +
		"0 A1 A3\n" +
		"1 A2\n" +
		"\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 1, stats.Selected)

	t.Run("segment zero never matches", func(t *testing.T) {
		var out bytes.Buffer
		_, err := SelectSegments(&out, strings.NewReader("^0 x\n=0 A1\n"), []int{0})
		require.NoError(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("consecutive segments", func(t *testing.T) {
		var out bytes.Buffer
		_, err := SelectSegments(&out, strings.NewReader(romans), []int{1, 4})
		require.NoError(t, err)

		want := "@Rom 1:1\n" +
			"Paulos doulos Christou\n" +
			"1 Paulos\n" +
			"0 A1 A2 A3\n" +
			"\n" +
			"@Rom 1:2\n" +
			"ho proepeggeilato\n" +
			"4 ho\n" +
			"0 A1\n"
		assert.Equal(t, want, out.String())
	})
}

func TestExtractUnits(t *testing.T) {
	input := "@Rom 1:1\n" +
		">Lem: Paulos\n" +
		"^1 Paulos\n" +
		"=0 A1 A2 \n" +
		"=? A3 \n" +
		"^2 doulos\n" +
		"=? A2 \n" +
		"=1 A3 \n" +
		"^3 Christou\n" +
		"=0 A1 \n"

	t.Run("two witnesses", func(t *testing.T) {
		var out bytes.Buffer
		stats, err := ExtractUnits(&out, strings.NewReader(input), []string{"A2", "A3"})
		require.NoError(t, err)

		want := "@Rom 1:1\n" +
			"Paulos\n" +
			"1 Paulos\n" +
			"      0 A2   \n" +
			"      ?    A3\n" +
			"2 doulos\n" +
			"      1    A3\n"
		assert.Equal(t, want, out.String())
		assert.Equal(t, 2, stats.Selected)
		assert.Equal(t, 3, stats.Segments)
	})

	t.Run("one witness keeps lacunae", func(t *testing.T) {
		var out bytes.Buffer
		_, err := ExtractUnits(&out, strings.NewReader(input), []string{"A2"})
		require.NoError(t, err)

		want := "@Rom 1:1\n" +
			"Paulos\n" +
			"1 Paulos\n" +
			"      0 A2\n" +
			"2 doulos\n" +
			"      ? A2\n"
		assert.Equal(t, want, out.String())
	})
}

func TestNormalize(t *testing.T) {
	var out bytes.Buffer
	stats, err := Normalize(&out, strings.NewReader("a  \r\nb\t\n\r\n  c"))
	require.NoError(t, err)

	assert.Equal(t, "a\nb\n\n  c\n", out.String())
	assert.Equal(t, 4, stats.Lines)
}
