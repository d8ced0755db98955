package similarity

import (
	"strings"
	"testing"

	"github.com/poiesic/stemma/core"
	"github.com/poiesic/stemma/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTable(t *testing.T, input string) *core.Table {
	t.Helper()
	table, err := storage.ReadTable(strings.NewReader(input), "test.tx")
	require.NoError(t, err)
	return table
}

const exampleTable = "3 4\nA1 0123\nA2 0120\nA3 ????\n"

func TestTallyRate(t *testing.T) {
	assert.Equal(t, 0.0, Tally{}.Rate())
	assert.Equal(t, 0.75, Tally{Agreements: 3, Eligible: 4}.Rate())
	assert.Equal(t, 1.0, Tally{Agreements: 2, Eligible: 2}.Rate())
}

func TestCompare(t *testing.T) {
	table := loadTable(t, exampleTable)
	a1, a2, a3 := table.Witness(0), table.Witness(1), table.Witness(2)

	t.Run("default references", func(t *testing.T) {
		res := Compare(table, a1, a2)

		assert.Equal(t, Tally{Agreements: 3, Eligible: 4}, res.O)
		assert.Equal(t, 0.75, res.Rate())
		// A1 departs from the baseline 0 at sites 1..3 and agrees at 1 and 2.
		assert.Equal(t, Tally{Agreements: 2, Eligible: 3}, res.A)
		// A1 always reads the majority text.
		assert.Equal(t, Tally{}, res.B)
		assert.Equal(t, Tally{}, res.AB)
		assert.Equal(t, []Mask{MaskO, MaskO | MaskA, MaskO | MaskA, 0}, res.Mask)
	})

	t.Run("eligibility follows the first witness", func(t *testing.T) {
		res := Compare(table, a2, a1)

		assert.Equal(t, Tally{Agreements: 3, Eligible: 4}, res.O)
		assert.Equal(t, Tally{Agreements: 2, Eligible: 2}, res.A)
		assert.Equal(t, Tally{Agreements: 0, Eligible: 1}, res.B)
		assert.Equal(t, Tally{}, res.AB)
	})

	t.Run("lacunae are skipped", func(t *testing.T) {
		res := Compare(table, a1, a3)

		assert.Equal(t, Tally{}, res.O)
		assert.Equal(t, 0.0, res.Rate())
		assert.Equal(t, make([]Mask, 4), res.Mask)
	})

	t.Run("explicit references", func(t *testing.T) {
		table := loadTable(t, exampleTable)
		require.Empty(t, table.SetReferences("A2", "A2"))
		a1, a2 := table.Witness(0), table.Witness(1)

		res := Compare(table, a1, a2)
		assert.Equal(t, Tally{Agreements: 0, Eligible: 1}, res.A)
		assert.Equal(t, Tally{Agreements: 0, Eligible: 1}, res.B)
		assert.Equal(t, Tally{Agreements: 0, Eligible: 1}, res.AB)
	})

	t.Run("mask is fresh per call", func(t *testing.T) {
		first := Compare(table, a1, a2)
		second := Compare(table, a1, a3)

		assert.Equal(t, MaskO, first.Mask[0])
		assert.Equal(t, Mask(0), second.Mask[0])
	})
}

func TestCompare_Self(t *testing.T) {
	table := loadTable(t, "4 6\nw1 01?3a-\nw2 ?1234b\nw3 000000\nw4 ??????\n")

	for _, w := range table.Witnesses {
		res := Compare(table, w, w)
		if res.O.Eligible > 0 {
			assert.Equal(t, 1.0, res.Rate(), w.Name)
		}
		assert.Equal(t, res.O.Eligible, res.O.Agreements, w.Name)
		assert.Equal(t, res.A.Eligible, res.A.Agreements, w.Name)
		assert.Equal(t, res.B.Eligible, res.B.Agreements, w.Name)
		assert.Equal(t, res.AB.Eligible, res.AB.Agreements, w.Name)
	}
}

func TestCompare_ExtendedCodes(t *testing.T) {
	table := loadTable(t, "2 3\nw1 a-b\nw2 a-c\n")
	res := Compare(table, table.Witness(0), table.Witness(1))

	assert.Equal(t, Tally{Agreements: 2, Eligible: 3}, res.O)
	// Letters and dashes never equal the baseline digit.
	assert.Equal(t, Tally{Agreements: 2, Eligible: 3}, res.A)
}

func TestResultTally(t *testing.T) {
	res := Result{
		O:  Tally{1, 2},
		A:  Tally{3, 4},
		B:  Tally{5, 6},
		AB: Tally{7, 8},
	}
	assert.Equal(t, res.O, res.Tally(MaskO))
	assert.Equal(t, res.A, res.Tally(MaskA))
	assert.Equal(t, res.B, res.Tally(MaskB))
	assert.Equal(t, res.AB, res.Tally(MaskAB))
	assert.Equal(t, Tally{}, res.Tally(MaskO|MaskA))
}
