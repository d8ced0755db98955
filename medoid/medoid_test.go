package medoid

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

const starTable = `4 4
hub  0000
near 0001
mid  0011
far  1111
`

func TestBuild(t *testing.T) {
	table := loadTable(t, starTable)
	m := Build(table)

	require.Equal(t, 4, m.Size())
	assert.InDelta(t, 0.25, m.At(0, 1), 1e-12)
	assert.InDelta(t, 0.5, m.At(0, 2), 1e-12)
	assert.InDelta(t, 1.0, m.At(0, 3), 1e-12)
	assert.InDelta(t, 0.25, m.At(1, 2), 1e-12)

	t.Run("symmetric with zero diagonal", func(t *testing.T) {
		for i := 0; i < m.Size(); i++ {
			assert.Equal(t, 0.0, m.At(i, i))
			for j := 0; j < m.Size(); j++ {
				assert.Equal(t, m.At(i, j), m.At(j, i))
			}
		}
	})
}

func TestBuild_Lacunae(t *testing.T) {
	table := loadTable(t, "3 2\nw1 01\nw2 ??\nw3 0?\n")
	m := Build(table)

	// No shared sites gives a rate of 0, so the distance is 1.
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(0, 2))
	assert.Equal(t, 0.0, m.At(1, 1))
}

func TestBuild_SingleWitness(t *testing.T) {
	table := loadTable(t, "1 3\nsolo 012\n")

	called := false
	m := Build(table, WithProgress(func(done, total int) { called = true }))

	assert.Equal(t, 1, m.Size())
	assert.Equal(t, 0.0, m.Score(0))
	assert.False(t, called)
}

func TestBuild_Progress(t *testing.T) {
	table := loadTable(t, starTable)

	var calls [][2]int
	Build(table, WithProgress(func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}))

	assert.Equal(t, [][2]int{{1, 6}, {3, 6}, {6, 6}}, calls)
}

func TestScore(t *testing.T) {
	table := loadTable(t, starTable)
	m := Build(table)

	assert.InDelta(t, 0.25+0.5+1.0, m.Score(0), 1e-12)
	assert.InDelta(t, 0.25+0.25+0.75, m.Score(1), 1e-12)
	assert.InDelta(t, 0.5+0.25+0.5, m.Score(2), 1e-12)
	assert.InDelta(t, 1.0+0.75+0.5, m.Score(3), 1e-12)
}

func TestRank(t *testing.T) {
	table := loadTable(t, starTable)
	ranked := Rank(table, Build(table))

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Witness.Name
	}
	// near and mid tie at 1.25; table order breaks the tie.
	assert.Equal(t, []string{"near", "mid", "hub", "far"}, names)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}
