package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationshipNumber(t *testing.T) {
	table := loadTable(t, exampleTable)
	a1, a2, a3 := table.Witness(0), table.Witness(1), table.Witness(2)

	t.Run("agreeing pair", func(t *testing.T) {
		// Sites 0..2 agree with two of three witnesses reading alike: (3-1)/2 each.
		// Site 3 disagrees and scores 0 but still counts.
		assert.InDelta(t, 0.75, RelationshipNumber(table, a1, a2), 1e-12)
	})

	t.Run("self relation rewards singular readings", func(t *testing.T) {
		// Site 3 reading 3 is unique to A1: (3-1)/1.
		assert.InDelta(t, 1.25, RelationshipNumber(table, a1, a1), 1e-12)
	})

	t.Run("no shared sites is NaN", func(t *testing.T) {
		assert.True(t, math.IsNaN(RelationshipNumber(table, a1, a3)))
		assert.True(t, math.IsNaN(RelationshipNumber(table, a3, a3)))
	})

	t.Run("lacunose witnesses still count as attested", func(t *testing.T) {
		table := loadTable(t, "3 1\nw1 1\nw2 1\nw3 ?\n")
		// attested = 3 even though w3 is lacunose: (3-1)/2.
		assert.InDelta(t, 1.0, RelationshipNumber(table, table.Witness(0), table.Witness(1)), 1e-12)
	})

	t.Run("never negative", func(t *testing.T) {
		table := loadTable(t, "4 5\nw1 01?3a\nw2 ?1234\nw3 00000\nw4 1?0b4\n")
		for _, ms := range table.Witnesses {
			for _, ll := range table.Witnesses {
				rn := RelationshipNumber(table, ms, ll)
				if math.IsNaN(rn) {
					continue
				}
				assert.GreaterOrEqual(t, rn, 0.0, "%s/%s", ms.Name, ll.Name)
			}
		}
	})
}
