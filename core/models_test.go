package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, rows ...string) *Table {
	t.Helper()
	witnesses := make([]*Witness, 0, len(rows)/2)
	for i := 0; i < len(rows); i += 2 {
		witnesses = append(witnesses, &Witness{Name: rows[i], Readings: []byte(rows[i+1])})
	}
	table, err := NewTable(witnesses)
	require.NoError(t, err)
	return table
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		wantSame bool
	}{
		{
			name:     "identical tables",
			a:        []string{"A1", "0123", "A2", "0120"},
			b:        []string{"A1", "0123", "A2", "0120"},
			wantSame: true,
		},
		{
			name:     "one reading differs",
			a:        []string{"A1", "0123", "A2", "0120"},
			b:        []string{"A1", "0123", "A2", "0121"},
			wantSame: false,
		},
		{
			name:     "witness order differs",
			a:        []string{"A1", "0123", "A2", "0120"},
			b:        []string{"A2", "0120", "A1", "0123"},
			wantSame: false,
		},
		{
			name:     "name differs",
			a:        []string{"A1", "0123"},
			b:        []string{"a1", "0123"},
			wantSame: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := newTestTable(t, tt.a...).Fingerprint()
			fb := newTestTable(t, tt.b...).Fingerprint()

			assert.Len(t, fa, 16)
			if tt.wantSame {
				assert.Equal(t, fa, fb)
			} else {
				assert.NotEqual(t, fa, fb)
			}
		})
	}
}

func TestWitnessAccessors(t *testing.T) {
	table := newTestTable(t, "A1", "0?2", "A2", "012")

	w := table.Witness(0)
	assert.Equal(t, "A1", w.Name)
	assert.Equal(t, byte('2'), w.Reading(2))
	assert.True(t, w.IsLacuna(1))
	assert.False(t, table.Witness(1).IsLacuna(1))
}
