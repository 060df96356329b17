package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAtInterpolates(t *testing.T) {
	tr := Trace{RunID: "r", Samples: []Sample{
		{T: 0, Pos: [3]float64{0, 1, 0}},
		{T: 1, Pos: [3]float64{2, 1, 0}},
		{T: 2, Pos: [3]float64{2, 1, -4}},
	}}

	cases := []struct {
		name string
		t    float64
		want [3]float64
	}{
		{"before start", -1, [3]float64{0, 1, 0}},
		{"first half", 0.5, [3]float64{1, 1, 0}},
		{"on sample", 1, [3]float64{2, 1, 0}},
		{"second half", 1.25, [3]float64{2, 1, -1}},
		{"after end", 5, [3]float64{2, 1, -4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := tr.At(c.t)
			require.True(t, ok)
			for k := range c.want {
				assert.InDelta(t, c.want[k], got.Pos[k], 1e-9)
			}
		})
	}
	assert.Equal(t, 2.0, tr.Duration())
}

func TestTraceAtEmpty(t *testing.T) {
	_, ok := Trace{}.At(1)
	assert.False(t, ok)
	assert.Zero(t, Trace{}.Duration())
}
