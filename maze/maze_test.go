package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/world"
)

func testConfig(seed int64) Config {
	return ConfigFromSpec(prefabs.DefaultTuning().Generator, seed)
}

func TestGeneratedMazeIsConnectedAndSupported(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		cfg := testConfig(seed)
		cfg.HazardChance = 0.3
		res, err := Generate(cfg)
		require.NoError(t, err)

		assert.True(t, Connected(res), "seed %d", seed)

		solid := make(map[world.Coord]string)
		for _, b := range res.Doc.Blocks {
			solid[world.Coord{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]}] = b.Type
		}
		for c, h := range res.Heights {
			assert.GreaterOrEqual(t, h, 0)
			assert.LessOrEqual(t, h, cfg.MaxHeight)
			for y := 0; y <= h; y++ {
				_, ok := solid[world.Coord{X: c.X, Y: y, Z: c.Z}]
				assert.True(t, ok, "seed %d: no support at %v y=%d", seed, c, y)
			}
		}

		startFloor := solid[world.Coord{X: 0, Y: res.Heights[res.Start], Z: 0}]
		for _, h := range hazards {
			assert.NotEqual(t, string(h), startFloor, "seed %d", seed)
		}
		endFloor := solid[world.Coord{X: res.End.X, Y: res.Heights[res.End], Z: res.End.Z}]
		assert.Equal(t, string(world.TypeEnd), endFloor, "seed %d", seed)
		assert.Equal(t, world.Coord{X: 0, Y: 1, Z: 0}, res.Spawn)
	}
}

func TestEndFoundFromFarCorner(t *testing.T) {
	res, err := Generate(Config{Width: 11, Depth: 11, MaxHeight: 4, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, Cell{10, 10}, res.End)

	res, err = Generate(Config{Width: 10, Depth: 10, MaxHeight: 4, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, Cell{8, 8}, res.End)

	res, err = Generate(Config{Width: 1, Depth: 1, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, Cell{0, 0}, res.End)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(testConfig(42))
	require.NoError(t, err)
	b, err := Generate(testConfig(42))
	require.NoError(t, err)
	assert.Equal(t, a.Doc, b.Doc)
	assert.Equal(t, a.Heights, b.Heights)
}

func TestGeneratedDocumentLoads(t *testing.T) {
	cfg := testConfig(7)
	cfg.PrismChance = 0.5
	res, err := Generate(cfg)
	require.NoError(t, err)

	data, err := levels.Encode(res.Doc)
	require.NoError(t, err)
	doc, err := levels.Decode(data)
	require.NoError(t, err)

	w := world.New()
	require.NoError(t, levels.Apply(w, doc))
	assert.Equal(t, len(res.Doc.Blocks), w.Len())
	assert.Equal(t, res.Spawn, doc.SpawnCoord())
	assert.NotEmpty(t, w.Prisms())
}

func TestGenerateRejectsEmptyFootprint(t *testing.T) {
	_, err := Generate(Config{Width: 0, Depth: 5})
	assert.Error(t, err)
}

func TestConnectedDetectsGap(t *testing.T) {
	res := &Result{
		Start: Cell{0, 0},
		Heights: map[Cell]int{
			{0, 0}: 0,
			{1, 0}: 1,
			{2, 0}: 3,
		},
	}
	assert.False(t, Connected(res))
	res.Heights[Cell{2, 0}] = 2
	assert.True(t, Connected(res))
}
