package levels

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cuberoll/world"
)

func TestBuiltinLevelsLoad(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadLevelFromFS(name)
			require.NoError(t, err)

			w := world.New()
			require.NoError(t, Apply(w, doc))
			assert.Equal(t, len(doc.Blocks), w.Len())

			var ends int
			for _, tile := range w.Tiles() {
				if tile.Type == world.TypeEnd {
					ends++
				}
			}
			assert.Equal(t, 1, ends)
		})
	}
}

func TestCaptureThenApplyPreservesLayout(t *testing.T) {
	src := world.New()
	src.Place(world.NewTile(world.TypeNormal, world.Coord{X: 0, Y: 0, Z: 0}))
	src.Place(world.NewTile(world.TypeEnd, world.Coord{X: 1, Y: 0, Z: 0}))
	src.Place(world.NewTile(world.TypePrism, world.Coord{X: 0, Y: 1, Z: 0}))
	tp := world.NewTile(world.TypeTeleporter, world.Coord{X: 4, Y: 0, Z: 4})
	tp.Channel = "blue"
	src.Place(tp)
	mover := world.NewTile(world.TypeMoving, world.Coord{X: 2, Y: 0, Z: 2})
	mover.Platform.End = world.Coord{X: 2, Y: 0, Z: 6}
	mover.Platform.Speed = 0.05
	src.Place(mover)

	doc := Capture(src, Metadata{Name: "copy"}, world.Coord{X: 0, Y: 1, Z: 0})
	assert.NotEmpty(t, doc.Metadata.Timestamp)

	data, err := Encode(doc)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	dst := world.New()
	require.NoError(t, Apply(dst, decoded))

	layout := func(w *world.World) map[world.Coord]world.Type {
		out := make(map[world.Coord]world.Type)
		for _, tile := range w.Tiles() {
			out[tile.Pos] = tile.Type
		}
		return out
	}
	assert.Equal(t, layout(src), layout(dst))
	assert.Equal(t, world.Coord{X: 0, Y: 1, Z: 0}, decoded.SpawnCoord())

	require.Len(t, dst.Platforms(), 1)
	assert.Equal(t, mover.Platform.End, dst.Platforms()[0].Platform.End)
	assert.InDelta(t, 0.05, dst.Platforms()[0].Platform.Speed, 1e-9)
	require.Len(t, dst.Teleporters(), 1)
	assert.Equal(t, "blue", dst.Teleporters()[0].Channel)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"blocks": [`,
		"missing blocks": `{"metadata": {"name": "x"}}`,
		"unknown type":   `{"blocks": [{"type": "lava", "pos": [0,0,0]}]}`,
		"short pos":      `{"blocks": [{"type": "normal", "pos": [0,0]}]}`,
		"bad endPos":     `{"blocks": [{"type": "moving", "pos": [0,0,0], "endPos": [1]}]}`,
		"vertical dir":   `{"blocks": [{"type": "oneway", "pos": [0,0,0], "dir": [0,1,0]}]}`,
		"bad spawn":      `{"spawn": [1,2], "blocks": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestApplyLeavesWorldAloneOnError(t *testing.T) {
	w := world.New()
	w.Place(world.NewTile(world.TypeNormal, world.Coord{}))

	err := Apply(w, &Document{})
	require.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, 1, w.Len())
}

func TestApplyDefaultsMissingFields(t *testing.T) {
	doc, err := Decode([]byte(`{"blocks": [{"type": "moving", "pos": [1,0,1]}, {"type": "oneway", "pos": [0,0,0]}]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultSpawn, doc.SpawnCoord())

	w := world.New()
	require.NoError(t, Apply(w, doc))
	require.Len(t, w.Platforms(), 1)
	p := w.Platforms()[0].Platform
	assert.Equal(t, world.Coord{X: 4, Y: 0, Z: 1}, p.End)
	assert.Equal(t, world.DefaultPlatformSpeed, p.Speed)

	ow, ok := w.TileAt(world.Coord{})
	require.True(t, ok)
	assert.Equal(t, world.Forward, ow.Dir)
}

func TestWriteFileThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "level.json")
	doc := &Document{
		Metadata: Metadata{Name: "disk", Timestamp: "2026-01-01T00:00:00Z"},
		Blocks:   []Block{{Type: "end", Pos: []int{0, 0, 0}}},
	}
	require.NoError(t, WriteFile(path, doc))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Metadata, got.Metadata)
	assert.Equal(t, doc.Blocks, got.Blocks)
}
