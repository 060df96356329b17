package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/world"
)

func layout(w *world.World) map[world.Coord]world.Type {
	out := make(map[world.Coord]world.Type)
	for _, t := range w.Tiles() {
		out[t.Pos] = t.Type
	}
	return out
}

func TestUndoRestoresStateBeforeAdds(t *testing.T) {
	e := New(nil, 0)
	e.ExecuteEdit(world.Coord{X: 9}, world.TypeEnd)
	before := layout(e.World())

	types := []world.Type{world.TypeNormal, world.TypePrism, world.TypeSwitch, world.TypeMoving, world.TypeTeleporter}
	for i, typ := range types {
		require.True(t, e.ExecuteEdit(world.Coord{X: i}, typ))
	}
	after := layout(e.World())

	for i := len(types) - 1; i >= 0; i-- {
		require.True(t, e.Undo())
		_, ok := e.World().TileAt(world.Coord{X: i})
		assert.False(t, ok, "undo should remove the tile at x=%d first", i)
	}
	assert.Equal(t, before, layout(e.World()))
	assert.Empty(t, e.World().Prisms())
	assert.Empty(t, e.World().Switches())
	assert.Empty(t, e.World().Platforms())
	assert.Empty(t, e.World().Teleporters())

	for range types {
		require.True(t, e.Redo())
	}
	assert.Equal(t, after, layout(e.World()))
	assert.Len(t, e.World().Platforms(), 1)
	assert.False(t, e.Redo())
}

func TestHistoryIsCapped(t *testing.T) {
	e := New(nil, 0)
	for i := 0; i < DefaultMaxUndo+1; i++ {
		require.True(t, e.ExecuteEdit(world.Coord{X: i}, ""))
	}
	assert.Equal(t, DefaultMaxUndo, e.Stack().Len())

	undone := 0
	for e.Undo() {
		undone++
	}
	assert.Equal(t, DefaultMaxUndo, undone)
	assert.Equal(t, 1, e.World().Len())
	_, ok := e.World().TileAt(world.Coord{X: 0})
	assert.True(t, ok, "the oldest add cannot be undone")
}

func TestNewEditClearsRedo(t *testing.T) {
	e := New(nil, 0)
	e.ExecuteEdit(world.Coord{X: 0}, "")
	e.ExecuteEdit(world.Coord{X: 1}, "")
	require.True(t, e.Undo())
	require.True(t, e.Stack().CanRedo())

	require.True(t, e.ExecuteEdit(world.Coord{X: 5}, ""))
	assert.False(t, e.Stack().CanRedo())
}

func TestNoopAddIsNotRecorded(t *testing.T) {
	e := New(nil, 0)
	require.True(t, e.ExecuteEdit(world.Coord{}, world.TypeNormal))
	require.True(t, e.ExecuteEdit(world.Coord{X: 1}, world.TypeNormal))
	require.True(t, e.Undo())

	assert.False(t, e.ExecuteEdit(world.Coord{}, world.TypeEnd))
	assert.Equal(t, 1, e.Stack().Len())
	assert.True(t, e.Stack().CanRedo())

	tile, ok := e.World().TileAt(world.Coord{})
	require.True(t, ok)
	assert.Equal(t, world.TypeNormal, tile.Type)
}

func TestEraserUndoRestoresIdenticalTile(t *testing.T) {
	e := New(nil, 0)
	require.True(t, e.ExecuteEdit(world.Coord{X: 2}, world.TypeMoving))
	tile, ok := e.World().TileAt(world.Coord{X: 2})
	require.True(t, ok)
	tile.Platform.End = world.Coord{X: 2, Z: 5}
	tile.Platform.Speed = 0.1
	tile.Channel = "x"

	e.SetTool(ToolEraser)
	assert.Equal(t, ToolEraser, e.Tool())
	require.True(t, e.ExecuteEdit(world.Coord{X: 2}, ""))
	assert.Empty(t, e.World().Platforms())
	assert.False(t, e.ExecuteEdit(world.Coord{X: 7}, ""), "nothing to erase")

	require.True(t, e.Undo())
	require.Len(t, e.World().Platforms(), 1)
	restored := e.World().Platforms()[0]
	assert.NotSame(t, tile, restored)
	assert.Equal(t, tile, restored)

	require.True(t, e.Redo())
	assert.Empty(t, e.World().Platforms())
	assert.Equal(t, 0, e.World().Len())
}

func TestSetBlockType(t *testing.T) {
	e := New(nil, 0)
	assert.Equal(t, world.TypeNormal, e.BlockType())
	require.NoError(t, e.SetBlockType(world.TypeIce))
	assert.Error(t, e.SetBlockType("lava"))
	assert.Equal(t, world.TypeIce, e.BlockType())

	require.True(t, e.ExecuteEdit(world.Coord{}, ""))
	tile, _ := e.World().TileAt(world.Coord{})
	assert.Equal(t, world.TypeIce, tile.Type)

	e.SetTool("pencil")
	assert.Equal(t, ToolBrush, e.Tool())
}

func TestDocumentRoundTrip(t *testing.T) {
	e := New(nil, 0)
	e.ExecuteEdit(world.Coord{}, world.TypeNormal)
	e.ExecuteEdit(world.Coord{X: 1}, world.TypeEnd)
	e.ExecuteEdit(world.Coord{Y: 1, Z: 1}, world.TypePrism)
	e.SetSpawn(world.Coord{Y: 1})

	doc := e.Document(levels.Metadata{Name: "mine", Author: "me"})
	assert.Equal(t, "mine", doc.Metadata.Name)

	other := New(nil, 0)
	other.ExecuteEdit(world.Coord{X: 40}, world.TypeNormal)
	require.NoError(t, other.Load(doc))
	assert.Equal(t, layout(e.World()), layout(other.World()))
	assert.Equal(t, world.Coord{Y: 1}, other.Spawn())
	assert.False(t, other.Stack().CanUndo())
	assert.Equal(t, "mine", other.Document(levels.Metadata{}).Metadata.Name)

	assert.Error(t, other.Load(&levels.Document{}))
}
