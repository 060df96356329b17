package editor

import (
	"fmt"

	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/world"
)

type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

// Editor is the command surface an input layer drives: pick a tool and a
// block type, apply edits at coordinates, undo and redo.
type Editor struct {
	world     *world.World
	stack     *Stack
	tool      Tool
	blockType world.Type
	spawn     world.Coord
	meta      levels.Metadata
}

func New(w *world.World, maxUndo int) *Editor {
	if w == nil {
		w = world.New()
	}
	return &Editor{
		world:     w,
		stack:     NewStack(w, maxUndo),
		tool:      ToolBrush,
		blockType: world.TypeNormal,
		spawn:     levels.DefaultSpawn,
	}
}

func (e *Editor) World() *world.World   { return e.world }
func (e *Editor) Stack() *Stack         { return e.stack }
func (e *Editor) Tool() Tool            { return e.tool }
func (e *Editor) BlockType() world.Type { return e.blockType }

func (e *Editor) SetTool(t Tool) {
	if t != ToolEraser {
		t = ToolBrush
	}
	e.tool = t
}

func (e *Editor) SetBlockType(t world.Type) error {
	if _, err := world.ParseType(string(t)); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	e.blockType = t
	return nil
}

// ExecuteEdit applies the current tool at c. An empty typ uses the current
// block type.
func (e *Editor) ExecuteEdit(c world.Coord, typ world.Type) bool {
	if e.tool == ToolEraser {
		return e.stack.Execute(NewRemove(c))
	}
	if typ == "" {
		typ = e.blockType
	}
	return e.stack.Execute(NewAdd(c, typ))
}

func (e *Editor) Undo() bool { return e.stack.Undo() }
func (e *Editor) Redo() bool { return e.stack.Redo() }

func (e *Editor) Spawn() world.Coord     { return e.spawn }
func (e *Editor) SetSpawn(c world.Coord) { e.spawn = c }

// Document captures the edited world as a level document.
func (e *Editor) Document(meta levels.Metadata) *levels.Document {
	if meta.Name == "" {
		meta.Name = e.meta.Name
	}
	if meta.Author == "" {
		meta.Author = e.meta.Author
	}
	return levels.Capture(e.world, meta, e.spawn)
}

// Load replaces the world contents with doc and forgets the edit history.
func (e *Editor) Load(doc *levels.Document) error {
	if err := levels.Apply(e.world, doc); err != nil {
		return fmt.Errorf("editor: load: %w", err)
	}
	e.stack.Clear()
	e.spawn = doc.SpawnCoord()
	e.meta = doc.Metadata
	e.meta.Timestamp = ""
	return nil
}
