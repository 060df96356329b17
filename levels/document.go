package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/milk9111/cuberoll/world"
)

// ErrMalformed marks a level document that failed structural validation.
var ErrMalformed = errors.New("levels: malformed document")

// Document is the serialized level shape exchanged with loaders and savers.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Spawn    []int    `json:"spawn,omitempty"`
	Blocks   []Block  `json:"blocks"`
}

type Metadata struct {
	Name      string `json:"name"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}

type Block struct {
	Type     string   `json:"type"`
	Pos      []int    `json:"pos"`
	StartPos []int    `json:"startPos,omitempty"`
	EndPos   []int    `json:"endPos,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
	Dir      []int    `json:"dir,omitempty"`
	Channel  string   `json:"channel,omitempty"`
}

// DefaultSpawn is used when a document has no spawn entry.
var DefaultSpawn = world.Coord{X: 0, Y: 1, Z: 0}

// Decode parses and validates a level document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode writes the document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Validate checks structure only; it never mutates the document.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrMalformed)
	}
	if d.Blocks == nil {
		return fmt.Errorf("%w: missing blocks", ErrMalformed)
	}
	if d.Spawn != nil && len(d.Spawn) != 3 {
		return fmt.Errorf("%w: spawn needs 3 components, got %d", ErrMalformed, len(d.Spawn))
	}
	for i, b := range d.Blocks {
		if _, err := world.ParseType(b.Type); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrMalformed, i, err)
		}
		if len(b.Pos) != 3 {
			return fmt.Errorf("%w: block %d: pos needs 3 components", ErrMalformed, i)
		}
		for name, v := range map[string][]int{"startPos": b.StartPos, "endPos": b.EndPos, "dir": b.Dir} {
			if v != nil && len(v) != 3 {
				return fmt.Errorf("%w: block %d: %s needs 3 components", ErrMalformed, i, name)
			}
		}
		if b.Speed != nil && *b.Speed < 0 {
			return fmt.Errorf("%w: block %d: negative speed", ErrMalformed, i)
		}
		if b.Dir != nil && !toCoord(b.Dir).IsCardinal() {
			return fmt.Errorf("%w: block %d: dir must be a horizontal unit step", ErrMalformed, i)
		}
	}
	return nil
}

// SpawnCoord returns the document spawn or DefaultSpawn.
func (d *Document) SpawnCoord() world.Coord {
	if d == nil || len(d.Spawn) != 3 {
		return DefaultSpawn
	}
	return toCoord(d.Spawn)
}

// Apply clears w and repopulates it from doc through the tile factory.
// Nothing is touched if doc fails validation.
func Apply(w *world.World, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	w.Clear()
	for _, b := range doc.Blocks {
		w.Place(b.Tile())
	}
	return nil
}

// Tile builds the runtime tile for a validated block.
func (b Block) Tile() *world.Tile {
	typ, _ := world.ParseType(b.Type)
	tile := world.NewTile(typ, toCoord(b.Pos))
	if tile.Platform != nil {
		if b.StartPos != nil {
			tile.Platform.Start = toCoord(b.StartPos)
			tile.Platform.Current = tile.Platform.Start.Vec()
		}
		if b.EndPos != nil {
			tile.Platform.End = toCoord(b.EndPos)
		}
		if b.Speed != nil {
			tile.Platform.Speed = *b.Speed
		}
	}
	if b.Dir != nil {
		tile.Dir = toCoord(b.Dir)
	}
	tile.Channel = b.Channel
	return tile
}

// Capture serializes every placed tile. Transient activation state is not
// part of the document.
func Capture(w *world.World, meta Metadata, spawn world.Coord) *Document {
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	doc := &Document{
		Metadata: meta,
		Spawn:    fromCoord(spawn),
		Blocks:   []Block{},
	}
	for _, t := range w.Tiles() {
		doc.Blocks = append(doc.Blocks, BlockOf(t))
	}
	return doc
}

// BlockOf is the inverse of Block.Tile.
func BlockOf(t *world.Tile) Block {
	b := Block{Type: string(t.Type), Pos: fromCoord(t.Pos), Channel: t.Channel}
	if p := t.Platform; p != nil {
		speed := p.Speed
		b.StartPos = fromCoord(p.Start)
		b.EndPos = fromCoord(p.End)
		b.Speed = &speed
	}
	if t.Type == world.TypeOneway {
		b.Dir = fromCoord(t.Dir)
	}
	return b
}

// ReadFile loads and validates a level document from disk.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Decode(data)
}

// WriteFile saves doc, creating parent directories as needed.
func WriteFile(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func toCoord(v []int) world.Coord {
	return world.Coord{X: v[0], Y: v[1], Z: v[2]}
}

func fromCoord(c world.Coord) []int {
	return []int{c.X, c.Y, c.Z}
}
