package main

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/cuberoll/editor"
)

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (tb *ToolBar) SetTool(t editor.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for idx, tool := range toolOrder {
		if tool == t && idx < len(tb.buttons) {
			tb.group.SetActive(tb.buttons[idx])
			return
		}
	}
}

// BlockEntry is one row of the block type list.
type BlockEntry struct {
	Name string
}

// LeftPanelUI groups the widgets the editor updates after construction.
type LeftPanelUI struct {
	Container     *widget.Container
	FileNameInput *widget.TextInput
	BlockList     *widget.List
	entries       []any
}

// SelectBlock highlights the list row for name without firing the
// selection handler back into the editor.
func (lp *LeftPanelUI) SelectBlock(name string) {
	if lp == nil || lp.BlockList == nil {
		return
	}
	for _, e := range lp.entries {
		if e.(BlockEntry).Name == name {
			lp.BlockList.SetSelectedEntry(e)
			return
		}
	}
}
