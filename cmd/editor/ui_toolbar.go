package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/cuberoll/editor"
)

// toolOrder is the left-to-right order of the tool buttons.
var toolOrder = []editor.Tool{editor.ToolBrush, editor.ToolEraser}

// ToolbarActions are the one-shot buttons next to the tool radio group.
type ToolbarActions struct {
	Undo func()
	Redo func()
	Save func()
	Load func()
	Copy func()
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool editor.Tool), actions ToolbarActions, initialTool editor.Tool) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarColor)),
	)

	var toolButtons []*widget.Button
	for _, tool := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(toolLabel(tool), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					onToolSelected(toolOrder[idx])
					return
				}
			}
		}),
	)

	for idx, tool := range toolOrder {
		if tool == initialTool {
			group.SetActive(toolButtons[idx])
		}
	}

	for _, a := range []struct {
		label string
		fn    func()
	}{
		{"Undo", actions.Undo},
		{"Redo", actions.Redo},
		{"Save", actions.Save},
		{"Load", actions.Load},
		{"Copy", actions.Copy},
	} {
		fn := a.fn
		toolbar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.label, fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		))
	}

	return toolbar, &ToolBar{group: group, buttons: toolButtons}
}

func toolLabel(t editor.Tool) string {
	switch t {
	case editor.ToolBrush:
		return "Brush"
	case editor.ToolEraser:
		return "Eraser"
	default:
		return "Unknown"
	}
}
