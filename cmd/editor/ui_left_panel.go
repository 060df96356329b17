package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func buildLeftPanelUI(
	fontFace *text.Face,
	blockTypes []string,
	onBlockSelected func(name string),
) *LeftPanelUI {
	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	leftPanel.AddChild(widget.NewLabel(widget.LabelOpts.Text("Level file", fontFace, labelColor)))
	fileNameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-20, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
	leftPanel.AddChild(fileNameInput)

	leftPanel.AddChild(widget.NewLabel(widget.LabelOpts.Text("Blocks", fontFace, labelColor)))

	entries := make([]any, 0, len(blockTypes))
	for _, name := range blockTypes {
		entries = append(entries, BlockEntry{Name: name})
	}
	blockList := widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(BlockEntry); ok {
				return entry.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(BlockEntry)
			if !ok || onBlockSelected == nil {
				return
			}
			onBlockSelected(entry.Name)
		}),
	)
	leftPanel.AddChild(blockList)

	return &LeftPanelUI{
		Container:     leftPanel,
		FileNameInput: fileNameInput,
		BlockList:     blockList,
		entries:       entries,
	}
}
