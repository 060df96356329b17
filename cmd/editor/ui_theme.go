package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Shared editor UI colors.
var (
	canvasColor   = color.RGBA{24, 24, 32, 255}
	panelColor    = color.RGBA{32, 32, 44, 255}
	toolbarColor  = color.RGBA{210, 214, 232, 255}
	buttonIdle    = color.RGBA{180, 184, 200, 255}
	buttonHover   = color.RGBA{200, 204, 220, 255}
	buttonPressed = color.RGBA{150, 156, 180, 255}
	listColor     = color.RGBA{225, 228, 236, 255}
	selectedColor = color.RGBA{255, 214, 120, 255}
	labelColor    = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    solidNineSlice(buttonIdle),
		Hover:   solidNineSlice(buttonHover),
		Pressed: solidNineSlice(buttonPressed),
	}
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.Black,
				Selected:            color.Black,
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 96},
				SelectingBackground: buttonHover,
				SelectedBackground:  selectedColor,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(listColor),
				Mask: solidNineSlice(listColor),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image:    buttonImage(),
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}
