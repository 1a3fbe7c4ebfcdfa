package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	Accent        rl.Color
	Warning       rl.Color
	LabelColor    rl.Color
	DimColor      rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	Padding       int32
	LineHeight    int32
	BarHeight     int32
	FontSize      int32
	TitleFontSize int32
	LockFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 10, G: 10, B: 14, A: 220},
		PanelBorder:   rl.Color{R: 255, G: 255, B: 255, A: 25},
		Accent:        rl.Color{R: 96, G: 165, B: 250, A: 255},
		Warning:       rl.Color{R: 249, G: 115, B: 22, A: 255},
		LabelColor:    rl.Color{R: 255, G: 255, B: 255, A: 230},
		DimColor:      rl.Color{R: 255, G: 255, B: 255, A: 100},
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 96, G: 165, B: 250, A: 255},
		Padding:       24,
		LineHeight:    18,
		BarHeight:     6,
		FontSize:      12,
		TitleFontSize: 24,
		LockFontSize:  60,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawCentered draws text horizontally centred on cx.
func (r *Renderer) DrawCentered(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}

// DrawBar draws a labelled bar for a [0, 1] value and returns the next Y.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.DimColor)
	barY := y + r.Theme.FontSize + 2
	rl.DrawRectangle(x, barY, width, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(x, barY, int32(float32(width)*value), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.1f", value), x+width+6, y+4, r.Theme.FontSize, r.Theme.DimColor)
	return barY + r.Theme.BarHeight + 6
}
