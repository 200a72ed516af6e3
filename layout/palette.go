package layout

import (
	"onepaper/common"
)

// Palette names colors by their role on the page.
type Palette struct {
	Page     Color
	Card     Color
	Main     Color
	Accent   Color
	Text     Color
	Muted    Color
	Border   Color
	StepFill Color
}

var (
	lightPalette = Palette{
		Page:     Color{255, 255, 255},
		Card:     Color{255, 255, 255},
		Main:     Color{0, 51, 102},
		Accent:   Color{218, 165, 32},
		Text:     Color{33, 33, 33},
		Muted:    Color{100, 100, 100},
		Border:   Color{220, 220, 220},
		StepFill: Color{240, 248, 255},
	}
	// navy is unreadable on dark background, headings use lighter blue
	darkPalette = Palette{
		Page:     Color{30, 30, 30},
		Card:     Color{45, 45, 45},
		Main:     Color{102, 153, 204},
		Accent:   Color{218, 165, 32},
		Text:     Color{224, 224, 224},
		Muted:    Color{170, 170, 170},
		Border:   Color{80, 80, 80},
		StepFill: Color{40, 56, 80},
	}
)

func PaletteFor(mode common.ThemeMode) Palette {
	if mode.IsDark() {
		return darkPalette
	}
	return lightPalette
}
