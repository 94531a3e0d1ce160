package terminal

import (
	"image/color"
	"os"

	"github.com/denschub/calscreen/config"
	"github.com/gdamore/tcell/v2"
)

func toTcell(c color.Color) tcell.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

// ApplyColorMode steers tcell's color detection; call before creating the
// screen
func ApplyColorMode(mode string) {
	switch mode {
	case config.ColorTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	case config.Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}
}
