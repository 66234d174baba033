package render

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/ayusman/obakehunt/internal/gesture"
)

var (
	colorBackground = color.RGBA{R: 0x1d, G: 0x2b, B: 0x53, A: 0xff}
	colorText       = colornames.White
	colorDim        = colornames.Slategray
	colorButton     = colornames.Darkslateblue
	colorButtonEdge = colornames.Lightsteelblue
	colorObake      = colornames.Ghostwhite
	colorEye        = colornames.Black
	colorCorpse     = colornames.Lightpink
	colorPopup      = colornames.Gold
	colorAim        = colornames.Orangered
	colorMark       = colornames.Yellow
	colorDwell      = colornames.Lightgreen
	colorHand       = colornames.Aquamarine
	colorRound      = colornames.Goldenrod
	colorEmpty      = colornames.Dimgray
	colorReload     = colornames.Skyblue
)

// palette is indexed by Drifter.Color. Entry 0 is never drawn.
var palette = [16]color.RGBA{
	colornames.Black,
	colornames.Navy,
	colornames.Purple,
	colornames.Green,
	colornames.Saddlebrown,
	colornames.Darkslategray,
	colornames.Silver,
	colornames.Ivory,
	colornames.Red,
	colornames.Orange,
	colornames.Yellow,
	colornames.Lime,
	colornames.Deepskyblue,
	colornames.Lightslategray,
	colornames.Hotpink,
	colornames.Peachpuff,
}

// paletteColor returns the drifter color for index i, wrapping out-of-range values.
func paletteColor(i int) color.RGBA {
	i %= len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}

// fade scales a premultiplied color by alpha a in [0,1].
func fade(c color.RGBA, a float64) color.RGBA {
	a = min(max(a, 0), 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// healthColor grades the tracker latency like a traffic light.
func healthColor(h gesture.Health) color.RGBA {
	switch h {
	case gesture.HealthGood:
		return colornames.Limegreen
	case gesture.HealthSlow:
		return colornames.Orange
	default:
		return colornames.Red
	}
}
