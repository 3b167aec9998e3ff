package labels

import (
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// face is the fixed-size face labels are measured with on screen.
var face font.Face = basicfont.Face7x13

// textSize returns the pixel box needed for text plus padding.
func textSize(text string, padX, padY float64) (float64, float64) {
	w := float64(font.MeasureString(face, text).Ceil())
	h := float64(face.Metrics().Height.Ceil())
	return w + 2*padX, h + 2*padY
}

// formatLength renders a segment length in whole units.
func formatLength(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}

// formatAngle renders an angle to one decimal, dropping a trailing zero.
func formatAngle(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "°"
}
