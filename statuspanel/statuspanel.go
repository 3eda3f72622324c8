// Package statuspanel renders the same state/MPos/WPos fields the
// serial status line reports (spec §6) to a local Sharp Memory LCD, on
// a slow (~4 Hz) tick, matching grbl.StatusLine's three-fixed-decimal
// convention so the panel and the serial report never disagree.
package statuspanel

import (
	"image/color"

	"tinygo.org/x/grblmotion/grbl"
	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/sharpmem"
)

// CustomError is a lightweight error type in the teacher's idiom.
type CustomError string

func (e CustomError) Error() string { return string(e) }

// on darkens a pixel: sharpmem.SetPixel clears a pixel to white only for
// RGBA{0, 0, 0, 255} and darkens it for any other colour.
var on = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Panel draws onto a configured sharpmem.Device.
type Panel struct {
	dev *sharpmem.Device
}

// New wraps an already-configured sharpmem display.
func New(dev *sharpmem.Device) *Panel {
	return &Panel{dev: dev}
}

// Render draws the machine state and MPos/WPos rows and pushes the
// frame to the display.
func (p *Panel) Render(state grbl.State, mpos, wpos [kinematics.NumAxes]float32) error {
	p.dev.ClearBuffer()

	drawText(p.dev, 0, 0, stateInitial(state))
	drawText(p.dev, 0, glyphHeight+glyphGap, formatTriple(mpos))
	drawText(p.dev, 0, 2*(glyphHeight+glyphGap), formatTriple(wpos))

	return p.dev.Display()
}

func stateInitial(s grbl.State) string {
	switch s {
	case grbl.Idle:
		return "I"
	case grbl.Run:
		return "R"
	case grbl.Hold:
		return "H"
	case grbl.Alarm:
		return "A"
	default:
		return "?"
	}
}

func formatTriple(pos [kinematics.NumAxes]float32) string {
	return formatFixed(pos[kinematics.AxisX]) + "," + formatFixed(pos[kinematics.AxisY]) + "," + formatFixed(pos[kinematics.AxisZ])
}

// formatFixed renders one coordinate to three decimal places without
// pulling in fmt/strconv, matching the font's limited glyph set.
func formatFixed(v float32) string {
	neg := v < 0
	if neg {
		v = -v
	}
	scaled := int32(v*1000 + 0.5)
	whole := scaled / 1000
	frac := scaled % 1000

	s := itoa(whole) + "." + pad3(frac)
	if neg {
		s = "-" + s
	}
	return s
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func pad3(n int32) string {
	s := itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// drawText renders s at pixel origin (x0, y0) using the fixed 3x5 font.
func drawText(dev *sharpmem.Device, x0, y0 int16, s string) {
	x := x0
	for _, r := range s {
		g, ok := font[r]
		if !ok {
			x += glyphWidth + glyphGap
			continue
		}
		for row := 0; row < glyphHeight; row++ {
			bits := g[row]
			for col := 0; col < glyphWidth; col++ {
				if bits&(1<<uint(glyphWidth-1-col)) != 0 {
					dev.SetPixel(x+int16(col), y0+int16(row), on)
				}
			}
		}
		x += glyphWidth + glyphGap
	}
}
