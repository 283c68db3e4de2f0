// Package roll draws tone commands as a piano roll image.
package roll

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/pshvedko/midibeep/beep"
)

// Margin around the roll, in pixels.
const Margin = 4

// Draw lays the commands out left to right, time on x and pitch on y, in a
// w×h image. Alternate tones are shaded so neighbours stay apart.
func Draw(cmds []beep.ToneCommand, w, h int) image.Image {
	c := gg.NewContext(w, h)
	c.SetRGB(1, 1, 1)
	c.Clear()
	if len(cmds) == 0 {
		return c.Image()
	}
	lo, hi := cmds[0].Pitch, cmds[0].Pitch
	var total int64
	for _, t := range cmds {
		if t.Pitch < lo {
			lo = t.Pitch
		}
		if t.Pitch > hi {
			hi = t.Pitch
		}
		total += t.Micros
	}
	if total == 0 {
		return c.Image()
	}
	dx := float64(w-2*Margin) / float64(total)
	dy := float64(h-2*Margin) / float64(hi-lo+1)
	c.SetRGB(.9, .9, .9)
	c.SetLineWidth(1)
	for p := lo; p <= hi; p++ {
		if p%12 == 0 {
			y := Margin + float64(hi-p)*dy + dy
			c.DrawLine(Margin, y, float64(w-Margin), y)
			c.Stroke()
		}
	}
	x := float64(Margin)
	for i, t := range cmds {
		if i%2 == 0 {
			c.SetRGB(.1, .3, .8)
		} else {
			c.SetRGB(.2, .6, 1)
		}
		c.DrawRectangle(x, Margin+float64(hi-t.Pitch)*dy, float64(t.Micros)*dx, dy)
		c.Fill()
		x += float64(t.Micros) * dx
	}
	return c.Image()
}

func Save(path string, cmds []beep.ToneCommand, w, h int) error {
	if w <= 2*Margin || h <= 2*Margin {
		return errors.Errorf("roll size %dx%d too small", w, h)
	}
	return errors.Wrap(gg.SavePNG(path, Draw(cmds, w, h)), "save roll")
}
