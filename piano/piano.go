// Package piano previews tone commands on a keyboard window with a square
// wave voice.
package piano

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/audio"

	"github.com/pshvedko/midibeep/beep"
	"github.com/pshvedko/midibeep/synth"
)

type draw struct {
	*gg.Context
}

// board is indexed by MIDI note: [(note-12)/12][note%12].
type board [9][12]key

func (k *board) At(note int) key {
	if note < 12 || note >= 12+len(k)*12 {
		return nil
	}
	return k[(note-12)/12][note%12]
}

type progress struct {
	x, y, w float64
}

type button struct {
	state bool
	click int
	time  time.Time
}

type Piano struct {
	draw
	rgba   *image.RGBA
	voice  *synth.Voice
	play   *audio.Player
	key    board
	bar    progress
	button map[ebiten.Key]bool
	mouse  map[ebiten.MouseButton]button
	flow   chan beep.ToneCommand
	log    *log.Logger
}

func (p *Piano) KeyPressed(k ebiten.Key) bool {
	b := p.button[k]
	p.button[k] = ebiten.IsKeyPressed(k)
	return b && !p.button[k]
}

func (p *Piano) MouseClicked(m ebiten.MouseButton, t time.Time) int {
	o := p.mouse[m]
	b := o.state
	o.state = ebiten.IsMouseButtonPressed(m)
	if b && !o.state {
		o.click++
		o.time = t
	} else if t.Sub(o.time) > 250*time.Millisecond {
		o.click = 0
		o.time = t
	}
	p.mouse[m] = o
	return o.click
}

func (p *Piano) press(c beep.ToneCommand, on bool) {
	k := p.key.At(c.Pitch + p.voice.Base())
	if k == nil {
		return
	}
	if on {
		k.On()
		select {
		case p.flow <- c:
		default:
		}
	} else {
		k.Off()
	}
}

func (p *Piano) Update(e *ebiten.Image) error {
	switch ebiten.IsFullscreen() {
	case true:
		if p.KeyPressed(ebiten.KeyEscape) || p.KeyPressed(ebiten.KeyF) {
			ebiten.SetFullscreen(false)
		}
	case false:
		if p.MouseClicked(ebiten.MouseButtonLeft, time.Now()) == 2 || p.KeyPressed(ebiten.KeyF) {
			ebiten.SetFullscreen(true)
		}
	}
	if p.KeyPressed(ebiten.KeySpace) {
		if p.play.IsPlaying() {
			_ = p.play.Pause()
		} else {
			_ = p.play.Play()
		}
	}
	for {
		select {
		case c := <-p.flow:
			p.log.Debug("tone", "index", c.Index, "us", c.Micros, "pitch", c.Pitch)
			continue
		default:
		}
		break
	}
	p.SetRGBA(1, 1, 1, 1)
	p.Clear()
	n := 0
	for o := range p.key {
		for _, k := range p.key[o] {
			if k != nil {
				n += k.Draw(p)
			}
		}
	}
	if p.voice.Done() && n == 0 {
		return io.EOF
	}
	p.SetRGBA(0, 0, 0, 1)
	p.DrawPoint(p.bar.x+p.voice.Position()*p.bar.w, p.bar.y, 3)
	p.Fill()
	return e.ReplacePixels(p.rgba.Pix)
}

// Run opens a w×h window and plays song at sample rate r until it ends or
// the window is closed.
func (p *Piano) Run(ctx context.Context, w, h, r int, song []beep.ToneCommand, base int) (err error) {
	p.log = log.FromContext(ctx)
	p.rgba = image.NewRGBA(image.Rectangle{
		Max: image.Point{
			X: w,
			Y: h,
		},
	})
	p.Context = gg.NewContextForRGBA(p.rgba)
	var a *audio.Context
	a, err = audio.NewContext(r)
	if err != nil {
		return
	}
	p.voice = synth.NewVoice(song, base, r)
	p.voice.Notify = p.press
	hook := image.Point{X: w % 52 / 2, Y: h / 20 * 18}
	size := image.Point{X: w / 52, Y: h / 20}
	p.bar.x = float64(hook.X)
	p.bar.y = float64(h - hook.X)
	p.bar.w = float64(w - hook.X*2)
	for i := 0; i < 88; i++ {
		o := (i + 9) / 12
		n := (i + 9) % 12
		var white bool
		p.key[o][n], white = octave[n](hook, size)
		if white {
			hook.X += size.X
		}
	}
	p.flow = make(chan beep.ToneCommand, 1024)
	p.mouse = map[ebiten.MouseButton]button{}
	p.button = map[ebiten.Key]bool{}
	p.play, err = audio.NewPlayer(a, p.voice)
	if err != nil {
		return
	}
	_ = p.play.Play()
	defer func() {
		_ = p.play.Close()
	}()
	p.log.Info("preview", "tones", len(song), "seconds", p.voice.Seconds())
	ebiten.SetWindowIcon([]image.Image{Icon(32)})
	ebiten.SetWindowTitle("Beep")
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowSize(p.Width(), p.Height())
	err = ebiten.RunGame(p)
	if err != nil && err == io.EOF {
		err = nil
	}
	return
}

func (p *Piano) Layout(int, int) (int, int) {
	return p.Width(), p.Height()
}

// Icon draws a square window icon of one octave.
func Icon(n int) image.Image {
	c := gg.NewContext(n, n)
	c.SetRGB(1, 1, 1)
	c.Clear()
	c.SetRGB(0, 0, 0)
	c.SetLineWidth(1)
	w := float64(n) / 7
	for i := 0; i < 7; i++ {
		c.DrawRectangle(float64(i)*w, 0, w, float64(n))
		c.Stroke()
		if i != 2 && i != 6 {
			c.DrawRectangle(float64(i)*w+w*2/3, 0, w*2/3, float64(n)*3/5)
			c.Fill()
		}
	}
	return c.Image()
}
