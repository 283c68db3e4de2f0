package piano

import (
	"image"
	"sync"
)

type mode byte

const (
	Off mode = iota
	On
)

var octave = [12]func(image.Point, image.Point) (key, bool){
	newWhite,
	newBlack,
	newWhite,
	newBlack,
	newWhite,
	newWhite,
	newBlack,
	newWhite,
	newBlack,
	newWhite,
	newBlack,
	newWhite,
}

type key interface {
	On()
	Off()
	Draw(*Piano) int
}

type keyGeneric struct {
	sync.Mutex
	mode
	pinch     float64
	rectangle image.Rectangle
}

func (k *keyGeneric) On() {
	k.Lock()
	defer k.Unlock()
	if k.mode == On {
		return
	}
	k.mode = On
	k.pinch = 0
}

func (k *keyGeneric) Off() {
	k.Lock()
	defer k.Unlock()
	k.mode = Off
}

func (k *keyGeneric) Y() float64 {
	return float64(k.rectangle.Min.Y) + k.pinch*k.H()/3
}

func (k *keyGeneric) X() float64 {
	return float64(k.rectangle.Min.X)
}

func (k *keyGeneric) W() float64 {
	return float64(k.rectangle.Max.X)
}

func (k *keyGeneric) H() float64 {
	return float64(k.rectangle.Max.Y)
}

// Pinch animates the key press and returns whether the key still moves.
func (k *keyGeneric) Pinch() int {
	k.Lock()
	defer k.Unlock()
	switch k.mode {
	case On:
		if k.pinch < 1 {
			k.pinch += .25
		}
		return 1
	case Off:
		k.pinch /= 4
		if k.pinch < 0.005 {
			k.pinch = 0
			return 0
		}
	}
	return 1
}

func (k *keyGeneric) pressed() bool {
	k.Lock()
	defer k.Unlock()
	return k.mode == On
}

type keyWhite struct {
	keyGeneric
}

func (k *keyWhite) Draw(p *Piano) int {
	n := k.Pinch()
	if k.pressed() {
		p.SetRGBA(1, .55, 0, 1)
		p.DrawRectangle(k.X(), k.Y(), k.W(), k.H())
		p.Fill()
	}
	p.SetRGBA(0, 0, 0, 1)
	p.SetLineWidth(1)
	p.DrawRectangle(k.X(), k.Y(), k.W(), k.H())
	p.Stroke()
	return n
}

func newWhite(h, s image.Point) (key, bool) {
	return &keyWhite{
		keyGeneric{
			rectangle: image.Rectangle{
				Min: h,
				Max: s,
			},
		},
	}, true
}

type keyBlack struct {
	keyGeneric
}

func (k *keyBlack) Draw(p *Piano) int {
	n := k.Pinch()
	if k.pressed() {
		p.SetRGBA(1, .35, 0, 1)
	} else {
		p.SetRGBA(0, 0, 0, 1)
	}
	p.DrawRectangle(k.X(), k.Y(), k.W(), k.H())
	p.Fill()
	return n
}

func newBlack(h, s image.Point) (key, bool) {
	s = s.Div(5).Mul(4)
	s.X /= 4
	s.X *= 4
	s.Y /= 8
	s.Y *= 8
	return &keyBlack{
		keyGeneric{
			rectangle: image.Rectangle{
				Min: h.Sub(s.Div(2)),
				Max: s,
			},
		},
	}, false
}
