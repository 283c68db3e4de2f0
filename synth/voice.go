// Package synth turns tone commands into PCM audio.
package synth

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/pshvedko/midibeep/beep"
)

// Frequency of a tone command pitch in Hz, equal temperament from A4.
func Frequency(pitch, base int) float64 {
	return 440 * math.Exp2(float64(pitch+base-69)/12)
}

// Voice renders tone commands as a 16-bit stereo little endian square
// wave, one command after the other. Notify, if set, is called when a tone
// starts and stops sounding.
type Voice struct {
	sync.Mutex
	Notify func(c beep.ToneCommand, on bool)

	song   []beep.ToneCommand
	base   int
	rate   uint64
	volume float64
	at     int
	left   uint64
	phase  float64
	step   float64
	time   uint64
	total  uint64
}

func NewVoice(song []beep.ToneCommand, base int, rate int) *Voice {
	v := &Voice{song: song, base: base, rate: uint64(rate), volume: .2, at: -1}
	for _, c := range song {
		v.total += v.frames(c)
	}
	return v
}

func (v *Voice) frames(c beep.ToneCommand) uint64 {
	if c.Micros <= 0 {
		return 0
	}
	return uint64(c.Micros) * v.rate / 1000000
}

func (v *Voice) Base() int {
	return v.base
}

// Seconds is the length of the whole song.
func (v *Voice) Seconds() float64 {
	return float64(v.total) / float64(v.rate)
}

func (v *Voice) Done() bool {
	v.Lock()
	defer v.Unlock()
	return v.at >= len(v.song)
}

// Position returns the played fraction of the song.
func (v *Voice) Position() float64 {
	v.Lock()
	defer v.Unlock()
	if v.total == 0 {
		return 1
	}
	return float64(v.time) / float64(v.total)
}

func (v *Voice) advance() {
	if v.at >= 0 && v.Notify != nil {
		v.Notify(v.song[v.at], false)
	}
	for v.left == 0 {
		v.at++
		if v.at >= len(v.song) {
			return
		}
		c := v.song[v.at]
		v.left = v.frames(c)
		v.step = Frequency(c.Pitch, v.base) / float64(v.rate)
		if v.left > 0 && v.Notify != nil {
			v.Notify(c, true)
		}
	}
}

func (v *Voice) sample() int16 {
	if v.at >= len(v.song) {
		return 0
	}
	if v.left == 0 {
		v.advance()
		if v.at >= len(v.song) {
			return 0
		}
	}
	v.left--
	v.time++
	v.phase += v.step
	v.phase -= math.Floor(v.phase)
	z := v.volume * math.MaxInt16
	if v.phase >= .5 {
		z = -z
	}
	return int16(z)
}

// Read fills b with whole frames; past the end of the song it yields silence.
func (v *Voice) Read(b []byte) (n int, err error) {
	v.Lock()
	defer v.Unlock()
	for ; n+4 <= len(b); n += 4 {
		z := uint16(v.sample())
		binary.LittleEndian.PutUint16(b[n:n+2], z)
		binary.LittleEndian.PutUint16(b[n+2:n+4], z)
	}
	return
}

func (v *Voice) Close() error {
	return nil
}
