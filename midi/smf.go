package midi

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadSMF decodes r with gomidi into the same Context the native decoder
// fills. Only note, tempo and end of track events keep their payload.
func ReadSMF(r io.Reader) (*Context, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "gomidi")
	}
	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Errorf("time format %v not supported", s.TimeFormat)
	}
	c := &Context{
		Format:              s.Format(),
		NumTracks:           uint16(len(s.Tracks)),
		TicksPerQuarterNote: uint16(tf.Ticks4th()),
	}
	for _, tr := range s.Tracks {
		t := &Track{}
		for _, ev := range tr {
			t.add(convert(ev))
		}
		c.Tracks = append(c.Tracks, t)
		if c.Time < t.Time {
			c.Time = t.Time
		}
	}
	return c, nil
}

func convert(ev smf.Event) *Event {
	e := &Event{Delta: uint64(ev.Delta)}
	m := ev.Message
	var ch, key, vel uint8
	var bpm float64
	switch {
	case m.GetNoteStart(&ch, &key, &vel):
		e.Type, e.Chan, e.Note, e.Value = NoteOn, ch, key, vel
	case m.GetNoteEnd(&ch, &key):
		e.Type, e.Chan, e.Note = NoteOff, ch, key
	case m.GetMetaTempo(&bpm):
		e.Type, e.Chan, e.Note = Meta, 0xF, Tempo
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(math.Round(60000000/bpm)))
		e.Data = b[1:]
	case m.Is(smf.MetaEndOfTrackMsg):
		e.Type, e.Chan, e.Note = Meta, 0xF, EndOfTrack
	case len(m) > 1 && m[0] == 0xFF:
		e.Type, e.Chan, e.Note = Meta, 0xF, m[1]
	case len(m) > 0:
		e.Type, e.Chan = m[0]>>4, m[0]&0x0F
	}
	return e
}
