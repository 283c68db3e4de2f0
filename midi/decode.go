package midi

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/pshvedko/midibeep/beep"
)

type Context struct {
	Format              uint16
	NumTracks           uint16
	TicksPerQuarterNote uint16
	Tracks              []*Track
	Time                uint64
}

type Reader struct {
	io.Reader
}

func (r Reader) ReadByte() (byte, error) {
	var b byte
	return b, binary.Read(r, binary.BigEndian, &b)
}

func (r Reader) ReadVarUint64() (u uint64, err error) {
	var b byte
	for i := 0; ; i++ {
		b, err = r.ReadByte()
		if err != nil {
			if i > 0 {
				err = noEOF(err)
			}
			return
		}
		u |= uint64(b & 0x7F)
		if b < 0x80 {
			return
		}
		if i == 3 {
			return u, errors.New("variable length quantity longer than 4 bytes")
		}
		u <<= 7
	}
}

func (c *Context) Read(r io.ReadCloser) error {
	defer func() {
		_ = r.Close()
	}()
	return c.read(Reader{r})
}

func (c *Context) read(r Reader) (err error) {
	var header [4]byte
	err = binary.Read(r, binary.BigEndian, &header)
	if err != nil {
		return
	} else if header != [4]byte{'M', 'T', 'h', 'd'} {
		return errors.Errorf("header not supported %v", header)
	}
	var headerSize uint32
	err = binary.Read(r, binary.BigEndian, &headerSize)
	if err != nil {
		return
	} else if headerSize != 6 {
		return errors.Errorf("expected header size to be 6, was %d", headerSize)
	}
	err = binary.Read(r, binary.BigEndian, &c.Format)
	if err != nil {
		return
	}
	err = binary.Read(r, binary.BigEndian, &c.NumTracks)
	if err != nil {
		return
	}
	err = binary.Read(r, binary.BigEndian, &c.TicksPerQuarterNote)
	if err != nil {
		return
	}
	if c.TicksPerQuarterNote&0x8000 != 0 {
		return errors.Errorf("SMPTE time division %#04x not supported", c.TicksPerQuarterNote)
	}
	for {
		err = c.readTrack(r)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "track %d", len(c.Tracks))
		}
	}
}

func (c *Context) readTrack(r Reader) (err error) {
	var header [4]byte
	err = binary.Read(r, binary.BigEndian, &header)
	if err != nil {
		return
	}
	var size uint32
	err = binary.Read(r, binary.BigEndian, &size)
	if err != nil {
		return noEOF(err)
	}
	if header != [4]byte{'M', 'T', 'r', 'k'} {
		_, err = io.CopyN(io.Discard, r, int64(size))
		return noEOF(err)
	}
	t := &Track{Size: size}
	c.Tracks = append(c.Tracks, t)
	n := &io.LimitedReader{R: r, N: int64(size)}
	for {
		var end bool
		end, err = c.readEvent(n, t)
		if err == io.EOF {
			if n.N > 0 {
				return io.ErrUnexpectedEOF
			}
			break
		} else if err != nil {
			return
		} else if end {
			break
		}
	}
	if c.Time < t.Time {
		c.Time = t.Time
	}
	_, err = io.Copy(io.Discard, n)
	return
}

// readLength reads a payload length and rejects one longer than what is
// left of the track.
func readLength(l *io.LimitedReader) (uint64, error) {
	u, err := Reader{l}.ReadVarUint64()
	if err != nil {
		return 0, err
	}
	if u > uint64(l.N) {
		return 0, errors.Errorf("length %d exceeds %d bytes left in track", u, l.N)
	}
	return u, nil
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// readEvent reads one event into t. It returns io.EOF only when the track
// data ends on an event boundary.
func (c *Context) readEvent(l *io.LimitedReader, t *Track) (end bool, err error) {
	r := Reader{l}
	var at uint64
	at, err = r.ReadVarUint64()
	if err != nil {
		return
	}
	defer func() {
		err = noEOF(err)
	}()
	var status, note byte
	status, err = r.ReadByte()
	if err != nil {
		return
	}
	if status == 0xF0 || status == 0xF7 {
		var n uint64
		n, err = readLength(l)
		if err != nil {
			return
		}
		_, err = io.CopyN(io.Discard, r, int64(n))
		t.Time += at
		return
	} else if status&0x80 == 0 {
		if t.status == 0 {
			return false, errors.New("running status without previous status")
		}
		note, status = status, t.status
	} else {
		note, err = r.ReadByte()
		if err != nil {
			return
		}
	}
	e := &Event{Delta: at, Type: status & 0xF0 >> 4, Chan: status & 0x0F, Note: note}
	switch e.Type {
	case NoteOn, NoteOff, Polyphonic, Control, PitchBend:
		e.Value, err = r.ReadByte()
		if err != nil {
			return
		}
		e.Fix()
		fallthrough
	case Program, Channel:
		t.status = status
	case Meta:
		err = c.readMeta(l, e)
		if err != nil {
			return
		}
		end = e.Note == EndOfTrack
	default:
		return false, errors.Errorf("unknown message type %X", e.Type)
	}
	t.add(e)
	return
}

func (c *Context) readMeta(l *io.LimitedReader, e *Event) (err error) {
	if e.Chan != 0xF {
		return errors.Errorf("unknown system event type %d", e.Chan)
	}
	var n uint64
	n, err = readLength(l)
	if err != nil {
		return
	}
	var b bytes.Buffer
	_, err = io.CopyN(&b, l, int64(n))
	e.Data = b.Bytes()
	if err != nil {
		return
	}
	if want, ok := MetaLength[e.Note]; ok && int(n) != want {
		return errors.Errorf("%s length not %d as expected but %d", e.EventName(), want, n)
	}
	return
}

// Streams returns the merge input of the selected tracks, all tracks when
// none is selected.
func (c *Context) Streams(only ...int) ([][]beep.Event, error) {
	if len(only) == 0 {
		s := make([][]beep.Event, len(c.Tracks))
		for i, t := range c.Tracks {
			s[i] = t.Stream(i)
		}
		return s, nil
	}
	s := make([][]beep.Event, 0, len(only))
	for _, i := range only {
		if i < 0 || i >= len(c.Tracks) {
			return nil, errors.Errorf("track %d out of range, file has %d", i, len(c.Tracks))
		}
		s = append(s, c.Tracks[i].Stream(i))
	}
	return s, nil
}
