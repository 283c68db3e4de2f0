package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pshvedko/midibeep/beep"
)

type Event struct {
	Time  uint64
	Delta uint64
	Type  byte
	Chan  byte
	Note  byte
	Value byte
	Data  []byte
}

const (
	NoteOff byte = 0x8 | iota
	NoteOn
	Polyphonic
	Control
	Program
	Channel
	PitchBend
	Meta
)

const (
	Sequence = 0x00 + iota
	Text
	Copyright
	Name
	Instrument
	Lyric
	Marker
	CuePoint
	ProgramName
	DeviceName
	ChannelPrefix = 0x20
	PortNumber    = 0x21
	EndOfTrack    = 0x2F
	Tempo         = 0x51
	SMPTEOffset   = 0x54
	TimeSignature = 0x58
	KeySignature  = 0x59
	Sequencer     = 0x7F
)

var (
	TypeName = map[byte]string{
		0x8: "NoteOff",
		0x9: "NoteOn",
		0xA: "Polyphonic",
		0xB: "Control",
		0xC: "Program",
		0xD: "Channel",
		0xE: "PitchBend",
		0xF: "#",
	}
	EventName = map[byte]string{
		0x00: "Sequence",
		0x01: "Text",
		0x02: "Copyright",
		0x03: "Name",
		0x04: "Instrument",
		0x05: "Lyric",
		0x06: "Marker",
		0x07: "CuePoint",
		0x08: "ProgramName",
		0x09: "DeviceName",
		0x20: "ChannelPrefix",
		0x21: "PortNumber",
		0x2F: "EndOfTrack",
		0x51: "Tempo",
		0x54: "SMPTEOffset",
		0x58: "TimeSignature",
		0x59: "KeySignature",
		0x7F: "Sequencer",
	}
	// MetaLength holds the payload size of fixed-length meta events.
	MetaLength = map[byte]int{
		Sequence:      2,
		ChannelPrefix: 1,
		PortNumber:    1,
		EndOfTrack:    0,
		Tempo:         3,
		SMPTEOffset:   5,
		TimeSignature: 4,
		KeySignature:  2,
	}
	NoteName = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
)

func (e *Event) String() string {
	s := fmt.Sprintf("%d +%d 0x%X %02d %s", e.Time, e.Delta, e.Type, e.Chan, e.TypeName())
	switch e.Type {
	case NoteOn, NoteOff:
		s += fmt.Sprintf(" %s", e.NoteName())
		if e.Value > 0 {
			s += fmt.Sprintf(":%v", e.Value)
		}
	case Control, Program:
		s += fmt.Sprintf(" %v %v", e.Note, e.Value)
	case Meta:
		s += fmt.Sprintf(" %s", e.EventName())
		switch e.Note {
		case Text, Copyright, Name, Instrument, Lyric, Marker, CuePoint, ProgramName, DeviceName:
			s += fmt.Sprintf(" <%s>", e.Text())
		case Tempo:
			s += fmt.Sprintf(" %dus %.2fbpm", e.Tempo(), e.BPM())
		case EndOfTrack:
		default:
			s += fmt.Sprintf(" %v", e.Data)
		}
	}
	return "{" + s + "}"
}

// Fix turns a zero velocity NoteOn into the NoteOff it stands for.
func (e *Event) Fix() {
	if e.Type == NoteOn && e.Value == 0 {
		e.Type = NoteOff
	}
}

func (e *Event) TypeName() string {
	if v, ok := TypeName[e.Type]; ok {
		return v
	}
	return fmt.Sprintf("Type0x%x", e.Type)
}

func (e *Event) NoteName() string {
	key := NoteName[e.Key()]
	return key + fmt.Sprint(int(e.Octave()))
}

func (e *Event) Octave() int8 {
	return int8(e.Note/12) - 1
}

func (e *Event) Key() byte {
	return e.Note % 12
}

func (e *Event) EventName() string {
	if v, ok := EventName[e.Note]; ok {
		return v
	}
	return fmt.Sprintf("Event0x%x", e.Note)
}

func (e *Event) Text() []byte {
	return bytes.TrimSpace(e.Data)
}

func (e *Event) IsTempo() bool {
	return e.Type == Meta && e.Note == Tempo && len(e.Data) == 3
}

// Tempo returns microseconds per quarter note.
func (e *Event) Tempo() uint32 {
	return binary.BigEndian.Uint32(append([]byte{0}, e.Data...))
}

func (e *Event) BPM() float64 {
	return 60000000 / float64(e.Tempo())
}

// Beep converts the event into merge input of track i.
func (e *Event) Beep(i int) beep.Event {
	b := beep.Event{Track: i, Tick: e.Time}
	switch {
	case e.Type == NoteOn:
		b.Kind, b.Pitch = beep.NoteOn, int(e.Note)
	case e.Type == NoteOff:
		b.Kind, b.Pitch = beep.NoteOff, int(e.Note)
	case e.IsTempo():
		b.Kind, b.Tempo = beep.TempoChange, e.Tempo()
	}
	return b
}
