package beep

import "fmt"

type Kind byte

const (
	Other Kind = iota
	TempoChange
	NoteOn
	NoteOff
)

var KindName = map[Kind]string{
	Other:       "Other",
	TempoChange: "Tempo",
	NoteOn:      "NoteOn",
	NoteOff:     "NoteOff",
}

// Event is one timestamped occurrence in a track. Pitch is meaningful only
// for NoteOn and NoteOff, Tempo (microseconds per beat) only for TempoChange.
type Event struct {
	Track int
	Tick  uint64
	Kind  Kind
	Pitch int
	Tempo uint32
}

func (e Event) String() string {
	s := fmt.Sprintf("%d #%d %s", e.Tick, e.Track, KindName[e.Kind])
	switch e.Kind {
	case NoteOn, NoteOff:
		s += fmt.Sprintf(" %d", e.Pitch)
	case TempoChange:
		s += fmt.Sprintf(" %dus", e.Tempo)
	}
	return "{" + s + "}"
}

// Below any real pitch, so non-note events sort first within a tick.
const rankSentinel = -1

// Key is the merge ordering key of an event.
type Key struct {
	Tick uint64
	Rank int
}

func (e Event) Key() Key {
	switch e.Kind {
	case NoteOn, NoteOff:
		return Key{Tick: e.Tick, Rank: e.Pitch}
	}
	return Key{Tick: e.Tick, Rank: rankSentinel}
}

// Less orders keys by tick, then by rank.
func Less(a, b Key) bool {
	if a.Tick != b.Tick {
		return a.Tick < b.Tick
	}
	return a.Rank < b.Rank
}
