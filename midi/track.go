package midi

import "github.com/pshvedko/midibeep/beep"

type Track struct {
	Size      uint32
	Time      uint64
	Events    []*Event
	NumEvents uint
	status    byte
}

func (t *Track) add(e *Event) {
	t.Time += e.Delta
	e.Time = t.Time
	t.Events = append(t.Events, e)
	t.NumEvents++
}

// Stream converts the track into merge input tagged with index i.
func (t *Track) Stream(i int) []beep.Event {
	s := make([]beep.Event, 0, len(t.Events))
	for _, e := range t.Events {
		s = append(s, e.Beep(i))
	}
	return s
}

type Summary struct {
	Events int
	Notes  int
	Tempos int
	Low    byte
	High   byte
	End    uint64
}

func (t *Track) Summary() Summary {
	s := Summary{Events: len(t.Events), End: t.Time}
	for _, e := range t.Events {
		switch {
		case e.Type == NoteOn:
			if s.Notes == 0 || e.Note < s.Low {
				s.Low = e.Note
			}
			if s.Notes == 0 || e.Note > s.High {
				s.High = e.Note
			}
			s.Notes++
		case e.IsTempo():
			s.Tempos++
		}
	}
	return s
}
