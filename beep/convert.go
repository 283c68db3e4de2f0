package beep

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

type Options struct {
	TicksPerBeat  uint16
	DefaultTempo  uint32
	MinNoteLength int64
	PitchBase     int
	Logger        *log.Logger
}

func DefaultOptions(ticksPerBeat uint16) Options {
	return Options{
		TicksPerBeat:  ticksPerBeat,
		DefaultTempo:  DefaultTempo,
		MinNoteLength: MinNoteLength,
		PitchBase:     PitchBase,
	}
}

type Stats struct {
	Events    int
	Commands  int
	Dropped   bool
	Overshoot int64
	Micros    int64
}

// Convert runs merge, clock and scheduler as one pass over tracks. On error
// no commands are returned.
func Convert(tracks [][]Event, o Options) ([]ToneCommand, Stats, error) {
	var st Stats
	clock, err := NewClock(o.TicksPerBeat, o.DefaultTempo)
	if err != nil {
		return nil, st, err
	}
	if o.MinNoteLength < 0 {
		return nil, st, errors.Errorf("negative minimum note length %d", o.MinNoteLength)
	}
	l := o.Logger
	if l == nil {
		l = log.Default()
	}
	s := NewScheduler(o.MinNoteLength, o.PitchBase)
	m := NewMerger(tracks)
	var out []ToneCommand
	emit := func(c ToneCommand) {
		l.Debug("tone", "index", c.Index, "us", c.Micros, "pitch", c.Pitch, "overshoot", s.Overshoot())
		st.Micros += c.Micros
		out = append(out, c)
	}
	for {
		e, ok := m.Next()
		if !ok {
			break
		}
		st.Events++
		t, err := clock.Resolve(e)
		if err != nil {
			return nil, st, err
		}
		if c, ok := s.Feed(e, int64(t)); ok {
			emit(c)
		}
	}
	if c, ok := s.Finish(); ok {
		emit(c)
	} else if p, ok := s.Pending(); ok {
		st.Dropped = true
		l.Debug("dropped trailing note without note off", "pitch", p.Pitch, "start", p.Start)
	}
	st.Commands = len(out)
	st.Overshoot = s.Overshoot()
	return out, st, nil
}
