package beep

import "github.com/pkg/errors"

const DefaultTempo = 500000

// Anchor is the most recent tempo reference point.
type Anchor struct {
	Tick   uint64
	Micros uint64
	Tempo  uint32
}

// Clock converts ticks into absolute microseconds under a step tempo map.
type Clock struct {
	ticksPerBeat uint64
	anchor       Anchor
}

func NewClock(ticksPerBeat uint16, tempo uint32) (*Clock, error) {
	if ticksPerBeat == 0 {
		return nil, ErrTicksPerBeat
	}
	if tempo == 0 {
		return nil, errors.Wrap(ErrTempo, "default tempo")
	}
	return &Clock{
		ticksPerBeat: uint64(ticksPerBeat),
		anchor:       Anchor{Tempo: tempo},
	}, nil
}

func (c *Clock) Anchor() Anchor {
	return c.anchor
}

// Resolve returns the absolute time of e and, for a TempoChange, moves the
// anchor to it. Events must arrive in non-decreasing tick order.
func (c *Clock) Resolve(e Event) (uint64, error) {
	if e.Tick < c.anchor.Tick {
		return 0, errors.Errorf("event %v precedes tempo anchor at tick %d", e, c.anchor.Tick)
	}
	t := c.anchor.Micros + (e.Tick-c.anchor.Tick)*uint64(c.anchor.Tempo)/c.ticksPerBeat
	if e.Kind == TempoChange {
		if e.Tempo == 0 {
			return 0, errors.Wrapf(ErrTempo, "tempo change at tick %d", e.Tick)
		}
		c.anchor = Anchor{Tick: e.Tick, Micros: t, Tempo: e.Tempo}
	}
	return t, nil
}
