package beep

const (
	MinNoteLength = 20000
	PitchBase     = 48
)

// ToneCommand is one monophonic output tone.
type ToneCommand struct {
	Index  int
	Micros int64
	Pitch  int
}

// Pending is the note currently sounding, waiting for its end boundary.
type Pending struct {
	Pitch int
	Start int64
}

// Scheduler collapses a time-resolved note stream into tone commands.
// A note lasts until the next NoteOn; the last one lasts until the last
// NoteOff seen anywhere. Durations shorter than MinNoteLength are stretched
// and the excess, kept in Overshoot, is taken off the following notes.
type Scheduler struct {
	MinNoteLength int64
	PitchBase     int

	pending   *Pending
	overshoot int64
	lastOff   int64
	sawOff    bool
	next      int
}

func NewScheduler(minNoteLength int64, pitchBase int) *Scheduler {
	return &Scheduler{MinNoteLength: minNoteLength, PitchBase: pitchBase}
}

func (s *Scheduler) Overshoot() int64 {
	return s.overshoot
}

func (s *Scheduler) Pending() (Pending, bool) {
	if s.pending == nil {
		return Pending{}, false
	}
	return *s.pending, true
}

// Feed consumes one event at absolute time t and returns the command it
// closed, if any.
func (s *Scheduler) Feed(e Event, t int64) (c ToneCommand, ok bool) {
	switch e.Kind {
	case NoteOn:
		if s.pending != nil {
			c, ok = s.close(t), true
		}
		s.pending = &Pending{Pitch: e.Pitch, Start: t}
	case NoteOff:
		s.lastOff = t
		s.sawOff = true
	}
	return
}

// Finish closes the pending note at the last NoteOff. Without any NoteOff
// the pending note is dropped.
func (s *Scheduler) Finish() (c ToneCommand, ok bool) {
	if s.pending == nil || !s.sawOff {
		return
	}
	return s.close(s.lastOff), true
}

func (s *Scheduler) close(end int64) ToneCommand {
	p := s.pending
	s.pending = nil
	target := end - p.Start - s.overshoot
	actual := target
	if actual < s.MinNoteLength {
		actual = s.MinNoteLength
	}
	s.overshoot = actual - target
	c := ToneCommand{Index: s.next, Micros: actual, Pitch: p.Pitch - s.PitchBase}
	s.next++
	return c
}
