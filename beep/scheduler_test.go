package beep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerClampAndRepay(t *testing.T) {
	s := NewScheduler(MinNoteLength, PitchBase)

	_, ok := s.Feed(on(0, 0, 60), 0)
	assert.False(t, ok)

	c, ok := s.Feed(on(0, 0, 62), 5000)
	require.True(t, ok)
	assert.Equal(t, ToneCommand{Index: 0, Micros: 20000, Pitch: 12}, c)
	assert.Equal(t, int64(15000), s.Overshoot())

	c, ok = s.Feed(on(0, 0, 64), 35000)
	require.True(t, ok)
	assert.Equal(t, ToneCommand{Index: 1, Micros: 20000, Pitch: 14}, c)
	assert.Equal(t, int64(5000), s.Overshoot())

	c, ok = s.Feed(on(0, 0, 65), 135000)
	require.True(t, ok)
	assert.Equal(t, int64(95000), c.Micros)
	assert.Equal(t, int64(0), s.Overshoot())
}

func TestSchedulerNegativeTarget(t *testing.T) {
	s := NewScheduler(MinNoteLength, PitchBase)
	s.Feed(on(0, 0, 60), 0)
	s.Feed(on(0, 0, 60), 0)
	assert.Equal(t, int64(20000), s.Overshoot())
	c, _ := s.Feed(on(0, 0, 60), 1000)
	assert.Equal(t, int64(20000), c.Micros)
	assert.Equal(t, int64(39000), s.Overshoot())
}

func TestSchedulerNoteOffIgnoresPitch(t *testing.T) {
	s := NewScheduler(MinNoteLength, PitchBase)
	s.Feed(on(0, 0, 60), 0)
	_, ok := s.Feed(off(0, 0, 99), 300000)
	assert.False(t, ok)
	_, ok = s.Feed(off(0, 0, 12), 400000)
	assert.False(t, ok)

	c, ok := s.Finish()
	require.True(t, ok)
	assert.Equal(t, int64(400000), c.Micros)
	_, ok = s.Pending()
	assert.False(t, ok)
}

func TestSchedulerDropsTrailingNote(t *testing.T) {
	s := NewScheduler(MinNoteLength, PitchBase)
	s.Feed(on(0, 0, 60), 0)
	s.Feed(on(0, 0, 62), 100000)
	_, ok := s.Finish()
	assert.False(t, ok)
	p, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, Pending{Pitch: 62, Start: 100000}, p)
}

func TestSchedulerFinishEmpty(t *testing.T) {
	s := NewScheduler(MinNoteLength, PitchBase)
	s.Feed(off(0, 0, 60), 1000)
	_, ok := s.Finish()
	assert.False(t, ok)
}
