// Package basic renders tone commands as numbered BEEP program lines.
package basic

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pshvedko/midibeep/beep"
)

const (
	LineStart = 5
	LineStep  = 5
)

type Emitter struct {
	Start int
	Step  int
}

func New() Emitter {
	return Emitter{Start: LineStart, Step: LineStep}
}

// Seconds renders microseconds as the shortest decimal number of seconds.
func Seconds(us int64) string {
	return strconv.FormatFloat(float64(us)/1e6, 'f', -1, 64)
}

func (m Emitter) Line(c beep.ToneCommand) string {
	return fmt.Sprintf("%d BEEP %s,%d", m.Start+c.Index*m.Step, Seconds(c.Micros), c.Pitch)
}

func (m Emitter) Render(w io.Writer, cmds []beep.ToneCommand) (n int64, err error) {
	b := bufio.NewWriter(w)
	for _, c := range cmds {
		var k int
		k, err = fmt.Fprintln(b, m.Line(c))
		n += int64(k)
		if err != nil {
			return n, errors.Wrapf(err, "line %d", c.Index)
		}
	}
	return n, errors.Wrap(b.Flush(), "flush")
}
