package roll

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pshvedko/midibeep/beep"
)

func white(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xFFFF && g == 0xFFFF && b == 0xFFFF
}

func TestDrawEmpty(t *testing.T) {
	m := Draw(nil, 40, 20)
	assert.Equal(t, 40, m.Bounds().Dx())
	assert.Equal(t, 20, m.Bounds().Dy())
	assert.True(t, white(m.At(20, 10)))
}

func TestDraw(t *testing.T) {
	m := Draw([]beep.ToneCommand{
		{Index: 0, Micros: 500000, Pitch: 0},
		{Index: 1, Micros: 500000, Pitch: 1},
	}, 108, 108)
	// low tone fills the bottom left quarter, high tone the top right
	assert.False(t, white(m.At(30, 80)))
	assert.True(t, white(m.At(30, 30)))
	assert.False(t, white(m.At(80, 30)))
	assert.True(t, white(m.At(80, 80)))
}

func TestSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), "roll.png")
	require.NoError(t, Save(p, []beep.ToneCommand{{Micros: 20000, Pitch: 12}}, 64, 32))
	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, m.Bounds().Dx())

	assert.Error(t, Save(p, nil, 8, 100))
}
