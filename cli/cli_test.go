package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/pshvedko/midibeep/beep"
)

func writeSMF(t *testing.T, tracks ...smf.Track) []byte {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	for _, tr := range tracks {
		require.NoError(t, s.Add(tr))
	}
	var b bytes.Buffer
	_, err := s.WriteTo(&b)
	require.NoError(t, err)
	return b.Bytes()
}

func save(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

// scenario: two quarter notes at the default tempo.
func scenario(t *testing.T) []byte {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOn(0, 64, 100))
	tr.Add(480, gomidi.NoteOff(0, 64))
	tr.Close(0)
	return writeSMF(t, tr)
}

// fugue: a conductor track with a tempo change and two voices colliding.
func fugue(t *testing.T) []byte {
	var conductor, upper, lower smf.Track
	conductor.Add(0, smf.MetaTempo(120))
	conductor.Add(960, smf.MetaTempo(60))
	conductor.Close(0)
	upper.Add(0, gomidi.NoteOn(0, 72, 100))
	upper.Add(10, gomidi.NoteOn(0, 74, 100))
	upper.Add(470, gomidi.NoteOff(0, 74))
	upper.Add(480, gomidi.NoteOn(0, 76, 100))
	upper.Add(480, gomidi.NoteOff(0, 76))
	upper.Close(0)
	lower.Add(960, gomidi.NoteOn(1, 48, 100))
	lower.Add(480, gomidi.NoteOff(1, 48))
	lower.Close(0)
	return writeSMF(t, conductor, upper, lower)
}

type run struct {
	out, err bytes.Buffer
}

func execute(t *testing.T, play Player, args ...string) (*run, error) {
	t.Helper()
	r := &run{}
	cmd := NewRootCommand(play)
	cmd.SetOut(&r.out)
	cmd.SetErr(&r.err)
	cmd.SetArgs(args)
	return r, cmd.Execute()
}

func golden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	for _, name := range []string{"convert", "inspect", "roll", "play"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(nil)
	f := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, f)
	assert.Equal(t, "v", f.Shorthand)
	f = cmd.PersistentFlags().Lookup("decoder")
	require.NotNil(t, f)
	assert.Equal(t, "native", f.DefValue)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("track"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestConvertScenario(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	for _, decoder := range []string{"native", "gomidi"} {
		t.Run(decoder, func(t *testing.T) {
			r, err := execute(t, nil, "convert", "--decoder", decoder, p)
			require.NoError(t, err)
			assert.Equal(t, "5 BEEP 0.5,12\n10 BEEP 0.5,16\n", r.out.String())
			assert.Contains(t, r.err.String(), "converted")
		})
	}
}

func TestConvertFugue(t *testing.T) {
	p := save(t, "fugue.mid", fugue(t))
	r, err := execute(t, nil, "convert", p)
	require.NoError(t, err)
	golden(t, "fugue", r.out.Bytes())

	r, err = execute(t, nil, "convert", "--track", "0", "--track", "2", "--line-start", "100", "--line-step", "10", p)
	require.NoError(t, err)
	assert.Equal(t, "100 BEEP 1,0\n", r.out.String())
}

func TestConvertOutputFile(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	o := filepath.Join(t.TempDir(), "song.bas")
	r, err := execute(t, nil, "convert", "-o", o, "--pitch-base", "60", p)
	require.NoError(t, err)
	assert.Empty(t, r.out.String())
	b, err := os.ReadFile(o)
	require.NoError(t, err)
	assert.Equal(t, "5 BEEP 0.5,0\n10 BEEP 0.5,4\n", string(b))
}

func TestConvertConfigFile(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	c := save(t, "midibeep.yaml", []byte("line_start: 10\nline_step: 10\npitch_base: 60\n"))
	r, err := execute(t, nil, "convert", "--config", c, "--pitch-base", "48", p)
	require.NoError(t, err)
	assert.Equal(t, "10 BEEP 0.5,12\n20 BEEP 0.5,16\n", r.out.String())
}

func TestConvertFlagsOverConfig(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	c := save(t, "midibeep.yaml", []byte("min_note_length: 5000000\npitch_base: 60\ndefault_tempo: 250000\nline_start: 1\nline_step: 1\n"))

	r, err := execute(t, nil, "convert", "--config", c, p)
	require.NoError(t, err)
	assert.Equal(t, "1 BEEP 5,0\n2 BEEP 5,4\n", r.out.String())

	r, err = execute(t, nil, "convert", "--config", c,
		"--min-note-length", "1000", "--pitch-base", "48", "--tempo", "1000000",
		"--line-start", "7", "--line-step", "3", p)
	require.NoError(t, err)
	assert.Equal(t, "7 BEEP 1,12\n10 BEEP 1,16\n", r.out.String())
}

func TestConvertVerbose(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	r, err := execute(t, nil, "convert", "-v", p)
	require.NoError(t, err)
	assert.Contains(t, r.err.String(), "tone")
	assert.Contains(t, r.err.String(), "event")
}

func TestConvertDropsTrailingNote(t *testing.T) {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOn(0, 62, 100))
	tr.Close(480)
	p := save(t, "open.mid", writeSMF(t, tr))
	r, err := execute(t, nil, "convert", p)
	require.NoError(t, err)
	assert.Equal(t, "5 BEEP 0.5,12\n", r.out.String())
	assert.Contains(t, r.err.String(), "dropped")
}

func TestConvertErrors(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	bad := save(t, "bad.mid", []byte("MThd nope"))
	o := filepath.Join(t.TempDir(), "never.bas")
	for name, args := range map[string][]string{
		"missing": {"convert", filepath.Join(t.TempDir(), "none.mid")},
		"decode":  {"convert", "-o", o, bad},
		"gomidi":  {"convert", "--decoder", "gomidi", bad},
		"decoder": {"convert", "--decoder", "timidity", p},
		"tempo":   {"convert", "--tempo", "0", p},
		"track":   {"convert", "--track", "3", p},
		"scheme":  {"convert", "ftp://example.com/a.mid"},
		"args":    {"convert"},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := execute(t, nil, args...)
			assert.Error(t, err)
			assert.Empty(t, r.out.String())
		})
	}
	_, err := os.Stat(o)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertURL(t *testing.T) {
	data := scenario(t)
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/song.mid" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer s.Close()

	r, err := execute(t, nil, "convert", s.URL+"/song.mid")
	require.NoError(t, err)
	assert.Equal(t, "5 BEEP 0.5,12\n10 BEEP 0.5,16\n", r.out.String())

	_, err = execute(t, nil, "convert", s.URL+"/missing.mid")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	p := save(t, "fugue.mid", fugue(t))
	r, err := execute(t, nil, "inspect", p)
	require.NoError(t, err)
	out := r.out.String()
	assert.Contains(t, out, "3 tracks, 480 ticks per beat")
	assert.Contains(t, out, "72-76")
	assert.Contains(t, out, "48-48")
}

func TestRoll(t *testing.T) {
	p := save(t, "fugue.mid", fugue(t))
	o := filepath.Join(t.TempDir(), "roll.png")
	_, err := execute(t, nil, "roll", "-o", o, "--width", "200", "--height", "100", p)
	require.NoError(t, err)
	st, err := os.Stat(o)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}

func TestPlay(t *testing.T) {
	p := save(t, "scenario.mid", scenario(t))
	var got []beep.ToneCommand
	var base int
	_, err := execute(t, func(ctx context.Context, song []beep.ToneCommand, b int) error {
		got, base = song, b
		return nil
	}, "play", "--min-note-length", "1000", p)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 48, base)

	_, err = execute(t, nil, "play", p)
	assert.Error(t, err)
}
