package cli

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/pshvedko/midibeep/beep"
	"github.com/pshvedko/midibeep/config"
	"github.com/pshvedko/midibeep/midi"
)

// Open returns the contents of a file path, a file:// URL or an http(s) URL.
func Open(ctx context.Context, file string) (io.ReadCloser, error) {
	u, err := url.Parse(file)
	if err != nil {
		return nil, errors.Wrap(err, "source")
	}
	switch u.Scheme {
	case "":
		return os.Open(file)
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		var r *http.Request
		r, err = http.NewRequestWithContext(ctx, http.MethodGet, file, nil)
		if err != nil {
			return nil, errors.Wrap(err, "source")
		}
		var w *http.Response
		w, err = http.DefaultClient.Do(r)
		if err != nil {
			return nil, errors.Wrap(err, "fetch")
		}
		if w.StatusCode != http.StatusOK {
			_ = w.Body.Close()
			return nil, errors.Errorf("fetch %s: %s", file, w.Status)
		}
		return w.Body, nil
	}
	return nil, errors.Errorf("unsupported scheme %q", u.Scheme)
}

// Load decodes file with the configured decoder.
func Load(ctx context.Context, file string, c *config.Config) (*midi.Context, error) {
	f, err := Open(ctx, file)
	if err != nil {
		return nil, err
	}
	var m *midi.Context
	switch c.Decoder {
	case config.DecoderGomidi:
		defer func() {
			_ = f.Close()
		}()
		m, err = midi.ReadSMF(f)
	default:
		m = &midi.Context{}
		err = m.Read(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", file)
	}
	l := log.FromContext(ctx)
	l.Debug("decoded", "file", file, "format", m.Format, "tracks", len(m.Tracks), "division", m.TicksPerQuarterNote)
	for i, t := range m.Tracks {
		for _, e := range t.Events {
			l.Debug("event", "track", i, "event", e)
		}
	}
	return m, nil
}

// Song loads file and converts the selected tracks into tone commands.
func Song(ctx context.Context, file string, c *config.Config) ([]beep.ToneCommand, error) {
	m, err := Load(ctx, file, c)
	if err != nil {
		return nil, err
	}
	s, err := m.Streams(c.Tracks...)
	if err != nil {
		return nil, err
	}
	l := log.FromContext(ctx)
	o := c.Options(m.TicksPerQuarterNote)
	o.Logger = l
	cmds, st, err := beep.Convert(s, o)
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", file)
	}
	if st.Dropped {
		l.Warn("last note dropped, no note off in the file")
	}
	l.Info("converted", "file", file, "events", st.Events, "tones", st.Commands,
		"seconds", float64(st.Micros)/1e6, "overshoot", st.Overshoot)
	return cmds, nil
}
