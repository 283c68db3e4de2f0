package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pshvedko/midibeep/midi"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cellStyle   = lipgloss.NewStyle().Width(9)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|url>",
		Short: "Summarize the tracks of a MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			m, err := Load(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), Inspect(args[0], m))
			return err
		},
	}
}

func row(cells ...string) string {
	r := make([]string, len(cells))
	for i, c := range cells {
		r[i] = cellStyle.Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, r...)
}

// Inspect renders a per-track table of m.
func Inspect(name string, m *midi.Context) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("format %d, %d tracks, %d ticks per beat, %d ticks",
		m.Format, len(m.Tracks), m.TicksPerQuarterNote, m.Time)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(row("track", "events", "notes", "tempos", "range", "end")))
	for i, t := range m.Tracks {
		s := t.Summary()
		span := "-"
		if s.Notes > 0 {
			span = fmt.Sprintf("%d-%d", s.Low, s.High)
		}
		b.WriteString("\n")
		b.WriteString(row(fmt.Sprint(i), fmt.Sprint(s.Events), fmt.Sprint(s.Notes), fmt.Sprint(s.Tempos), span, fmt.Sprint(s.End)))
	}
	return b.String()
}
