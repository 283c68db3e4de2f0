// Package cli implements the midibeep command line.
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pshvedko/midibeep/beep"
	"github.com/pshvedko/midibeep/config"
)

// Player previews a converted song; base is the pitch base it was made with.
type Player func(ctx context.Context, song []beep.ToneCommand, base int) error

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string
	Decoder string
	Tracks  []int
}

// NewRootCommand creates the root command. play backs the play subcommand.
func NewRootCommand(play Player) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "midibeep",
		Short: "Convert MIDI files to BEEP programs",
		Long: `Convert a multi-track MIDI file into a numbered BEEP program for a
device that can sound one tone at a time.

Tracks are merged, ticks are timed under the tempo map, and overlapping
notes collapse into one voice. Tones shorter than the minimum length are
stretched and the excess is taken back from the following tones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "midibeep"})
			if opts.Verbose {
				l.SetLevel(log.DebugLevel)
			}
			cmd.SetContext(log.WithContext(cmd.Context(), l))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log events and tones")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "YAML settings file")
	cmd.PersistentFlags().StringVar(&opts.Decoder, "decoder", config.DecoderNative, "MIDI decoder (native|gomidi)")
	cmd.PersistentFlags().IntSliceVarP(&opts.Tracks, "track", "t", nil, "use only these tracks (repeatable)")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewRollCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts, play))

	return cmd
}

// settings loads the config file and applies the global flags over it.
func (o *RootOptions) settings(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(o.Config)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("decoder") {
		c.Decoder = o.Decoder
	}
	if f.Changed("track") {
		c.Tracks = o.Tracks
	}
	if f.Changed("min-note-length") {
		if c.MinNoteLength, err = f.GetInt64("min-note-length"); err != nil {
			return nil, err
		}
	}
	if f.Changed("pitch-base") {
		if c.PitchBase, err = f.GetInt("pitch-base"); err != nil {
			return nil, err
		}
	}
	if f.Changed("tempo") {
		if c.DefaultTempo, err = f.GetUint32("tempo"); err != nil {
			return nil, err
		}
	}
	if f.Changed("line-start") {
		if c.LineStart, err = f.GetInt("line-start"); err != nil {
			return nil, err
		}
	}
	if f.Changed("line-step") {
		if c.LineStep, err = f.GetInt("line-step"); err != nil {
			return nil, err
		}
	}
	return c, c.Validate()
}

// addTimingFlags registers the conversion settings that override the config.
func addTimingFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().Int64("min-note-length", d.MinNoteLength, "shortest tone in microseconds")
	cmd.Flags().Int("pitch-base", d.PitchBase, "MIDI note that maps to BEEP pitch 0")
	cmd.Flags().Uint32("tempo", d.DefaultTempo, "tempo in microseconds per beat until the first tempo change")
}
