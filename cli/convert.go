package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pshvedko/midibeep/basic"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Output string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file|url>",
		Short: "Write the BEEP program of a MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	addTimingFlags(cmd)
	cmd.Flags().Int("line-start", basic.LineStart, "first line number")
	cmd.Flags().Int("line-step", basic.LineStep, "line number increment")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")

	return cmd
}

func runConvert(opts *ConvertOptions, file string, cmd *cobra.Command) error {
	c, err := opts.settings(cmd)
	if err != nil {
		return err
	}
	cmds, err := Song(cmd.Context(), file, c)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if opts.Output != "" {
		var f *os.File
		f, err = os.Create(opts.Output)
		if err != nil {
			return errors.Wrap(err, "output")
		}
		defer func() {
			_ = f.Close()
		}()
		w = f
	}
	_, err = c.Emitter().Render(w, cmds)
	return err
}
