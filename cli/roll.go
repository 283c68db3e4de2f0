package cli

import (
	"github.com/spf13/cobra"

	"github.com/pshvedko/midibeep/roll"
)

// RollOptions holds flags for the roll command.
type RollOptions struct {
	*RootOptions
	Output string
	Width  int
	Height int
}

// NewRollCommand creates the roll command.
func NewRollCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RollOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "roll <file|url>",
		Short: "Draw the converted tones as a PNG piano roll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			cmds, err := Song(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			return roll.Save(opts.Output, cmds, opts.Width, opts.Height)
		},
	}

	addTimingFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "roll.png", "output PNG path")
	cmd.Flags().IntVar(&opts.Width, "width", 1200, "image width")
	cmd.Flags().IntVar(&opts.Height, "height", 400, "image height")

	return cmd
}
