package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewPlayCommand creates the play command. It fails when play is nil.
func NewPlayCommand(opts *RootOptions, play Player) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <file|url>",
		Short: "Preview the converted tones on a keyboard window",
		Long: `Preview the converted tones on a keyboard window.

Space pauses, F or a double click toggles fullscreen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if play == nil {
				return errors.New("preview not available")
			}
			c, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			cmds, err := Song(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			return play(cmd.Context(), cmds, c.PitchBase)
		},
	}

	addTimingFlags(cmd)

	return cmd
}
