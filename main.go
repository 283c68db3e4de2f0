package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pshvedko/midibeep/beep"
	"github.com/pshvedko/midibeep/cli"
	"github.com/pshvedko/midibeep/piano"
)

func play(ctx context.Context, song []beep.ToneCommand, base int) error {
	p := &piano.Piano{}
	return p.Run(ctx, 800, 600, 44100, song, base)
}

func main() {
	err := cli.NewRootCommand(play).Execute()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
