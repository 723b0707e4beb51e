package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/framefit/internal/check"
)

func newCheckCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run system diagnostics (ffmpeg, ffprobe, encoders) and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd, flags, nil)
			if err != nil {
				return err
			}
			defer log.Close()

			if !check.RunCheck(cmd.Context(), log) {
				return errors.New("required tools are missing")
			}
			return nil
		},
	}
}
