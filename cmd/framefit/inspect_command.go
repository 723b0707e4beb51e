package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/framefit/internal/check"
	"github.com/backmassage/framefit/internal/pipeline"
)

func newInspectCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [input_dir]",
		Short: "Probe files and report what a conversion run would do",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, flags, args)
			if err != nil {
				return err
			}
			defer log.Close()

			if err := check.CheckDeps(); err != nil {
				return err
			}
			return pipeline.Inspect(cmd.Context(), cfg, log)
		},
	}
}
