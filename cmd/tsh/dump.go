package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/cstpack/source"
	"github.com/reoring/cstpack/timesheet"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the raw syntax tree of a timesheet, trivia included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, err := source.DriverFor(format)
			if err != nil {
				return err
			}
			src, err := readFile(args[0])
			if err != nil {
				return err
			}
			forest, err := timesheet.ParseRaw(src)
			if err != nil {
				return err
			}
			a.log.Debug("dumping tree", "file", args[0], "driver", drv.Name())
			return drv.Encode(cmd.OutOrStdout(), source.Capture(forest))
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "dump format: json or yaml")
	return cmd
}
