package main

import (
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/reoring/cstpack/timesheet"
)

func newReportCmd(a *app) *cobra.Command {
	var weeks int
	var noColor bool
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Show the credit or deficit of every week and today's deadlines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFile(args[0])
			if err != nil {
				return err
			}
			sheet, err := timesheet.Parse(src)
			if err != nil {
				a.log.Error("parse failed", "file", args[0], "error", err)
				return err
			}
			a.log.Debug("parsed timesheet", "file", args[0], "weeks", len(sheet))

			total := timesheet.Evaluator{WorkingDay: a.cfg.WorkingDay}.Evaluate(sheet)
			r := timesheet.Renderer{Weeks: a.cfg.Weeks, Lunch: a.cfg.Lunch}
			if cmd.Flags().Changed("weeks") {
				r.Weeks = weeks
			}

			var opts []termenv.OutputOption
			if noColor {
				opts = append(opts, termenv.WithProfile(termenv.Ascii))
			}
			return r.Render(termenv.NewOutput(cmd.OutOrStdout(), opts...), total)
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 0, "number of latest weeks to show (default from config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured figures")
	return cmd
}
