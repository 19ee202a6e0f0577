package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/cstpack/timesheet"
)

func kindsUsage() string {
	names := make([]string, 0, len(timesheet.EventKinds))
	for _, k := range timesheet.EventKinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start KIND TIME",
		Short: "Mark the start of a log event",
		Long:  "KIND is one of " + kindsUsage() + ". TIME is HH:MM.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := timesheet.ParseEventKind(args[0])
			if err != nil {
				return err
			}
			at, err := timesheet.ParseTime(args[1])
			if err != nil {
				return fmt.Errorf("invalid start time %q:\n%w", args[1], err)
			}
			a.log.Debug("marker", "kind", kind, "at", at)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), timesheet.Marker{Kind: kind, At: at})
			return err
		},
	}
}

func newEndCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "end KIND TIME|NOW",
		Short: "Mark the end of a log event",
		Long:  "KIND is one of " + kindsUsage() + ". TIME is HH:MM or NOW.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := timesheet.ParseEventKind(args[0])
			if err != nil {
				return err
			}
			at, err := timesheet.ParseTimeRangeEnd(args[1])
			if err != nil {
				return fmt.Errorf("invalid end time %q:\n%w", args[1], err)
			}
			a.log.Debug("marker", "kind", kind, "at", at)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), timesheet.Marker{Kind: kind, At: at})
			return err
		},
	}
}
