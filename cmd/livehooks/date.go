package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/livehooks/pkg/datepicker"
)

func dateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date <value>",
		Short: "Convert between stored (yyyy-mm-dd) and display (dd/mm/yyyy) forms",
		Long: `Print the stored and display forms of a date. The input may be
in either form; stored values accept 1 or 2 digit months and days.

Examples:
  livehooks date 2025-3-9
  livehooks date 09/03/2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			parse := datepicker.Parse
			if strings.Contains(raw, "/") {
				parse = datepicker.ParseDisplay
			}
			d, err := parse(raw)
			if err != nil {
				return err
			}
			if d.IsZero() {
				return fmt.Errorf("empty date")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "stored:  %s\n", d)
			fmt.Fprintf(out, "display: %s\n", d.Display())
			fmt.Fprintf(out, "weekday: %s\n", d.Weekday())
			return nil
		},
	}
	return cmd
}
