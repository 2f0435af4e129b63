package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/livehooks/pkg/datepicker"
)

func calendarCmd() *cobra.Command {
	var (
		selected string
		locale   string
	)

	cmd := &cobra.Command{
		Use:   "calendar [yyyy-mm]",
		Short: "Print a month grid the way the datepicker lays it out",
		Long: `Print a Monday-first month grid. The selected day is shown in
brackets and today in parentheses.

Examples:
  livehooks calendar
  livehooks calendar 2025-03 --select 2025-03-10
  livehooks calendar 2025-12 --locale en`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := datepicker.DateOf(now())

			sel, err := datepicker.Parse(selected)
			if err != nil {
				return err
			}

			visible := datepicker.MonthOf(today)
			switch {
			case len(args) == 1:
				if visible, err = datepicker.ParseMonth(args[0]); err != nil {
					return err
				}
			case !sel.IsZero():
				visible = datepicker.MonthOf(sel)
			}

			grid := datepicker.NewGrid(visible, sel, today)
			writeGrid(cmd.OutOrStdout(), grid, datepicker.LocaleFor(locale))
			return nil
		},
	}

	cmd.Flags().StringVar(&selected, "select", "", "Selected date (yyyy-mm-dd)")
	cmd.Flags().StringVarP(&locale, "locale", "l", "es", "Locale for month and weekday names")

	return cmd
}

func writeGrid(w io.Writer, g datepicker.Grid, loc datepicker.Locale) {
	const width = 7 * 4
	title := loc.MonthTitle(g.Month)
	pad := (width - len([]rune(title))) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), title)

	for _, wd := range loc.Weekdays {
		fmt.Fprintf(w, " %-3s", wd)
	}
	fmt.Fprintln(w)

	for _, week := range g.Weeks {
		var line strings.Builder
		for _, c := range week {
			switch {
			case c.Blank():
				line.WriteString("    ")
			case c.State == datepicker.CellSelected:
				fmt.Fprintf(&line, "[%2d]", c.Date.Day())
			case c.State == datepicker.CellToday:
				fmt.Fprintf(&line, "(%2d)", c.Date.Day())
			default:
				fmt.Fprintf(&line, " %2d ", c.Date.Day())
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
