package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wincnc-tools/cnchist/internal/history"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Self-check: resolved paths, record and session counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, res, gap, err := parseLog()
			if err != nil {
				return err
			}
			sessions := history.Segment(res, gap)

			fmt.Println("=== Log ===")
			fmt.Printf("  Path:        %s\n", path)
			fmt.Printf("  Records:     %d\n", len(res.Records))
			fmt.Printf("  Markers:     %d\n", len(res.Boundaries))
			fmt.Printf("  Skipped:     %d malformed rows\n", res.Skipped)
			if n := len(res.Records); n > 0 {
				fmt.Printf("  First:       %s\n", history.FormatStamp(res.Records[0].Stamp, false))
				fmt.Printf("  Last:        %s\n", history.FormatStamp(res.Records[n-1].Stamp, false))
			}

			fmt.Println("\n=== Sessions ===")
			if gap == 0 {
				fmt.Println("  Gap rule:    markers only (gap_minutes = 0)")
			} else {
				fmt.Printf("  Gap rule:    %s idle starts a new session\n", gap)
			}
			fmt.Printf("  Sessions:    %d\n", len(sessions))

			errorSessions := 0
			errorRecords := 0
			var machine time.Duration
			for i := range sessions {
				if sessions[i].HasError() {
					errorSessions++
				}
				machine += sessions[i].RunTime
				for _, r := range sessions[i].Records {
					if r.IsError() {
						errorRecords++
					}
				}
			}
			fmt.Printf("  With errors: %d sessions, %d records\n", errorSessions, errorRecords)
			fmt.Printf("  Machine:     %s total run time\n", history.FormatDuration(machine, false))
			return nil
		},
	}
}
