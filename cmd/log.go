package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/ui"
	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logAlgorithm string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated)")
	logCmd.Flags().StringVar(&logAlgorithm, "algorithm", "", "filter by algorithm")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
	RootCmd.AddCommand(logCmd)
}

func resetLogState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logAlgorithm = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of key-material operations: which algorithm,
key and files were used, and when. Key material is never logged.

Examples:
  luacrypto log -n 10
  luacrypto log --operation sign,verify --since 2024-01-01
  luacrypto log --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		result, err := workflows.AuditLog(cmd.Context(), workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			Operations: logOperation,
			Algorithm:  logAlgorithm,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			return err
		}
		Logger.Debugf("Read %d entries from %s, %d after filtering", result.Total, result.Path, len(result.Entries))

		out := cmd.OutOrStdout()
		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(result.Entries) == 0 {
			if result.Total == 0 {
				fmt.Fprintln(out, "No audit log entries found.")
			} else {
				fmt.Fprintln(out, "No audit log entries found matching the filters.")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Fprintf(out, "%s  %-14s %s\n",
				ui.Muted.Sprint(workflows.FormatDateTime(e.Timestamp)), e.Operation, workflows.FormatDetails(e))
		}
		return nil
	},
}
