package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/ui"
	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	RootCmd.AddCommand(doctorCmd)
}

func resetDoctorState() {
	doctorJSON = false
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration, primitives and file permissions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Doctor(cmd.Context(), workflows.DoctorOptions{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if doctorJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			for _, c := range result.Checks {
				fmt.Fprintf(out, "%s %s: %s\n", statusMark(c.Status), c.Name, c.Message)
			}
			fmt.Fprintf(out, "\n%d passed, %d warnings, %d errors\n",
				result.Summary.Passed, result.Summary.Warnings, result.Summary.Errors)
			for _, s := range result.Suggestions {
				fmt.Fprintln(out, ui.Info.Sprint("→")+" "+s)
			}
		}

		if result.Summary.Errors > 0 {
			return fmt.Errorf("%d check(s) failed", result.Summary.Errors)
		}
		return nil
	},
}

func statusMark(s workflows.CheckStatus) string {
	switch s {
	case workflows.CheckPass:
		return ui.Success.Sprint("✓")
	case workflows.CheckWarning:
		return ui.Warning.Sprint("⚠")
	default:
		return ui.Error.Sprint("✗")
	}
}
