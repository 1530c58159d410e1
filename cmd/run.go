package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var (
	runStrict bool
	runEval   string
)

func init() {
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "reject keys and IVs of the wrong length in crypto.encrypt/decrypt")
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "run this chunk instead of a file")
	RootCmd.AddCommand(runCmd)
}

func resetRunState() {
	runStrict = false
	runEval = ""
}

var runCmd = &cobra.Command{
	Use:   "run <script.lua | -> [args...]",
	Short: "Run a Lua script with the crypto module",
	Long: `Runs a Lua script with require("crypto") available and the module also
set as the global crypto. Script arguments are in the arg table, with the
script name at arg[0].

Examples:
  luacrypto run hash.lua file.txt
  luacrypto run -e 'print(crypto.digest("sha256", "abc"))'
  cat script.lua | luacrypto run -`,
	Args: func(cmd *cobra.Command, args []string) error {
		if runEval != "" {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.ScriptOptions{
			Strict: runStrict,
			Logger: Logger,
		}
		if runEval != "" {
			opts.Path = "(command line)"
			opts.Source = runEval
			opts.Args = args
		} else {
			opts.Path = args[0]
			opts.Args = args[1:]
		}

		Logger.Infof("Running %s", opts.Path)
		return workflows.RunScript(cmd.Context(), opts)
	},
}
