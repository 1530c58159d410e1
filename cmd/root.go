package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/luacrypto/internal/configs"
	logger "github.com/PolarWolf314/luacrypto/internal/logging"
	"github.com/PolarWolf314/luacrypto/internal/luacrypto"
	"github.com/PolarWolf314/luacrypto/internal/ui"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "luacrypto",
		Short: "Crypto primitives for Lua scripts and the command line",
		Long: `luacrypto runs Lua scripts with the crypto module preloaded, and offers
the same primitives as commands.

Digests, HMAC, symmetric ciphers, RSA/DSA/ECDSA signatures, key pairs and
random bytes all come from Go's standard library and golang.org/x/crypto.

Examples:
  luacrypto run script.lua arg1 arg2
  luacrypto digest -a sha256 '**/*.lua'
  luacrypto encrypt -a aes-256-cbc --key hex:00112233... --iv hex:... -i in -o out
  luacrypto pkey generate --type rsa --bits 2048 --private key.pem --public key.pub
  luacrypto sign --key key.pem -o file.sig file
  luacrypto verify --key key.pub --signature file.sig file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			if configPath != "" {
				configs.UserLuacryptoSettings.ConfigFile = configPath
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t, config=%s",
				cmd.Name(), verbose, debug, configs.UserLuacryptoSettings.ConfigFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			fmt.Fprint(out, ui.Info.Sprint(figure.NewFigure("luacrypto", "small", true).String()))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "LuaCrypto %s. Run %s to see available commands.\n",
				luacrypto.Version, ui.Code.Sprint("luacrypto --help"))
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/luacrypto/config.toml)")
}

// Execute runs the root command, cancelling in-flight work on interrupt.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		return exitCode(err)
	}
	return 0
}

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	Logger = logger.Logger{}
	resetDigestState()
	resetCryptState()
	resetPkeyState()
	resetSignState()
	resetRandState()
	resetRunState()
	resetListState()
	resetLogState()
	resetConfigState()
	resetDoctorState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag so one test's parse does
// not leak into the next. The reset functions above restore the values.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
