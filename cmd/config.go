package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/configs"
	"github.com/PolarWolf314/luacrypto/internal/ui"
)

var (
	configShowJSON  bool
	configInitForce bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config with defaults")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(ConfigCmd)
}

func resetConfigState() {
	configShowJSON = false
	configInitForce = false
}

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage luacrypto configuration",
	Long: `Creates and displays the luacrypto config file, which holds default
algorithms, the key-length policy, the seed file and audit settings.

Examples:
  luacrypto config init
  luacrypto config show --json
  luacrypto --config ./luacrypto.toml config show`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configs.UserLuacryptoSettings.ConfigFile
		Logger.Infof("Initializing config at %s", path)

		if configInitForce {
			config := configs.DefaultConfig()
			config.Install.ID = configs.GenerateInstallID()
			if err := configs.SaveConfig(path, config); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Wrote defaults to "+ui.Path.Sprint(path))
			return nil
		}

		config, created, err := configs.EnsureConfig(path)
		if err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if created {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Created "+ui.Path.Sprint(path))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint("ℹ")+" "+ui.Path.Sprint(path)+" already exists; use "+
				ui.Flag.Sprint("--force")+" to reset it")
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configs.UserLuacryptoSettings.ConfigFile
		Logger.Debugf("Loading config from %s", path)

		config, err := configs.LoadConfig(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if configShowJSON {
			data, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		audit := config.AuditPath()
		if audit == "" {
			audit = "disabled"
		}
		fmt.Fprint(out, ui.Fields([]ui.Field{
			{Label: "config", Value: path},
			{Label: "digest", Value: config.Defaults.Digest},
			{Label: "cipher", Value: config.Defaults.Cipher},
			{Label: "key type", Value: config.Defaults.KeyType},
			{Label: "key bits", Value: strconv.Itoa(config.Defaults.KeyBits)},
			{Label: "strict length", Value: strconv.FormatBool(config.Keys.StrictLength)},
			{Label: "seed file", Value: config.RandStateFile()},
			{Label: "audit log", Value: audit},
			{Label: "install id", Value: config.Install.ID},
		}))
		return nil
	},
}
