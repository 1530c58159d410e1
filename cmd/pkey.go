package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/ui"
	"github.com/PolarWolf314/luacrypto/internal/utils"
	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var (
	pkeyType        string
	pkeyBits        int
	pkeyPublicPath  string
	pkeyPrivatePath string
	pkeyRequirePriv bool
	pkeyShowPEM     bool
)

func init() {
	pkeyGenerateCmd.Flags().StringVarP(&pkeyType, "type", "t", "", "key type: rsa, dsa or ec (default from config)")
	pkeyGenerateCmd.Flags().IntVarP(&pkeyBits, "bits", "b", 0, "key size; for ec the curve size 256, 384 or 521")
	pkeyGenerateCmd.Flags().StringVar(&pkeyPublicPath, "public", "", "where to write the public key PEM")
	pkeyGenerateCmd.Flags().StringVar(&pkeyPrivatePath, "private", "", "where to write the unencrypted private key PEM")

	pkeyInspectCmd.Flags().BoolVar(&pkeyRequirePriv, "private", false, "require a private key")
	pkeyInspectCmd.Flags().BoolVar(&pkeyShowPEM, "pem", false, "print the public key PEM")

	pkeyCmd.AddCommand(pkeyGenerateCmd)
	pkeyCmd.AddCommand(pkeyInspectCmd)
	RootCmd.AddCommand(pkeyCmd)
}

func resetPkeyState() {
	pkeyType = ""
	pkeyBits = 0
	pkeyPublicPath = ""
	pkeyPrivatePath = ""
	pkeyRequirePriv = false
	pkeyShowPEM = false
}

var pkeyCmd = &cobra.Command{
	Use:   "pkey",
	Short: "Generate and inspect key pairs",
}

var pkeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an RSA, DSA or EC key pair",
	Long: `Generates a key pair and writes its halves as PEM. The private key is
written unencrypted, readable only by you.

Examples:
  luacrypto pkey generate --type rsa --bits 3072 --private id.pem --public id.pub
  luacrypto pkey generate --type ec --bits 384 --private ec.pem`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pkey generate command")
		Logger.Debugf("Flags: type=%q, bits=%d, public=%q, private=%q", pkeyType, pkeyBits, pkeyPublicPath, pkeyPrivatePath)

		spinner, cleanup := startSpinner("Generating key pair...", cmd.OutOrStdout())
		defer cleanup()

		result, err := workflows.GenerateKey(cmd.Context(), workflows.KeygenOptions{
			Kind:        pkeyType,
			Bits:        pkeyBits,
			PublicPath:  pkeyPublicPath,
			PrivatePath: pkeyPrivatePath,
		})
		if err != nil {
			return err
		}

		if result.PrivatePath != "" {
			Logger.WarnfAlways("writing unencrypted private key to %s", result.PrivatePath)
		}

		var written []string
		for _, p := range []string{result.PublicPath, result.PrivatePath} {
			if p != "" {
				written = append(written, p)
			}
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Generated " +
			ui.Algorithm.Sprintf("%s-%d", result.Type, result.Bits) + " key pair" + utils.FormatPaths(written)
		return nil
	},
}

var pkeyInspectCmd = &cobra.Command{
	Use:   "inspect <key.pem>",
	Short: "Show the type and size of a PEM key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pkey inspect command")

		info, err := workflows.InspectKey(cmd.Context(), workflows.InspectOptions{
			Path:    args[0],
			Private: pkeyRequirePriv,
		})
		if err != nil {
			return err
		}

		private := "no"
		if info.HasPrivate {
			private = "yes"
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.Fields([]ui.Field{
			{Label: "path", Value: info.Path},
			{Label: "type", Value: info.Type},
			{Label: "bits", Value: strconv.Itoa(info.Bits)},
			{Label: "private", Value: private},
		}))
		if pkeyShowPEM {
			fmt.Fprint(cmd.OutOrStdout(), info.PublicPEM)
		}
		return nil
	},
}
