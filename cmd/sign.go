package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/ui"
	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var (
	signAlgorithm string
	signKeyPath   string
	signOutput    string
	signHex       bool
	signSigPath   string
)

func init() {
	signCmd.Flags().StringVarP(&signAlgorithm, "algorithm", "a", "", "digest name (default from config)")
	signCmd.Flags().StringVarP(&signKeyPath, "key", "k", "", "private key PEM")
	signCmd.Flags().StringVarP(&signOutput, "out", "o", "", "signature file (default stdout)")
	signCmd.Flags().BoolVar(&signHex, "hex", false, "print the signature as hex")
	_ = signCmd.MarkFlagRequired("key")

	verifyCmd.Flags().StringVarP(&signAlgorithm, "algorithm", "a", "", "digest name (default from config)")
	verifyCmd.Flags().StringVarP(&signKeyPath, "key", "k", "", "public or private key PEM")
	verifyCmd.Flags().StringVarP(&signSigPath, "signature", "s", "", "signature file")
	_ = verifyCmd.MarkFlagRequired("key")
	_ = verifyCmd.MarkFlagRequired("signature")

	RootCmd.AddCommand(signCmd)
	RootCmd.AddCommand(verifyCmd)
}

func resetSignState() {
	signAlgorithm = ""
	signKeyPath = ""
	signOutput = ""
	signHex = false
	signSigPath = ""
}

var signCmd = &cobra.Command{
	Use:   "sign [file]",
	Short: "Create a detached signature",
	Long: `Signs a file, or stdin, with an RSA (PKCS#1 v1.5), DSA or ECDSA private key.

Examples:
  luacrypto sign -a sha256 --key id.pem -o release.sig release.tar.gz
  luacrypto sign --key ec.pem --hex notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sign command")

		result, err := workflows.Sign(cmd.Context(), workflows.SignOptions{
			Algorithm: signAlgorithm,
			Input:     firstArg(args),
			KeyPath:   signKeyPath,
			Output:    signOutput,
		})
		if err != nil {
			return err
		}

		if result.Output != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Success.Sprint("✓")+" Wrote "+
				ui.Algorithm.Sprint(result.KeyType+"/"+result.Algorithm)+" signature to "+ui.Path.Sprint(result.Output))
			return nil
		}
		return writeBinary(cmd, result.Signature, signHex)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check a detached signature",
	Long: `Verifies a signature over a file, or stdin. Exits 0 when the signature is
valid and 1 when it is not or cannot be checked.

Examples:
  luacrypto verify -a sha256 --key id.pub --signature release.sig release.tar.gz`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting verify command")

		result, err := workflows.Verify(cmd.Context(), workflows.VerifyOptions{
			Algorithm:     signAlgorithm,
			Input:         firstArg(args),
			KeyPath:       signKeyPath,
			SignaturePath: signSigPath,
		})
		if err != nil {
			return err
		}
		if !result.Valid {
			return errSignatureInvalid
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Verdict(true))
		return nil
	},
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
