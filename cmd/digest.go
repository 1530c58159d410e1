package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var (
	digestAlgorithm string
	digestRaw       bool
	hmacKey         string
	hmacKeyPrompt   bool
)

func init() {
	digestCmd.Flags().StringVarP(&digestAlgorithm, "algorithm", "a", "", "digest name (default from config)")
	digestCmd.Flags().BoolVar(&digestRaw, "raw", false, "write raw digest bytes instead of hex (single input only)")

	hmacCmd.Flags().StringVarP(&digestAlgorithm, "algorithm", "a", "", "digest name (default from config)")
	hmacCmd.Flags().BoolVar(&digestRaw, "raw", false, "write raw MAC bytes instead of hex (single input only)")
	hmacCmd.Flags().StringVarP(&hmacKey, "key", "k", "", "HMAC key; prefix with hex: for hex input")
	hmacCmd.Flags().BoolVar(&hmacKeyPrompt, "key-prompt", false, "read the HMAC key from the terminal")

	RootCmd.AddCommand(digestCmd)
	RootCmd.AddCommand(hmacCmd)
}

func resetDigestState() {
	digestAlgorithm = ""
	digestRaw = false
	hmacKey = ""
	hmacKeyPrompt = false
}

var digestCmd = &cobra.Command{
	Use:   "digest [files or globs...]",
	Short: "Print message digests of files",
	Long: `Hashes each file, directory or ** glob, or stdin when none is given, and
prints one "<hex>  <path>" line per input.

Examples:
  luacrypto digest -a sha256 README.md
  luacrypto digest -a blake2b512 'scripts/**/*.lua'
  echo -n abc | luacrypto digest -a md5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDigest(cmd, args, nil)
	},
}

var hmacCmd = &cobra.Command{
	Use:   "hmac [files or globs...]",
	Short: "Print HMACs of files",
	Long: `Computes an HMAC of each input with the given key, or of stdin when no
input is given.

Examples:
  luacrypto hmac -a sha256 --key hex:0b0b0b0b data.bin
  luacrypto hmac -a sha1 --key-prompt '*.txt'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := keyMaterial(hmacKey, hmacKeyPrompt, "HMAC key")
		if err != nil {
			return err
		}
		if key == nil {
			key = []byte{}
		}
		return runDigest(cmd, args, key)
	},
}

func runDigest(cmd *cobra.Command, args []string, key []byte) error {
	Logger.Infof("Starting %s command", cmd.Name())
	Logger.Debugf("Flags: algorithm=%q, raw=%t, inputs=%v", digestAlgorithm, digestRaw, args)

	result, err := workflows.Digest(cmd.Context(), workflows.DigestOptions{
		Algorithm: digestAlgorithm,
		Patterns:  args,
		HMACKey:   key,
	})
	if err != nil {
		return err
	}

	if digestRaw {
		if len(result.Sums) != 1 {
			Logger.Errorf("--raw needs exactly one input, got %d", len(result.Sums))
			return fmt.Errorf("%w: --raw needs exactly one input, got %d", kerrors.ErrInvalidArgument, len(result.Sums))
		}
		return writeBinary(cmd, result.Sums[0].Sum, false)
	}

	for _, s := range result.Sums {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", s.Sum.Hex(), s.Path)
	}
	Logger.Infof("Computed %d %s value(s)", len(result.Sums), result.Algorithm)
	return nil
}
