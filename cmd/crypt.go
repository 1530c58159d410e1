package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/ui"
	"github.com/PolarWolf314/luacrypto/internal/workflows"
)

var (
	cryptAlgorithm string
	cryptKey       string
	cryptKeyPrompt bool
	cryptIV        string
	cryptInput     string
	cryptOutput    string
	cryptStrict    bool
	cryptNoPadding bool
)

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().StringVarP(&cryptAlgorithm, "algorithm", "a", "", "cipher name (default from config)")
		c.Flags().StringVarP(&cryptKey, "key", "k", "", "key; prefix with hex: for hex input")
		c.Flags().BoolVar(&cryptKeyPrompt, "key-prompt", false, "read the key from the terminal")
		c.Flags().StringVar(&cryptIV, "iv", "", "IV; prefix with hex: for hex input")
		c.Flags().StringVarP(&cryptInput, "in", "i", "-", "input file, - for stdin")
		c.Flags().StringVarP(&cryptOutput, "out", "o", "-", "output file, - for stdout")
		c.Flags().BoolVar(&cryptStrict, "strict", false, "reject keys and IVs of the wrong length")
		c.Flags().BoolVar(&cryptNoPadding, "no-padding", false, "disable PKCS#7 padding for block modes")
		RootCmd.AddCommand(c)
	}
}

func resetCryptState() {
	cryptAlgorithm = ""
	cryptKey = ""
	cryptKeyPrompt = false
	cryptIV = ""
	cryptInput = "-"
	cryptOutput = "-"
	cryptStrict = false
	cryptNoPadding = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a file or stdin",
	Long: `Encrypts the input with a symmetric cipher. Output is raw ciphertext.

Keys and IVs shorter or longer than the cipher expects are zero-padded or
truncated with a warning, unless --strict or keys.strict_length is set.

Examples:
  luacrypto encrypt -a aes-256-cbc --key hex:<64 hex digits> --iv hex:<32 hex digits> -i plain -o cipher
  luacrypto encrypt -a chacha20 --key-prompt --iv hex:<32 hex digits> < in > out`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cmd, false)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a file or stdin",
	Long: `Decrypts ciphertext produced by encrypt with the same cipher, key and IV.

Examples:
  luacrypto decrypt -a aes-256-cbc --key hex:<64 hex digits> --iv hex:<32 hex digits> -i cipher -o plain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cmd, true)
	},
}

func runCrypt(cmd *cobra.Command, decrypt bool) error {
	Logger.Infof("Starting %s command", cmd.Name())
	Logger.Debugf("Flags: algorithm=%q, in=%q, out=%q, strict=%t, no-padding=%t",
		cryptAlgorithm, cryptInput, cryptOutput, cryptStrict, cryptNoPadding)

	key, err := keyMaterial(cryptKey, cryptKeyPrompt, "Key")
	if err != nil {
		return err
	}
	if len(key) == 0 {
		return fmt.Errorf("%w: a key is required; pass --key or --key-prompt", kerrors.ErrInvalidArgument)
	}
	iv, err := keyMaterial(cryptIV, false, "IV")
	if err != nil {
		return err
	}

	if cryptOutput == "-" {
		if err := guardTerminal(cmd); err != nil {
			return err
		}
	}

	result, err := workflows.Crypt(cmd.Context(), workflows.CryptOptions{
		Algorithm: cryptAlgorithm,
		Key:       key,
		IV:        iv,
		Input:     cryptInput,
		Output:    cryptOutput,
		Writer:    cmd.OutOrStdout(),
		Decrypt:   decrypt,
		Strict:    cryptStrict,
		NoPadding: cryptNoPadding,
		OnAdjust: func(field string, got, want int) {
			Logger.WarnfAlways("%s is %d bytes, cipher expects %d; zero-padded or truncated", field, got, want)
		},
	})
	if err != nil {
		return err
	}

	Logger.Infof("%sed %d bytes into %d with %s", result.Direction, result.BytesIn, result.BytesOut, result.Algorithm)
	if cryptOutput != "-" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Success.Sprint("✓")+" Wrote "+ui.Path.Sprint(cryptOutput))
	}
	return nil
}
