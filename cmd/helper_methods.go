package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
	"github.com/PolarWolf314/luacrypto/internal/ui"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// errSignatureInvalid makes verify exit non-zero without printing twice.
var errSignatureInvalid = errors.New("signature invalid")

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. The returned cleanup prints s.FinalMSG, with a
// trailing newline ensured, after the spinner line is cleared.
func startSpinner(message string, out io.Writer) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	started := quiet && utils.IsTerminal()
	if started {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if started {
			s.Stop()
			log.SetOutput(os.Stderr)
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// formatError renders err for the terminal according to its category.
func formatError(err error) string {
	if errors.Is(err, errSignatureInvalid) {
		return ui.Verdict(false)
	}

	msg := ui.Error.Sprint("✗") + " " + err.Error()
	switch {
	case errors.Is(err, kerrors.ErrInvalidAlgorithm):
		return msg + "\n" + ui.Info.Sprint("→") + " Run " +
			ui.Code.Sprint("luacrypto list digests") + " or " + ui.Code.Sprint("luacrypto list ciphers")
	case errors.Is(err, kerrors.ErrKeyLength), errors.Is(err, kerrors.ErrIVLength):
		return msg + "\n" + ui.Info.Sprint("→") + " Pass key material as " +
			ui.Code.Sprint("hex:...") + " or drop " + ui.Flag.Sprint("--strict")
	case errors.Is(err, kerrors.ErrPadding):
		return msg + "\n" + ui.Info.Sprint("→") + " Wrong key, IV or cipher, or the input is not ciphertext"
	}
	return msg
}

// exitCode is 2 for caller mistakes and 1 for everything else.
func exitCode(err error) int {
	if kerrors.Classify(err) == kerrors.CategoryArgument {
		return 2
	}
	return 1
}

// writeBinary writes data to the command's output as hex or raw bytes. Raw
// bytes are refused when stdout is a terminal.
func writeBinary(cmd *cobra.Command, data []byte, asHex bool) error {
	out := cmd.OutOrStdout()
	if asHex {
		_, err := fmt.Fprintln(out, registry.Hex(data))
		return err
	}
	if err := guardTerminal(cmd); err != nil {
		return err
	}
	_, err := out.Write(data)
	return err
}

// guardTerminal refuses raw binary output when it would land on a terminal.
func guardTerminal(cmd *cobra.Command) error {
	if cmd.OutOrStdout() == os.Stdout && utils.IsStdoutTerminal() {
		return fmt.Errorf("%w: refusing to write binary output to a terminal; use --hex, -o or redirect", kerrors.ErrInvalidArgument)
	}
	return nil
}

// keyMaterial resolves a key or IV flag. With prompt set the value is read
// from the terminal without echo. An empty value yields nil.
func keyMaterial(value string, prompt bool, what string) ([]byte, error) {
	if prompt {
		return utils.ReadPassphrase(what + ": ")
	}
	if value == "" {
		return nil, nil
	}
	return utils.DecodeKey(value)
}
