package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	"github.com/PolarWolf314/luacrypto/internal/configs"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// chunkSize is the read size for streamed inputs.
const chunkSize = 32 * 1024

func loadConfig() (*configs.Config, error) {
	config, err := configs.LoadConfig(configs.UserLuacryptoSettings.ConfigFile)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func record(config *configs.Config, op string, fill func(*audit.Entry)) {
	entry := audit.New(config.Install.ID, op)
	if fill != nil {
		fill(&entry)
	}
	audit.Log(config.AuditPath(), entry)
}

// stream feeds r to update in chunks, checking ctx between reads.
func stream(ctx context.Context, r io.Reader, update func([]byte) error) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			total += int64(n)
			if uerr := update(buf[:n]); uerr != nil {
				return total, uerr
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("%w: read: %v", kerrors.ErrFile, err)
		}
	}
}

// streamFile opens path ("-" for stdin) and streams it through update.
func streamFile(ctx context.Context, path string, update func([]byte) error) (n int64, err error) {
	in, err := utils.OpenInput(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, cerr)
		}
	}()
	return stream(ctx, in, update)
}

// createOutput opens path for writing at mode 0600, or returns fallback
// when path is empty or "-". The returned finish func closes the file and
// removes it if the operation failed.
func createOutput(path string, fallback io.Writer) (io.Writer, func(failed bool) error, error) {
	if path == "" || path == "-" {
		if fallback == nil {
			fallback = os.Stdout
		}
		return fallback, func(bool) error { return nil }, nil
	}

	path = utils.ExpandHome(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}

	finish := func(failed bool) error {
		cerr := f.Close()
		if failed {
			_ = os.Remove(path)
			return nil
		}
		if cerr != nil {
			return fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, cerr)
		}
		return nil
	}
	return f, finish, nil
}

// displayPath names stdin and stdout as "-".
func displayPath(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
