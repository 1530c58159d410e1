package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/luacrypto/internal/configs"
	"github.com/PolarWolf314/luacrypto/internal/digest"
	"github.com/PolarWolf314/luacrypto/internal/random"
	"github.com/PolarWolf314/luacrypto/internal/symmetric"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarning
	CheckError
)

func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	Pool *random.Pool
}

// Doctor checks the installation:
//   - the config file parses and names known algorithms
//   - the primitives produce known answers
//   - the random pool is seeded
//   - the seed file and audit log are private to the user
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	path := configs.UserLuacryptoSettings.ConfigFile
	config, configCheck := checkConfig(path)

	results := []CheckResult{
		configCheck,
		checkSelfTest(),
		checkRandom(poolOrDefault(opts.Pool)),
		checkPrivateFile("Random seed file", config.RandStateFile(), "luacrypto rand write"),
	}
	if auditPath := config.AuditPath(); auditPath == "" {
		results = append(results, CheckResult{
			Name:    "Audit log",
			Status:  CheckWarning,
			Message: "Auditing is disabled",
		})
	} else {
		results = append(results, checkPrivateFile("Audit log", auditPath, ""))
	}

	var summary DoctorSummary
	var suggestions []string
	seen := make(map[string]bool)
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
		if r.Suggestion != "" && r.Status != CheckPass && !seen[r.Suggestion] {
			suggestions = append(suggestions, r.Suggestion)
			seen[r.Suggestion] = true
		}
	}

	return &DoctorResult{Checks: results, Summary: summary, Suggestions: suggestions}, nil
}

// checkConfig always returns a usable config, falling back to defaults.
func checkConfig(path string) (*configs.Config, CheckResult) {
	const name = "Configuration"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return configs.DefaultConfig(), CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "No config file, using defaults",
			Suggestion: "Run 'luacrypto config init' to create " + path,
		}
	}

	config, err := configs.LoadConfig(path)
	if err != nil {
		return configs.DefaultConfig(), CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Fix or remove " + path,
		}
	}
	if err := config.Validate(); err != nil {
		return config, CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Run 'luacrypto list digests' and 'luacrypto list ciphers' for valid names",
		}
	}
	return config, CheckResult{Name: name, Status: CheckPass, Message: "Config is valid"}
}

var (
	selfTestDigest = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	selfTestKey    = bytes.Repeat([]byte{0x42}, 32)
	selfTestIV     = bytes.Repeat([]byte{0x24}, 16)
)

func checkSelfTest() CheckResult {
	const name = "Self-test"

	sum, err := digest.Sum("sha256", []byte("abc"))
	if err != nil || sum.Hex() != selfTestDigest {
		return CheckResult{Name: name, Status: CheckError, Message: fmt.Sprintf("sha256 known answer failed: %v", err)}
	}

	plain := []byte("luacrypto self-test")
	ct, err := symmetric.EncryptBytes("aes-256-cbc", plain, selfTestKey, selfTestIV, symmetric.WithKeyPolicy(symmetric.Strict))
	if err == nil {
		var pt []byte
		pt, err = symmetric.DecryptBytes("aes-256-cbc", ct, selfTestKey, selfTestIV, symmetric.WithKeyPolicy(symmetric.Strict))
		if err == nil && !bytes.Equal(pt, plain) {
			err = fmt.Errorf("round trip mismatch")
		}
	}
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: "aes-256-cbc round trip failed: " + err.Error()}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Digest and cipher known answers match"}
}

func checkRandom(pool *random.Pool) CheckResult {
	if !pool.Status() {
		return CheckResult{
			Name:       "Random pool",
			Status:     CheckError,
			Message:    "Random pool is not seeded",
			Suggestion: "Run 'luacrypto rand load' with a seed file",
		}
	}
	return CheckResult{Name: "Random pool", Status: CheckPass, Message: "Random pool is seeded"}
}

// checkPrivateFile warns when path is readable by group or others. A
// missing file warns only when suggestion is set.
func checkPrivateFile(name, path, suggestion string) CheckResult {
	if path == "" {
		return CheckResult{Name: name, Status: CheckWarning, Message: "No path configured"}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if suggestion == "" {
			return CheckResult{Name: name, Status: CheckPass, Message: path + " not created yet"}
		}
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    path + " does not exist",
			Suggestion: "Run '" + suggestion + "'",
		}
	}
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s has permissions %04o", path, perm),
			Suggestion: "Run 'chmod 600 " + path + "'",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: path + " is private"}
}
