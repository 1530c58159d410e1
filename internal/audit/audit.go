package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	InstallID string `json:"install,omitempty"`
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Algorithm string   `json:"alg,omitempty"`      // digest, hmac, encrypt, decrypt, sign, verify.
	KeyType   string   `json:"key_type,omitempty"` // pkey generate, sign, verify.
	Bits      int      `json:"bits,omitempty"`     // pkey generate.
	Paths     []string `json:"paths,omitempty"`
	Bytes     int      `json:"bytes,omitempty"` // rand.
	Result    string   `json:"result,omitempty"` // verify.
}

// New returns an entry for op stamped with the install ID.
func New(installID, op string) Entry {
	return Entry{InstallID: installID, Operation: op}
}

// Log appends entry to the log at path. An empty path disables logging.
// Failures are swallowed.
func Log(path string, entry Entry) {
	if path == "" {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampFormat)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i < len(data) && data[i] != '\n' {
			continue
		}
		line := data[start:i]
		start = i + 1
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}
