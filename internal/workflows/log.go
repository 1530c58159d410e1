package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

const (
	entryTimeFormat = "2006-01-02T15:04:05.000000Z"
	dateFormat      = "2006-01-02"
)

// LogOptions configures the audit log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters by operation name, comma-separated.
	Operations string

	// Algorithm filters by algorithm name.
	Algorithm string

	// Since and Until bound entries by date (YYYY-MM-DD, inclusive).
	Since string
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Path    string
	Entries []audit.Entry

	// Total is the entry count before filtering.
	Total int
}

// AuditLog reads and filters the audit trail.
//
// Returns ErrInvalidArgument when auditing is disabled or a date does not
// parse, and ErrFile when the log cannot be read.
func AuditLog(ctx context.Context, opts LogOptions) (*LogResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path := config.AuditPath()
	if path == "" {
		return nil, fmt.Errorf("%w: auditing is disabled in the config", kerrors.ErrInvalidArgument)
	}

	entries, err := audit.ReadEntries(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}

	result := &LogResult{Path: path, Total: len(entries)}

	filtered := entries
	if opts.Operations != "" {
		filtered = filterByOperations(filtered, strings.Split(opts.Operations, ","))
	}
	if opts.Algorithm != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.Algorithm, opts.Algorithm)
		})
	}
	if opts.Since != "" {
		since, err := time.Parse(dateFormat, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidArgument)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.Before(since)
		})
	}
	if opts.Until != "" {
		until, err := time.Parse(dateFormat, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidArgument)
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.After(until)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit keeps the most recent entries either way.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var out []audit.Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(strings.TrimSpace(op))] = true
	}
	return filterEntries(entries, func(e audit.Entry) bool {
		return opSet[strings.ToLower(e.Operation)]
	})
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse(entryTimeFormat, e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}

// FormatDateTime formats an entry timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, ok := entryTime(audit.Entry{Timestamp: ts})
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarises the operation-specific fields of an entry.
func FormatDetails(e audit.Entry) string {
	var parts []string
	if e.Algorithm != "" {
		parts = append(parts, e.Algorithm)
	}
	if e.KeyType != "" {
		if e.Bits > 0 {
			parts = append(parts, fmt.Sprintf("%s-%d", e.KeyType, e.Bits))
		} else {
			parts = append(parts, e.KeyType)
		}
	}
	if e.Result != "" {
		parts = append(parts, e.Result)
	}
	if e.Bytes > 0 {
		parts = append(parts, fmt.Sprintf("%d bytes", e.Bytes))
	}
	switch n := len(e.Paths); {
	case n > 3:
		parts = append(parts, fmt.Sprintf("%d files", n))
	case n > 0:
		parts = append(parts, strings.Join(e.Paths, ", "))
	}
	return strings.Join(parts, " ")
}
