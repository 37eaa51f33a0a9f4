// Package eventlog records break events. The break log keeps exactly one
// record: writing a new break replaces the previous one, so the file always
// holds the most recent break only.
package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const breakLogFileName = "last_break.csv"

// BreakLog stores the most recent break record.
type BreakLog struct {
	path string
}

// New creates a break log backed by the given file path.
func New(path string) *BreakLog {
	return &BreakLog{path: path}
}

// Record overwrites the log with a single `timestamp,seconds` line for the
// break that just started. The timestamp is RFC 3339 and the break length
// is seconds as a decimal string.
func (l *BreakLog) Record(at time.Time, breakLen time.Duration) error {
	line := at.Format(time.RFC3339) + "," + strconv.FormatFloat(breakLen.Seconds(), 'f', 1, 64) + "\n"

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("write break record: %w", err)
	}
	return nil
}

// DefaultPath resolves the break log location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, breakLogFileName), nil
}
