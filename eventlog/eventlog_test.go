package eventlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordWritesTimestampAndSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_break.csv")
	l := New(path)

	at := time.Date(2024, 3, 1, 9, 10, 0, 0, time.UTC)
	require.NoError(t, l.Record(at, 120*time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01T09:10:00Z,120.0\n", string(data))
}

func TestRecordKeepsOnlyTheMostRecentBreak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_break.csv")
	l := New(path)

	first := time.Date(2024, 3, 1, 9, 10, 0, 0, time.UTC)
	require.NoError(t, l.Record(first, 60*time.Second))

	second := time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)
	require.NoError(t, l.Record(second, 857100*time.Millisecond))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01T11:30:00Z,857.1\n", string(data))
}

func TestRecordCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "last_break.csv")
	l := New(path)

	require.NoError(t, l.Record(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 300*time.Second))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
