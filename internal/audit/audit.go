package audit

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/PolarWolf314/envcrypt/internal/utils"
)

// Dir and File locate the log relative to the package directory.
const (
	Dir  = ".envcrypt"
	File = "audit.jsonl"
)

// clock stamps entries. Tests swap in a fake.
var clock clockwork.Clock = clockwork.NewRealClock()

// Entry represents a single audit log entry. Variable values are never
// recorded, only their names.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	Run       string `json:"run"`  // UUID shared by every entry of one invocation.
	User      string `json:"user"` // OS user running the command.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Vars    []string `json:"vars,omitempty"`    // For generate/scan.
	Output  string   `json:"output,omitempty"`  // For generate/init.
	Format  string   `json:"format,omitempty"`  // Wire version, for generate.
	DryRun  bool     `json:"dry_run,omitempty"` // For generate.
	Binary  string   `json:"binary,omitempty"`  // For scan.
	Leaks   []string `json:"leaks,omitempty"`   // For scan.
	Package string   `json:"package,omitempty"` // For generate/init.
}

// NewEntry returns an entry for op with a fresh run id and the current user.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op, Run: uuid.NewString()}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	return entry
}

// Log appends an entry to the audit log under dir.
// If logging fails the entry is dropped. Operations should not fail just
// because audit logging failed.
func Log(dir string, entry Entry) {
	if dir == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = clock.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	// #nosec G301 -- the log holds names only.
	if err := os.MkdirAll(filepath.Join(dir, Dir), 0755); err != nil {
		return
	}

	// #nosec G302 -- audit log should be readable by team members.
	f, err := os.OpenFile(LogPath(dir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
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

// LogPath returns the path to the audit log file for dir.
func LogPath(dir string) string {
	return filepath.Join(dir, Dir, File)
}

// ReadEntries reads all entries from the audit log under dir.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(dir string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Partial writes leave malformed lines.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
