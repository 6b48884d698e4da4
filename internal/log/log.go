// Package log journals every filesystem operation a run performs as a JSON
// session file, so runs can be audited and undone.
package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type OperationType string

const (
	OpMove      OperationType = "move"
	OpCopy      OperationType = "copy"
	OpCreateDir OperationType = "create_dir"
)

// OperationLog is one journal entry. Failed operations are recorded too;
// undo skips them.
type OperationLog struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Type       OperationType `json:"type"`
	SourcePath string        `json:"source_path"`
	DestPath   string        `json:"dest_path,omitempty"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
}

type SessionMetadata struct {
	CommandArgs   []string  `json:"command_args"`
	WorkingDir    string    `json:"working_dir"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	TotalOps      int       `json:"total_operations"`
	SuccessfulOps int       `json:"successful_operations"`
	FailedOps     int       `json:"failed_operations"`
}

// LogSession is one run's journal: metadata plus operations in the order
// they executed.
type LogSession struct {
	Metadata   SessionMetadata `json:"metadata"`
	Operations []OperationLog  `json:"operations"`
}

// One session per process, guarded by sessionMutex.
var (
	currentSession *LogSession
	sessionMutex   sync.Mutex
	loggingEnabled = true
)

// Initialize enables or disables journaling for this run and prunes journal
// files older than the retention window.
func Initialize(enabled bool, retentionDays int) {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	loggingEnabled = enabled
	if !enabled {
		return
	}
	if err := pruneOldLogs(retentionDays); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to clean up old logs: %v\n", err)
	}
}

// StartSession opens a fresh session for the given command invocation.
func StartSession(command string, args []string) error {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	if !loggingEnabled {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	now := time.Now()
	currentSession = &LogSession{
		Metadata: SessionMetadata{
			CommandArgs: append([]string{command}, args...),
			WorkingDir:  wd,
			Timestamp:   now,
			SessionID:   fmt.Sprintf("%s_%03d", now.Format("20060102_150405"), now.Nanosecond()/1000000),
		},
		Operations: []OperationLog{},
	}
	return nil
}

// EndSession computes the session stats and writes the journal to disk.
func EndSession() error {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	if !loggingEnabled || currentSession == nil {
		return nil
	}

	updateStats()
	err := WriteSession(currentSession)
	currentSession = nil
	return err
}

// LogMove journals a move (rename or copy-then-delete) operation.
func LogMove(sourcePath, destPath string, success bool, err error) {
	LogOperation(OpMove, sourcePath, destPath, success, err)
}

// LogCopy journals a copy operation where the source is kept.
func LogCopy(sourcePath, destPath string, success bool, err error) {
	LogOperation(OpCopy, sourcePath, destPath, success, err)
}

// LogCreateDir journals a directory creation.
func LogCreateDir(dirPath string, success bool, err error) {
	LogOperation(OpCreateDir, "", dirPath, success, err)
}

// LogOperation appends one entry to the current session. A no-op when
// journaling is disabled or no session is open.
func LogOperation(opType OperationType, sourcePath, destPath string, success bool, err error) {
	sessionMutex.Lock()
	defer sessionMutex.Unlock()

	if !loggingEnabled || currentSession == nil {
		return
	}

	op := OperationLog{
		ID:         fmt.Sprintf("%s_%d", currentSession.Metadata.SessionID, len(currentSession.Operations)),
		Timestamp:  time.Now(),
		Type:       opType,
		SourcePath: sourcePath,
		DestPath:   destPath,
		Success:    success,
	}
	if err != nil {
		op.Error = err.Error()
	}
	currentSession.Operations = append(currentSession.Operations, op)
}

func updateStats() {
	if currentSession == nil {
		return
	}
	m := &currentSession.Metadata
	m.TotalOps = len(currentSession.Operations)
	m.SuccessfulOps = 0
	m.FailedOps = 0
	for _, op := range currentSession.Operations {
		if op.Success {
			m.SuccessfulOps++
		} else {
			m.FailedOps++
		}
	}
}

func logDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".library-tidy", "logs"), nil
}

// WriteSession persists a session as a timestamp-named JSON file, creating
// the journal directory on first use. The timestamp in the filename is what
// makes a reverse name sort newest-first in ReadSessions.
func WriteSession(session *LogSession) error {
	if session == nil {
		return nil
	}

	dir, err := logDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("%s.%03d.json", now.Format("2006-01-02_150405"), now.Nanosecond()/1000000)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

// ReadSession loads one journal file.
func ReadSession(logPath string) (*LogSession, error) {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var session LogSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// ReadSessions returns up to limit sessions, newest first. Corrupted journal
// files are skipped, not fatal.
func ReadSessions(limit int) ([]*LogSession, error) {
	files, err := listLogFiles()
	if err != nil {
		return nil, err
	}

	// Filenames embed the timestamp, so a reverse name sort is newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	sessions := make([]*LogSession, 0, len(files))
	for _, file := range files {
		session, err := ReadSession(file)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func listLogFiles() ([]string, error) {
	dir, err := logDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}
	return files, nil
}

func pruneOldLogs(retentionDays int) error {
	files, err := listLogFiles()
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to remove old log file %s: %v\n", file, err)
		}
	}
	return nil
}
