package log

import (
	"fmt"
	"os"
)

type UndoResult struct {
	Operation OperationLog
	Success   bool
	Error     error
}

// UndoOperation reverses a single journaled operation. Moves are renamed
// back, copies have their destination removed, and created directories are
// removed when empty. Each reversal applies the same never-overwrite rules
// as the forward operation.
func UndoOperation(op OperationLog) UndoResult {
	result := UndoResult{Operation: op}

	switch op.Type {
	case OpMove:
		if op.DestPath == "" {
			result.Error = fmt.Errorf("cannot undo move: destination path missing")
			return result
		}
		if _, err := os.Stat(op.DestPath); os.IsNotExist(err) {
			result.Error = fmt.Errorf("cannot undo move: file %s not found", op.DestPath)
			return result
		}
		if _, err := os.Stat(op.SourcePath); err == nil {
			result.Error = fmt.Errorf("cannot undo move: original path %s already exists", op.SourcePath)
			return result
		}
		if err := os.Rename(op.DestPath, op.SourcePath); err != nil {
			result.Error = fmt.Errorf("failed to move %s back to %s: %w", op.DestPath, op.SourcePath, err)
			return result
		}
		result.Success = true

	case OpCopy:
		if op.DestPath == "" {
			result.Error = fmt.Errorf("cannot undo copy: destination path missing")
			return result
		}
		if _, err := os.Stat(op.DestPath); os.IsNotExist(err) {
			// Already gone, consider it undone.
			result.Success = true
			return result
		}
		// The source was kept, so removing the copy loses nothing.
		if _, err := os.Stat(op.SourcePath); os.IsNotExist(err) {
			result.Error = fmt.Errorf("cannot undo copy: source %s no longer exists", op.SourcePath)
			return result
		}
		if err := os.Remove(op.DestPath); err != nil {
			result.Error = fmt.Errorf("failed to remove copy %s: %w", op.DestPath, err)
			return result
		}
		result.Success = true

	case OpCreateDir:
		if op.DestPath == "" {
			result.Error = fmt.Errorf("cannot undo directory creation: path missing")
			return result
		}
		info, err := os.Stat(op.DestPath)
		if os.IsNotExist(err) {
			result.Success = true
			return result
		}
		if err != nil {
			result.Error = err
			return result
		}
		if !info.IsDir() {
			result.Error = fmt.Errorf("path %s is not a directory", op.DestPath)
			return result
		}
		entries, err := os.ReadDir(op.DestPath)
		if err != nil {
			result.Error = fmt.Errorf("failed to read directory %s: %w", op.DestPath, err)
			return result
		}
		if len(entries) > 0 {
			result.Error = fmt.Errorf("cannot remove directory %s: not empty", op.DestPath)
			return result
		}
		if err := os.Remove(op.DestPath); err != nil {
			result.Error = fmt.Errorf("failed to remove directory %s: %w", op.DestPath, err)
			return result
		}
		result.Success = true

	default:
		result.Error = fmt.Errorf("unknown operation type: %s", op.Type)
	}

	return result
}

// UndoSession replays a session's successful operations in reverse order.
func UndoSession(session *LogSession) (successful int, failed int, errors []error) {
	for i := len(session.Operations) - 1; i >= 0; i-- {
		op := session.Operations[i]
		if !op.Success {
			continue
		}

		result := UndoOperation(op)
		if result.Success {
			successful++
		} else {
			failed++
			if result.Error != nil {
				errors = append(errors, result.Error)
			}
		}
	}

	return successful, failed, errors
}

// FindLatestSession returns the most recent journaled session.
func FindLatestSession() (*LogSession, error) {
	sessions, err := ReadSessions(1)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions found")
	}
	return sessions[0], nil
}
