package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUndoMoveOperation(t *testing.T) {
	tempDir := t.TempDir()
	oldPath := filepath.Join(tempDir, "show.s01e01.mkv")
	newPath := filepath.Join(tempDir, "Show - s01e01.mkv")

	if err := os.WriteFile(oldPath, []byte("video"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatalf("Failed to move test file: %v", err)
	}

	op := OperationLog{
		ID:         "test_op",
		Timestamp:  time.Now(),
		Type:       OpMove,
		SourcePath: oldPath,
		DestPath:   newPath,
		Success:    true,
	}

	result := UndoOperation(op)
	if !result.Success {
		t.Fatalf("UndoOperation failed: %v", result.Error)
	}

	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		t.Error("Original file should exist after undo")
	}
	if _, err := os.Stat(newPath); err == nil {
		t.Error("Moved file should not exist after undo")
	}
}

func TestUndoMoveRefusesOccupiedSource(t *testing.T) {
	tempDir := t.TempDir()
	oldPath := filepath.Join(tempDir, "old.mkv")
	newPath := filepath.Join(tempDir, "new.mkv")

	for _, p := range []string{oldPath, newPath} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", p, err)
		}
	}

	op := OperationLog{Type: OpMove, SourcePath: oldPath, DestPath: newPath, Success: true}
	result := UndoOperation(op)
	if result.Success {
		t.Error("Undo should refuse when the original path is occupied")
	}
	if result.Error == nil {
		t.Error("Undo should report an error for occupied original path")
	}
}

func TestUndoCopyOperation(t *testing.T) {
	tempDir := t.TempDir()
	srcPath := filepath.Join(tempDir, "movie.mkv")
	dstPath := filepath.Join(tempDir, "Movie (2004).mkv")

	for _, p := range []string{srcPath, dstPath} {
		if err := os.WriteFile(p, []byte("video"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", p, err)
		}
	}

	op := OperationLog{Type: OpCopy, SourcePath: srcPath, DestPath: dstPath, Success: true}
	result := UndoOperation(op)
	if !result.Success {
		t.Fatalf("UndoOperation failed: %v", result.Error)
	}

	if _, err := os.Stat(dstPath); err == nil {
		t.Error("Copy should be removed after undo")
	}
	if _, err := os.Stat(srcPath); err != nil {
		t.Errorf("Source should be untouched after undo: %v", err)
	}
}

func TestUndoCopyRefusesWhenSourceGone(t *testing.T) {
	tempDir := t.TempDir()
	dstPath := filepath.Join(tempDir, "only-copy.mkv")
	if err := os.WriteFile(dstPath, []byte("video"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	op := OperationLog{
		Type:       OpCopy,
		SourcePath: filepath.Join(tempDir, "gone.mkv"),
		DestPath:   dstPath,
		Success:    true,
	}
	result := UndoOperation(op)
	if result.Success {
		t.Error("Undo should refuse to remove the only remaining copy")
	}
	if _, err := os.Stat(dstPath); err != nil {
		t.Errorf("Copy should survive a refused undo: %v", err)
	}
}

func TestUndoCreateDirOperation(t *testing.T) {
	tempDir := t.TempDir()
	dirPath := filepath.Join(tempDir, "Season 01")

	if err := os.Mkdir(dirPath, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	op := OperationLog{Type: OpCreateDir, DestPath: dirPath, Success: true}
	result := UndoOperation(op)
	if !result.Success {
		t.Fatalf("UndoOperation failed: %v", result.Error)
	}

	if _, err := os.Stat(dirPath); err == nil {
		t.Error("Directory should not exist after undo")
	}
}

func TestUndoCreateDirWithContent(t *testing.T) {
	tempDir := t.TempDir()
	dirPath := filepath.Join(tempDir, "Season 01")

	if err := os.Mkdir(dirPath, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dirPath, "ep.mkv"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file in directory: %v", err)
	}

	op := OperationLog{Type: OpCreateDir, DestPath: dirPath, Success: true}
	result := UndoOperation(op)
	if result.Success {
		t.Error("Undo should refuse to remove a non-empty directory")
	}
	if _, err := os.Stat(dirPath); err != nil {
		t.Errorf("Non-empty directory should survive undo: %v", err)
	}
}

func TestUndoSessionReverseOrder(t *testing.T) {
	tempDir := t.TempDir()

	// A moved into B's original location, then B moved away. Forward order
	// means replaying in reverse is the only ordering that can succeed.
	a := filepath.Join(tempDir, "a.mkv")
	b := filepath.Join(tempDir, "b.mkv")
	c := filepath.Join(tempDir, "c.mkv")

	if err := os.WriteFile(b, []byte("b"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.Rename(b, c); err != nil {
		t.Fatalf("Failed to move test file: %v", err)
	}
	if err := os.WriteFile(a, []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.Rename(a, b); err != nil {
		t.Fatalf("Failed to move test file: %v", err)
	}

	session := &LogSession{
		Operations: []OperationLog{
			{Type: OpMove, SourcePath: b, DestPath: c, Success: true},
			{Type: OpMove, SourcePath: a, DestPath: b, Success: true},
			{Type: OpMove, SourcePath: "skipped", DestPath: "skipped", Success: false},
		},
	}

	successful, failed, errs := UndoSession(session)
	if failed != 0 {
		t.Fatalf("UndoSession failed %d operations: %v", failed, errs)
	}
	if successful != 2 {
		t.Errorf("UndoSession undid %d operations, want 2", successful)
	}

	for path, content := range map[string]string{a: "a", b: "b"} {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) = %v", path, err)
		}
		if string(got) != content {
			t.Errorf("Content of %q = %q, want %q", path, got, content)
		}
	}
	if _, err := os.Stat(c); err == nil {
		t.Error("Intermediate path should not exist after undo")
	}
}
