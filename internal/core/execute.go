package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/Digital-Shane/library-tidy/internal/log"
)

// ProbeFunc validates a finished copy, e.g. an ffprobe readability check.
type ProbeFunc func(ctx context.Context, path string) error

// MoveOptions configures MoveFile.
type MoveOptions struct {
	// Copy keeps the source in place after a verified copy, the way the
	// original import workflow did.
	Copy bool
	// Probe, when set, runs against the copied file before the source is
	// considered transferred. Only invoked on the copy path.
	Probe ProbeFunc
}

// MoveFile moves src to dst, creating parent directories as needed.
//
// The move is refused when the source has vanished (ErrSourceMissing) or the
// target already exists (ErrTargetExists). Within one filesystem the move is
// an atomic rename; across filesystems it degrades to copy-verify-delete and
// leaves the source untouched unless the verified copy is in place. Every
// step is journaled.
func MoveFile(ctx context.Context, src, dst string, opts MoveOptions) error {
	if src == dst {
		return nil
	}

	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%s: %w", src, ErrSourceMissing)
			log.LogMove(src, dst, false, err)
			return err
		}
		log.LogMove(src, dst, false, err)
		return fmt.Errorf("stat source: %w", err)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.LogCreateDir(dir, false, err)
		return fmt.Errorf("create %s: %w", dir, err)
	}
	log.LogCreateDir(dir, true, nil)

	if _, err := os.Lstat(dst); err == nil {
		err = fmt.Errorf("%s: %w", dst, ErrTargetExists)
		log.LogMove(src, dst, false, err)
		return err
	}

	if opts.Copy {
		if err := copyVerify(ctx, src, dst, opts.Probe); err != nil {
			log.LogCopy(src, dst, false, err)
			return err
		}
		log.LogCopy(src, dst, true, nil)
		return nil
	}

	err := os.Rename(src, dst)
	if err == nil {
		log.LogMove(src, dst, true, nil)
		return nil
	}
	if !isCrossDevice(err) {
		log.LogMove(src, dst, false, err)
		return fmt.Errorf("rename %s: %w", src, err)
	}

	// Cross-filesystem: copy, verify, and only then remove the source.
	if err := copyVerify(ctx, src, dst, opts.Probe); err != nil {
		log.LogMove(src, dst, false, err)
		return err
	}
	if err := os.Remove(src); err != nil {
		// The verified target is in place; only the source cleanup failed.
		err = fmt.Errorf("remove source after verified copy: %w", err)
		log.LogMove(src, dst, false, err)
		return err
	}
	log.LogMove(src, dst, true, nil)
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}
