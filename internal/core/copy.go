package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Digital-Shane/library-tidy/internal/verify"
)

// partialSuffix marks in-flight copies. Files carrying it are skipped by the
// scanner and cleaned up when a copy fails.
const partialSuffix = ".part"

// copyVerify copies src to dst via a partial file, verifies the copy, and
// renames it into place. The source is never modified; any failure removes
// the partial file and returns a CopyVerifyError.
func copyVerify(ctx context.Context, src, dst string, probe ProbeFunc) error {
	part := dst + partialSuffix

	if err := copyToPartial(ctx, src, part); err != nil {
		_ = os.Remove(part)
		return &CopyVerifyError{Source: src, Target: dst, Detail: err.Error()}
	}

	if err := verify.Compare(src, part); err != nil {
		_ = os.Remove(part)
		return &CopyVerifyError{Source: src, Target: dst, Detail: err.Error()}
	}

	if probe != nil {
		if err := probe(ctx, part); err != nil {
			_ = os.Remove(part)
			return &CopyVerifyError{Source: src, Target: dst, Detail: err.Error()}
		}
	}

	if err := os.Rename(part, dst); err != nil {
		_ = os.Remove(part)
		return &CopyVerifyError{Source: src, Target: dst, Detail: fmt.Sprintf("finalize: %v", err)}
	}

	return nil
}

func copyToPartial(ctx context.Context, src, part string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	partFile, err := os.OpenFile(part, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create partial: %w", err)
	}

	if _, err := io.Copy(partFile, contextReader{ctx, srcFile}); err != nil {
		_ = partFile.Close()
		return fmt.Errorf("copy content: %w", err)
	}

	if err := partFile.Sync(); err != nil {
		_ = partFile.Close()
		return fmt.Errorf("sync: %w", err)
	}

	if err := partFile.Close(); err != nil {
		return fmt.Errorf("close partial: %w", err)
	}

	return nil
}

// contextReader aborts a long copy when the context is canceled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
