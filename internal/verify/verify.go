// Package verify checks that a copied media file matches its source before
// the source is allowed to be deleted.
package verify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"gopkg.in/vansante/go-ffprobe.v2"
)

// probeFunc defines the function signature used to execute ffprobe.
type probeFunc func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error)

var probe probeFunc = ffprobe.ProbeURL

// Digest returns a file's size and SHA-256 checksum.
func Digest(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return 0, "", fmt.Errorf("read %s: %w", path, err)
	}

	return size, hex.EncodeToString(h.Sum(nil)), nil
}

// Compare confirms dst is byte-identical to src by size and SHA-256.
func Compare(src, dst string) error {
	srcSize, srcSum, err := Digest(src)
	if err != nil {
		return err
	}
	dstSize, dstSum, err := Digest(dst)
	if err != nil {
		return err
	}

	if srcSize != dstSize {
		return fmt.Errorf("size mismatch: %s is %d bytes, %s is %d bytes", src, srcSize, dst, dstSize)
	}
	if srcSum != dstSum {
		return fmt.Errorf("checksum mismatch between %s and %s", src, dst)
	}
	return nil
}

// Probe confirms ffprobe can open the file and find at least one stream.
// Catches truncated or corrupted containers that still hash cleanly when the
// corruption happened upstream of the copy.
func Probe(ctx context.Context, path string) error {
	data, err := probe(ctx, path)
	if err != nil {
		return fmt.Errorf("ffprobe %s: %w", path, err)
	}
	if data == nil || len(data.Streams) == 0 {
		return fmt.Errorf("ffprobe %s: no streams found", path)
	}
	return nil
}
