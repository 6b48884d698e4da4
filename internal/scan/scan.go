// Package scan walks a directory tree and collects the media files eligible
// for normalization.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Digital-Shane/library-tidy/internal/media"
	"github.com/Digital-Shane/treeview"
)

// traversalCap bounds the walk so a runaway symlink loop or an accidental
// scan of / cannot hang the tool.
const traversalCap = 2_000_000

// Options controls a scan.
type Options struct {
	// MaxDepth limits directory descent. Zero means unlimited.
	MaxDepth int
	// ExtraExtensions adds file extensions (with leading dot) beyond the
	// built-in media set.
	ExtraExtensions []string
	// ExcludeDirs names directories skipped wherever they appear, used to
	// keep an in-tree destination library out of its own scan.
	ExcludeDirs []string
	// Progress, when set, is invoked with the running file count.
	Progress func(filesSeen int)
}

type treeBuilderFunc func(context.Context, string, bool, ...treeview.Option[treeview.FileInfo]) (*treeview.Tree[treeview.FileInfo], error)

var scanTreeBuilder treeBuilderFunc = treeview.NewTreeFromFileSystem

// Scan walks root and returns every media file found, paths relative to root
// in deterministic order. Hidden files, partial downloads, and sample files
// are skipped.
func Scan(ctx context.Context, root string, opts Options) ([]media.MediaFile, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}

	excluded := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		excluded[d] = struct{}{}
	}
	extra := make(map[string]struct{}, len(opts.ExtraExtensions))
	for _, e := range opts.ExtraExtensions {
		extra[strings.ToLower(e)] = struct{}{}
	}

	filesSeen := 0
	buildOpts := []treeview.Option[treeview.FileInfo]{
		treeview.WithTraversalCap[treeview.FileInfo](traversalCap),
		treeview.WithFilterFunc(func(fi treeview.FileInfo) bool {
			return keep(fi, excluded, extra)
		}),
		treeview.WithProgressCallback[treeview.FileInfo](func(_ int, n *treeview.Node[treeview.FileInfo]) {
			if n.Data().IsDir() {
				return
			}
			filesSeen++
			if opts.Progress != nil {
				opts.Progress(filesSeen)
			}
		}),
	}
	if opts.MaxDepth > 0 {
		buildOpts = append(buildOpts, treeview.WithMaxDepth[treeview.FileInfo](opts.MaxDepth))
	}

	tree, err := scanTreeBuilder(ctx, rootAbs, false, buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootAbs, err)
	}

	var files []media.MediaFile
	for ni := range tree.All(ctx) {
		data := ni.Node.Data()
		if data.IsDir() {
			continue
		}
		rel, err := filepath.Rel(rootAbs, data.Path)
		if err != nil {
			continue
		}
		files = append(files, media.MediaFile{Path: rel, Size: data.FileInfo.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func keep(fi treeview.FileInfo, excluded, extra map[string]struct{}) bool {
	name := fi.Name()

	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "._") {
		return false
	}

	if fi.IsDir() {
		_, skip := excluded[name]
		return !skip
	}

	if !fi.FileInfo.Mode().IsRegular() {
		return false
	}

	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".part") {
		return false
	}
	// In-flight downloads and extraction scratch files.
	if strings.HasSuffix(lower, ".!qb") || strings.HasSuffix(lower, ".tmp") {
		return false
	}
	if strings.Contains(lower, "sample") {
		return false
	}

	if media.IsMedia(name) {
		return true
	}
	_, ok := extra[strings.ToLower(filepath.Ext(name))]
	return ok
}
