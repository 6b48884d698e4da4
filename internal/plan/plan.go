// Package plan turns classified media files into normalization plans: the
// pure mapping from each source file to its required destination, computed
// and collision-checked for the whole batch before any filesystem mutation.
package plan

import (
	"path/filepath"

	"github.com/Digital-Shane/library-tidy/internal/config"
	"github.com/Digital-Shane/library-tidy/internal/core"
	"github.com/Digital-Shane/library-tidy/internal/media"
)

// Status is the lifecycle state of a normalization plan.
type Status int

const (
	StatusReady       Status = iota // Target computed, safe to execute
	StatusNoOp                      // Already at its target path
	StatusConflict                  // Target collides with another plan
	StatusUnparseable               // Classification failed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusNoOp:
		return "no-op"
	case StatusConflict:
		return "conflict"
	case StatusUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Plan maps one source file to its normalized target path.
type Plan struct {
	Source string // absolute source path
	Target string // absolute target path; "" when unparseable
	Kind   media.Kind
	Status Status
	Reason string // populated for conflict/unparseable
}

// Item pairs a scanned file with its classification result. Class is nil
// exactly when Err is non-nil.
type Item struct {
	File  media.MediaFile
	Class *media.Classification
	Err   error
}

// Builder computes target paths from the configured layout templates.
// Build is pure: identical input always yields the identical plan.
type Builder struct {
	cfg      *config.LibraryConfig
	srcRoot  string
	destRoot string
}

// NewBuilder returns a Builder rooted at the given scan and destination
// directories (absolute paths).
func NewBuilder(cfg *config.LibraryConfig, srcRoot, destRoot string) *Builder {
	return &Builder{cfg: cfg, srcRoot: srcRoot, destRoot: destRoot}
}

// Build computes the plan for a single classified file.
func (b *Builder) Build(item Item) Plan {
	source := filepath.Join(b.srcRoot, item.File.Path)

	if item.Err != nil {
		return Plan{
			Source: source,
			Status: StatusUnparseable,
			Reason: item.Err.Error(),
		}
	}

	ext := media.ExtractExtension(item.File.Name())

	var target string
	switch item.Class.Kind {
	case media.KindEpisode:
		target = b.episodeTarget(item.Class.Episode, ext)
	case media.KindMovie:
		target = b.movieTarget(item.Class.Movie, ext)
	}

	p := Plan{
		Source: source,
		Target: target,
		Kind:   item.Class.Kind,
		Status: StatusReady,
	}
	if p.Source == p.Target {
		p.Status = StatusNoOp
	}
	return p
}

// BuildAll plans the entire batch and marks target collisions. Every
// colliding plan is demoted to Conflict; none of them may execute.
func (b *Builder) BuildAll(items []Item) []Plan {
	plans := make([]Plan, 0, len(items))
	for _, item := range items {
		plans = append(plans, b.Build(item))
	}
	MarkCollisions(plans)
	return plans
}

func (b *Builder) episodeTarget(info *media.EpisodeInfo, ext string) string {
	ctx := config.TemplateContext{
		Show:    info.Show,
		Season:  info.Season,
		Episode: info.Episode,
		Title:   info.Title,
	}
	return filepath.Join(b.destRoot,
		sanitized(b.cfg.ShowsDir),
		sanitized(info.Show),
		sanitized(b.cfg.ApplySeasonFolderTemplate(ctx)),
		sanitized(b.cfg.ApplyEpisodeTemplate(ctx))+ext,
	)
}

func (b *Builder) movieTarget(info *media.MovieInfo, ext string) string {
	ctx := config.TemplateContext{Title: info.Title, Year: info.Year}
	name := sanitized(b.cfg.ApplyMovieTemplate(ctx))
	return filepath.Join(b.destRoot, sanitized(b.cfg.MoviesDir), name, name+ext)
}

// MarkCollisions demotes every set of plans sharing a target path to
// Conflict. NoOp plans keep their target reserved so a second file can never
// plan onto an already-correct one.
func MarkCollisions(plans []Plan) {
	byTarget := make(map[string][]int, len(plans))
	for i, p := range plans {
		if p.Target == "" {
			continue
		}
		byTarget[p.Target] = append(byTarget[p.Target], i)
	}

	for target, indexes := range byTarget {
		if len(indexes) < 2 {
			continue
		}
		for _, i := range indexes {
			if plans[i].Status == StatusUnparseable {
				continue
			}
			plans[i].Status = StatusConflict
			plans[i].Reason = "target path collides with another file: " + target
		}
	}
}

func sanitized(segment string) string {
	clean, err := core.SanitizeName(segment)
	if err != nil {
		return segment
	}
	return clean
}
