package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the semantic classification of a scanned file.
type Kind int

const (
	KindUnknown Kind = iota // No recognizable naming pattern
	KindEpisode             // TV episode file
	KindMovie               // Movie file
)

func (k Kind) String() string {
	switch k {
	case KindEpisode:
		return "episode"
	case KindMovie:
		return "movie"
	default:
		return "unknown"
	}
}

// MediaFile is one candidate discovered by a scan. Instances are ephemeral:
// built per run, discarded once the move completes or fails.
type MediaFile struct {
	// Path is the source path relative to the scan root.
	Path string
	// Size is the file size in bytes at scan time.
	Size int64
}

// Name returns the base filename.
func (f MediaFile) Name() string {
	return filepath.Base(f.Path)
}

// ParentDir returns the name of the enclosing directory, or "" at the root.
func (f MediaFile) ParentDir() string {
	dir := filepath.Dir(f.Path)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return filepath.Base(dir)
}

// GrandparentDir returns the name of the parent's parent directory, or "".
func (f MediaFile) GrandparentDir() string {
	dir := filepath.Dir(filepath.Dir(f.Path))
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return filepath.Base(dir)
}

// EpisodeInfo holds the identifying metadata for a TV episode.
// Season 0 is valid (specials); Episode is always ≥ 1.
type EpisodeInfo struct {
	Show    string
	Season  int
	Episode int
	Title   string // optional; "" when the source name carried none
}

// MovieInfo holds the identifying metadata for a movie.
type MovieInfo struct {
	Title string
	Year  string // 4-digit release year
}

// Classification is the result of classifying a MediaFile. Exactly one of
// Episode or Movie is non-nil, matching Kind.
type Classification struct {
	Kind    Kind
	Episode *EpisodeInfo
	Movie   *MovieInfo
}

// UnparseableNameError reports a file whose name matched no known pattern,
// carrying the original path for operator review.
type UnparseableNameError struct {
	Path   string
	Reason string
}

func (e *UnparseableNameError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unparseable name: %s", e.Path)
	}
	return fmt.Sprintf("unparseable name: %s (%s)", e.Path, e.Reason)
}

// Classify applies the prioritized pattern rules to a scanned file.
//
// A season/episode marker always wins over a year match because episode
// filenames routinely contain a coincidental 4-digit number. When the
// filename itself carries no show title, the enclosing directory acts as the
// season hint and its parent as the show-title hint.
func Classify(f MediaFile) (*Classification, error) {
	stem := stemOf(f.Name())

	if season, episode, start, end, ok := FindSeasonEpisode(stem); ok {
		info, err := classifyEpisode(f, stem, season, episode, start, end)
		if err != nil {
			return nil, err
		}
		return &Classification{Kind: KindEpisode, Episode: info}, nil
	}

	if title, year, ok := classifyMovie(stem); ok {
		return &Classification{Kind: KindMovie, Movie: &MovieInfo{Title: title, Year: year}}, nil
	}

	return nil, &UnparseableNameError{Path: f.Path}
}

func classifyEpisode(f MediaFile, stem string, season, episode, start, end int) (*EpisodeInfo, error) {
	if episode < 1 {
		return nil, &UnparseableNameError{Path: f.Path, Reason: "episode number must be at least 1"}
	}

	show, _ := ExtractNameAndYear(strings.TrimRight(stem[:start], ".-_ "))
	if show == "" {
		// No show title in the filename: fall back to directory context.
		// The enclosing directory is the season hint, its parent the show.
		show = showFromContext(f)
		if show == "" {
			return nil, &UnparseableNameError{Path: f.Path, Reason: "no show title in name or directory context"}
		}
	}

	title := CleanEpisodeTitle(stem[end:])

	return &EpisodeInfo{
		Show:    show,
		Season:  season,
		Episode: episode,
		Title:   title,
	}, nil
}

func classifyMovie(stem string) (title, year string, ok bool) {
	title, year = ExtractNameAndYear(stem)
	if year == "" || title == "" {
		return "", "", false
	}
	return title, year, true
}

// showFromContext derives a show title from the directory hierarchy. A parent
// that is itself a season folder ("Season 02") names no show, so the
// grandparent is consulted; otherwise the parent name is used directly.
func showFromContext(f MediaFile) string {
	parent := f.ParentDir()
	if parent == "" {
		return ""
	}

	if _, isSeason := ExtractSeasonNumber(parent); isSeason {
		if grand := f.GrandparentDir(); grand != "" {
			show, _ := ExtractNameAndYear(grand)
			return show
		}
		return ""
	}

	show, _ := ExtractNameAndYear(parent)
	return show
}

func stemOf(name string) string {
	ext := ExtractExtension(name)
	if ext == "" {
		return name
	}
	return name[:len(name)-len(ext)]
}
