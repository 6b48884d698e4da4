package config

import (
	"fmt"
	"strings"
)

// TemplateContext supplies the values the naming templates can reference.
type TemplateContext struct {
	Show    string
	Title   string
	Year    string
	Season  int
	Episode int
}

// ApplySeasonFolderTemplate renders the season folder name.
func (cfg *LibraryConfig) ApplySeasonFolderTemplate(ctx TemplateContext) string {
	return resolve(cfg.SeasonFolder, ctx)
}

// ApplyEpisodeTemplate renders an episode filename (without extension).
// When the context carries no episode title, the " - {title}" segment is
// dropped entirely rather than leaving a dangling separator.
func (cfg *LibraryConfig) ApplyEpisodeTemplate(ctx TemplateContext) string {
	template := cfg.Episode
	if ctx.Title == "" {
		template = strings.ReplaceAll(template, " - {title}", "")
		template = strings.ReplaceAll(template, "{title}", "")
	}
	return resolve(template, ctx)
}

// ApplyMovieTemplate renders a movie name (folder and file share it).
func (cfg *LibraryConfig) ApplyMovieTemplate(ctx TemplateContext) string {
	return resolve(cfg.Movie, ctx)
}

func resolve(template string, ctx TemplateContext) string {
	r := strings.NewReplacer(
		"{show}", ctx.Show,
		"{title}", ctx.Title,
		"{year}", ctx.Year,
		"{season}", PadNumber(ctx.Season),
		"{episode}", PadNumber(ctx.Episode),
	)
	return strings.TrimSpace(r.Replace(template))
}

// PadNumber zero-pads to a minimum of two digits; wider values keep every
// digit (episode 105 renders as "105", never truncated).
func PadNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}
