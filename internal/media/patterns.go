package media

import (
	"regexp"
	"strconv"
)

// Pattern compilation for media filename parsing.
//
// Parsing is deliberately tolerant: community naming conventions vary wildly,
// so we accept several marker forms and derive structured data (season,
// episode, year) to drive canonical output names.
var (
	// seasonEpisodeRe matches combined season/episode markers: S01E02, 1x02, s1e2.
	seasonEpisodeRe = regexp.MustCompile(`(?i)\b[sx]?(\d+)[ex](\d+)\b`)

	// seasonRe matches season tokens like "Season 01", "S01", "s1" in folder names.
	seasonRe = regexp.MustCompile(`(?i)\b(?:s|season)\.? *(\d+)\b`)

	// yearRe extracts a 4-digit year (optionally the first of a year range).
	// The leading guard rejects digits glued to the year so resolutions like
	// 2160p or an episode id 102004 never read as years.
	yearRe = regexp.MustCompile(`(?:^|[^\d])((19|20)\d{2})(?:[\s\-–—]+(?:19|20)\d{2})?(?:[^\d]|$)`)

	// videoRe matches video file extensions used to include media files.
	videoRe = regexp.MustCompile(`(?i)\.(mp4|mkv|avi|mov|wmv|flv|webm|mpeg|mpg|m4v|3gp|vob|ts|mts|m2ts|rmvb|divx)$`)

	// audioRe matches audio file extensions.
	audioRe = regexp.MustCompile(`(?i)\.(mp3|flac|m4a|m4b|aac|ogg|opus|wav|wma|aiff?)$`)

	// subtitleRe matches subtitle file extensions.
	subtitleRe = regexp.MustCompile(`(?i)\.(srt|sub|idx|ass|ssa|smi|vtt|sbv|sup|ttml)$`)

	// langPattern matches trailing language codes before a subtitle extension: .en, .eng, .en-US.
	langPattern = regexp.MustCompile(`(\.[a-zA-Z]{2,3}(?:[-_][a-zA-Z]{2,4})?)$`)

	// encodingTagsRe removes codec/resolution/source tags to isolate titles.
	encodingTagsRe = regexp.MustCompile(`(?i)\b(?:HD|HDR|DV|x265|x264|H\.?264|H\.?265|HEVC|AVC|AAC|AC3|DD|DTS|FLAC|MP3|WEB-?DL|WEBRip|BluRay|BDRip|DVDRip|HDTV|720p|1080p|2160p|4K|UHD|SDR|10bit|8bit|PROPER|REPACK|iNTERNAL|LiMiTED|UNRATED|EXTENDED|DiRECTORS?\.?CUT|THEATRICAL|COMPLETE|MULTI|DUAL|DUBBED|SUBBED|SUB|RETAIL|WS|FS|NTSC|PAL|UNCUT|UNCENSORED)\b`)

	// trailingGroupRe strips a trailing parenthesized or bracketed quality
	// suffix, e.g. "Pilot (1080p AMZN)" or "Pilot [WEB]".
	trailingGroupRe = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]\s*$`)

	// emptyBracketsRe cleans up brackets left hollow after tag removal.
	emptyBracketsRe = regexp.MustCompile(`\s*[\(\[\{<]\s*[\)\]\}>]`)
)

// IsVideo reports whether filename has a recognized video extension.
func IsVideo(filename string) bool {
	return videoRe.MatchString(filename)
}

// IsAudio reports whether filename has a recognized audio extension.
func IsAudio(filename string) bool {
	return audioRe.MatchString(filename)
}

// IsSubtitle reports whether filename has a recognized subtitle extension.
func IsSubtitle(filename string) bool {
	return subtitleRe.MatchString(filename)
}

// IsMedia reports whether filename is a candidate for normalization.
func IsMedia(filename string) bool {
	return IsVideo(filename) || IsAudio(filename) || IsSubtitle(filename)
}

// ExtractSeasonNumber extracts a season number from a directory name.
// Returns the season number and true when found.
func ExtractSeasonNumber(input string) (int, bool) {
	m := seasonRe.FindStringSubmatch(input)
	if len(m) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0, false
	}
	// Reject 4-digit captures that are almost certainly years ("Summer 2004").
	if n >= 1900 && n <= 2100 {
		return 0, false
	}
	return n, true
}

// FindSeasonEpisode locates a combined season/episode marker in the input.
// It returns the parsed numbers plus the start and end byte offsets of the
// marker, or ok=false when no marker is present. Candidates outside a sane
// range are skipped rather than ending the search, so a resolution token
// like "1920x1080" before the real marker never hides it.
func FindSeasonEpisode(input string) (season, episode, start, end int, ok bool) {
	for _, loc := range seasonEpisodeRe.FindAllStringSubmatchIndex(input, -1) {
		s, err1 := strconv.Atoi(input[loc[2]:loc[3]])
		e, err2 := strconv.Atoi(input[loc[4]:loc[5]])
		if err1 != nil || err2 != nil {
			continue
		}
		// A bare "1995" would otherwise satisfy the x-form; require a sane range.
		if s > 300 || e > 1000 || e < 1 {
			continue
		}
		return s, e, loc[0], loc[1], true
	}
	return 0, 0, 0, 0, false
}

// ExtractYear finds the first plausible 4-digit release year in the input.
// Returns the year string and the byte offset where it starts.
func ExtractYear(input string) (year string, index int, ok bool) {
	m := yearRe.FindStringSubmatchIndex(input)
	if m == nil {
		return "", 0, false
	}
	return input[m[2]:m[3]], m[2], true
}
