package media

import "strings"

// ExtractNameAndYear cleans a raw name fragment and splits off a release year
// when one is present. Separators (dots, underscores, dashes) collapse to
// single spaces and encoding tags are stripped; the original casing of the
// remaining words is preserved verbatim.
func ExtractNameAndYear(name string) (string, string) {
	if name == "" {
		return "", ""
	}

	formatted := name
	year := ""

	if y, idx, ok := ExtractYear(formatted); ok {
		year = y
		// Keep only the part before the year marker.
		formatted = strings.TrimRight(formatted[:idx], " ([{-_")
	}

	formatted = normalizeSeparators(formatted)
	formatted = encodingTagsRe.ReplaceAllString(formatted, "")
	formatted = strings.TrimSpace(strings.Join(strings.Fields(formatted), " "))

	return formatted, year
}

// CleanEpisodeTitle tidies the text that follows a season/episode marker:
// release-group suffixes, encoding tags, and stray separators are removed.
// An empty result means the filename carried no usable episode title.
func CleanEpisodeTitle(raw string) string {
	if raw == "" {
		return ""
	}

	// Strip tags before touching separators so hyphenated tags like WEB-DL
	// still match their patterns.
	title := trailingGroupRe.ReplaceAllString(raw, "")
	title = encodingTagsRe.ReplaceAllString(title, "")
	title = normalizeSeparators(title)
	title = emptyBracketsRe.ReplaceAllString(title, "")
	title = strings.Join(strings.Fields(title), " ")
	title = strings.Trim(title, "-–—|: ")

	return strings.TrimSpace(title)
}

// normalizeSeparators replaces dot, underscore, and dash separators with
// single spaces.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// ExtractExtension extracts the file extension including the dot. Subtitle
// files keep their language code, e.g. "episode.en.srt" returns ".en.srt".
func ExtractExtension(filename string) string {
	if IsSubtitle(filename) {
		if suffix := subtitleSuffix(filename); suffix != "" {
			return suffix
		}
	}
	if dot := strings.LastIndex(filename, "."); dot != -1 {
		return filename[dot:]
	}
	return ""
}

func subtitleSuffix(filename string) string {
	loc := subtitleRe.FindStringIndex(filename)
	if len(loc) == 0 {
		return ""
	}
	lang := langPattern.FindString(filename[:loc[0]])
	return lang + filename[loc[0]:]
}
