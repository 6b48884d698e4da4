package media

import "testing"

func TestIsVideo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"movie.mkv", true},
		{"clip.MP4", true},
		{"trailer.webm", true},
		{"show.m4v", true},
		{"notes.txt", false},
		{"archive.zip", false},
	}
	for _, tc := range tests {
		if got := IsVideo(tc.in); got != tc.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsAudio(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"song.mp3", true},
		{"track.FLAC", true},
		{"audiobook.m4b", true},
		{"movie.mkv", false},
		{"cover.jpg", false},
	}
	for _, tc := range tests {
		if got := IsAudio(tc.in); got != tc.want {
			t.Errorf("IsAudio(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsSubtitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"episode.en.srt", true},
		{"episode.SRT", true},
		{"movie.sub", true},
		{"movie.mkv", false},
		{"notes.txt", false},
	}
	for _, tc := range tests {
		if got := IsSubtitle(tc.in); got != tc.want {
			t.Errorf("IsSubtitle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFindSeasonEpisode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in              string
		season, episode int
		ok              bool
	}{
		{"Fringe S01E01 Pilot", 1, 1, true},
		{"fringe.s04e19.letters.of.transit", 4, 19, true},
		{"Show 1x02", 1, 2, true},
		{"Breaking.Bad.S05E14", 5, 14, true},
		{"Long.Running.S01E105", 1, 105, true},
		{"Show.1920x1080.S01E05", 1, 5, true},
		{"1280x720 Show 2x03", 2, 3, true},
		{"the.motorcycle.diaries.2004", 0, 0, false},
		{"1920x1080", 0, 0, false},
		{"randomfile", 0, 0, false},
	}
	for _, tc := range tests {
		season, episode, _, _, ok := FindSeasonEpisode(tc.in)
		if season != tc.season || episode != tc.episode || ok != tc.ok {
			t.Errorf("FindSeasonEpisode(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.in, season, episode, ok, tc.season, tc.episode, tc.ok)
		}
	}
}

func TestExtractSeasonNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"Season 02", 2, true},
		{"s1", 1, true},
		{"Season 00", 0, true},
		{"Summer 2004", 0, false},
		{"Specials", 0, false},
		{"Fringe", 0, false},
	}
	for _, tc := range tests {
		got, ok := ExtractSeasonNumber(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ExtractSeasonNumber(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractYear(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		year string
		ok   bool
	}{
		{"the motorcycle diaries 2004", "2004", true},
		{"Heat (1995)", "1995", true},
		{"Band of Brothers 2001-2001", "2001", true},
		{"episode 2160p", "", false},
		{"no year here", "", false},
	}
	for _, tc := range tests {
		year, _, ok := ExtractYear(tc.in)
		if year != tc.year || ok != tc.ok {
			t.Errorf("ExtractYear(%q) = (%q, %v), want (%q, %v)", tc.in, year, ok, tc.year, tc.ok)
		}
	}
}
