package media

import "testing"

func TestExtractNameAndYear(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		wantName string
		wantYear string
	}{
		{"the.motorcycle.diaries.2004", "the motorcycle diaries", "2004"},
		{"Heat (1995)", "Heat", "1995"},
		{"The_Matrix_1999_1080p_BluRay", "The Matrix", "1999"},
		{"Fringe", "Fringe", ""},
		{"Better.Call.Saul", "Better Call Saul", ""},
		{"Inception.2010.720p.x264", "Inception", "2010"},
		{"", "", ""},
	}
	for _, tc := range tests {
		name, year := ExtractNameAndYear(tc.in)
		if name != tc.wantName || year != tc.wantYear {
			t.Errorf("ExtractNameAndYear(%q) = (%q, %q), want (%q, %q)",
				tc.in, name, year, tc.wantName, tc.wantYear)
		}
	}
}

func TestCleanEpisodeTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{".Pilot", "Pilot"},
		{" Pilot (1080p AMZN WEB-DL)", "Pilot"},
		{".letters.of.transit", "letters of transit"},
		{"- The One Where It Ends", "The One Where It Ends"},
		{".1080p.WEB-DL", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := CleanEpisodeTitle(tc.in); got != tc.want {
			t.Errorf("CleanEpisodeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractExtension(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"movie.mkv", ".mkv"},
		{"show.S01E01.en.srt", ".en.srt"},
		{"show.S01E01.srt", ".srt"},
		{"song.mp3", ".mp3"},
		{"noext", ""},
	}
	for _, tc := range tests {
		if got := ExtractExtension(tc.in); got != tc.want {
			t.Errorf("ExtractExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
