package plan

import (
	"errors"
	"strings"
	"testing"

	"github.com/Digital-Shane/library-tidy/internal/config"
	"github.com/Digital-Shane/library-tidy/internal/media"
	"github.com/google/go-cmp/cmp"
)

func testBuilder() *Builder {
	return NewBuilder(config.DefaultConfig(), "/mnt/incoming", "/mnt/library")
}

func classify(t *testing.T, path string) Item {
	t.Helper()
	f := media.MediaFile{Path: path}
	class, err := media.Classify(f)
	return Item{File: f, Class: class, Err: err}
}

func TestBuildEpisodeTarget(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	got := b.Build(classify(t, "Fringe.S01E01.Pilot.mkv"))

	want := Plan{
		Source: "/mnt/incoming/Fringe.S01E01.Pilot.mkv",
		Target: "/mnt/library/Shows/Fringe/Season 01/Fringe - s01e01 - Pilot.mkv",
		Kind:   media.KindEpisode,
		Status: StatusReady,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMovieTarget(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	got := b.Build(classify(t, "the.motorcycle.diaries.2004.mkv"))

	want := Plan{
		Source: "/mnt/incoming/the.motorcycle.diaries.2004.mkv",
		Target: "/mnt/library/Movies/the motorcycle diaries (2004)/the motorcycle diaries (2004).mkv",
		Kind:   media.KindMovie,
		Status: StatusReady,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEpisodeWithoutTitle(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	got := b.Build(classify(t, "Battlestar Galactica/Season 02/s02e03.mkv"))

	wantTarget := "/mnt/library/Shows/Battlestar Galactica/Season 02/Battlestar Galactica - s02e03.mkv"
	if got.Target != wantTarget {
		t.Errorf("Build() target = %q, want %q", got.Target, wantTarget)
	}
	if got.Status != StatusReady {
		t.Errorf("Build() status = %v, want StatusReady", got.Status)
	}
}

func TestBuildUnparseable(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	got := b.Build(classify(t, "randomfile.mkv"))

	if got.Status != StatusUnparseable {
		t.Fatalf("Build() status = %v, want StatusUnparseable", got.Status)
	}
	if got.Target != "" {
		t.Errorf("Build() target = %q, want empty", got.Target)
	}
	if !strings.Contains(got.Reason, "randomfile.mkv") {
		t.Errorf("Build() reason = %q, want original filename included", got.Reason)
	}
}

func TestBuildNoOp(t *testing.T) {
	t.Parallel()

	// Destination root equals scan root and the file already sits at its
	// computed target.
	b := NewBuilder(config.DefaultConfig(), "/mnt/library", "/mnt/library")
	got := b.Build(classify(t, "Shows/Fringe/Season 01/Fringe - s01e01 - Pilot.mkv"))

	if got.Status != StatusNoOp {
		t.Errorf("Build() status = %v, want StatusNoOp (target %q)", got.Status, got.Target)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	item := classify(t, "Fringe.S01E01.Pilot.mkv")

	first := b.Build(item)
	second := b.Build(item)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Build() not deterministic (-first +second):\n%s", diff)
	}
}

func TestBuildSanitizesInvalidCharacters(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	got := b.Build(classify(t, "Show? S01E01 Who Is It.mkv"))

	if strings.ContainsAny(got.Target[1:], "?*<>|\"") {
		t.Errorf("Build() target contains invalid characters: %q", got.Target)
	}
}

func TestBuildAllMarksCollisions(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	plans := b.BuildAll([]Item{
		classify(t, "Fringe.S01E01.Pilot.mkv"),
		classify(t, "dupes/Fringe S01E01 Pilot.mkv"),
		classify(t, "the.motorcycle.diaries.2004.mkv"),
	})

	if len(plans) != 3 {
		t.Fatalf("BuildAll() returned %d plans, want 3", len(plans))
	}
	for i := 0; i < 2; i++ {
		if plans[i].Status != StatusConflict {
			t.Errorf("plans[%d].Status = %v, want StatusConflict", i, plans[i].Status)
		}
		if plans[i].Reason == "" {
			t.Errorf("plans[%d].Reason is empty, want collision explanation", i)
		}
	}
	if plans[2].Status != StatusReady {
		t.Errorf("plans[2].Status = %v, want StatusReady", plans[2].Status)
	}
}

func TestMarkCollisionsReservesNoOpTargets(t *testing.T) {
	t.Parallel()

	b := NewBuilder(config.DefaultConfig(), "/mnt/library", "/mnt/library")
	plans := b.BuildAll([]Item{
		classify(t, "Shows/Fringe/Season 01/Fringe - s01e01 - Pilot.mkv"),
		classify(t, "incoming/Fringe.S01E01.Pilot.mkv"),
	})

	// The in-place file reserves the target, so both demote to conflict
	// instead of the newcomer silently planning onto an occupied path.
	for i, p := range plans {
		if p.Status != StatusConflict {
			t.Errorf("plans[%d].Status = %v, want StatusConflict", i, p.Status)
		}
	}
}

func TestNewReport(t *testing.T) {
	t.Parallel()

	plans := []Plan{
		{Source: "a", Status: StatusReady},
		{Source: "b", Status: StatusNoOp},
		{Source: "c", Status: StatusUnparseable, Reason: "no marker"},
		{Source: "d", Status: StatusConflict, Reason: "collides"},
		{Source: "e", Status: StatusReady},
	}
	outcomes := []Outcome{
		{Plan: plans[0], Moved: true},
		{Plan: plans[4], Err: errors.New("permission denied")},
	}

	r := NewReport(plans, outcomes)

	if r.Moved != 1 || r.NoOps != 1 || r.Unparseable != 1 || r.Conflicts != 1 || r.Failed != 1 {
		t.Errorf("NewReport() counts = moved %d, noops %d, unparseable %d, conflicts %d, failed %d; want 1 each",
			r.Moved, r.NoOps, r.Unparseable, r.Conflicts, r.Failed)
	}
	if r.Total() != 5 {
		t.Errorf("Total() = %d, want 5", r.Total())
	}

	var sb strings.Builder
	r.Render(&sb)
	out := sb.String()
	for _, want := range []string{"1 moved", "1 unparseable", "1 conflicts", "1 failed", "no marker", "collides"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}
}
