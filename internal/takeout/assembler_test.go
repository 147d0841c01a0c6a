package takeout

import (
	"testing"
	"time"
)

// TestAssembleCalendarAtomicity tests that a parseable timestamp populates
// watchedAt and every calendar field together
func TestAssembleCalendarAtomicity(t *testing.T) {
	frag := Fragment{
		Verb:         VerbWatched,
		Title:        "Calendar Check",
		VideoURL:     "https://www.youtube.com/watch?v=calcheck123",
		RawTimestamp: "Mar 15, 2024, 9:30:12 PM EST",
	}

	record := Assemble(frag, 0)

	if record.WatchedAt == nil {
		t.Fatal("Expected watchedAt to be set")
	}
	if record.Year == nil || record.Month == nil || record.Week == nil ||
		record.DayOfWeek == nil || record.Hour == nil || record.YoyKey == nil {
		t.Fatal("Calendar fields must be populated together with watchedAt")
	}
	if !record.CalendarConsistent() {
		t.Error("Calendar fields inconsistent with watchedAt")
	}

	// 9:30 PM EST on Mar 15 2024 is 02:30 UTC on Mar 16, a Saturday.
	utc := record.WatchedAt.UTC()
	if utc.Day() != 16 || utc.Hour() != 2 {
		t.Errorf("Expected Mar 16 02:30 UTC, got %v", utc)
	}
	if *record.Year != 2024 || *record.Month != 3 || *record.DayOfWeek != int(time.Saturday) {
		t.Errorf("Calendar fields wrong: year=%d month=%d dow=%d", *record.Year, *record.Month, *record.DayOfWeek)
	}
	if *record.YoyKey != "2024-03" {
		t.Errorf("YoyKey = %q, want 2024-03", *record.YoyKey)
	}
}

// TestAssembleUnparseableTimestamp tests that a failed parse leaves watchedAt
// and every calendar field nil while preserving the raw text
func TestAssembleUnparseableTimestamp(t *testing.T) {
	frag := Fragment{
		Verb:         VerbWatched,
		Title:        "Unknown Zone",
		VideoURL:     "https://www.youtube.com/watch?v=badzone1234",
		RawTimestamp: "Mar 15, 2024, 9:30:12 PM CEST",
	}

	record := Assemble(frag, 0)

	if record.WatchedAt != nil {
		t.Errorf("Expected nil watchedAt, got %v", *record.WatchedAt)
	}
	if record.Year != nil || record.Month != nil || record.Week != nil ||
		record.DayOfWeek != nil || record.Hour != nil || record.YoyKey != nil {
		t.Error("Calendar fields must stay nil when the timestamp fails to parse")
	}
	if record.RawTimestamp != "Mar 15, 2024, 9:30:12 PM CEST" {
		t.Errorf("RawTimestamp not preserved: %q", record.RawTimestamp)
	}
	if !record.CalendarConsistent() {
		t.Error("All-nil calendar should be consistent")
	}
}

// TestAssembleIDDeterminism tests that the same fragment yields the same id
// across batches regardless of ordinal
func TestAssembleIDDeterminism(t *testing.T) {
	frag := Fragment{
		Verb:         VerbWatched,
		Title:        "Stable",
		VideoURL:     "https://www.youtube.com/watch?v=stableID123",
		ChannelTitle: "Channel",
		RawTimestamp: "Mar 15, 2024, 9:30:12 PM EST",
	}

	a := Assemble(frag, 0)
	b := Assemble(frag, 999)
	if a.ID != b.ID {
		t.Errorf("ID depends on ordinal: %s vs %s", a.ID, b.ID)
	}
}

// TestAssembleDistinctTimestampsDistinctIDs tests that rewatches of the same
// video at different times get different ids
func TestAssembleDistinctTimestampsDistinctIDs(t *testing.T) {
	base := Fragment{
		Verb:         VerbWatched,
		Title:        "Rewatch",
		VideoURL:     "https://www.youtube.com/watch?v=rewatch1234",
		RawTimestamp: "Mar 15, 2024, 9:30:12 PM EST",
	}
	later := base
	later.RawTimestamp = "Mar 16, 2024, 9:30:12 PM EST"

	if Assemble(base, 0).ID == Assemble(later, 1).ID {
		t.Error("Distinct timestamps must produce distinct ids")
	}
}

// TestAssemblePrivateVideoIdentity tests the fallback identity for fragments
// without a video link: content hash over title/channel and timestamp, still
// stable across re-parses
func TestAssemblePrivateVideoIdentity(t *testing.T) {
	frag := Fragment{
		Verb:         VerbWatched,
		Title:        "a private video",
		RawTimestamp: "Mar 15, 2024, 9:30:12 PM EST",
	}

	a := Assemble(frag, 3)
	b := Assemble(frag, 42)
	if a.ID != b.ID {
		t.Errorf("Private-video id must not depend on ordinal: %s vs %s", a.ID, b.ID)
	}

	other := frag
	other.Title = "a different private video"
	if Assemble(other, 3).ID == a.ID {
		t.Error("Different private videos must get different ids")
	}
}

// TestAssembleProduct tests verb-to-product mapping
func TestAssembleProduct(t *testing.T) {
	watched := Assemble(Fragment{Verb: VerbWatched, Title: "x"}, 0)
	if watched.Product != "youtube" {
		t.Errorf("Watched product = %q", watched.Product)
	}
	listened := Assemble(Fragment{Verb: VerbListened, Title: "x"}, 0)
	if listened.Product != "youtube_music" {
		t.Errorf("Listened product = %q", listened.Product)
	}
}

// TestVideoIDFromURL tests id extraction across URL shapes
func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/abc123", "abc123"},
		{"https://www.youtube.com/embed/abc123", "abc123"},
		{"https://music.youtube.com/watch?v=xyz789", "xyz789"},
		{"https://example.com/watch?v=notyoutube", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := VideoIDFromURL(test.url); got != test.want {
			t.Errorf("VideoIDFromURL(%q) = %q, want %q", test.url, got, test.want)
		}
	}
}

// TestChannelIDFromURL tests channel id extraction across URL shapes
func TestChannelIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/channel/UCabc123def", "UCabc123def"},
		{"https://www.youtube.com/channel/UCabc123def/videos", "UCabc123def"},
		{"https://www.youtube.com/user/legacyname", "legacyname"},
		{"https://www.youtube.com/@somehandle", "@somehandle"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := ChannelIDFromURL(test.url); got != test.want {
			t.Errorf("ChannelIDFromURL(%q) = %q, want %q", test.url, got, test.want)
		}
	}
}

// TestAssembleChannelID tests that a channel URL yields the channel id while
// its absence leaves the field nil
func TestAssembleChannelID(t *testing.T) {
	frag := Fragment{
		Verb:         VerbWatched,
		Title:        "With Channel",
		VideoURL:     "https://www.youtube.com/watch?v=chantest123",
		ChannelTitle: "Some Channel",
		ChannelURL:   "https://www.youtube.com/channel/UCchan456",
	}

	record := Assemble(frag, 0)
	if record.ChannelID == nil || *record.ChannelID != "UCchan456" {
		t.Errorf("ChannelID = %v, want UCchan456", record.ChannelID)
	}

	bare := Assemble(Fragment{Verb: VerbWatched, Title: "No Channel"}, 0)
	if bare.ChannelID != nil {
		t.Errorf("Expected nil ChannelID without a channel URL, got %q", *bare.ChannelID)
	}
}

// TestAssembleNoTimestampContamination tests that two fragments with distinct
// raw timestamp text resolve to distinct instants
func TestAssembleNoTimestampContamination(t *testing.T) {
	a := Assemble(Fragment{Verb: VerbWatched, Title: "A", RawTimestamp: "Mar 15, 2024, 9:30:12 PM EST"}, 0)
	b := Assemble(Fragment{Verb: VerbWatched, Title: "B", RawTimestamp: "Mar 15, 2024, 9:30:13 PM EST"}, 1)

	if a.WatchedAt == nil || b.WatchedAt == nil {
		t.Fatal("Both timestamps should parse")
	}
	if a.WatchedAt.Equal(*b.WatchedAt) {
		t.Errorf("Distinct raw timestamps resolved to the same instant: %v", *a.WatchedAt)
	}
}
