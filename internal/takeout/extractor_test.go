package takeout

import (
	"strings"
	"testing"
)

const fixtureHeader = `<!DOCTYPE html><html><body><div class="mdl-grid">`
const fixtureFooter = `</div></body></html>`

func bodyCell(inner string) string {
	return `<div class="outer-cell mdl-cell mdl-cell--12-col mdl-shadow--2dp"><div class="mdl-grid">` +
		`<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">` + inner + `</div>` +
		`</div></div>`
}

func bodyCellWithCaption(inner, caption string) string {
	return `<div class="outer-cell mdl-cell mdl-cell--12-col mdl-shadow--2dp"><div class="mdl-grid">` +
		`<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">` + inner + `</div>` +
		`<div class="content-cell mdl-cell mdl-cell--12-col mdl-typography--caption">` + caption + `</div>` +
		`</div></div>`
}

func extract(t *testing.T, cells ...string) []Fragment {
	t.Helper()
	doc := fixtureHeader + strings.Join(cells, "") + fixtureFooter
	frags, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return frags
}

// TestExtractBasicWatch tests the common case: video anchor, channel anchor,
// trailing timestamp
func TestExtractBasicWatch(t *testing.T) {
	frags := extract(t, bodyCell(
		`Watched <a href="https://www.youtube.com/watch?v=dQw4w9WgXcQ">Never Gonna Give You Up</a><br>`+
			`<a href="https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw">Rick Astley</a><br>`+
			`Mar 15, 2024, 9:30:12 PM EST`))

	if len(frags) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(frags))
	}
	f := frags[0]
	if f.Verb != VerbWatched {
		t.Errorf("Verb = %q, want %q", f.Verb, VerbWatched)
	}
	if f.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("VideoURL = %q", f.VideoURL)
	}
	if f.ChannelTitle != "Rick Astley" {
		t.Errorf("ChannelTitle = %q", f.ChannelTitle)
	}
	if f.RawTimestamp != "Mar 15, 2024, 9:30:12 PM EST" {
		t.Errorf("RawTimestamp = %q", f.RawTimestamp)
	}
}

// TestExtractListened tests the YouTube Music verb phrase
func TestExtractListened(t *testing.T) {
	frags := extract(t, bodyCell(
		`Listened to <a href="https://music.youtube.com/watch?v=abc123DEF45">Some Song</a><br>`+
			`<a href="https://www.youtube.com/channel/UCmusic">Some Artist</a><br>`+
			`Jan 2, 2023, 7:05:09 AM UTC`))

	if len(frags) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(frags))
	}
	if frags[0].Verb != VerbListened {
		t.Errorf("Verb = %q, want %q", frags[0].Verb, VerbListened)
	}
}

// TestExtractDropsAds tests that a fragment whose caption cell carries the
// ad marker is dropped entirely
func TestExtractDropsAds(t *testing.T) {
	frags := extract(t,
		bodyCell(`Watched <a href="https://www.youtube.com/watch?v=realvideo01">Real Video</a><br>Mar 15, 2024, 9:30:12 PM EST`),
		bodyCellWithCaption(
			`Watched <a href="https://www.youtube.com/watch?v=advideo0001">Buy Stuff Now</a><br>Mar 15, 2024, 9:31:00 PM EST`,
			`Products:<br>YouTube<br>Details:<br>From Google Ads`),
		bodyCell(`Watched <a href="https://www.youtube.com/watch?v=realvideo02">Another Real Video</a><br>Mar 15, 2024, 9:32:00 PM EST`),
	)

	if len(frags) != 2 {
		t.Fatalf("Expected 2 fragments after dropping the ad, got %d", len(frags))
	}
	for _, f := range frags {
		if strings.Contains(f.Title, "Buy Stuff") {
			t.Errorf("Ad fragment leaked through: %+v", f)
		}
	}
}

// TestExtractMissingChannel tests a fragment with no channel block (deleted
// channel)
func TestExtractMissingChannel(t *testing.T) {
	frags := extract(t, bodyCell(
		`Watched <a href="https://www.youtube.com/watch?v=orphaned123">Orphaned Video</a><br>` +
			`Mar 15, 2024, 9:30:12 PM EST`))

	if len(frags) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(frags))
	}
	f := frags[0]
	if f.HasChannel() {
		t.Errorf("Expected no channel, got %q / %q", f.ChannelTitle, f.ChannelURL)
	}
	if f.RawTimestamp != "Mar 15, 2024, 9:30:12 PM EST" {
		t.Errorf("RawTimestamp = %q", f.RawTimestamp)
	}
}

// TestExtractPrivateVideo tests a fragment with bare title text and no video
// anchor
func TestExtractPrivateVideo(t *testing.T) {
	frags := extract(t, bodyCell(
		`Watched a video that has been removed<br>` +
			`Mar 15, 2024, 9:30:12 PM EST`))

	if len(frags) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(frags))
	}
	f := frags[0]
	if f.HasVideoLink() {
		t.Errorf("Expected no video link, got %q", f.VideoURL)
	}
	if f.Title != "a video that has been removed" {
		t.Errorf("Title = %q", f.Title)
	}
}

// TestExtractUnknownVerbDropped tests that non-event cells are dropped
func TestExtractUnknownVerbDropped(t *testing.T) {
	frags := extract(t,
		bodyCell(`Searched for <a href="https://www.youtube.com/results?q=cats">cats</a><br>Mar 15, 2024, 9:30:12 PM EST`),
		bodyCell(`Watched <a href="https://www.youtube.com/watch?v=keepme12345">Keep Me</a><br>Mar 15, 2024, 9:31:00 PM EST`),
	)

	if len(frags) != 1 || frags[0].Title != "Keep Me" {
		t.Fatalf("Expected only the Watched fragment, got %+v", frags)
	}
}

// TestExtractPreservesOrder tests document order in the output
func TestExtractPreservesOrder(t *testing.T) {
	frags := extract(t,
		bodyCell(`Watched <a href="https://www.youtube.com/watch?v=firstvideo1">First</a><br>Mar 15, 2024, 9:30:12 PM EST`),
		bodyCell(`Watched <a href="https://www.youtube.com/watch?v=secondvide2">Second</a><br>Mar 15, 2024, 9:31:00 PM EST`),
		bodyCell(`Watched <a href="https://www.youtube.com/watch?v=thirdvideo3">Third</a><br>Mar 15, 2024, 9:32:00 PM EST`),
	)

	want := []string{"First", "Second", "Third"}
	if len(frags) != len(want) {
		t.Fatalf("Expected %d fragments, got %d", len(want), len(frags))
	}
	for i, title := range want {
		if frags[i].Title != title {
			t.Errorf("fragment %d: Title = %q, want %q", i, frags[i].Title, title)
		}
	}
}

// TestExtractNonTakeoutDocument tests that unrelated HTML yields no fragments
// rather than an error
func TestExtractNonTakeoutDocument(t *testing.T) {
	frags, err := Extract(strings.NewReader(`<html><body><p>Hello world</p></body></html>`))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(frags) != 0 {
		t.Errorf("Expected no fragments, got %d", len(frags))
	}
}

// TestExtractDropsEmptyEvent tests that a cell with a verb but neither title
// nor video link yields no fragment
func TestExtractDropsEmptyEvent(t *testing.T) {
	frags := extract(t, bodyCell(`Watched<br>Mar 15, 2024, 9:30:12 PM EST`))
	if len(frags) != 0 {
		t.Errorf("Expected no fragments, got %+v", frags)
	}
}
