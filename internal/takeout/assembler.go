package takeout

import (
	"fmt"

	"watchlens/domain/core"
	"watchlens/domain/watch"
	"watchlens/internal/timeparse"
	"watchlens/internal/topics"
)

// Assemble builds the canonical WatchRecord from one extracted fragment.
//
// It calls the timestamp normalizer exactly once, with this fragment's own
// raw text; on failure the record keeps watchedAt nil and the raw text
// verbatim. It never substitutes another fragment's time and never defaults
// to "now". The topic classifier likewise runs once, on this fragment's own
// title and channel. No I/O, no side effects.
//
// ordinal is the fragment's position in the extraction output; it only enters
// the identity when the fragment carries neither a video id nor a raw
// timestamp, so re-parsing the same file reproduces the same ids for the same
// content.
func Assemble(frag Fragment, ordinal int) watch.WatchRecord {
	record := watch.WatchRecord{
		RawTimestamp: frag.RawTimestamp,
		Product:      productForVerb(frag.Verb),
	}

	videoID := VideoIDFromURL(frag.VideoURL)
	if videoID != "" {
		record.VideoID = strPtr(videoID)
	}
	if frag.Title != "" {
		record.VideoTitle = strPtr(frag.Title)
	}
	if frag.VideoURL != "" {
		record.VideoURL = strPtr(frag.VideoURL)
	}
	if frag.ChannelTitle != "" {
		record.ChannelTitle = strPtr(frag.ChannelTitle)
	}
	if frag.ChannelURL != "" {
		record.ChannelURL = strPtr(frag.ChannelURL)
		if channelID := ChannelIDFromURL(frag.ChannelURL); channelID != "" {
			record.ChannelID = strPtr(channelID)
		}
	}

	if frag.RawTimestamp != "" {
		if instant, ok := timeparse.Normalize(frag.RawTimestamp); ok {
			record.SetWatchedAt(instant)
		}
	}

	record.Topics = topics.Classify(frag.Title, frag.ChannelTitle)
	record.ID = recordIdentity(frag, videoID, ordinal)

	return record
}

// recordIdentity derives the stable record id. Preferred key material is
// (videoId, rawTimestamp); a private video without an id falls back to a
// content hash over (title, channel, rawTimestamp) rather than the batch
// ordinal, so re-importing the same private-video event stays deduplicatable.
// The ordinal is the last resort, when the fragment has no timestamp either.
func recordIdentity(frag Fragment, videoID string, ordinal int) string {
	subject := videoID
	if subject == "" {
		subject = frag.Title + "|" + frag.ChannelTitle
	}

	when := frag.RawTimestamp
	if when == "" {
		when = fmt.Sprintf("ordinal:%d", ordinal)
	}

	return core.ComputeRecordHash(subject, when).String()
}

func productForVerb(verb string) watch.Product {
	if verb == VerbListened {
		return watch.ProductYouTubeMusic
	}
	return watch.ProductYouTube
}

func strPtr(s string) *string {
	return &s
}
