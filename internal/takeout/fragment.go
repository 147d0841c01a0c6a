// Package takeout parses Google Takeout watch-history.html exports into
// normalized watch records. The extractor isolates one fragment per viewing
// event, the assembler turns each fragment into a WatchRecord, and the
// processor runs the whole batch with progress reporting and cooperative
// cancellation.
package takeout

// Verb phrases the export uses to introduce an event. Fragments opening with
// neither phrase are not viewing events and are dropped.
const (
	VerbWatched  = "Watched"
	VerbListened = "Listened to"
)

// Fragment holds the raw fields physically present in one HTML event block,
// before any normalization. Every field except Verb is optional: ads carry no
// title or channel, private videos carry a title but no link, deleted channels
// leave the channel block out entirely. Empty string means the field was
// absent from the source.
type Fragment struct {
	// Verb is the phrase that opened the fragment (VerbWatched or
	// VerbListened); it determines the product.
	Verb string

	// Title is the link text of the video anchor, or the plain text after
	// the verb when the export rendered no anchor (private/removed videos).
	Title string

	// VideoURL is the href of the video anchor, when one was present.
	VideoURL string

	// ChannelTitle and ChannelURL come from the channel anchor; both empty
	// when the channel block is missing.
	ChannelTitle string
	ChannelURL   string

	// RawTimestamp is the trailing free-text timestamp, verbatim.
	RawTimestamp string
}

// HasVideoLink reports whether the fragment carried a video anchor.
func (f Fragment) HasVideoLink() bool {
	return f.VideoURL != ""
}

// HasChannel reports whether the fragment carried a channel block.
func (f Fragment) HasChannel() bool {
	return f.ChannelTitle != "" || f.ChannelURL != ""
}
