// Package timeparse converts the free-text timestamps found in Takeout
// watch-history exports into unambiguous UTC instants.
//
// Every call is independent: the package keeps no cursor, no last-match
// offset, and no mutable state of any kind between calls. The compiled
// patterns below are safe for concurrent use and carry no position; each
// invocation copies its submatches into fresh strings before doing anything
// with them. Sharing match state between records is exactly how two unrelated
// rows end up with one timestamp.
package timeparse

import (
	"regexp"
	"strings"
	"time"
)

// zoneOffsets maps the timezone abbreviations Takeout emits to fixed UTC
// offsets in seconds east. An abbreviation missing from this table is a parse
// failure, never a guess: a wrong-but-silent offset corrupts every downstream
// aggregate with no visible error, which is worse than a null.
var zoneOffsets = map[string]int{
	"UTC": 0,
	"GMT": 0,

	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,

	"AKST": -9 * 3600,
	"AKDT": -8 * 3600,
	"HST":  -10 * 3600,
	"HDT":  -9 * 3600,
}

// layouts are the written forms the export uses, with and without the comma
// before the time. Any trailing zone abbreviation is stripped before matching;
// a timestamp with no abbreviation at all is taken as UTC.
var layouts = []string{
	"Jan 2, 2006, 3:04:05 PM",
	"Jan 2, 2006 3:04:05 PM",
	"01/02/2006, 3:04:05 PM",
	"01/02/2006 3:04:05 PM",
}

// trailingZone matches a trailing abbreviation token, excluding AM/PM which
// would otherwise look like a two-letter zone.
var trailingZone = regexp.MustCompile(`^(.*?)[\s]+([A-Z]{2,5})$`)

// spaceNormalizer collapses the narrow no-break and no-break spaces Takeout
// uses before AM/PM into plain spaces.
var spaceNormalizer = strings.NewReplacer(" ", " ", " ", " ")

// Normalize parses a raw timestamp string into a UTC instant. The second
// return value reports success; on failure the first value is the zero time
// and the caller keeps the record with a null watch time.
func Normalize(raw string) (time.Time, bool) {
	text := strings.TrimSpace(spaceNormalizer.Replace(raw))
	if text == "" {
		return time.Time{}, false
	}

	datePart := text
	loc := time.UTC

	if m := trailingZone.FindStringSubmatch(text); m != nil {
		// Copy submatches out immediately; nothing downstream may hold a
		// reference into the shared match result.
		head := string([]byte(m[1]))
		abbr := string([]byte(m[2]))

		// A bare AM/PM tail means no zone abbreviation at all, which the
		// export writes as UTC. Anything else must be in the offset table:
		// a wrong-but-silent offset is worse than a null.
		if abbr != "AM" && abbr != "PM" {
			offset, known := zoneOffsets[abbr]
			if !known {
				return time.Time{}, false
			}
			datePart = head
			loc = time.FixedZone(abbr, offset)
		}
	}

	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, datePart, loc)
		if err != nil {
			continue
		}
		return t.UTC(), true
	}

	return time.Time{}, false
}

// KnownZone reports whether an abbreviation is in the offset table. Exposed
// for data-quality reporting, not for parsing shortcuts.
func KnownZone(abbr string) bool {
	_, ok := zoneOffsets[abbr]
	return ok
}
