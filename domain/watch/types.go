// Package watch defines the normalized watch-history record model shared by
// the parser, the merger, the aggregation engine, and the storage layer.
package watch

import (
	"time"

	"watchlens/domain/core"
)

// Product identifies which service a viewing event came from.
type Product string

const (
	ProductYouTube      Product = "youtube"
	ProductYouTubeMusic Product = "youtube_music"
)

// WatchRecord is one normalized viewing event. Records are immutable after
// assembly: the merger copies, it never edits, and the aggregation engine
// treats them as read-only input.
//
// WatchedAt and the calendar fields are nullable together: either the raw
// timestamp resolved to an instant and every calendar field is populated, or
// none of them are. RawTimestamp always keeps the source text verbatim.
type WatchRecord struct {
	ID           string     `json:"id" db:"id"`
	WatchedAt    *time.Time `json:"watchedAt" db:"watched_at"`
	RawTimestamp string     `json:"rawTimestamp" db:"raw_timestamp"`

	VideoID      *string `json:"videoId" db:"video_id"`
	VideoTitle   *string `json:"videoTitle" db:"video_title"`
	VideoURL     *string `json:"videoUrl" db:"video_url"`
	ChannelTitle *string `json:"channelTitle" db:"channel_title"`
	ChannelURL   *string `json:"channelUrl" db:"channel_url"`
	ChannelID    *string `json:"channelId" db:"channel_id"`

	Product Product  `json:"product" db:"product"`
	Topics  []string `json:"topics"`

	Year      *int    `json:"year" db:"year"`
	Month     *int    `json:"month" db:"month"`
	Week      *int    `json:"week" db:"week"`
	DayOfWeek *int    `json:"dayOfWeek" db:"day_of_week"`
	Hour      *int    `json:"hour" db:"hour"`
	YoyKey    *string `json:"yoyKey" db:"yoy_key"`
}

// HasWatchTime reports whether the raw timestamp resolved to an instant.
func (r WatchRecord) HasWatchTime() bool {
	return r.WatchedAt != nil
}

// Title returns the video title, or "" when the event has none.
func (r WatchRecord) Title() string {
	if r.VideoTitle == nil {
		return ""
	}
	return *r.VideoTitle
}

// Channel returns the channel title, or "" when channel metadata was absent.
func (r WatchRecord) Channel() string {
	if r.ChannelTitle == nil {
		return ""
	}
	return *r.ChannelTitle
}

// Video returns the video id, or "" when the event refers to a private or
// deleted video.
func (r WatchRecord) Video() string {
	if r.VideoID == nil {
		return ""
	}
	return *r.VideoID
}

// ImportMeta describes one uploaded history file and the outcome of merging
// its records into the stored history.
type ImportMeta struct {
	ID             core.ImportID  `json:"id" db:"id"`
	Filename       string         `json:"filename" db:"filename"`
	FileSize       int64          `json:"fileSize" db:"file_size"`
	FilePath       string         `json:"-" db:"file_path"`
	Status         ImportStatus   `json:"status" db:"status"`
	ErrorMessage   string         `json:"errorMessage,omitempty" db:"error_message"`
	RecordCount    int            `json:"recordCount" db:"record_count"`
	DuplicateCount int            `json:"duplicateCount" db:"duplicate_count"`
	ImportedAt     core.Timestamp `json:"importedAt" db:"imported_at"`
}

// ImportStatus tracks an upload through the background import worker.
type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "pending"
	ImportStatusParsing   ImportStatus = "parsing"
	ImportStatusMerging   ImportStatus = "merging"
	ImportStatusComplete  ImportStatus = "complete"
	ImportStatusCancelled ImportStatus = "cancelled"
	ImportStatusFailed    ImportStatus = "failed"
)
