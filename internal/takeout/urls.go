package takeout

import (
	"net/url"
	"strings"
)

// VideoIDFromURL pulls the video identifier out of any of the URL shapes the
// export uses for the same platform: the standard watch URL (youtube.com and
// music.youtube.com) and the short-link form (youtu.be). Returns "" when the
// URL carries no recognizable id.
func VideoIDFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		// Shorts and embeds put the id in the path instead.
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
			}
		}
	case "youtu.be":
		return firstPathSegment(strings.TrimPrefix(u.Path, "/"))
	}
	return ""
}

// ChannelIDFromURL extracts a stable channel identifier from a channel URL:
// the UC id from /channel/ paths, or the handle/username from /@handle and
// /user/ paths.
func ChannelIDFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	path := u.Path
	switch {
	case strings.HasPrefix(path, "/channel/"):
		return firstPathSegment(strings.TrimPrefix(path, "/channel/"))
	case strings.HasPrefix(path, "/user/"):
		return firstPathSegment(strings.TrimPrefix(path, "/user/"))
	case strings.HasPrefix(path, "/@"):
		return firstPathSegment(strings.TrimPrefix(path, "/"))
	}
	return ""
}

func firstPathSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
