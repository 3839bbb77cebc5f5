package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// youtubeHosts are the recognized domains for the import dialog. Anything
// else is rejected locally without a network call.
var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsYouTubeURL reports whether raw parses as an http(s) URL on a recognized
// YouTube domain.
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return youtubeHosts[u.Hostname()]
}

// ExtractVideoID pulls the 11-character video identifier out of the known
// URL shapes (youtu.be/<id>, watch?v=<id>, /embed/<id>, /shorts/<id>,
// /live/<id>). Extraction is best-effort for preview rendering only; an
// empty result does not block submission.
func ExtractVideoID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !youtubeHosts[u.Hostname()] {
		return ""
	}

	var candidate string
	switch {
	case u.Hostname() == "youtu.be":
		candidate = strings.TrimPrefix(u.Path, "/")
	case u.Path == "/watch":
		candidate = u.Query().Get("v")
	default:
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				candidate = strings.TrimPrefix(u.Path, prefix)
				break
			}
		}
	}

	if idx := strings.IndexAny(candidate, "/?&"); idx >= 0 {
		candidate = candidate[:idx]
	}
	if !videoIDPattern.MatchString(candidate) {
		return ""
	}
	return candidate
}

// ThumbnailURL returns the preview image URL for a video ID, or "" when the
// ID is unknown.
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}
