package render

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jimiland/blockhtml/pkg/core"
)

// ResolveURL picks the URL to display for a media reference: the file hosted
// by the content source when there is one, the external URL otherwise. ok is
// false when neither is set.
func ResolveURL(m core.Media) (u string, ok bool) {
	if m.FileURL != "" {
		return m.FileURL, true
	}
	if m.ExternalURL != "" {
		return m.ExternalURL, true
	}
	return "", false
}

// IsYouTube reports whether u looks like a YouTube URL. This is a substring
// check, not a host comparison.
func IsYouTube(u string) bool {
	return strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be")
}

// youtubeIDPatterns are tried in order; the first match wins. IDs end at the
// first '&', newline, '?' or '#'.
var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
}

// YouTubeID extracts the video ID from a YouTube watch, short or embed URL.
func YouTubeID(u string) (string, bool) {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(u); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Player is the playback strategy chosen for a video block.
type Player int

const (
	// NoPlayer means nothing should be rendered.
	NoPlayer Player = iota
	YouTubePlayer
	NativePlayer
)

func (p Player) String() string {
	switch p {
	case YouTubePlayer:
		return "youtube"
	case NativePlayer:
		return "native"
	default:
		return "none"
	}
}

// VideoSource is the resolved form of a video block.
type VideoSource struct {
	Player Player
	URL    string
	// YouTubeID is set for YouTubePlayer.
	YouTubeID string
}

// ResolveVideo decides how a video is played. A YouTube URL whose ID cannot
// be extracted resolves to NoPlayer rather than the native player.
func ResolveVideo(m core.Media) VideoSource {
	u, ok := ResolveURL(m)
	if !ok {
		return VideoSource{Player: NoPlayer}
	}
	if IsYouTube(u) {
		id, ok := YouTubeID(u)
		if !ok {
			return VideoSource{Player: NoPlayer, URL: u}
		}
		return VideoSource{Player: YouTubePlayer, URL: u, YouTubeID: id}
	}
	return VideoSource{Player: NativePlayer, URL: u}
}

// Domain returns the authority part of u (user info, host and port) for
// display. URLs that fail to parse still yield the text between "://" and the
// first '/', '?' or '#'. URLs without a scheme yield an empty domain.
func Domain(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return authority(u)
	}
	if parsed.User != nil {
		return parsed.User.String() + "@" + parsed.Host
	}
	return parsed.Host
}

func authority(u string) string {
	i := strings.Index(u, "://")
	if i <= 0 {
		return ""
	}
	rest := u[i+3:]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
