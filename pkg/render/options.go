package render

const (
	DefaultCalloutIcon       = "ℹ️"
	DefaultYouTubeEmbedURL   = "https://www.youtube.com/embed/"
	DefaultVideoWidth        = 560
	DefaultVideoHeight       = 315
	DefaultVideoFallbackText = "Your browser does not support the video tag."
)

// Options tune the markup produced for a few block types. The zero value of
// any field means "use the default".
type Options struct {
	// CalloutIcon is shown for callouts that have no emoji icon of their own.
	CalloutIcon string
	// YouTubeEmbedURL is the player URL prefix the video ID is appended to.
	YouTubeEmbedURL   string
	VideoWidth        int
	VideoHeight       int
	VideoFallbackText string
}

func DefaultOptions() Options {
	return Options{
		CalloutIcon:       DefaultCalloutIcon,
		YouTubeEmbedURL:   DefaultYouTubeEmbedURL,
		VideoWidth:        DefaultVideoWidth,
		VideoHeight:       DefaultVideoHeight,
		VideoFallbackText: DefaultVideoFallbackText,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CalloutIcon == "" {
		o.CalloutIcon = d.CalloutIcon
	}
	if o.YouTubeEmbedURL == "" {
		o.YouTubeEmbedURL = d.YouTubeEmbedURL
	}
	if o.VideoWidth <= 0 {
		o.VideoWidth = d.VideoWidth
	}
	if o.VideoHeight <= 0 {
		o.VideoHeight = d.VideoHeight
	}
	if o.VideoFallbackText == "" {
		o.VideoFallbackText = d.VideoFallbackText
	}
	return o
}
