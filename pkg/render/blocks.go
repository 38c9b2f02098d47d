package render

import (
	"fmt"
	"html"
	"strconv"

	"github.com/jimiland/blockhtml/pkg/core"
)

// RenderBlock renders a single block to an HTML fragment. List items render
// as a bare <li>; wrapping them in <ul>/<ol> is done by Process.
//
// An empty result means the block produces no output: its type is not
// supported, it failed to decode, or a required field such as a media URL
// is missing. The latter two cases are logged.
func (s *Service) RenderBlock(b core.Block) string {
	if err := b.Err(); err != nil {
		l.Warnf("block %s (%s): %v", b.ID, b.Type, err)
		return ""
	}

	switch c := b.Content.(type) {
	case core.Paragraph:
		return "<p>" + RenderRichText(c.Text) + "</p>"

	case core.Heading:
		if c.Level < 1 || c.Level > 3 {
			l.Warnf("block %s: heading level %d out of range", b.ID, c.Level)
			return ""
		}
		tag := "h" + strconv.Itoa(c.Level)
		return "<" + tag + ">" + RenderRichText(c.Text) + "</" + tag + ">"

	case core.ListItem:
		return "<li>" + RenderRichText(c.Text) + "</li>"

	case core.Code:
		return `<pre><code class="language-` + html.EscapeString(c.Language) + `">` +
			RenderRichText(c.Text) + "</code></pre>"

	case core.Quote:
		return "<blockquote>" + RenderRichText(c.Text) + "</blockquote>"

	case core.Callout:
		icon := c.Icon
		if icon == "" {
			icon = s.opts.CalloutIcon
		}
		return `<div class="callout"><span class="callout-icon">` + html.EscapeString(icon) + "</span>" +
			RenderRichText(c.Text) + "</div>"

	case core.Image:
		return s.renderImage(b, c)

	case core.Video:
		return s.renderVideo(b, c)

	case core.Embed:
		if c.URL == "" {
			l.Warnf("embed block %s has no URL", b.ID)
			return ""
		}
		return `<div class="embed-container"><iframe src="` + html.EscapeString(c.URL) +
			`" frameborder="0" allowfullscreen></iframe></div>`

	case core.Bookmark:
		return s.renderBookmark(b, c)

	case core.LinkPreview:
		if c.URL == "" {
			l.Warnf("link preview block %s has no URL", b.ID)
			return ""
		}
		return `<a href="` + html.EscapeString(c.URL) + `" class="link-preview" target="_blank" rel="noopener noreferrer">` +
			`<div class="link-preview-domain">` + html.EscapeString(Domain(c.URL)) + `</div></a>`

	default:
		l.Debugf("block %s: unsupported type %q", b.ID, b.Type)
		return ""
	}
}

func (s *Service) renderImage(b core.Block, img core.Image) string {
	src, ok := ResolveURL(img.Media)
	if !ok {
		l.Warnf("image block %s has no URL", b.ID)
		return ""
	}
	caption := RenderRichText(img.Caption)
	out := `<figure><img src="` + html.EscapeString(src) + `" alt="` +
		html.EscapeString(img.Caption.PlainText()) + `"/>`
	if caption != "" {
		out += "<figcaption>" + caption + "</figcaption>"
	}
	return out + "</figure>"
}

func (s *Service) renderVideo(b core.Block, v core.Video) string {
	src := ResolveVideo(v.Media)
	switch src.Player {
	case YouTubePlayer:
		return fmt.Sprintf(`<div class="video-container"><iframe width="%d" height="%d" src="%s" frameborder="0" allowfullscreen></iframe></div>`,
			s.opts.VideoWidth, s.opts.VideoHeight, html.EscapeString(s.opts.YouTubeEmbedURL+src.YouTubeID))
	case NativePlayer:
		return `<video controls><source src="` + html.EscapeString(src.URL) + `" type="video/mp4">` +
			html.EscapeString(s.opts.VideoFallbackText) + "</video>"
	default:
		if src.URL == "" {
			l.Warnf("video block %s has no URL", b.ID)
		} else {
			l.Warnf("video block %s: no YouTube video ID in %s", b.ID, src.URL)
		}
		return ""
	}
}

func (s *Service) renderBookmark(b core.Block, bm core.Bookmark) string {
	if bm.URL == "" {
		l.Warnf("bookmark block %s has no URL", b.ID)
		return ""
	}
	out := `<a href="` + html.EscapeString(bm.URL) + `" class="bookmark" target="_blank" rel="noopener noreferrer">` +
		`<div class="bookmark-info">` +
		`<div class="bookmark-domain">` + html.EscapeString(Domain(bm.URL)) + `</div>`
	if caption := RenderRichText(bm.Caption); caption != "" {
		out += `<div class="bookmark-caption">` + caption + `</div>`
	}
	return out + "</div></a>"
}
