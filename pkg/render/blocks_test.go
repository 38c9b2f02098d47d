package render

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jimiland/blockhtml/pkg/core"
	"github.com/jimiland/blockhtml/pkg/log"
)

func TestRenderBlock(t *testing.T) {
	svc := New()
	caption := core.RichText{core.Text("A "), core.Text("cat").Italic()}

	tests := []struct {
		name  string
		block core.Block
		want  string
	}{
		{
			name:  "paragraph",
			block: core.NewBlock("p1", core.Paragraph{Text: core.RichText{core.Text("x")}}),
			want:  "<p>x</p>",
		},
		{
			name:  "empty paragraph keeps spacing",
			block: core.NewBlock("p2", core.Paragraph{}),
			want:  "<p></p>",
		},
		{
			name:  "heading 2",
			block: core.NewBlock("h2", core.Heading{Level: 2, Text: core.RichText{core.Text("Title")}}),
			want:  "<h2>Title</h2>",
		},
		{
			name:  "heading 3 with formatting",
			block: core.NewBlock("h3", core.Heading{Level: 3, Text: core.RichText{core.Text("Sub").Bold()}}),
			want:  "<h3><strong>Sub</strong></h3>",
		},
		{
			name:  "bulleted item has no container",
			block: core.NewBlock("li", core.ListItem{Kind: core.BulletList, Text: core.RichText{core.Text("A")}}),
			want:  "<li>A</li>",
		},
		{
			name:  "code with language",
			block: core.NewBlock("c1", core.Code{Language: "go", Text: core.RichText{core.Text("if a < b {}")}}),
			want:  `<pre><code class="language-go">if a &lt; b {}</code></pre>`,
		},
		{
			name:  "code without language",
			block: core.NewBlock("c2", core.Code{Text: core.RichText{core.Text("x").Bold()}}),
			want:  `<pre><code class="language-"><strong>x</strong></code></pre>`,
		},
		{
			name:  "quote",
			block: core.NewBlock("q", core.Quote{Text: core.RichText{core.Text("wise")}}),
			want:  "<blockquote>wise</blockquote>",
		},
		{
			name:  "callout with icon",
			block: core.NewBlock("co1", core.Callout{Icon: "💡", Text: core.RichText{core.Text("tip")}}),
			want:  `<div class="callout"><span class="callout-icon">💡</span>tip</div>`,
		},
		{
			name:  "callout default icon",
			block: core.NewBlock("co2", core.Callout{Text: core.RichText{core.Text("note")}}),
			want:  `<div class="callout"><span class="callout-icon">ℹ️</span>note</div>`,
		},
		{
			name:  "image with caption",
			block: core.NewBlock("i1", core.Image{Media: core.Media{FileURL: "https://files.test/cat.png"}, Caption: caption}),
			want:  `<figure><img src="https://files.test/cat.png" alt="A cat"/><figcaption>A <em>cat</em></figcaption></figure>`,
		},
		{
			name:  "image without caption",
			block: core.NewBlock("i2", core.Image{Media: core.Media{ExternalURL: "https://ext.test/a.jpg?w=1&h=2"}}),
			want:  `<figure><img src="https://ext.test/a.jpg?w=1&amp;h=2" alt=""/></figure>`,
		},
		{
			name:  "image without url",
			block: core.NewBlock("i3", core.Image{Caption: caption}),
			want:  "",
		},
		{
			name:  "youtube video",
			block: core.NewBlock("v1", core.Video{Media: core.Media{ExternalURL: "https://youtu.be/abc123"}}),
			want:  `<div class="video-container"><iframe width="560" height="315" src="https://www.youtube.com/embed/abc123" frameborder="0" allowfullscreen></iframe></div>`,
		},
		{
			name:  "native video",
			block: core.NewBlock("v2", core.Video{Media: core.Media{FileURL: "https://files.test/clip.mp4"}}),
			want:  `<video controls><source src="https://files.test/clip.mp4" type="video/mp4">Your browser does not support the video tag.</video>`,
		},
		{
			name:  "youtube video without id renders nothing",
			block: core.NewBlock("v3", core.Video{Media: core.Media{ExternalURL: "https://www.youtube.com/results?search_query=go"}}),
			want:  "",
		},
		{
			name:  "video without url",
			block: core.NewBlock("v4", core.Video{}),
			want:  "",
		},
		{
			name:  "embed",
			block: core.NewBlock("e1", core.Embed{URL: "https://maps.test/embed?q=1"}),
			want:  `<div class="embed-container"><iframe src="https://maps.test/embed?q=1" frameborder="0" allowfullscreen></iframe></div>`,
		},
		{
			name:  "embed without url",
			block: core.NewBlock("e2", core.Embed{}),
			want:  "",
		},
		{
			name:  "bookmark with caption",
			block: core.NewBlock("b1", core.Bookmark{URL: "https://go.dev/blog", Caption: core.RichText{core.Text("Go blog")}}),
			want: `<a href="https://go.dev/blog" class="bookmark" target="_blank" rel="noopener noreferrer">` +
				`<div class="bookmark-info"><div class="bookmark-domain">go.dev</div>` +
				`<div class="bookmark-caption">Go blog</div></div></a>`,
		},
		{
			name:  "bookmark without caption",
			block: core.NewBlock("b2", core.Bookmark{URL: "https://go.dev/blog"}),
			want: `<a href="https://go.dev/blog" class="bookmark" target="_blank" rel="noopener noreferrer">` +
				`<div class="bookmark-info"><div class="bookmark-domain">go.dev</div></div></a>`,
		},
		{
			name:  "bookmark with invalid escape keeps its domain",
			block: core.NewBlock("b4", core.Bookmark{URL: "https://example.com/a%zz"}),
			want: `<a href="https://example.com/a%zz" class="bookmark" target="_blank" rel="noopener noreferrer">` +
				`<div class="bookmark-info"><div class="bookmark-domain">example.com</div></div></a>`,
		},
		{
			name:  "link preview with user info",
			block: core.NewBlock("lp2", core.LinkPreview{URL: "https://user:pw@example.com/x"}),
			want: `<a href="https://user:pw@example.com/x" class="link-preview" target="_blank" rel="noopener noreferrer">` +
				`<div class="link-preview-domain">user:pw@example.com</div></a>`,
		},
		{
			name:  "bookmark without url",
			block: core.NewBlock("b3", core.Bookmark{Caption: core.RichText{core.Text("orphan")}}),
			want:  "",
		},
		{
			name:  "link preview",
			block: core.NewBlock("lp", core.LinkPreview{URL: "https://github.com/golang/go"}),
			want: `<a href="https://github.com/golang/go" class="link-preview" target="_blank" rel="noopener noreferrer">` +
				`<div class="link-preview-domain">github.com</div></a>`,
		},
		{
			name:  "unsupported",
			block: core.NewBlock("u", core.Unsupported{Type: "divider"}),
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.RenderBlock(tt.block)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderBlock mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderBlockOptions(t *testing.T) {
	svc := NewService(Options{
		CalloutIcon:       "⚠️",
		YouTubeEmbedURL:   "https://www.youtube-nocookie.com/embed/",
		VideoWidth:        640,
		VideoHeight:       360,
		VideoFallbackText: "No video for you.",
	})

	callout := svc.RenderBlock(core.NewBlock("c", core.Callout{Text: core.RichText{core.Text("careful")}}))
	if !strings.Contains(callout, `<span class="callout-icon">⚠️</span>`) {
		t.Errorf("configured callout icon not used: %s", callout)
	}

	yt := svc.RenderBlock(core.NewBlock("v", core.Video{Media: core.Media{ExternalURL: "https://youtu.be/abc"}}))
	want := `<div class="video-container"><iframe width="640" height="360" src="https://www.youtube-nocookie.com/embed/abc" frameborder="0" allowfullscreen></iframe></div>`
	if yt != want {
		t.Errorf("expected %q, got %q", want, yt)
	}

	native := svc.RenderBlock(core.NewBlock("n", core.Video{Media: core.Media{FileURL: "https://files.test/a.mov"}}))
	if !strings.Contains(native, `type="video/mp4">No video for you.</video>`) {
		t.Errorf("configured fallback text not used: %s", native)
	}
}

func TestRenderBlockLogsMissingURL(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	if got := New().RenderBlock(core.NewBlock("img-1", core.Image{})); got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
	if !strings.Contains(buf.String(), "image block img-1 has no URL") {
		t.Errorf("expected diagnostic in log, got %q", buf.String())
	}
}

func TestRenderBlockDecodeFailure(t *testing.T) {
	var b core.Block
	if err := json.Unmarshal([]byte(`{"id":"bad","type":"image","image":"oops"}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Err() == nil {
		t.Fatal("expected decode error to be recorded on the block")
	}
	if got := New().RenderBlock(b); got != "" {
		t.Errorf("expected no output for malformed block, got %q", got)
	}
}
