package render

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jimiland/blockhtml/pkg/core"
	"github.com/jimiland/blockhtml/pkg/log"
)

func para(id, text string) core.Block {
	return core.NewBlock(id, core.Paragraph{Text: core.RichText{core.Text(text)}})
}

func bullet(id, text string) core.Block {
	return core.NewBlock(id, core.ListItem{Kind: core.BulletList, Text: core.RichText{core.Text(text)}})
}

func numbered(id, text string) core.Block {
	return core.NewBlock(id, core.ListItem{Kind: core.NumberList, Text: core.RichText{core.Text(text)}})
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name   string
		blocks []core.Block
		want   string
	}{
		{
			name:   "empty",
			blocks: nil,
			want:   "",
		},
		{
			name:   "single heading",
			blocks: []core.Block{core.NewBlock("h", core.Heading{Level: 2, Text: core.RichText{core.Text("Title")}})},
			want:   "<h2>Title</h2>",
		},
		{
			name:   "lists split by a paragraph",
			blocks: []core.Block{bullet("1", "A"), bullet("2", "B"), para("3", "x"), bullet("4", "C")},
			want:   "<ul>\n<li>A</li>\n<li>B</li>\n</ul>\n<p>x</p>\n<ul>\n<li>C</li>\n</ul>",
		},
		{
			name:   "bullet to number switch",
			blocks: []core.Block{bullet("1", "A"), numbered("2", "one"), numbered("3", "two")},
			want:   "<ul>\n<li>A</li>\n</ul>\n<ol>\n<li>one</li>\n<li>two</li>\n</ol>",
		},
		{
			name:   "number list closed at end",
			blocks: []core.Block{para("1", "intro"), numbered("2", "one")},
			want:   "<p>intro</p>\n<ol>\n<li>one</li>\n</ol>",
		},
		{
			name: "unsupported block closes the list and emits nothing",
			blocks: []core.Block{
				bullet("1", "A"),
				core.NewBlock("2", core.Unsupported{Type: "divider"}),
				bullet("3", "B"),
			},
			want: "<ul>\n<li>A</li>\n</ul>\n<ul>\n<li>B</li>\n</ul>",
		},
		{
			name:   "image without url leaves no trace",
			blocks: []core.Block{para("1", "a"), core.NewBlock("2", core.Image{}), para("3", "b")},
			want:   "<p>a</p>\n<p>b</p>",
		},
		{
			name: "media blocks",
			blocks: []core.Block{
				core.NewBlock("1", core.Video{Media: core.Media{ExternalURL: "https://youtu.be/abc123"}}),
				core.NewBlock("2", core.Video{Media: core.Media{FileURL: "https://files.test/a.mp4"}}),
			},
			want: `<div class="video-container"><iframe width="560" height="315" src="https://www.youtube.com/embed/abc123" frameborder="0" allowfullscreen></iframe></div>` +
				"\n" +
				`<video controls><source src="https://files.test/a.mp4" type="video/mp4">Your browser does not support the video tag.</video>`,
		},
	}

	svc := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Process(tt.blocks)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Process mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessBalancedTags(t *testing.T) {
	blocks := []core.Block{
		bullet("1", "a"), numbered("2", "b"), bullet("3", "c"), para("4", "d"),
		numbered("5", "e"), numbered("6", "f"), bullet("7", "g"),
	}
	out := New().Process(blocks)

	for _, tag := range []string{"ul", "ol", "li"} {
		open := strings.Count(out, "<"+tag+">")
		closed := strings.Count(out, "</"+tag+">")
		if open != closed {
			t.Errorf("<%s>: %d opened, %d closed in\n%s", tag, open, closed, out)
		}
	}
	if strings.Contains(out, "<ul>\n<ol>") || strings.Contains(out, "<ol>\n<ul>") {
		t.Errorf("containers must not nest:\n%s", out)
	}
}

func TestProcessIsRepeatable(t *testing.T) {
	svc := New()
	blocks := []core.Block{bullet("1", "A"), para("2", "x")}

	first := svc.Process(blocks)
	second := svc.Process(blocks)
	if first != second {
		t.Errorf("second call differs:\n%s\nvs\n%s", first, second)
	}

	// a call ending inside a list must not leak state into the next one
	svc.Process([]core.Block{bullet("1", "open")})
	if got := svc.Process([]core.Block{para("1", "p")}); got != "<p>p</p>" {
		t.Errorf("state leaked between calls: %q", got)
	}
}

func TestProcessConcurrent(t *testing.T) {
	svc := New()
	blocks := []core.Block{bullet("1", "A"), bullet("2", "B"), para("3", "x"), numbered("4", "C")}
	want := svc.Process(blocks)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := svc.Process(blocks); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Process returned %q, want %q", got, want)
	}
}

func TestRenderResult(t *testing.T) {
	blocks := []core.Block{
		core.NewBlock("1", core.Paragraph{Text: core.RichText{
			core.Text("see "),
			core.Text("docs").WithLink("https://go.dev/doc"),
		}}),
		core.NewBlock("2", core.Bookmark{URL: "https://go.dev/doc"}),
		core.NewBlock("3", core.Embed{URL: "https://maps.test/x"}),
		core.NewBlock("4", core.Image{}),
		core.NewBlock("5", core.Unsupported{Type: "table"}),
		core.NewBlock("6", core.LinkPreview{URL: "https://github.com/x"}),
	}

	res := New().Render(blocks)

	wantLinks := []string{"https://go.dev/doc", "https://maps.test/x", "https://github.com/x"}
	if diff := cmp.Diff(wantLinks, res.Links); diff != "" {
		t.Errorf("Links mismatch (-want +got):\n%s", diff)
	}
	if res.Rendered != 4 || res.Skipped != 2 {
		t.Errorf("expected 4 rendered and 2 skipped, got %d and %d", res.Rendered, res.Skipped)
	}
	if res.HTML != New().Process(blocks) {
		t.Error("Render HTML differs from Process")
	}
}

func TestRenderRecoversFromPanics(t *testing.T) {
	orig := renderBlock
	t.Cleanup(func() { renderBlock = orig })
	renderBlock = func(s *Service, b core.Block) string {
		if b.ID == "boom" {
			panic("bad block")
		}
		return orig(s, b)
	}

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	res := New().Render([]core.Block{bullet("1", "A"), para("boom", "x"), para("3", "y")})

	if want := "<ul>\n<li>A</li>\n</ul>\n<p>y</p>"; res.HTML != want {
		t.Errorf("expected %q, got %q", want, res.HTML)
	}
	if res.Rendered != 2 || res.Skipped != 1 {
		t.Errorf("expected 2 rendered and 1 skipped, got %d and %d", res.Rendered, res.Skipped)
	}
	if !strings.Contains(buf.String(), "block boom (paragraph): render panic: bad block") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

func TestNewServiceDefaults(t *testing.T) {
	got := NewService(Options{VideoWidth: 800}).Options()
	want := DefaultOptions()
	want.VideoWidth = 800
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
}
