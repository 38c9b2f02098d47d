package render

import (
	"strings"

	"github.com/jimiland/blockhtml/pkg/core"
	"github.com/jimiland/blockhtml/pkg/log"
)

/*
Service (block stream -> HTML fragment)

  * Process walks an ordered block slice once, emitting each block's fragment
    and the <ul>/<ol> container tags around runs of same-kind list items.
  * Fragments are joined with "\n"; blocks that produce nothing leave no
    trace in the output.
  * Processing never fails. Bad blocks are logged and skipped, and a panic
    while rendering one block is recovered and treated the same way.
  * The only mutable state is the list grouper's state, which lives on the
    stack of a single call. A Service can be shared between goroutines.

Output is trusted HTML: all text and attribute values coming from blocks are
escaped here, so callers insert it into pages as-is.
*/

var l = log.ForService("render")

// Service renders block streams to HTML fragments.
type Service struct {
	opts Options
}

// NewService creates a Service. Zero fields of opts take their defaults.
func NewService(opts Options) *Service {
	return &Service{opts: opts.withDefaults()}
}

// New is NewService(DefaultOptions()).
func New() *Service {
	return NewService(DefaultOptions())
}

// Options returns the effective options.
func (s *Service) Options() Options { return s.opts }

// Result is the outcome of rendering a block stream.
type Result struct {
	HTML string
	// Links are the outbound URLs of rendered blocks (rich text links and
	// embed, bookmark and link preview targets), in document order, without
	// duplicates.
	Links []string
	// Rendered and Skipped count blocks that did and did not produce a
	// fragment.
	Rendered int
	Skipped  int
}

// Process renders blocks to a single HTML fragment.
func (s *Service) Process(blocks []core.Block) string {
	return s.Render(blocks).HTML
}

// Render is Process plus the metadata collected on the way.
func (s *Service) Render(blocks []core.Block) Result {
	var (
		res   Result
		parts []string
		seen  = make(map[string]struct{})
		state = stateNoList
	)

	for _, b := range blocks {
		var tags []string
		state, tags = transition(state, b.ListKind())
		parts = append(parts, tags...)

		fragment := s.renderSafely(b)
		if fragment == "" {
			res.Skipped++
			continue
		}
		res.Rendered++
		parts = append(parts, fragment)

		for _, link := range blockLinks(b) {
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			res.Links = append(res.Links, link)
		}
	}
	parts = append(parts, finish(state)...)

	res.HTML = strings.Join(parts, "\n")
	return res
}

// renderBlock renders one block for Render. Tests swap it to inject failures.
var renderBlock = (*Service).RenderBlock

func (s *Service) renderSafely(b core.Block) (fragment string) {
	defer func() {
		if r := recover(); r != nil {
			l.Errorf("block %s (%s): render panic: %v", b.ID, b.Type, r)
			fragment = ""
		}
	}()
	return renderBlock(s, b)
}

func blockLinks(b core.Block) []string {
	switch c := b.Content.(type) {
	case core.Paragraph:
		return c.Text.Links()
	case core.Heading:
		return c.Text.Links()
	case core.ListItem:
		return c.Text.Links()
	case core.Quote:
		return c.Text.Links()
	case core.Callout:
		return c.Text.Links()
	case core.Code:
		return c.Text.Links()
	case core.Image:
		return c.Caption.Links()
	case core.Video:
		return c.Caption.Links()
	case core.Embed:
		return append([]string{c.URL}, c.Caption.Links()...)
	case core.Bookmark:
		return append([]string{c.URL}, c.Caption.Links()...)
	case core.LinkPreview:
		return []string{c.URL}
	}
	return nil
}

// Processor is the interface consumers of rendered fragments depend on, so
// tests and alternative renderers can stand in for *Service.
type Processor interface {
	Process(blocks []core.Block) string
}

var _ Processor = (*Service)(nil)
