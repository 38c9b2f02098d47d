package page

import (
	"time"

	"github.com/jimiland/blockhtml/pkg/core"
	"github.com/jimiland/blockhtml/pkg/render"
)

// Renderer renders a block stream. *render.Service implements it.
type Renderer interface {
	Render(blocks []core.Block) render.Result
}

// Article is a rendered page plus the metadata derived from it.
type Article struct {
	ID          string
	Title       string
	Slug        string
	Date        string
	DisplayDate string
	Description string
	Tags        []string
	HTML        string
	ReadingTime string
	Links       []string
	Rendered    int
	Skipped     int
}

// Builder turns documents into articles. The zero value uses a default
// render.Service, 200 words per minute, the "January 02, 2006" layout and
// path-escaped slugs.
type Builder struct {
	Renderer       Renderer
	WordsPerMinute int
	DateLayout     string
	SlugStyle      SlugStyle
	// Now supplies the date of documents that have none.
	Now func() time.Time
}

// Build is Builder{}.Build.
func Build(doc *Document) (*Article, error) {
	return Builder{}.Build(doc)
}

// Build renders doc. Documents without a title are rejected with
// ErrMissingTitle; rendering itself cannot fail.
func (b Builder) Build(doc *Document) (*Article, error) {
	if doc.Title == "" {
		return nil, ErrMissingTitle
	}

	renderer := b.Renderer
	if renderer == nil {
		renderer = render.New()
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}

	date := doc.Date
	if date == "" {
		date = now().Format(inputDateLayout)
	}

	res := renderer.Render(doc.Blocks)
	l.Debugf("article %q: %d blocks rendered, %d skipped", doc.Title, res.Rendered, res.Skipped)

	return &Article{
		ID:          NormalizeID(doc.ID),
		Title:       doc.Title,
		Slug:        b.SlugStyle.Slug(doc.Title),
		Date:        date,
		DisplayDate: FormatDate(date, b.DateLayout),
		Description: doc.Description,
		Tags:        doc.Tags,
		HTML:        res.HTML,
		ReadingTime: ReadingTime(res.HTML, b.WordsPerMinute),
		Links:       res.Links,
		Rendered:    res.Rendered,
		Skipped:     res.Skipped,
	}, nil
}
