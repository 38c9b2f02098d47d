package core

import "strings"

// BlockType is the type tag of a block as it appears on the wire.
type BlockType string

const (
	TypeParagraph        BlockType = "paragraph"
	TypeHeading1         BlockType = "heading_1"
	TypeHeading2         BlockType = "heading_2"
	TypeHeading3         BlockType = "heading_3"
	TypeBulletedListItem BlockType = "bulleted_list_item"
	TypeNumberedListItem BlockType = "numbered_list_item"
	TypeCode             BlockType = "code"
	TypeQuote            BlockType = "quote"
	TypeCallout          BlockType = "callout"
	TypeImage            BlockType = "image"
	TypeVideo            BlockType = "video"
	TypeEmbed            BlockType = "embed"
	TypeBookmark         BlockType = "bookmark"
	TypeLinkPreview      BlockType = "link_preview"
)

// ListKind identifies which list container a list item belongs to.
type ListKind int

const (
	NoList ListKind = iota
	BulletList
	NumberList
)

func (k ListKind) String() string {
	switch k {
	case BulletList:
		return "bullet"
	case NumberList:
		return "number"
	default:
		return "none"
	}
}

// ListKind returns the list container kind for a type tag, or NoList for
// every type that is not a list item.
func (t BlockType) ListKind() ListKind {
	switch t {
	case TypeBulletedListItem:
		return BulletList
	case TypeNumberedListItem:
		return NumberList
	default:
		return NoList
	}
}

// Block is one content unit of a page.
//
// Blocks are produced by whoever fetched the page (usually a dump of the
// Notion blocks API) and are treated as immutable input. Children of a block
// are expected to appear as later siblings in the same depth-first ordered
// slice; HasChildren is informational only.
//
// Content holds the type-specific payload. It is one of the variants declared
// in content.go, or Unsupported for tags this package does not know about.
type Block struct {
	ID          string
	Type        BlockType
	HasChildren bool
	Content     Content

	// err is set by the decoder when a known block type carried a payload
	// that could not be decoded.
	err error
}

// Err returns the decode error for this block, if any.
func (b Block) Err() error { return b.err }

// ListKind is a shortcut for b.Type.ListKind().
func (b Block) ListKind() ListKind { return b.Type.ListKind() }

// NewBlock builds a block from a content variant, deriving the type tag from
// it. Mostly useful for tests and programmatic construction.
func NewBlock(id string, c Content) Block {
	return Block{ID: id, Type: c.blockType(), Content: c}
}

// Annotations are the inline formatting flags of a text run. They are
// independent of each other and may all be set at once.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

// TextRun is a contiguous piece of text sharing the same annotations and link.
type TextRun struct {
	Content     string
	Annotations Annotations
	// Link is an absolute URL, empty when the run is not a link.
	Link string

	err error
}

// Err reports why the run could not be decoded. Runs with a non-nil error are
// skipped by renderers.
func (r TextRun) Err() error { return r.err }

// Text returns a plain run with no annotations.
func Text(content string) TextRun {
	return TextRun{Content: content}
}

// Bold returns a copy of the run with the bold flag set. The helpers below
// follow the same pattern so runs can be built fluently.
func (r TextRun) Bold() TextRun {
	r.Annotations.Bold = true
	return r
}

// Italic returns a copy of the run with the italic flag set.
func (r TextRun) Italic() TextRun {
	r.Annotations.Italic = true
	return r
}

// Strikethrough returns a copy of the run with the strikethrough flag set.
func (r TextRun) Strikethrough() TextRun {
	r.Annotations.Strikethrough = true
	return r
}

// Underline returns a copy of the run with the underline flag set.
func (r TextRun) Underline() TextRun {
	r.Annotations.Underline = true
	return r
}

// Code returns a copy of the run with the inline code flag set.
func (r TextRun) Code() TextRun {
	r.Annotations.Code = true
	return r
}

// WithLink returns a copy of the run linking to url.
func (r TextRun) WithLink(url string) TextRun {
	r.Link = url
	return r
}

// RichText is an ordered sequence of runs. Order is rendering order.
type RichText []TextRun

// PlainText concatenates the content of all decodable runs.
func (rt RichText) PlainText() string {
	var sb strings.Builder
	for _, r := range rt {
		if r.err != nil {
			continue
		}
		sb.WriteString(r.Content)
	}
	return sb.String()
}

// Links returns the link targets of the runs in order.
func (rt RichText) Links() []string {
	var links []string
	for _, r := range rt {
		if r.err == nil && r.Link != "" {
			links = append(links, r.Link)
		}
	}
	return links
}

// Media is a file reference that may be hosted by the content source
// ("file") or point somewhere else ("external").
type Media struct {
	FileURL     string
	ExternalURL string
}
