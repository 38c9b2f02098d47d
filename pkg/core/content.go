package core

import (
	"fmt"
	"strconv"
)

// Content is the type-specific payload of a Block. The set of variants is
// closed: only types declared in this file implement it, so a type switch
// over Content with a default arm covers every block the decoder can produce.
type Content interface {
	blockType() BlockType
}

type Paragraph struct {
	Text RichText
}

// Heading is a heading of level 1, 2 or 3.
type Heading struct {
	Level int
	Text  RichText
}

// ListItem is a single item of a bulleted or numbered list. The list
// container itself is not part of the model.
type ListItem struct {
	Kind ListKind
	Text RichText
}

type Code struct {
	Text     RichText
	Language string
}

type Quote struct {
	Text RichText
}

// Callout is highlighted text with an emoji icon. Icon is empty when the
// block had no emoji icon.
type Callout struct {
	Text RichText
	Icon string
}

type Image struct {
	Media   Media
	Caption RichText
}

type Video struct {
	Media   Media
	Caption RichText
}

type Embed struct {
	URL     string
	Caption RichText
}

type Bookmark struct {
	URL     string
	Caption RichText
}

type LinkPreview struct {
	URL string
}

// Unsupported stands in for every block type without a variant of its own
// (dividers, tables, child pages...). It carries the original tag.
type Unsupported struct {
	Type BlockType
}

func (Paragraph) blockType() BlockType   { return TypeParagraph }
func (Code) blockType() BlockType        { return TypeCode }
func (Quote) blockType() BlockType       { return TypeQuote }
func (Callout) blockType() BlockType     { return TypeCallout }
func (Image) blockType() BlockType       { return TypeImage }
func (Video) blockType() BlockType       { return TypeVideo }
func (Embed) blockType() BlockType       { return TypeEmbed }
func (Bookmark) blockType() BlockType    { return TypeBookmark }
func (LinkPreview) blockType() BlockType { return TypeLinkPreview }
func (u Unsupported) blockType() BlockType {
	return u.Type
}

func (h Heading) blockType() BlockType {
	return BlockType("heading_" + strconv.Itoa(h.Level))
}

func (l ListItem) blockType() BlockType {
	if l.Kind == NumberList {
		return TypeNumberedListItem
	}
	return TypeBulletedListItem
}

// headingLevel extracts the level from a heading tag ("heading_2" -> 2).
func headingLevel(t BlockType) (int, error) {
	s := string(t)
	if len(s) == 0 {
		return 0, fmt.Errorf("empty block type")
	}
	level, err := strconv.Atoi(s[len(s)-1:])
	if err != nil || level < 1 || level > 3 {
		return 0, fmt.Errorf("invalid heading type %q", t)
	}
	return level, nil
}
