package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimiland/blockhtml/pkg/log"
)

var (
	// ErrMissingPayload is recorded on a block whose type-specific object is
	// absent, e.g. {"type":"image"} with no "image" key.
	ErrMissingPayload = errors.New("missing block payload")

	// ErrMissingContent is recorded on a text run that has neither text
	// content nor a plain text rendition.
	ErrMissingContent = errors.New("rich text run without content")
)

var l = log.ForService("core")

// wireBlock mirrors the envelope of a Notion block object. The type-specific
// payload lives under a key named after the type and is picked out separately.
type wireBlock struct {
	ID          string    `json:"id"`
	Type        BlockType `json:"type"`
	HasChildren bool      `json:"has_children"`
}

// wirePayload is a superset of the fields used by the supported payloads.
type wirePayload struct {
	RichText []json.RawMessage `json:"rich_text"`
	Caption  []json.RawMessage `json:"caption"`
	Language string            `json:"language"`
	Icon     *wireIcon         `json:"icon"`
	URL      string            `json:"url"`
	File     *wireURL          `json:"file"`
	External *wireURL          `json:"external"`
}

type wireIcon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

type wireURL struct {
	URL string `json:"url"`
}

type wireRun struct {
	Type string `json:"type"`
	Text *struct {
		Content *string  `json:"content"`
		Link    *wireURL `json:"link"`
	} `json:"text"`
	Annotations Annotations `json:"annotations"`
	PlainText   *string     `json:"plain_text"`
	Href        *string     `json:"href"`
}

// UnmarshalJSON decodes a Notion block object. It only fails when the input
// is not a JSON object at all; problems with the payload of a known block
// type are recorded on the block (see Err) and the content falls back to
// Unsupported so the rest of a document can still be processed.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env wireBlock
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*b = Block{ID: env.ID, Type: env.Type, HasChildren: env.HasChildren}

	if !env.Type.known() {
		b.Content = Unsupported{Type: env.Type}
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, ok := fields[string(env.Type)]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		b.fail(ErrMissingPayload)
		return nil
	}

	var p wirePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		b.fail(fmt.Errorf("decoding %s payload: %w", env.Type, err))
		return nil
	}

	content, err := p.content(env.Type)
	if err != nil {
		b.fail(err)
		return nil
	}
	b.Content = content
	return nil
}

func (b *Block) fail(err error) {
	b.err = err
	b.Content = Unsupported{Type: b.Type}
}

func (t BlockType) known() bool {
	switch t {
	case TypeParagraph, TypeHeading1, TypeHeading2, TypeHeading3,
		TypeBulletedListItem, TypeNumberedListItem, TypeCode, TypeQuote,
		TypeCallout, TypeImage, TypeVideo, TypeEmbed, TypeBookmark,
		TypeLinkPreview:
		return true
	}
	return false
}

func (p wirePayload) content(t BlockType) (Content, error) {
	text := DecodeRichText(p.RichText)
	caption := DecodeRichText(p.Caption)

	switch t {
	case TypeParagraph:
		return Paragraph{Text: text}, nil
	case TypeHeading1, TypeHeading2, TypeHeading3:
		level, err := headingLevel(t)
		if err != nil {
			return nil, err
		}
		return Heading{Level: level, Text: text}, nil
	case TypeBulletedListItem, TypeNumberedListItem:
		return ListItem{Kind: t.ListKind(), Text: text}, nil
	case TypeCode:
		return Code{Text: text, Language: p.Language}, nil
	case TypeQuote:
		return Quote{Text: text}, nil
	case TypeCallout:
		c := Callout{Text: text}
		if p.Icon != nil && p.Icon.Type == "emoji" {
			c.Icon = p.Icon.Emoji
		}
		return c, nil
	case TypeImage:
		return Image{Media: p.media(), Caption: caption}, nil
	case TypeVideo:
		return Video{Media: p.media(), Caption: caption}, nil
	case TypeEmbed:
		return Embed{URL: p.URL, Caption: caption}, nil
	case TypeBookmark:
		return Bookmark{URL: p.URL, Caption: caption}, nil
	case TypeLinkPreview:
		return LinkPreview{URL: p.URL}, nil
	}
	return Unsupported{Type: t}, nil
}

func (p wirePayload) media() Media {
	var m Media
	if p.File != nil {
		m.FileURL = p.File.URL
	}
	if p.External != nil {
		m.ExternalURL = p.External.URL
	}
	return m
}

// DecodeRichText decodes a Notion rich_text array one element at a time.
// Elements that cannot be decoded are kept as runs carrying an error so the
// caller can skip them without losing the ones that follow.
func DecodeRichText(raw []json.RawMessage) RichText {
	if len(raw) == 0 {
		return nil
	}
	rt := make(RichText, 0, len(raw))
	for i, item := range raw {
		run, err := decodeRun(item)
		if err != nil {
			l.Debugf("rich text element %d: %v", i, err)
			run = TextRun{err: err}
		}
		rt = append(rt, run)
	}
	return rt
}

func decodeRun(data []byte) (TextRun, error) {
	var w wireRun
	if err := json.Unmarshal(data, &w); err != nil {
		return TextRun{}, err
	}

	run := TextRun{Annotations: w.Annotations}
	switch {
	case w.Text != nil && w.Text.Content != nil:
		run.Content = *w.Text.Content
		if w.Text.Link != nil {
			run.Link = w.Text.Link.URL
		}
	case w.Type != "text" && w.PlainText != nil:
		// mentions and equations only carry a plain text rendition
		run.Content = *w.PlainText
		if w.Href != nil {
			run.Link = *w.Href
		}
	default:
		return TextRun{}, ErrMissingContent
	}
	return run, nil
}

// DecodeBlocks decodes a JSON array of Notion block objects. Elements that
// are not JSON objects are kept as unsupported blocks carrying the error,
// so the length and order of the result always match the input.
func DecodeBlocks(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding block list: %w", err)
	}
	return DecodeBlockList(raw), nil
}

// DecodeBlockList is DecodeBlocks for input that was already split into
// elements, such as the "results" array of a list response.
func DecodeBlockList(raw []json.RawMessage) []Block {
	blocks := make([]Block, 0, len(raw))
	for i, item := range raw {
		var b Block
		if err := json.Unmarshal(item, &b); err != nil {
			l.Warnf("block %d is not a block object: %v", i, err)
			b = Block{err: err, Content: Unsupported{}}
		}
		blocks = append(blocks, b)
	}
	return blocks
}
