// Package page turns a dumped Notion page into an Article: it decodes the
// input file, renders the blocks and derives the metadata a site generator
// needs (slug, display date, reading time).
package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jimiland/blockhtml/pkg/core"
	"github.com/jimiland/blockhtml/pkg/log"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrEmptyInput   = errors.New("empty input")
	ErrUnknownShape = errors.New("unrecognized document shape")
	ErrMissingTitle = errors.New("document has no title")
)

var l = log.ForService("page")

// zstdMagic is the frame magic number of a zstd stream.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Document is a page as read from disk, before rendering.
type Document struct {
	ID          string
	Title       string
	Date        string
	Description string
	Tags        []string
	Blocks      []core.Block
}

type envelope struct {
	Object  string            `json:"object"`
	Results []json.RawMessage `json:"results"`

	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Blocks      json.RawMessage `json:"blocks"`
}

// Decode reads a document in one of three shapes:
//
//   - a bare JSON array of block objects
//   - a list response, {"object":"list","results":[...]}
//   - a document envelope with id, title, date, description, tags and blocks
//
// The input may be zstd-compressed. Only the envelope carries metadata; the
// other shapes produce a Document with just Blocks set.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		data, err = decompress(data)
		if err != nil {
			return nil, err
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	switch data[0] {
	case '[':
		blocks, err := core.DecodeBlocks(data)
		if err != nil {
			return nil, err
		}
		return &Document{Blocks: blocks}, nil
	case '{':
		return decodeObject(data)
	default:
		return nil, ErrUnknownShape
	}
}

func decodeObject(data []byte) (*Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	if env.Object == "list" {
		l.Debugf("list response with %d results", len(env.Results))
		return &Document{Blocks: core.DecodeBlockList(env.Results)}, nil
	}

	if len(env.Blocks) == 0 {
		return nil, ErrUnknownShape
	}
	blocks, err := core.DecodeBlocks(env.Blocks)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", env.ID, err)
	}
	return &Document{
		ID:          env.ID,
		Title:       env.Title,
		Date:        env.Date,
		Description: env.Description,
		Tags:        env.Tags,
		Blocks:      blocks,
	}, nil
}

func decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing input: %w", err)
	}
	return out, nil
}
