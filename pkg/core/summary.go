package core

import (
	"fmt"
	"sort"
)

const summaryWidth = 60

// Summary returns a concise one-line description of the block for listings,
// e.g. `heading_2: Getting started` or `image: https://example.com/a.png`.
func (b Block) Summary() string {
	if b.err != nil {
		return fmt.Sprintf("%s: <invalid: %v>", b.label(), b.err)
	}

	var detail string
	switch c := b.Content.(type) {
	case Paragraph:
		detail = c.Text.PlainText()
	case Heading:
		detail = c.Text.PlainText()
	case ListItem:
		detail = c.Text.PlainText()
	case Code:
		detail = fmt.Sprintf("[%s] %s", c.Language, c.Text.PlainText())
	case Quote:
		detail = c.Text.PlainText()
	case Callout:
		detail = c.Icon + " " + c.Text.PlainText()
	case Image:
		detail = firstNonEmpty(c.Media.FileURL, c.Media.ExternalURL)
	case Video:
		detail = firstNonEmpty(c.Media.FileURL, c.Media.ExternalURL)
	case Embed:
		detail = c.URL
	case Bookmark:
		detail = c.URL
	case LinkPreview:
		detail = c.URL
	default:
		detail = "(unsupported)"
	}
	return b.label() + ": " + truncate(detail, summaryWidth)
}

func (b Block) label() string {
	if b.Type == "" {
		return "unknown"
	}
	return string(b.Type)
}

// CountTypes tallies blocks per type tag. Blocks without a tag are counted
// under "unknown".
func CountTypes(blocks []Block) map[string]int {
	counts := make(map[string]int)
	for _, b := range blocks {
		counts[b.label()]++
	}
	return counts
}

// SortedTypes returns the keys of a CountTypes result ordered by descending
// count, then name.
func SortedTypes(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
