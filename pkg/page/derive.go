package page

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultWordsPerMinute = 200
	DefaultDateLayout     = "January 02, 2006"

	// inputDateLayout is the only date format FormatDate understands.
	inputDateLayout = "2006-01-02"
)

// Slugify derives a URL path segment from a title: accents are folded,
// letters are lowercased, spaces become dashes and everything that is not a
// letter, a digit or a dash is dropped. Letters without an ASCII form are
// kept and percent-encoded.
func Slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == ' ':
			sb.WriteRune('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		}
	}
	return url.PathEscape(sb.String())
}

// NormalizedSlug derives a slug with the go-slug default normalizer, which
// only produces ASCII slugs accepted by slug.IsValid. Titles it cannot
// normalize fall back to Slugify.
func NormalizedSlug(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		l.Debugf("slug normalizer rejected %q (%v), using path-escaped slug", title, err)
		return Slugify(title)
	}
	return normalized
}

// SlugStyle selects how article slugs are derived from titles.
type SlugStyle string

const (
	// SlugPathEscaped keeps every letter of the title and repeated dashes,
	// percent-encoding what is not ASCII. See Slugify.
	SlugPathEscaped SlugStyle = "path-escaped"
	// SlugNormalized produces canonical ASCII slugs. See NormalizedSlug.
	SlugNormalized SlugStyle = "normalized"
)

// ParseSlugStyle validates a style name. The empty string selects
// SlugPathEscaped.
func ParseSlugStyle(name string) (SlugStyle, error) {
	switch SlugStyle(name) {
	case "", SlugPathEscaped:
		return SlugPathEscaped, nil
	case SlugNormalized:
		return SlugNormalized, nil
	}
	return "", fmt.Errorf("unknown slug style %q", name)
}

// Slug derives the slug of title in this style.
func (s SlugStyle) Slug(title string) string {
	if s == SlugNormalized {
		return NormalizedSlug(title)
	}
	return Slugify(title)
}

// CountWords counts whitespace separated words in an HTML fragment, treating
// tags as words of their own.
func CountWords(fragment string) int {
	padded := strings.NewReplacer("<", " <", ">", "> ").Replace(fragment)
	return len(strings.Fields(padded))
}

// ReadingTime estimates how long fragment takes to read, e.g. "3 min read".
// Half minutes round to even; the result is never below one minute.
func ReadingTime(fragment string, wpm int) string {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	minutes := int(math.RoundToEven(float64(CountWords(fragment)) / float64(wpm)))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min read"
}

// FormatDate renders a YYYY-MM-DD date with layout. Anything else is returned
// unchanged.
func FormatDate(date, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := time.Parse(inputDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// NormalizeID returns the canonical dashed form of a UUID page ID, which
// Notion hands out both with and without dashes. Other IDs are returned as is.
func NormalizeID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return u.String()
}
