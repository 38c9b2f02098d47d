package render

import (
	"html"
	"strings"

	"github.com/jimiland/blockhtml/pkg/core"
)

// inlineWrapper wraps already rendered run content when its predicate holds.
type inlineWrapper struct {
	name    string
	applies func(core.TextRun) bool
	wrap    func(run core.TextRun, inner string) string
}

// inlineWrappers is the nesting order of inline formatting, innermost first.
// A run that is bold and italic renders as <em><strong>..</strong></em>, and
// a link always ends up as the outermost element.
var inlineWrappers = []inlineWrapper{
	{"code", func(r core.TextRun) bool { return r.Annotations.Code }, element("code")},
	{"bold", func(r core.TextRun) bool { return r.Annotations.Bold }, element("strong")},
	{"italic", func(r core.TextRun) bool { return r.Annotations.Italic }, element("em")},
	{"strikethrough", func(r core.TextRun) bool { return r.Annotations.Strikethrough }, element("del")},
	{"underline", func(r core.TextRun) bool { return r.Annotations.Underline }, element("u")},
	{"link", func(r core.TextRun) bool { return r.Link != "" }, anchor},
}

func element(tag string) func(core.TextRun, string) string {
	return func(_ core.TextRun, inner string) string {
		return "<" + tag + ">" + inner + "</" + tag + ">"
	}
}

func anchor(r core.TextRun, inner string) string {
	return `<a href="` + html.EscapeString(r.Link) + `" target="_blank" rel="noopener noreferrer">` + inner + `</a>`
}

// RenderRichText renders runs to inline HTML. Run content is escaped before
// being wrapped. Runs that failed to decode are skipped; an empty sequence
// renders to the empty string.
func RenderRichText(rt core.RichText) string {
	if len(rt) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, run := range rt {
		if err := run.Err(); err != nil {
			l.Debugf("skipping rich text run %d: %v", i, err)
			continue
		}
		sb.WriteString(renderRun(run))
	}
	return sb.String()
}

func renderRun(run core.TextRun) string {
	out := html.EscapeString(run.Content)
	for _, w := range inlineWrappers {
		if w.applies(run) {
			out = w.wrap(run, out)
		}
	}
	return out
}
