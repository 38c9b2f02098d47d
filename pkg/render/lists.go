package render

import "github.com/jimiland/blockhtml/pkg/core"

// listState is the state of the list grouper while walking a block stream.
type listState int

const (
	stateNoList listState = iota
	stateInBulletList
	stateInNumberList
)

func (s listState) String() string {
	switch s {
	case stateInBulletList:
		return "InBulletList"
	case stateInNumberList:
		return "InNumberList"
	default:
		return "NoList"
	}
}

func stateFor(k core.ListKind) listState {
	switch k {
	case core.BulletList:
		return stateInBulletList
	case core.NumberList:
		return stateInNumberList
	default:
		return stateNoList
	}
}

func (s listState) openTag() string {
	if s == stateInNumberList {
		return "<ol>"
	}
	return "<ul>"
}

func (s listState) closeTag() string {
	if s == stateInNumberList {
		return "</ol>"
	}
	return "</ul>"
}

// transition returns the state after a block of the given list kind and the
// container tags that must be emitted before that block's own fragment.
// Non-list blocks use core.NoList.
func transition(s listState, kind core.ListKind) (listState, []string) {
	next := stateFor(kind)
	if next == s {
		return s, nil
	}
	var tags []string
	if s != stateNoList {
		tags = append(tags, s.closeTag())
	}
	if next != stateNoList {
		tags = append(tags, next.openTag())
	}
	return next, tags
}

// finish returns the tags needed to close whatever list is still open at the
// end of the stream.
func finish(s listState) []string {
	_, tags := transition(s, core.NoList)
	return tags
}
