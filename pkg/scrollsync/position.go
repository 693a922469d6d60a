package scrollsync

import "fmt"

// Position is an anchor scroll location: the first visible item and the
// pixel distance scrolled into it.
type Position struct {
	Index  int `json:"index"`
	Offset int `json:"offset"`
}

// String renders the position as "(index,offset)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Index, p.Offset)
}

// Clamp fits p to a container holding itemCount items. It reports false
// when there is nothing to scroll to: no items, or a negative index.
func Clamp(p Position, itemCount int) (Position, bool) {
	if itemCount <= 0 {
		return Position{}, false
	}

	maxIndex := max(0, itemCount-1)
	safeIndex := min(p.Index, maxIndex)
	if safeIndex < 0 {
		return Position{}, false
	}
	return Position{Index: safeIndex, Offset: p.Offset}, true
}
