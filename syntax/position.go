package syntax

import "fmt"

// Position represents a line/column position in source text
// Uses LSP conventions: 1-based line numbers, 0-based character offsets
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based character offset within line
	Offset    int `json:"offset"`    // 0-based byte offset in entire source
}

// String formats the position as line:column with a 1-based column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character+1)
}

// Range represents a source code span from start to end position
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// PositionTracker maintains line/column/offset state during tokenization
// Advances through source text, tracking position for each consumed character
type PositionTracker struct {
	line      int // 1-based
	character int // 0-based within line
	offset    int // 0-based in source
}

// NewPositionTracker creates a tracker starting at beginning of source
func NewPositionTracker() *PositionTracker {
	return &PositionTracker{line: 1}
}

// AdvanceRune updates position after consuming one rune of width bytes
func (pt *PositionTracker) AdvanceRune(ch rune, width int) {
	if ch == '\n' {
		pt.line++
		pt.character = 0
	} else {
		pt.character++
	}
	pt.offset += width
}

// CurrentPosition returns the current position snapshot
func (pt *PositionTracker) CurrentPosition() Position {
	return Position{
		Line:      pt.line,
		Character: pt.character,
		Offset:    pt.offset,
	}
}

// RangeFromPositions creates a range from two positions
func RangeFromPositions(start, end Position) Range {
	return Range{Start: start, End: end}
}
