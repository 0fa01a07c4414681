package helpers

import (
	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// RangesIntersect reports whether two ranges overlap, treating them as
// half-open intervals [start, end). An empty range touching the other one
// counts, so a bare cursor on a diagnostic selects it.
func RangesIntersect(a, b protocol.Range) bool {
	if before(a.End, b.Start) || before(b.End, a.Start) {
		return false
	}
	if isEmpty(a) || isEmpty(b) {
		return true
	}
	return a.End != b.Start && b.End != a.Start
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

func isEmpty(r protocol.Range) bool {
	return r.Start == r.End
}

// DocumentRange spans all of content
func DocumentRange(content string) protocol.Range {
	line, char := position.End(content)
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: line, Character: char},
	}
}

// WarningRange converts the byte-based position of a warning into a UTF-16
// range covering the warning's word
func WarningRange(content string, w customprops.Warning) protocol.Range {
	if !w.HasPosition {
		return protocol.Range{}
	}
	text, _ := position.Line(content, int(w.Position.Line))
	start := position.UTF16Column(text, int(w.Position.Character))
	return protocol.Range{
		Start: protocol.Position{Line: w.Position.Line, Character: start},
		End:   protocol.Position{Line: w.Position.Line, Character: start + position.Length(w.Word)},
	}
}
