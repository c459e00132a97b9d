// Package textdiff computes line-level change operations between two
// versions of a text buffer.
package textdiff

// OpKind tags a single diff operation.
type OpKind int

const (
	Keep OpKind = iota
	Insert
	Delete
)

// Op is one tagged line in a diff result.
type Op struct {
	Kind OpKind
	Line string
}

// Lines compares two line sequences with a single left-to-right scan and
// two cursors. Equal lines at the same cursor positions are kept; a
// mismatch emits a delete of the old line followed by an insert of the new
// one, and both cursors advance. The scan never realigns after a mismatch,
// so an inserted line shifts every subsequent line into a delete/insert
// pair. Replaying Insert and Keep ops in order reconstructs newLines;
// replaying Delete and Keep ops reconstructs oldLines.
func Lines(oldLines, newLines []string) []Op {
	ops := make([]Op, 0, max(len(oldLines), len(newLines)))
	i, j := 0, 0
	for i < len(oldLines) || j < len(newLines) {
		switch {
		case i >= len(oldLines):
			ops = append(ops, Op{Kind: Insert, Line: newLines[j]})
			j++
		case j >= len(newLines):
			ops = append(ops, Op{Kind: Delete, Line: oldLines[i]})
			i++
		case oldLines[i] == newLines[j]:
			ops = append(ops, Op{Kind: Keep, Line: oldLines[i]})
			i++
			j++
		default:
			ops = append(ops, Op{Kind: Delete, Line: oldLines[i]})
			ops = append(ops, Op{Kind: Insert, Line: newLines[j]})
			i++
			j++
		}
	}
	return ops
}
