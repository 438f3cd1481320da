package goban

// Group is a maximal connected set of same-colored stones, taken as a
// value snapshot of the board it was computed from. Liberties are
// collected at construction time, so a Group stays coherent even after
// the board mutates; it just describes the old position then.
type Group struct {
	color     Stone
	stones    map[Position]struct{}
	liberties map[Position]struct{}
}

// newGroup collects all stones connected to the position that share its
// color. For an empty position the group is empty. The search uses an
// explicit worklist; board-sized regions must not recurse.
func newGroup(b Board, p Position) Group {
	color := b.At(p)
	if color == Empty {
		return Group{color: Empty}
	}

	stones := map[Position]struct{}{p: {}}
	liberties := make(map[Position]struct{})
	stack := []Position{p}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range b.Neighbors(top) {
			switch b.At(n) {
			case Empty:
				liberties[n] = struct{}{}
			case color:
				if _, seen := stones[n]; !seen {
					stones[n] = struct{}{}
					stack = append(stack, n)
				}
			}
		}
	}

	return Group{color: color, stones: stones, liberties: liberties}
}

// Stone returns the group's color, Empty for the empty group.
func (g Group) Stone() Stone {
	return g.color
}

// Contains reports whether the position belongs to the group.
func (g Group) Contains(p Position) bool {
	_, ok := g.stones[p]
	return ok
}

// Size returns the number of stones in the group.
func (g Group) Size() int {
	return len(g.stones)
}

// Positions returns the group's members.
func (g Group) Positions() []Position {
	out := make([]Position, 0, len(g.stones))
	for p := range g.stones {
		out = append(out, p)
	}
	return out
}

// Liberties returns the empty positions adjacent to the group, as seen
// when the group was computed.
func (g Group) Liberties() []Position {
	out := make([]Position, 0, len(g.liberties))
	for p := range g.liberties {
		out = append(out, p)
	}
	return out
}

// LibertyCount returns the number of distinct liberties.
func (g Group) LibertyCount() int {
	return len(g.liberties)
}
