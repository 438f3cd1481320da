package goban

// Position is a board coordinate. Whether it is valid is up to the
// concrete board (OnBoard).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Board is the capability set go can be played on. Any conforming
// implementation can be plugged into the rules layer; Grid19 is the
// standard one.
//
// Set on an off-board position is a programmer error, not a recoverable
// failure; callers check OnBoard first.
type Board interface {
	// OnBoard reports whether the position exists on this board.
	OnBoard(p Position) bool

	// At returns the stone at the given position.
	At(p Position) Stone

	// Set places the given stone, overwriting whatever was there.
	Set(p Position, s Stone)

	// SetHandicap places the fixed black handicap stones for n in [2,9].
	SetHandicap(n int)

	// Positions enumerates every valid coordinate in a stable order.
	Positions() []Position

	// Neighbors returns the orthogonally adjacent valid positions:
	// 2 at a corner, 3 on an edge, 4 in the interior.
	Neighbors(p Position) []Position

	// Clone returns an independent copy; mutating it never touches the
	// original.
	Clone() Board

	// Key is the canonical structural encoding of the whole board.
	// Two boards have equal keys exactly when every position holds the
	// same stone. Superko fingerprints are built from it.
	Key() string
}

// GroupAt returns the group containing the position. For an empty
// position the group is empty.
func GroupAt(b Board, p Position) Group {
	return newGroup(b, p)
}

// GroupsWithLibertyAt returns the distinct groups found among the
// neighbors of an empty position, deduplicated by membership. Used to
// evaluate a hypothetical play without mutating the board.
func GroupsWithLibertyAt(b Board, p Position) []Group {
	if b.At(p) != Empty {
		return nil
	}

	var found []Group
next:
	for _, n := range b.Neighbors(p) {
		for _, g := range found {
			if g.Contains(n) {
				continue next
			}
		}
		found = append(found, newGroup(b, n))
	}

	return found
}

// WouldBeCaptured returns the set of positions the given player would
// capture by playing at the position: every opposing neighbor group for
// which the position is the last liberty.
func WouldBeCaptured(b Board, player Player, p Position) map[Position]struct{} {
	captured := make(map[Position]struct{})

	for _, g := range GroupsWithLibertyAt(b, p) {
		if g.Stone() != player.Stone() && g.LibertyCount() == 1 {
			for pos := range g.stones {
				captured[pos] = struct{}{}
			}
		}
	}

	return captured
}

// WouldBeSuicide reports whether a play at the position by the player
// would be suicide. A play that captures something is never suicide; a
// play that leaves some friendly neighbor group with at least two
// liberties is not suicide either. Otherwise the play is suicide when a
// friendly neighbor group would lose its last liberty.
func WouldBeSuicide(b Board, p Position, player Player) bool {
	//  OOOO   consider X to play in the middle
	// .X.XO   the left X still has a remaining liberty
	//  OOOO   => no group of X can die
	friendlyLosesLastLiberty := false

	for _, g := range GroupsWithLibertyAt(b, p) {
		libs := g.LibertyCount()

		if libs == 1 && g.Stone() == player.Other().Stone() {
			return false // we kill something
		}
		if libs == 1 && g.Stone() == player.Stone() {
			friendlyLosesLastLiberty = true
		}
		if libs > 1 && g.Stone() == player.Stone() {
			return false // a friendly stone keeps a liberty
		}
	}

	return friendlyLosesLastLiberty
}
