package goban

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNeighborsCardinality(t *testing.T) {
	board := NewGrid19()

	require.Len(t, board.Neighbors(Position{X: 0, Y: 0}), 2, "corner")
	require.Len(t, board.Neighbors(Position{X: 0, Y: 5}), 3, "edge")
	require.Len(t, board.Neighbors(Position{X: 9, Y: 9}), 4, "interior")
	require.Len(t, board.Neighbors(Position{X: 18, Y: 18}), 2, "far corner")
}

func TestGroupsWithLibertyAt(t *testing.T) {
	board := NewGrid19()

	board.Set(Position{X: 4, Y: 3}, White) //
	board.Set(Position{X: 3, Y: 4}, Black) // XX
	board.Set(Position{X: 2, Y: 3}, Black) // X.X
	board.Set(Position{X: 3, Y: 2}, Black) //  O
	board.Set(Position{X: 2, Y: 2}, Black)

	groups := GroupsWithLibertyAt(board, Position{X: 3, Y: 3})
	require.Len(t, groups, 3)
}

func TestGroupsWithLibertyAtOccupied(t *testing.T) {
	board := NewGrid19()
	board.Set(Position{X: 3, Y: 3}, Black)

	require.Empty(t, GroupsWithLibertyAt(board, Position{X: 3, Y: 3}))
}

func TestWouldBeCaptured(t *testing.T) {
	board := NewGrid19()

	board.Set(Position{X: 0, Y: 0}, White) // OTO.
	board.Set(Position{X: 0, Y: 1}, Black) // XOX.
	board.Set(Position{X: 1, Y: 1}, White) // .X.
	board.Set(Position{X: 1, Y: 2}, Black) //
	board.Set(Position{X: 2, Y: 0}, White) // black to play at T
	board.Set(Position{X: 2, Y: 1}, Black) // should capture both white stones

	captured := WouldBeCaptured(board, PlayerBlack, Position{X: 1, Y: 0})
	require.Len(t, captured, 2)
	require.Contains(t, captured, Position{X: 0, Y: 0})
	require.Contains(t, captured, Position{X: 1, Y: 1})
}

func TestWouldBeSuicide(t *testing.T) {
	board := NewGrid19()

	// XO.    the black stones at (0,1) and (1,0) are at their last
	// OO.    liberty (0,0); black filling it kills both, white filling
	// X..    it captures both instead
	board.Set(Position{X: 0, Y: 1}, Black)
	board.Set(Position{X: 1, Y: 0}, Black)
	board.Set(Position{X: 0, Y: 2}, White)
	board.Set(Position{X: 1, Y: 1}, White)
	board.Set(Position{X: 2, Y: 0}, White)

	require.True(t, WouldBeSuicide(board, Position{X: 0, Y: 0}, PlayerBlack))
	require.False(t, WouldBeSuicide(board, Position{X: 0, Y: 0}, PlayerWhite))
}

func TestLoneStoneWithoutLibertiesIsNotSuicide(t *testing.T) {
	board := NewGrid19()

	// white surrounds (0,0) with liberties to spare; a black stone
	// there would be friendless and libertyless, but no black group
	// loses its last liberty, so the check does not fire
	board.Set(Position{X: 1, Y: 0}, White)
	board.Set(Position{X: 0, Y: 1}, White)
	board.Set(Position{X: 1, Y: 1}, White)

	require.False(t, WouldBeSuicide(board, Position{X: 0, Y: 0}, PlayerBlack))
}

func TestCapturingPlayIsNotSuicide(t *testing.T) {
	board := NewGrid19()

	// the white stone at (0,0) is at its last liberty; black filling it
	// captures, so the play is legal even though the point is otherwise
	// surrounded
	board.Set(Position{X: 0, Y: 0}, White)
	board.Set(Position{X: 0, Y: 1}, Black)
	board.Set(Position{X: 1, Y: 1}, White)
	board.Set(Position{X: 2, Y: 0}, White)

	require.False(t, WouldBeSuicide(board, Position{X: 1, Y: 0}, PlayerBlack))
	captured := WouldBeCaptured(board, PlayerBlack, Position{X: 1, Y: 0})
	require.Len(t, captured, 1)
	require.Contains(t, captured, Position{X: 0, Y: 0})
}

func TestFriendlyLibertyPreventsSuicide(t *testing.T) {
	board := NewGrid19()

	//  OOOO   black to play in the middle of the X row: the left X
	// .X.XO   still has a liberty, so nothing of black can die
	//  OOOO
	for x := 1; x <= 4; x++ {
		board.Set(Position{X: x, Y: 0}, White)
		board.Set(Position{X: x, Y: 2}, White)
	}
	board.Set(Position{X: 1, Y: 1}, Black)
	board.Set(Position{X: 3, Y: 1}, Black)
	board.Set(Position{X: 4, Y: 1}, White)

	require.False(t, WouldBeSuicide(board, Position{X: 2, Y: 1}, PlayerBlack))
}

func TestSetHandicap(t *testing.T) {
	tests := []struct {
		stones int
		want   []Position
	}{
		{stones: 2, want: []Position{{14, 4}, {4, 14}}},
		{stones: 3, want: []Position{{14, 4}, {4, 14}, {14, 14}}},
		{stones: 4, want: []Position{{14, 4}, {4, 14}, {14, 14}, {4, 4}}},
		{stones: 5, want: []Position{{14, 4}, {4, 14}, {14, 14}, {4, 4}, {10, 10}}},
		{stones: 6, want: []Position{{14, 4}, {4, 14}, {14, 14}, {4, 4}, {4, 10}, {14, 10}}},
		{stones: 7, want: []Position{{14, 4}, {4, 14}, {14, 14}, {4, 4}, {10, 10}, {4, 10}, {14, 10}}},
		{stones: 8, want: []Position{{14, 4}, {4, 14}, {14, 14}, {4, 4}, {4, 10}, {14, 10}, {10, 4}, {10, 14}}},
		{stones: 9, want: []Position{{14, 4}, {4, 14}, {14, 14}, {4, 4}, {10, 10}, {4, 10}, {14, 10}, {10, 4}, {10, 14}}},
		{stones: 0, want: nil},
		{stones: 1, want: nil},
		{stones: 10, want: nil},
	}

	for _, tt := range tests {
		board := NewGrid19()
		board.SetHandicap(tt.stones)

		placed := 0
		for _, p := range board.Positions() {
			if board.At(p) == Black {
				placed++
			}
		}
		require.Equal(t, len(tt.want), placed, "stones=%d", tt.stones)

		for _, p := range tt.want {
			require.Equal(t, Black, board.At(p), "stones=%d at %v", tt.stones, p)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := NewGrid19()
	board.Set(Position{X: 3, Y: 3}, Black)

	clone := board.Clone()
	clone.Set(Position{X: 3, Y: 3}, Empty)
	clone.Set(Position{X: 5, Y: 5}, White)

	require.Equal(t, Black, board.At(Position{X: 3, Y: 3}))
	require.Equal(t, Empty, board.At(Position{X: 5, Y: 5}))
	require.NotEqual(t, board.Key(), clone.Key())
}

func TestKeyIsStructural(t *testing.T) {
	a := NewGrid19()
	b := NewGrid19()
	require.Equal(t, a.Key(), b.Key())

	a.Set(Position{X: 7, Y: 11}, White)
	require.NotEqual(t, a.Key(), b.Key())

	b.Set(Position{X: 7, Y: 11}, White)
	require.Equal(t, a.Key(), b.Key())
}
