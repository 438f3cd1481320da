package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"baduk/internal/domain/goban"
	"baduk/internal/domain/rules"
	"baduk/internal/engine"
)

func newBoard() goban.Board { return goban.NewGrid19() }

func TestRoundTrip(t *testing.T) {
	live := rules.NewGame(newBoard)
	var rec Record

	cursor := engine.Root
	for _, action := range []rules.Action{
		rules.Handicap{Stones: 2},
		rules.Play{Player: goban.PlayerWhite, At: goban.Position{X: 3, Y: 3}},
		rules.Play{Player: goban.PlayerBlack, At: goban.Position{X: 15, Y: 15}},
		rules.Pass{Player: goban.PlayerWhite},
	} {
		next, ok := live.Insert(cursor, action)
		require.True(t, ok)
		require.NoError(t, rec.Append(cursor, action))
		cursor = next
	}

	encoded, err := rec.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	rebuilt, tip, err := Rebuild(decoded, newBoard)
	require.NoError(t, err)
	require.Equal(t, live.Len(), rebuilt.Len())
	require.Equal(t, cursor, tip)

	want := live.GetState(cursor)
	got := rebuilt.GetState(tip)
	require.Equal(t, want.Ply, got.Ply)
	require.Equal(t, want.Phase, got.Phase)
	require.Equal(t, want.Board.Key(), got.Board.Key())
}

func TestRoundTripWithBranch(t *testing.T) {
	live := rules.NewGame(newBoard)
	var rec Record

	first := rules.Play{Player: goban.PlayerBlack, At: goban.Position{X: 3, Y: 3}}
	mainLine := rules.Play{Player: goban.PlayerWhite, At: goban.Position{X: 15, Y: 15}}
	variation := rules.Play{Player: goban.PlayerWhite, At: goban.Position{X: 15, Y: 3}}

	parent, ok := live.Insert(engine.Root, first)
	require.True(t, ok)
	require.NoError(t, rec.Append(engine.Root, first))

	_, ok = live.Insert(parent, mainLine)
	require.True(t, ok)
	require.NoError(t, rec.Append(parent, mainLine))

	branch, ok := live.Insert(parent, variation)
	require.True(t, ok)
	require.NoError(t, rec.Append(parent, variation))

	encoded, err := rec.Encode()
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)

	rebuilt, tip, err := Rebuild(decoded, newBoard)
	require.NoError(t, err)
	require.Equal(t, branch, tip)
	require.Equal(t, goban.White, rebuilt.GetState(tip).Board.At(goban.Position{X: 15, Y: 3}))
	require.Equal(t, goban.Empty, rebuilt.GetState(tip).Board.At(goban.Position{X: 15, Y: 15}))
}

func TestDecodeEmpty(t *testing.T) {
	rec, err := Decode("")
	require.NoError(t, err)
	require.Empty(t, rec.Entries)

	_, tip, err := Rebuild(rec, newBoard)
	require.NoError(t, err)
	require.True(t, tip.IsRoot())
}

func TestRebuildRejectsIllegalEntry(t *testing.T) {
	rec := Record{Entries: []Entry{
		{Parent: 0, Action: ActionRecord{Type: TypePlay, Player: "black", At: &Point{X: 3, Y: 3}}},
		{Parent: 1, Action: ActionRecord{Type: TypePlay, Player: "white", At: &Point{X: 3, Y: 3}}},
	}}

	_, _, err := Rebuild(rec, newBoard)
	require.Error(t, err)
}

func TestRebuildRejectsBadParent(t *testing.T) {
	rec := Record{Entries: []Entry{
		{Parent: 7, Action: ActionRecord{Type: TypePass, Player: "black"}},
	}}

	_, _, err := Rebuild(rec, newBoard)
	require.Error(t, err)
}

func TestToActionRejectsGarbage(t *testing.T) {
	_, err := ToAction(ActionRecord{Type: "resign", Player: "black"})
	require.Error(t, err)

	_, err = ToAction(ActionRecord{Type: TypePlay, Player: "black"})
	require.Error(t, err, "play without coordinates")

	_, err = ToAction(ActionRecord{Type: TypePass, Player: "green"})
	require.Error(t, err)
}

func TestActionConversions(t *testing.T) {
	actions := []rules.Action{
		rules.Handicap{Stones: 5},
		rules.Pass{Player: goban.PlayerWhite},
		rules.Play{Player: goban.PlayerBlack, At: goban.Position{X: 2, Y: 16}},
		rules.RequestEnd{Player: goban.PlayerBlack, DeadStones: []goban.Position{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		rules.RejectEnd{Player: goban.PlayerWhite},
		rules.AcceptEnd{Player: goban.PlayerBlack},
	}

	for _, action := range actions {
		wire, err := FromAction(action)
		require.NoError(t, err)

		back, err := ToAction(wire)
		require.NoError(t, err)
		require.Equal(t, action, back)
	}
}
