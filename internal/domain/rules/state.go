package rules

import (
	"baduk/internal/domain/goban"
	"baduk/internal/engine"
)

// Phase is where the game is in its lifecycle.
type Phase int

const (
	// Running: the current player may play, pass or keep playing.
	Running Phase = iota
	// BlackPassed: if white passes next, the game moves to Ending.
	BlackPassed
	// Ending: both players passed in sequence; time to propose dead
	// stones or resume playing.
	Ending
	// EndRequested: one player proposed ending with a dead-stone list;
	// the other has to accept or reject.
	EndRequested
	// Ended: terminal, scores are fixed.
	Ended
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case BlackPassed:
		return "black_passed"
	case Ending:
		return "ending"
	case EndRequested:
		return "end_requested"
	default:
		return "ended"
	}
}

// koKey fingerprints a (board, next to move) pair. No such pair may
// repeat within one game: positional superko.
type koKey struct {
	board  string
	player goban.Player
}

// State is the full game state. It is never stored anywhere; the action
// tree derives it on demand by replay.
type State struct {
	Board goban.Board
	Ply   int
	Phase Phase

	// RequestedBy is meaningful while Phase == EndRequested.
	RequestedBy goban.Player
	// DeadStones is the pending proposal; nil when there is none.
	DeadStones []goban.Position
	// BlackScore and WhiteScore are fixed once Phase == Ended.
	BlackScore int
	WhiteScore int

	koStates map[koKey]struct{}
}

// NewState constructs the initial state on an empty board.
func NewState(newBoard func() goban.Board) *State {
	return &State{
		Board:    newBoard(),
		Phase:    Running,
		koStates: make(map[koKey]struct{}),
	}
}

// CurrentPlayer derives the player to move from the ply count. Board
// actions consume exactly one ply and alternate strictly, so even means
// black and odd means white. End negotiation does not consume plies.
// Never stored.
func (s *State) CurrentPlayer() goban.Player {
	if s.Ply%2 == 0 {
		return goban.PlayerBlack
	}
	return goban.PlayerWhite
}

// registerKoState records the current (board, player to move) pair in
// the game's superko history.
func (s *State) registerKoState() {
	s.koStates[koKey{board: s.Board.Key(), player: s.CurrentPlayer()}] = struct{}{}
}

// wouldBeKo reports whether playing at the position would reproduce a
// (board, next mover) pair already seen anywhere in the game's history.
// The hypothetical position is built on a clone, captures included.
func (s *State) wouldBeKo(p goban.Position, player goban.Player) bool {
	board := s.Board.Clone()

	captured := goban.WouldBeCaptured(board, player, p)
	board.Set(p, player.Stone())
	for pos := range captured {
		board.Set(pos, goban.Empty)
	}

	_, seen := s.koStates[koKey{board: board.Key(), player: player.Other()}]
	return seen
}

// Game is an action tree over go rules states.
type Game = engine.Tree[*State, Action]

// NewGame constructs an empty game tree playing on boards produced by
// newBoard.
func NewGame(newBoard func() goban.Board) *Game {
	return engine.New[*State, Action](func() *State {
		return NewState(newBoard)
	})
}
