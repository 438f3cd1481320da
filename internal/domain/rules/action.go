package rules

import (
	"baduk/internal/domain/goban"
	"baduk/internal/engine"
)

// Action is anything that can advance a game state. The set is closed:
// Handicap, Pass, Play, RequestEnd, RejectEnd, AcceptEnd.
type Action = engine.Action[*State]

// Handicap places the fixed handicap stones. Only allowed as the very
// first ply.
type Handicap struct {
	Stones int
}

func (a Handicap) Test(s *State) bool {
	return s.Ply == 0
}

func (a Handicap) Execute(s *State) {
	s.Board.SetHandicap(a.Stones)
	s.Ply++
	s.registerKoState()
}

// Pass gives up the current turn. A white pass right after a black pass
// moves the game to Ending.
type Pass struct {
	Player goban.Player
}

func (a Pass) Test(s *State) bool {
	normalPass := s.Phase == Running
	finishingPass := s.Phase == BlackPassed
	myTurn := a.Player == s.CurrentPlayer()

	return (normalPass || finishingPass) && myTurn
}

func (a Pass) Execute(s *State) {
	if a.Player == goban.PlayerBlack {
		s.Phase = BlackPassed
	} else if a.Player == goban.PlayerWhite && s.Phase == BlackPassed {
		s.Phase = Ending
	}
	s.Ply++
	s.registerKoState()
}

// Play puts a stone on the board, capturing whatever it kills.
type Play struct {
	Player goban.Player
	At     goban.Position
}

func (a Play) Test(s *State) bool {
	validPosition := s.Board.OnBoard(a.At) && s.Board.At(a.At) == goban.Empty
	validPhase := s.Phase == Running || s.Phase == BlackPassed
	myTurn := a.Player == s.CurrentPlayer()

	return validPosition && validPhase && myTurn &&
		!goban.WouldBeSuicide(s.Board, a.At, a.Player) &&
		!s.wouldBeKo(a.At, a.Player)
}

func (a Play) Execute(s *State) {
	captured := goban.WouldBeCaptured(s.Board, a.Player, a.At)
	s.Board.Set(a.At, a.Player.Stone())
	for pos := range captured {
		s.Board.Set(pos, goban.Empty)
	}

	s.Ply++
	s.Phase = Running // a play cancels any pending pass
	s.registerKoState()
}

// RequestEnd proposes to end the game with the given stones marked
// dead. Only possible once both players have passed. Either player may
// propose; proposed positions must hold stones.
type RequestEnd struct {
	Player     goban.Player
	DeadStones []goban.Position
}

func (a RequestEnd) Test(s *State) bool {
	if s.Phase != Ending {
		return false
	}
	for _, p := range a.DeadStones {
		if !s.Board.OnBoard(p) || s.Board.At(p) == goban.Empty {
			return false
		}
	}
	return true
}

func (a RequestEnd) Execute(s *State) {
	s.Phase = EndRequested
	s.RequestedBy = a.Player
	s.DeadStones = append([]goban.Position(nil), a.DeadStones...)
}

// RejectEnd declines the other player's end proposal, returning the
// game to Ending.
type RejectEnd struct {
	Player goban.Player
}

func (a RejectEnd) Test(s *State) bool {
	return s.Phase == EndRequested && s.RequestedBy != a.Player
}

func (a RejectEnd) Execute(s *State) {
	s.Phase = Ending
	s.DeadStones = nil
}

// AcceptEnd agrees to the other player's end proposal. The game ends
// and both scores are computed. Terminal: nothing is legal afterwards.
type AcceptEnd struct {
	Player goban.Player
}

func (a AcceptEnd) Test(s *State) bool {
	return s.Phase == EndRequested && s.RequestedBy != a.Player
}

func (a AcceptEnd) Execute(s *State) {
	s.BlackScore, s.WhiteScore = goban.AreaScore(s.Board)
	s.Phase = Ended
}
