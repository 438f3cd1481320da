package goban

// Stone is the content of one intersection: black, white or empty.
type Stone byte

const (
	Empty Stone = iota
	Black
	White
)

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Player is one of the two sides. Empty is not a player.
type Player byte

const (
	PlayerBlack Player = iota
	PlayerWhite
)

// Other returns the opponent.
func (p Player) Other() Player {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// Stone returns the stone color the player plays with.
func (p Player) Stone() Stone {
	if p == PlayerBlack {
		return Black
	}
	return White
}

func (p Player) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}
