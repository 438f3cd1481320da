package goban

// Erode repeatedly fills every empty position adjacent to at least one
// stone of the given color, until a pass changes nothing. The result is
// the color's maximal area of influence.
func Erode(b Board, color Stone) {
	positions := b.Positions()

	for changed := true; changed; {
		changed = false

		for _, p := range positions {
			if b.At(p) != Empty {
				continue
			}
			for _, n := range b.Neighbors(p) {
				if b.At(n) == color {
					b.Set(p, color)
					changed = true
					break
				}
			}
		}
	}
}

// AreaScore computes area scores for both players by eroding a clone of
// the board per color.
//
// A position is either:
//   - played by me   (my clone = me, other clone = me),
//   - my territory   (my clone = me, other clone = empty),
//   - seki           (my clone = me, other clone = other),
//   - not mine       (my clone != me).
//
// Seki-shaped boundary points count for both sides; that is a property
// of the erosion formula and is kept as is.
func AreaScore(b Board) (black, white int) {
	whiteBoard := b.Clone()
	blackBoard := b.Clone()

	Erode(whiteBoard, White)
	Erode(blackBoard, Black)

	for _, p := range b.Positions() {
		if whiteBoard.At(p) == White || blackBoard.At(p) != Black {
			white++
		}
		if blackBoard.At(p) == Black || whiteBoard.At(p) != White {
			black++
		}
	}

	return black, white
}
