package variant

// Block is the baseline variant: no drawing, no branching, no per-move
// scoring. A round win collects the losers' pips.
type blockMode struct {
	base
}

func newBlock() Mode {
	return &blockMode{base{info: Info{
		ID:             "block",
		Name:           "Block",
		MinPlayers:     2,
		MaxPlayers:     4,
		MaxScore:       100,
		MaxPips:        6,
		TilesPerPlayer: 7,
	}}}
}
