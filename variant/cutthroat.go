package variant

// Cutthroat is three-handed, every player for themselves. The round
// winner collects both opponents' pips.
type cutthroatMode struct {
	base
}

func newCutthroat() Mode {
	return &cutthroatMode{base{info: Info{
		ID:             "cutthroat",
		Name:           "Cutthroat",
		MinPlayers:     3,
		MaxPlayers:     3,
		MaxScore:       100,
		MaxPips:        6,
		TilesPerPlayer: 7,
	}}}
}
