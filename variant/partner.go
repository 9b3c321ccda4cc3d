package variant

// Partner is four-handed with fixed teams: seats 0/2 against 1/3. Round
// scoring and the win condition operate on team aggregates.
type partnerMode struct {
	base
}

func newPartner() Mode {
	return &partnerMode{base{info: Info{
		ID:             "partner",
		Name:           "Partner",
		MinPlayers:     4,
		MaxPlayers:     4,
		MaxScore:       150,
		MaxPips:        6,
		TilesPerPlayer: 7,
		Teams:          true,
	}}}
}

func (m *partnerMode) ScoreRound(winner int, s StateView) int {
	return opposingTeamPips(winner, s)
}
