package variant

// Six-Love is Partner play with a streak counter that outlives any one
// round: a team winning six consecutive rounds scores a "six love" and
// the streak resets. The counter lives on the mode because mode values
// are per-match.
type sixLoveMode struct {
	base
	streak [2]int
}

const sixLoveStreak = 6

func newSixLove() Mode {
	return &sixLoveMode{base: base{info: Info{
		ID:             "sixlove",
		Name:           "Six-Love",
		MinPlayers:     4,
		MaxPlayers:     4,
		MaxScore:       150,
		MaxPips:        6,
		TilesPerPlayer: 7,
		Teams:          true,
	}}}
}

func (m *sixLoveMode) ScoreRound(winner int, s StateView) int {
	return opposingTeamPips(winner, s)
}

func (m *sixLoveMode) RoundEnded(winner int, s StateView) bool {
	team := s.PlayerAt(winner).Team()
	m.streak[team]++
	m.streak[1-team] = 0
	if m.streak[team] >= sixLoveStreak {
		m.streak = [2]int{}
		return true
	}
	return false
}

// ConsecutiveWins reports the current streak per team.
func (m *sixLoveMode) ConsecutiveWins() [2]int {
	return m.streak
}
