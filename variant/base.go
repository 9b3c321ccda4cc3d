package variant

import (
	"sort"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

const (
	emptyHandBonus = 20
	doubleBonus    = 5
	blockBonus     = 10
	topPickWindow  = 3
)

// base carries the Info and the default behavior shared by all nine
// variants. Concrete modes embed it and override what differs; shared
// team-scoring logic lives in free functions rather than a deeper
// embedding chain.
type base struct {
	info Info
}

func (m *base) Info() Info                     { return m.info }
func (m *base) StartRound(int)                 {}
func (m *base) RoundEnded(int, StateView) bool { return false }

func (m *base) ValidMoves(p PlayerView, b *board.Board, s StateView) []Move {
	if b.IsEmpty() {
		return openingMoves(p.Hand())
	}
	return endMoves(p.Hand(), b)
}

func (m *base) ValidateMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board, s StateView) bool {
	return b.CanPlace(t, pos, br)
}

func (m *base) ApplyMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board) bool {
	return b.PlaceTile(t, pos, br)
}

func (m *base) ScoreMove(tile.Tile, *board.Board, StateView) int { return 0 }

// ScoreRound defaults to the Block family: the winner collects the pip
// total of every other hand.
func (m *base) ScoreRound(winner int, s StateView) int {
	return losersPips(winner, s)
}

func (m *base) MustDraw(p PlayerView, b *board.Board, s StateView) bool {
	if !m.info.Drawable || s.BoneyardCount() == 0 {
		return false
	}
	return len(m.ValidMoves(p, b, s)) == 0
}

// BestMove ranks the candidates by potential score and picks uniformly
// among the top three. The bounded randomness keeps baseline AI play
// strong but not exploitable.
func (m *base) BestMove(moves []Move, b *board.Board, s StateView) *Move {
	return pickTopMove(moves, b, s)
}

func pickTopMove(moves []Move, b *board.Board, s StateView) *Move {
	if len(moves) == 0 {
		return nil
	}
	scored := make([]Move, len(moves))
	copy(scored, moves)
	sort.SliceStable(scored, func(i, j int) bool {
		return PotentialScore(scored[i], b, s) > PotentialScore(scored[j], b, s)
	})
	window := topPickWindow
	if window > len(scored) {
		window = len(scored)
	}
	pick := scored[frand.Intn(window)]
	return &pick
}

// PotentialScore is the shared move heuristic: base pip value, a bonus
// for emptying the hand, a bonus for shedding doubles, and a blocking
// term that simulates the placement and counts opponents who lose their
// last playable end.
func PotentialScore(m Move, b *board.Board, s StateView) int {
	score := m.Tile.Value()
	cur := s.PlayerAt(s.CurrentIndex())
	if len(cur.Hand()) == 1 {
		score += emptyHandBonus
	}
	if m.Tile.IsDouble() {
		score += doubleBonus
	}
	score += blockingPotential(m, b, s)
	return score
}

func blockingPotential(m Move, b *board.Board, s StateView) int {
	sim := b.Clone()
	if !sim.PlaceTile(m.Tile, m.Position, m.Branch) {
		return 0
	}
	before := b.EndValues()
	after := sim.EndValues()
	bonus := 0
	for i := 0; i < s.NumPlayers(); i++ {
		if i == s.CurrentIndex() {
			continue
		}
		hand := s.PlayerAt(i).Hand()
		if handPlaysAny(hand, before) && !handPlaysAny(hand, after) {
			bonus += blockBonus
		}
	}
	return bonus
}

func handPlaysAny(hand []tile.Tile, ends []int) bool {
	for _, t := range hand {
		for _, v := range ends {
			if t.HasValue(v) {
				return true
			}
		}
	}
	return false
}

// openingMoves offers every tile in hand on an empty board. Spinner
// openings are enumerated separately by spinnerMoves, in the modes that
// allow branching.
func openingMoves(hand []tile.Tile) []Move {
	moves := make([]Move, 0, len(hand))
	for _, t := range hand {
		moves = append(moves, Move{Tile: t, Position: board.PositionRight, Branch: board.BranchMain})
	}
	return moves
}

// endMoves enumerates every (tile, end) pairing that connects.
func endMoves(hand []tile.Tile, b *board.Board) []Move {
	var moves []Move
	for _, e := range b.Ends() {
		pos := e.Position
		if e.Branch != board.BranchMain {
			pos = board.PositionRight
		}
		for _, t := range hand {
			if t.HasValue(e.Value) {
				moves = append(moves, Move{Tile: t, Position: pos, Branch: e.Branch})
			}
		}
	}
	return moves
}

// spinnerMoves offers each double in hand as a spinner play when the
// board permits branching and no spinner exists yet.
func spinnerMoves(hand []tile.Tile, b *board.Board) []Move {
	if !b.Branching() {
		return nil
	}
	if _, set := b.Spinner(); set {
		return nil
	}
	var moves []Move
	for _, t := range hand {
		if t.IsDouble() && b.CanPlace(t, board.PositionSpinner, board.BranchMain) {
			moves = append(moves, Move{Tile: t, Position: board.PositionSpinner, Branch: board.BranchMain})
		}
	}
	return moves
}

// losersPips sums the pips left in every non-winning hand.
func losersPips(winner int, s StateView) int {
	return lo.Sum(lo.FilterMap(playerIndexes(s), func(i int, _ int) (int, bool) {
		return s.PlayerAt(i).TotalPips(), i != winner
	}))
}

// opposingTeamPips sums the pips held by the team not containing winner.
func opposingTeamPips(winner int, s StateView) int {
	winningTeam := s.PlayerAt(winner).Team()
	return lo.Sum(lo.FilterMap(playerIndexes(s), func(i int, _ int) (int, bool) {
		p := s.PlayerAt(i)
		return p.TotalPips(), p.Team() != winningTeam
	}))
}

func playerIndexes(s StateView) []int {
	idx := make([]int, s.NumPlayers())
	for i := range idx {
		idx[i] = i
	}
	return idx
}
