package variant

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

const (
	footSize         = 3
	footBonus        = 10
	doubleBlankScore = 50
)

// Chicken Foot layers a sub-state machine on the turn loop: playing any
// double opens a "foot" that must collect three tiles matching the
// double's value before normal play resumes. Round one must open with
// the set's highest double, played as the spinner.
type chickenFootMode struct {
	base
	current       *tile.Tile // double awaiting its foot
	tilesOn       int
	justCompleted bool
}

func newChickenFoot() Mode {
	return &chickenFootMode{base: base{info: Info{
		ID:             "chickenfoot",
		Name:           "Chicken Foot",
		MinPlayers:     2,
		MaxPlayers:     4,
		MaxScore:       100,
		MaxPips:        9,
		TilesPerPlayer: 7,
		Drawable:       true,
		Branching:      true,
	}}}
}

func (m *chickenFootMode) StartRound(round int) {
	m.current = nil
	m.tilesOn = 0
	m.justCompleted = false
}

// FootComplete is false while a played double still awaits its foot.
func (m *chickenFootMode) FootComplete() bool {
	return m.current == nil
}

// CurrentDouble returns the double being footed, if any.
func (m *chickenFootMode) CurrentDouble() (tile.Tile, bool) {
	if m.current == nil {
		return tile.Tile{}, false
	}
	return *m.current, true
}

func (m *chickenFootMode) TilesOnDouble() int {
	return m.tilesOn
}

func (m *chickenFootMode) footValue() int {
	return m.current.Left
}

func (m *chickenFootMode) ValidMoves(p PlayerView, b *board.Board, s StateView) []Move {
	if b.IsEmpty() {
		if s.RoundNumber() == 1 {
			top := tile.HighestDouble(m.info.MaxPips)
			for _, t := range p.Hand() {
				if t.Equals(top) {
					return []Move{{Tile: t, Position: board.PositionSpinner, Branch: board.BranchMain}}
				}
			}
			return nil
		}
		return append(openingMoves(p.Hand()), spinnerMoves(p.Hand(), b)...)
	}
	if m.current != nil {
		return m.footMoves(p.Hand(), b)
	}
	return append(endMoves(p.Hand(), b), spinnerMoves(p.Hand(), b)...)
}

// footMoves restricts play to ends exposing the footed double's value,
// regardless of any other open end.
func (m *chickenFootMode) footMoves(hand []tile.Tile, b *board.Board) []Move {
	fv := m.footValue()
	var moves []Move
	for _, e := range b.Ends() {
		if e.Value != fv {
			continue
		}
		pos := e.Position
		if e.Branch != board.BranchMain {
			pos = board.PositionRight
		}
		for _, t := range hand {
			if t.HasValue(fv) {
				moves = append(moves, Move{Tile: t, Position: pos, Branch: e.Branch})
			}
		}
	}
	return moves
}

func (m *chickenFootMode) ValidateMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board, s StateView) bool {
	if b.IsEmpty() {
		if s.RoundNumber() == 1 && !t.Equals(tile.HighestDouble(m.info.MaxPips)) {
			return false
		}
		return b.CanPlace(t, pos, br)
	}
	if m.current != nil {
		fv := m.footValue()
		if !t.HasValue(fv) {
			return false
		}
		for _, e := range b.Ends() {
			if e.Branch != br {
				continue
			}
			if br == board.BranchMain && e.Position != pos {
				continue
			}
			return e.Value == fv
		}
		return false
	}
	return b.CanPlace(t, pos, br)
}

func (m *chickenFootMode) ApplyMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board) bool {
	m.justCompleted = false
	if m.current != nil {
		return m.applyFootTile(t, pos, br, b)
	}
	if !b.PlaceTile(t, pos, br) {
		return false
	}
	if t.IsDouble() {
		cp := t
		m.current = &cp
		m.tilesOn = 0
	}
	return true
}

func (m *chickenFootMode) applyFootTile(t tile.Tile, pos board.Position, br board.Branch, b *board.Board) bool {
	// On the spinner's foot the tiles fan out across its branches and
	// extend them normally. On a mid-chain double the tiles stack
	// against the double, which keeps exposing its own value until the
	// last foot tile carries the chain onward.
	onSpinner := false
	if sp, ok := b.Spinner(); ok && sp.Equals(*m.current) {
		onSpinner = true
	}
	var ok bool
	if onSpinner || m.tilesOn == footSize-1 {
		ok = b.PlaceTile(t, pos, br)
	} else {
		ok = b.PlaceHolding(t, pos, br)
	}
	if !ok {
		return false
	}
	m.tilesOn++
	if m.tilesOn >= footSize {
		m.current = nil
		m.tilesOn = 0
		m.justCompleted = true
	}
	return true
}

// ScoreMove pays the bonus to whoever completes a foot.
func (m *chickenFootMode) ScoreMove(t tile.Tile, b *board.Board, s StateView) int {
	if m.justCompleted {
		return footBonus
	}
	return 0
}

// ScoreRound counts losers' pips, with the double-blank charged a flat
// penalty instead of its face value.
func (m *chickenFootMode) ScoreRound(winner int, s StateView) int {
	total := 0
	for i := 0; i < s.NumPlayers(); i++ {
		if i == winner {
			continue
		}
		for _, t := range s.PlayerAt(i).Hand() {
			if t.Equals(tile.New(0, 0)) {
				total += doubleBlankScore
			} else {
				total += t.Value()
			}
		}
	}
	return total
}

func (m *chickenFootMode) MustDraw(p PlayerView, b *board.Board, s StateView) bool {
	if s.BoneyardCount() == 0 {
		return false
	}
	return len(m.ValidMoves(p, b, s)) == 0
}
