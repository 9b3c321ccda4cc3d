package game

import (
	"sort"

	"github.com/pmarrero/malecon/tile"
)

// Player owns a hand and score accounting for one seat. All mutation
// happens through Engine methods; other collaborators read snapshots.
type Player struct {
	id     int
	name   string
	avatar string
	isAI   bool
	team   int

	hand        []tile.Tile
	score       int
	tilesPlayed int
	roundsWon   int
	roundDraws  int
}

func newPlayer(id int, name string, isAI bool, team int) *Player {
	return &Player{id: id, name: name, isAI: isAI, team: team}
}

func (p *Player) ID() int      { return p.id }
func (p *Player) Name() string { return p.name }
func (p *Player) IsAI() bool   { return p.isAI }

// Index, Hand, TotalPips, Score and Team implement variant.PlayerView.
func (p *Player) Index() int { return p.id }

func (p *Player) Hand() []tile.Tile {
	return append([]tile.Tile(nil), p.hand...)
}

func (p *Player) TotalPips() int {
	return tile.SumPips(p.hand)
}

func (p *Player) Score() int { return p.score }
func (p *Player) Team() int  { return p.team }

func (p *Player) HandSize() int {
	return len(p.hand)
}

func (p *Player) HandEmpty() bool {
	return len(p.hand) == 0
}

// AddTile appends t. Hands are true sets; a duplicate is a caller bug
// and is dropped.
func (p *Player) AddTile(t tile.Tile) bool {
	if p.HasTile(t) {
		return false
	}
	p.hand = append(p.hand, t)
	return true
}

// RemoveTile takes t out of the hand. A miss is a caller bug, reported
// as false rather than an error.
func (p *Player) RemoveTile(t tile.Tile) bool {
	for i, h := range p.hand {
		if h.Equals(t) {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) HasTile(t tile.Tile) bool {
	for _, h := range p.hand {
		if h.Equals(t) {
			return true
		}
	}
	return false
}

// SortHand orders doubles first, then by descending pip value. Used for
// deterministic AI scanning and display only; never for legality.
func (p *Player) SortHand() {
	sort.SliceStable(p.hand, func(i, j int) bool {
		a, b := p.hand[i], p.hand[j]
		if a.IsDouble() != b.IsDouble() {
			return a.IsDouble()
		}
		return a.Value() > b.Value()
	})
}

// highestDouble returns the largest double in hand, if any.
func (p *Player) highestDouble() (tile.Tile, bool) {
	best := tile.Tile{}
	found := false
	for _, h := range p.hand {
		if h.IsDouble() && (!found || h.Value() > best.Value()) {
			best = h
			found = true
		}
	}
	return best, found
}

// resetRound clears per-round state; the match score persists.
func (p *Player) resetRound() {
	p.hand = nil
	p.roundDraws = 0
}

func (p *Player) resetAll() {
	p.resetRound()
	p.score = 0
	p.tilesPlayed = 0
	p.roundsWon = 0
}
