package ai

import (
	"encoding/binary"
	"math"
	"sort"

	"lukechampine.com/frand"

	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/variant"
)

// Selector picks one legal move per turn according to its personality.
// It satisfies game.MoveSelector.
type Selector struct {
	p   Personality
	rng *frand.RNG
}

// NewSelector builds a selector. seed fixes the randomness for
// reproducible matches; pass 0 for an OS-seeded source.
func NewSelector(p Personality, seed uint64) *Selector {
	var rng *frand.RNG
	if seed == 0 {
		rng = frand.New()
	} else {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:], seed)
		rng = frand.NewCustom(key[:], 1024, 12)
	}
	return &Selector{p: p.normalized(), rng: rng}
}

// Personality returns the normalized personality in use.
func (s *Selector) Personality() Personality {
	return s.p
}

// SelectMove ranks the candidates under the personality weights and
// picks within a skill-sized window of the top. A mistake turn ignores
// ranking and plays uniformly at random.
func (s *Selector) SelectMove(m variant.Mode, moves []variant.Move, b *board.Board, sv variant.StateView) *variant.Move {
	if len(moves) == 0 {
		return nil
	}
	if s.p.MistakeRate > 0 && s.rng.Float64() < s.p.MistakeRate {
		pick := moves[s.rng.Intn(len(moves))]
		return &pick
	}

	ranked := make([]variant.Move, len(moves))
	copy(ranked, moves)
	weights := make(map[variant.Move]float64, len(ranked))
	for _, mv := range ranked {
		weights[mv] = s.weight(mv, b, sv)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return weights[ranked[i]] > weights[ranked[j]]
	})

	window := s.window(len(ranked))
	pick := ranked[s.rng.Intn(window)]
	return &pick
}

// weight blends the shared heuristic with the personality axes:
// aggressive seats overvalue shedding pips, defensive seats overvalue
// choking opponents' open ends.
func (s *Selector) weight(mv variant.Move, b *board.Board, sv variant.StateView) float64 {
	w := float64(variant.PotentialScore(mv, b, sv))
	w += s.p.Aggressiveness * float64(mv.Tile.Value())
	w += s.p.Defensiveness * float64(blockedOpponents(mv, b, sv)) * 10
	return w
}

// blockedOpponents counts opponents left with no playable end after the
// simulated placement.
func blockedOpponents(mv variant.Move, b *board.Board, sv variant.StateView) int {
	sim := b.Clone()
	if !sim.PlaceTile(mv.Tile, mv.Position, mv.Branch) {
		return 0
	}
	ends := sim.EndValues()
	blocked := 0
	for i := 0; i < sv.NumPlayers(); i++ {
		if i == sv.CurrentIndex() {
			continue
		}
		plays := false
		for _, t := range sv.PlayerAt(i).Hand() {
			for _, v := range ends {
				if t.HasValue(v) {
					plays = true
				}
			}
		}
		if !plays {
			blocked++
		}
	}
	return blocked
}

// window shrinks from a quarter of the candidates down to exactly one
// as skill rises.
func (s *Selector) window(n int) int {
	spread := 1 + int(math.Round((1-s.p.Skill)*float64(n-1)/4))
	if spread < 1 {
		spread = 1
	}
	if spread > n {
		spread = n
	}
	return spread
}
