package tile

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// ErrEmpty is returned when a draw is attempted on an empty boneyard.
var ErrEmpty = errors.New("boneyard is empty")

// A Boneyard is the shuffled pool of undealt tiles for one match. Tiles
// are drawn from the back of the slice, so the slice order is the draw
// order. The shuffle source is seeded per match; replaying with the same
// seed reproduces the same deal.
type Boneyard struct {
	tiles   []Tile
	maxPips int
	seed    uint64
	rng     *frand.RNG
}

// RandomSeed produces a seed from the OS entropy source.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		panic("cannot seed shuffle source from crypto/rand")
	}
	return binary.LittleEndian.Uint64(b[:])
}

func rngFromSeed(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// NewBoneyard builds the full tile set for maxPips and shuffles it with
// the given seed.
func NewBoneyard(maxPips int, seed uint64) *Boneyard {
	b := &Boneyard{
		maxPips: maxPips,
		seed:    seed,
		rng:     rngFromSeed(seed),
	}
	b.Refill()
	return b
}

// FromTiles reconstructs a boneyard holding exactly the given tiles in
// the given draw order. Used when loading a saved game.
func FromTiles(tiles []Tile, maxPips int, seed uint64) *Boneyard {
	b := &Boneyard{
		tiles:   append([]Tile(nil), tiles...),
		maxPips: maxPips,
		seed:    seed,
		rng:     rngFromSeed(seed),
	}
	return b
}

// Refill rebuilds the full set and reshuffles. Called at the start of
// every round.
func (b *Boneyard) Refill() {
	b.tiles = FullSet(b.maxPips)
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
	log.Debug().Int("tiles", len(b.tiles)).Uint64("seed", b.seed).Msg("boneyard refilled")
}

// Draw removes and returns the next tile.
func (b *Boneyard) Draw() (Tile, error) {
	if len(b.tiles) == 0 {
		return Tile{}, ErrEmpty
	}
	t := b.tiles[len(b.tiles)-1]
	b.tiles = b.tiles[:len(b.tiles)-1]
	return t, nil
}

// DrawN draws n tiles. It fails without drawing any if fewer than n
// remain.
func (b *Boneyard) DrawN(n int) ([]Tile, error) {
	if n > len(b.tiles) {
		return nil, ErrEmpty
	}
	drawn := make([]Tile, n)
	for i := range drawn {
		drawn[i], _ = b.Draw()
	}
	return drawn, nil
}

// PutBack returns tiles to the pool. They go to the back, so they will
// be drawn first.
func (b *Boneyard) PutBack(tiles []Tile) {
	b.tiles = append(b.tiles, tiles...)
}

func (b *Boneyard) TilesRemaining() int {
	return len(b.tiles)
}

// Tiles returns a copy of the remaining tiles in draw order.
func (b *Boneyard) Tiles() []Tile {
	return append([]Tile(nil), b.tiles...)
}

func (b *Boneyard) Seed() uint64 {
	return b.seed
}

func (b *Boneyard) MaxPips() int {
	return b.maxPips
}

// Intn exposes the boneyard's random source for bounded picks that must
// stay reproducible under the match seed (e.g. choosing a first player
// when no one holds a double).
func (b *Boneyard) Intn(n int) int {
	return b.rng.Intn(n)
}
