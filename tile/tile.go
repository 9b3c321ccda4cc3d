// Package tile defines the domino tile value type and the boneyard,
// the undealt pool of tiles a round is drawn from.
package tile

import (
	"fmt"
)

// A Tile is an immutable pip pair. (a,b) and (b,a) denote the same
// physical tile; all comparisons in this package are symmetric.
type Tile struct {
	Left  int
	Right int
}

func New(left, right int) Tile {
	return Tile{Left: left, Right: right}
}

func (t Tile) IsDouble() bool {
	return t.Left == t.Right
}

// Value is the total pip count of the tile.
func (t Tile) Value() int {
	return t.Left + t.Right
}

func (t Tile) HasValue(v int) bool {
	return t.Left == v || t.Right == v
}

// CanConnect reports whether this tile shares a pip value with other.
func (t Tile) CanConnect(other Tile) bool {
	return t.HasValue(other.Left) || t.HasValue(other.Right)
}

// Equals is symmetric; a tile equals its own flip.
func (t Tile) Equals(other Tile) bool {
	return (t.Left == other.Left && t.Right == other.Right) ||
		(t.Left == other.Right && t.Right == other.Left)
}

// Flipped returns the same tile with its pips swapped.
func (t Tile) Flipped() Tile {
	return Tile{Left: t.Right, Right: t.Left}
}

// OtherSide returns the pip value opposite v. If the tile does not
// contain v it returns -1.
func (t Tile) OtherSide(v int) int {
	switch {
	case t.Left == v:
		return t.Right
	case t.Right == v:
		return t.Left
	}
	return -1
}

func (t Tile) String() string {
	return fmt.Sprintf("%d|%d", t.Left, t.Right)
}

// FullSet generates every tile (i,j) with 0 <= i <= j <= maxPips.
func FullSet(maxPips int) []Tile {
	set := make([]Tile, 0, SetSize(maxPips))
	for i := 0; i <= maxPips; i++ {
		for j := i; j <= maxPips; j++ {
			set = append(set, Tile{Left: i, Right: j})
		}
	}
	return set
}

// SetSize is the triangular cardinality of the full set for maxPips,
// C(maxPips+2, 2).
func SetSize(maxPips int) int {
	return (maxPips + 1) * (maxPips + 2) / 2
}

// HighestDouble returns the largest double in the set for maxPips.
func HighestDouble(maxPips int) Tile {
	return Tile{Left: maxPips, Right: maxPips}
}

// SumPips totals the pips across a group of tiles.
func SumPips(tiles []Tile) int {
	total := 0
	for _, t := range tiles {
		total += t.Value()
	}
	return total
}
