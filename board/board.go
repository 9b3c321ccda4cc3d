// Package board implements the domino placement surface. A board starts
// as a single chain with two open ends; in branching variants the first
// double played as a spinner converts it into up to four chains
// radiating from that double.
package board

import (
	"fmt"
	"strings"

	"github.com/pmarrero/malecon/tile"
)

// Position addresses one of the open ends of the main chain, or marks a
// double being established as the spinner.
type Position string

const (
	PositionLeft    Position = "left"
	PositionRight   Position = "right"
	PositionSpinner Position = "spinner"
)

// Branch names a chain on the board. Before a spinner is set the only
// branch is main.
type Branch string

const (
	BranchMain   Branch = "main"
	BranchLeft   Branch = "left"
	BranchRight  Branch = "right"
	BranchTop    Branch = "top"
	BranchBottom Branch = "bottom"
)

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Placed is one tile on the board together with its layout metadata.
// The x/y/orientation values exist for rendering only and never affect
// legality.
type Placed struct {
	Tile        tile.Tile
	X           int
	Y           int
	Orientation Orientation
	Branch      Branch

	// Held marks a tile placed with PlaceHolding, so a replayed board
	// reproduces the same open-end values.
	Held bool
}

// End is an open position that accepts a tile sharing its value.
type End struct {
	Branch   Branch
	Position Position
	Value    int
	IsDouble bool
}

type boardEnd struct {
	End
	count int // tiles extending in this direction
}

// Board owns the placed tiles and the set of open ends. All mutating
// methods are guards: they return false and leave the board untouched
// when a placement is illegal. Rule authority lives in the game modes;
// the board check is defense in depth.
type Board struct {
	branching bool
	placed    []Placed
	ends      []*boardEnd
	spinner   *tile.Tile
}

// New creates an empty board. branching controls whether a spinner
// opens the four-chain topology.
func New(branching bool) *Board {
	return &Board{branching: branching}
}

func (b *Board) IsEmpty() bool {
	return len(b.placed) == 0
}

func (b *Board) TileCount() int {
	return len(b.placed)
}

// Tiles returns the placement log in play order.
func (b *Board) Tiles() []Placed {
	return append([]Placed(nil), b.placed...)
}

// Spinner returns the double that created branching, if set.
func (b *Board) Spinner() (tile.Tile, bool) {
	if b.spinner == nil {
		return tile.Tile{}, false
	}
	return *b.spinner, true
}

func (b *Board) Branching() bool {
	return b.branching
}

// Ends lists the open ends, main branch first (left then right), then
// the spinner branches in left/right/top/bottom order.
func (b *Board) Ends() []End {
	out := make([]End, len(b.ends))
	for i, e := range b.ends {
		out[i] = e.End
	}
	return out
}

// EndValues returns one pip value per open end, in Ends order.
func (b *Board) EndValues() []int {
	vals := make([]int, len(b.ends))
	for i, e := range b.ends {
		vals[i] = e.Value
	}
	return vals
}

// Reset clears all chains back to a single empty main branch.
func (b *Board) Reset() {
	b.placed = nil
	b.ends = nil
	b.spinner = nil
}

// Clone deep-copies the board. Used by the AI blocking heuristic to
// simulate placements.
func (b *Board) Clone() *Board {
	nb := &Board{branching: b.branching}
	nb.placed = append([]Placed(nil), b.placed...)
	nb.ends = make([]*boardEnd, len(b.ends))
	for i, e := range b.ends {
		cp := *e
		nb.ends[i] = &cp
	}
	if b.spinner != nil {
		sp := *b.spinner
		nb.spinner = &sp
	}
	return nb
}

func (b *Board) findEnd(pos Position, br Branch) *boardEnd {
	for _, e := range b.ends {
		if e.Branch != br {
			continue
		}
		if br == BranchMain && e.Position != pos {
			continue
		}
		return e
	}
	return nil
}

// CanPlace reports whether PlaceTile would succeed, without mutating.
func (b *Board) CanPlace(t tile.Tile, pos Position, br Branch) bool {
	if b.IsEmpty() {
		if pos == PositionSpinner {
			return t.IsDouble()
		}
		return true
	}
	if pos == PositionSpinner {
		if !t.IsDouble() || b.spinner != nil {
			return false
		}
		// A spinner is played onto an existing end it matches. Before a
		// spinner exists every end is on the main chain.
		for _, e := range b.ends {
			if e.Branch == BranchMain && t.HasValue(e.Value) {
				return true
			}
		}
		return false
	}
	end := b.findEnd(pos, br)
	if end == nil {
		return false
	}
	return t.HasValue(end.Value)
}

// PlaceTile appends t to the addressed end. It returns false with no
// mutation if the placement is illegal.
func (b *Board) PlaceTile(t tile.Tile, pos Position, br Branch) bool {
	if !b.CanPlace(t, pos, br) {
		return false
	}
	if b.IsEmpty() {
		b.placeFirst(t, pos)
		return true
	}
	if pos == PositionSpinner {
		b.placeSpinner(t)
		return true
	}
	b.placeOnEnd(t, b.findEnd(pos, br))
	return true
}

func (b *Board) placeFirst(t tile.Tile, pos Position) {
	orient := Horizontal
	if t.IsDouble() {
		orient = Vertical
	}
	b.placed = append(b.placed, Placed{Tile: t, Orientation: orient, Branch: BranchMain})

	if pos == PositionSpinner && t.IsDouble() {
		sp := t
		b.spinner = &sp
		if b.branching {
			b.openSpinnerEnds(t.Left, nil)
			return
		}
	}
	b.ends = []*boardEnd{
		{End: End{Branch: BranchMain, Position: PositionLeft, Value: t.Left, IsDouble: t.IsDouble()}},
		{End: End{Branch: BranchMain, Position: PositionRight, Value: t.Right, IsDouble: t.IsDouble()}},
	}
}

// placeSpinner attaches a double to the main end it matches and records
// it as the spinner. In branching variants the surviving main chain is
// folded into the right branch and three fresh chains open at the
// spinner's value.
func (b *Board) placeSpinner(t tile.Tile) {
	var target *boardEnd
	for _, e := range b.ends {
		if e.Branch == BranchMain && t.HasValue(e.Value) {
			target = e
			break
		}
	}
	b.appendPlaced(t, target)
	sp := t
	b.spinner = &sp

	if !b.branching {
		// The double exposes the same value it connected with.
		target.Value = t.Left
		target.IsDouble = true
		target.count++
		return
	}

	var survivor *boardEnd
	for _, e := range b.ends {
		if e != target {
			survivor = e
			break
		}
	}
	b.openSpinnerEnds(t.Left, survivor)
}

// openSpinnerEnds installs the four-branch topology. survivor, if not
// nil, is the pre-spinner chain remnant; it keeps its open value as the
// right branch.
func (b *Board) openSpinnerEnds(pip int, survivor *boardEnd) {
	mk := func(br Branch) *boardEnd {
		return &boardEnd{End: End{Branch: br, Position: PositionRight, Value: pip, IsDouble: true}}
	}
	right := mk(BranchRight)
	if survivor != nil {
		right.Value = survivor.Value
		right.IsDouble = survivor.IsDouble
		right.count = survivor.count + 1
	}
	b.ends = []*boardEnd{mk(BranchLeft), right, mk(BranchTop), mk(BranchBottom)}
}

func (b *Board) placeOnEnd(t tile.Tile, end *boardEnd) {
	b.appendPlaced(t, end)
	end.Value = t.OtherSide(end.Value)
	end.IsDouble = t.IsDouble()
	end.count++
}

// appendPlaced records the tile with cosmetic layout coordinates. Each
// chain grows one unit per tile along its axis.
func (b *Board) appendPlaced(t tile.Tile, end *boardEnd) {
	n := end.count + 1
	var x, y int
	axis := Horizontal
	switch {
	case end.Branch == BranchMain && end.Position == PositionLeft, end.Branch == BranchLeft:
		x = -n
	case end.Branch == BranchMain && end.Position == PositionRight, end.Branch == BranchRight:
		x = n
	case end.Branch == BranchTop:
		y = -n
		axis = Vertical
	case end.Branch == BranchBottom:
		y = n
		axis = Vertical
	}
	orient := axis
	if t.IsDouble() {
		// Doubles sit crosswise to their chain.
		if axis == Horizontal {
			orient = Vertical
		} else {
			orient = Horizontal
		}
	}
	b.placed = append(b.placed, Placed{Tile: t, X: x, Y: y, Orientation: orient, Branch: end.Branch})
}

// PlaceHolding appends t to the addressed end without advancing the
// end's open value. Used while a double is being satisfied: tiles stack
// against the double and the double's pip stays the only playable value
// there until the last tile of the foot is placed normally.
func (b *Board) PlaceHolding(t tile.Tile, pos Position, br Branch) bool {
	end := b.findEnd(pos, br)
	if end == nil || !t.HasValue(end.Value) {
		return false
	}
	b.appendPlaced(t, end)
	b.placed[len(b.placed)-1].Held = true
	end.count++
	return true
}

// String renders a compact debug view of the open ends.
func (b *Board) String() string {
	if b.IsEmpty() {
		return "<empty board>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d tiles; ends:", len(b.placed))
	for _, e := range b.ends {
		fmt.Fprintf(&sb, " %s/%s=%d", e.Branch, e.Position, e.Value)
	}
	return sb.String()
}
