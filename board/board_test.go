package board

import (
	"testing"

	"github.com/matryer/is"

	"github.com/pmarrero/malecon/tile"
)

func TestFirstTileFixesEnds(t *testing.T) {
	is := is.New(t)
	b := New(false)
	is.True(b.IsEmpty())
	is.True(b.PlaceTile(tile.New(3, 5), PositionRight, BranchMain))
	is.Equal(b.EndValues(), []int{3, 5})
	is.Equal(b.TileCount(), 1)
}

func TestPlacementRequiresMatchingPip(t *testing.T) {
	is := is.New(t)
	b := New(false)
	is.True(b.PlaceTile(tile.New(3, 5), PositionRight, BranchMain))

	// 2|4 touches neither end.
	is.True(!b.PlaceTile(tile.New(2, 4), PositionLeft, BranchMain))
	is.True(!b.PlaceTile(tile.New(2, 4), PositionRight, BranchMain))
	is.Equal(b.TileCount(), 1) // rejected placements must not mutate

	is.True(b.PlaceTile(tile.New(5, 2), PositionRight, BranchMain))
	is.Equal(b.EndValues(), []int{3, 2})

	is.True(b.PlaceTile(tile.New(6, 3), PositionLeft, BranchMain))
	is.Equal(b.EndValues(), []int{6, 2})
}

func TestDoubleOnChainKeepsEndValue(t *testing.T) {
	is := is.New(t)
	b := New(false)
	is.True(b.PlaceTile(tile.New(3, 5), PositionRight, BranchMain))
	is.True(b.PlaceTile(tile.New(5, 5), PositionRight, BranchMain))
	is.Equal(b.EndValues(), []int{3, 5})
	ends := b.Ends()
	is.True(ends[1].IsDouble)
}

func TestSpinnerOpensFourBranches(t *testing.T) {
	is := is.New(t)
	b := New(true)
	is.True(b.PlaceTile(tile.New(6, 6), PositionSpinner, BranchMain))
	sp, ok := b.Spinner()
	is.True(ok)
	is.Equal(sp, tile.New(6, 6))
	is.Equal(len(b.Ends()), 4)
	for _, e := range b.Ends() {
		is.Equal(e.Value, 6)
	}

	is.True(b.PlaceTile(tile.New(6, 2), PositionRight, BranchTop))
	is.True(b.PlaceTile(tile.New(6, 4), PositionRight, BranchLeft))
	is.Equal(b.EndValues(), []int{4, 6, 2, 6})
}

func TestSpinnerOnlyOnce(t *testing.T) {
	is := is.New(t)
	b := New(true)
	is.True(b.PlaceTile(tile.New(6, 6), PositionSpinner, BranchMain))
	is.True(!b.CanPlace(tile.New(5, 5), PositionSpinner, BranchMain))
	is.True(!b.PlaceTile(tile.New(5, 5), PositionSpinner, BranchMain))
}

func TestSpinnerMidChainFoldsSurvivor(t *testing.T) {
	is := is.New(t)
	b := New(true)
	is.True(b.PlaceTile(tile.New(3, 5), PositionRight, BranchMain))
	is.True(b.PlaceTile(tile.New(5, 5), PositionSpinner, BranchMain))

	// Old chain's far end (3) survives as the right branch; the other
	// three branches open at the spinner's value.
	is.Equal(b.EndValues(), []int{5, 3, 5, 5})
}

func TestSpinnerWithoutBranchingStaysTwoEnded(t *testing.T) {
	is := is.New(t)
	b := New(false)
	is.True(b.PlaceTile(tile.New(3, 5), PositionRight, BranchMain))
	is.True(b.PlaceTile(tile.New(5, 5), PositionSpinner, BranchMain))
	is.Equal(len(b.Ends()), 2)
	is.Equal(b.EndValues(), []int{3, 5})
}

func TestNonDoubleCannotBeSpinner(t *testing.T) {
	is := is.New(t)
	b := New(true)
	is.True(!b.CanPlace(tile.New(3, 5), PositionSpinner, BranchMain))
	is.True(b.PlaceTile(tile.New(6, 6), PositionRight, BranchMain))
	is.True(!b.PlaceTile(tile.New(6, 1), PositionSpinner, BranchMain))
}

func TestLayoutIsCosmetic(t *testing.T) {
	is := is.New(t)
	b := New(false)
	is.True(b.PlaceTile(tile.New(2, 2), PositionRight, BranchMain))
	is.True(b.PlaceTile(tile.New(2, 6), PositionRight, BranchMain))
	is.True(b.PlaceTile(tile.New(2, 4), PositionLeft, BranchMain))

	tiles := b.Tiles()
	is.Equal(len(tiles), 3)
	is.Equal(tiles[0].Orientation, Vertical) // doubles sit crosswise
	is.Equal(tiles[1].X, 1)
	is.Equal(tiles[2].X, -1)
	// Placement order and end values are unaffected by layout.
	is.Equal(b.EndValues(), []int{4, 6})
}

func TestResetClearsEverything(t *testing.T) {
	is := is.New(t)
	b := New(true)
	is.True(b.PlaceTile(tile.New(6, 6), PositionSpinner, BranchMain))
	is.True(b.PlaceTile(tile.New(6, 1), PositionRight, BranchTop))
	b.Reset()
	is.True(b.IsEmpty())
	is.Equal(len(b.Ends()), 0)
	_, ok := b.Spinner()
	is.True(!ok)
}

func TestCloneIsIndependent(t *testing.T) {
	is := is.New(t)
	b := New(false)
	is.True(b.PlaceTile(tile.New(3, 5), PositionRight, BranchMain))
	cl := b.Clone()
	is.True(cl.PlaceTile(tile.New(5, 1), PositionRight, BranchMain))
	is.Equal(b.EndValues(), []int{3, 5})
	is.Equal(cl.EndValues(), []int{3, 1})
}
