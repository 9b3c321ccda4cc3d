package game

import "errors"

// Recoverable rejections: the engine emits an ErrorEvent, game state is
// left unchanged, and the same player may retry.
var (
	ErrOutOfTurn        = errors.New("not this player's turn")
	ErrTileNotOwned     = errors.New("tile is not in the player's hand")
	ErrIllegalPlacement = errors.New("placement is not legal in this variant")
	ErrDeckExhausted    = errors.New("boneyard is empty")
	ErrGameOver         = errors.New("game is already over")
	ErrPaused           = errors.New("game is paused")
	ErrMustDraw         = errors.New("player must draw before passing")
	ErrDrawNotAllowed   = errors.New("this variant does not draw from the boneyard")
	ErrDrawLimit        = errors.New("draw limit reached for this round")
	ErrHasValidMove     = errors.New("cannot pass while holding a playable tile")
)

// ErrMalformedSave is fatal: loading rejects outright rather than
// risking a state that violates deck conservation.
var ErrMalformedSave = errors.New("malformed save state")
