package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pmarrero/malecon/variant"
)

// scheduleAI arms the single AI timer slot when the current player is
// an AI seat. Called with the lock held.
func (e *Engine) scheduleAI() {
	if e.cfg.Synchronous || e.gameOver || e.paused {
		return
	}
	if !e.players[e.current].isAI {
		return
	}
	e.stopAITimer()
	delay := e.cfg.ThinkDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	e.aiTimer = time.AfterFunc(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gameOver || e.paused || !e.players[e.current].isAI {
			return
		}
		e.playAITurn()
	})
}

func (e *Engine) stopAITimer() {
	if e.aiTimer != nil {
		e.aiTimer.Stop()
		e.aiTimer = nil
	}
}

// PlayAITurn drives one AI turn synchronously. It is the entry point
// for batch play; interactive play goes through the timer.
func (e *Engine) PlayAITurn() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver {
		return ErrGameOver
	}
	if !e.players[e.current].isAI {
		return fmt.Errorf("player %d is not an AI seat", e.current)
	}
	e.playAITurn()
	return nil
}

// playAITurn resolves the current AI seat's turn: draw until playable
// where the variant allows, then place or pass. Called with the lock
// held; afterAction advances or ends the round.
func (e *Engine) playAITurn() {
	seat := e.current
	p := e.players[seat]

	for {
		moves := e.mode.ValidMoves(p, e.board, e)
		if len(moves) > 0 {
			mv := e.selectMove(seat, moves)
			if err := e.makeMove(seat, mv.Tile, mv.Position, mv.Branch); err != nil {
				// The selector produced an illegal move; fall back to
				// the first legal one rather than stalling the game.
				log.Error().Err(err).Int("player", seat).Msg("ai move rejected")
				_ = e.makeMove(seat, moves[0].Tile, moves[0].Position, moves[0].Branch)
			}
			return
		}
		if !e.mode.MustDraw(p, e.board, e) || e.drawCapReached(p) {
			break
		}
		if err := e.drawTile(seat); err != nil {
			break
		}
	}
	if err := e.pass(seat); err != nil {
		log.Error().Err(err).Int("player", seat).Msg("ai pass rejected")
	}
}

func (e *Engine) selectMove(seat int, moves []variant.Move) *variant.Move {
	if s, ok := e.selectors[seat]; ok && s != nil {
		if mv := s.SelectMove(e.mode, moves, e.board, e); mv != nil {
			return mv
		}
	}
	if mv := e.mode.BestMove(moves, e.board, e); mv != nil {
		return mv
	}
	return &moves[0]
}

// AutoPlay runs the match to completion with every seat driven by the
// AI policy. Requires a Synchronous config. It returns the winner index.
func (e *Engine) AutoPlay() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.cfg.Synchronous {
		return -1, fmt.Errorf("autoplay requires a synchronous engine")
	}
	if e.round == 0 {
		e.started = time.Now()
		e.emit(GameStartEvent{GameID: e.uid, Variant: e.info.ID})
		e.startRound()
	}
	turns := 0
	round := e.round
	for !e.gameOver {
		e.playAITurn()
		if e.round != round {
			round = e.round
			turns = 0
			continue
		}
		turns++
		if turns > maxTurnsPerRound {
			return -1, fmt.Errorf("round %d exceeded %d turns", e.round, maxTurnsPerRound)
		}
	}
	return e.winner, nil
}
