package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmarrero/malecon/config"
	"github.com/pmarrero/malecon/game"
)

func thinkDelay(cfg *config.Config) time.Duration {
	return time.Duration(cfg.ThinkDelayMs) * time.Millisecond
}

// printEvent narrates engine events at the prompt. Handlers run on the
// engine goroutine, so this only formats and writes.
func (sc *ShellController) printEvent(ev game.Event) {
	switch v := ev.(type) {
	case game.GameStartEvent:
		sc.showMessage(fmt.Sprintf("-- new %s game %s --", v.Variant, v.GameID[:8]))
	case game.RoundStartEvent:
		sc.showMessage(fmt.Sprintf("-- round %d --", v.Round))
	case game.MoveEvent:
		msg := fmt.Sprintf("%s plays %s on %s", sc.seatName(v.Player), v.Tile, v.Branch)
		if v.Score > 0 {
			msg += fmt.Sprintf(" for %d", v.Score)
		}
		sc.showMessage(msg)
	case game.PassEvent:
		sc.showMessage(sc.seatName(v.Player) + " passes")
	case game.DrawEvent:
		if v.Player == humanSeat {
			sc.showMessage("you draw " + v.Tile.String())
		} else {
			sc.showMessage(sc.seatName(v.Player) + " draws")
		}
	case game.DeckEmptyEvent:
		sc.showMessage("the boneyard is empty")
	case game.BlockedEvent:
		sc.showMessage("the game is blocked!")
	case game.TurnEvent:
		if v.Player == humanSeat {
			sc.showMessage("your turn")
		}
	case game.RoundEndEvent:
		if v.Winner < 0 {
			sc.showMessage("round washed, nobody scores")
		} else {
			sc.showMessage(fmt.Sprintf("%s wins the round, +%d",
				sc.seatName(v.Winner), v.Score))
		}
	case game.SixLoveEvent:
		sc.showMessage(fmt.Sprintf("SIX-LOVE for team %d!", v.Team+1))
	case game.GameEndEvent:
		sc.showMessage(fmt.Sprintf("game over, %s wins", sc.seatName(v.Winner)))
	case game.ErrorEvent:
		if v.Player == humanSeat {
			sc.showMessage("rejected: " + v.Message)
		}
	}
}

// seatName reads the cached name table; event handlers run under the
// engine lock and must not call back into it.
func (sc *ShellController) seatName(i int) string {
	if i < 0 || i >= len(sc.names) {
		return fmt.Sprintf("player %d", i)
	}
	return sc.names[i]
}

// renderState draws the whole table: board ends, scores, and the human
// hand with play hints.
func renderState(snap game.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, round %d, boneyard %d\n",
		snap.Variant, snap.Round, snap.BoneyardCount)
	fmt.Fprintf(&sb, "board: %s\n", snap.Board)
	for _, p := range snap.Players {
		marker := "  "
		if p.Index == snap.CurrentPlayer {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%-10s %3d pts, %d tiles\n",
			marker, p.Name, p.Score, len(p.Hand))
	}
	human := snap.Players[humanSeat]
	sb.WriteString("your hand:")
	for _, t := range human.Hand {
		sb.WriteString(" " + t.String())
	}
	if snap.Paused {
		sb.WriteString("\n(paused)")
	}
	if snap.GameOver {
		sb.WriteString("\n(game over)")
	}
	return sb.String()
}
