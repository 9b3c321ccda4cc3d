// Package game encapsulates the match orchestration for dominoes: deck
// generation and dealing, the turn loop, AI scheduling, round and game
// lifecycle, and event emission. The Engine owns the only mutable game
// state; rule authority is delegated to the active variant.Mode.
package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
	"github.com/pmarrero/malecon/variant"
)

// maxTurnsPerRound bounds a single round against turn cycling; a legal
// round on a double-nine set ends well under this.
const maxTurnsPerRound = 2000

// PlayerConfig describes one seat.
type PlayerConfig struct {
	Name string
	AI   bool
}

// Config is the immutable match configuration.
type Config struct {
	Variant string
	Players []PlayerConfig

	// MaxScore overrides the variant default when nonzero.
	MaxScore int

	// ThinkDelay is the simulated AI thinking time. Ignored when
	// Synchronous is set.
	ThinkDelay time.Duration

	// Synchronous disables the AI timer; callers drive AI turns with
	// PlayAITurn or AutoPlay. Used by batch self-play and tests.
	Synchronous bool

	// MaxDrawsPerRound caps boneyard draws per player per round in
	// draw-capable variants. Zero means unlimited.
	MaxDrawsPerRound int

	// Seed fixes the shuffle source; zero draws a random seed.
	Seed uint64
}

// MoveSelector chooses among legal moves; the AI personality layer
// implements it. A nil selector falls back to the mode heuristic.
type MoveSelector interface {
	SelectMove(m variant.Mode, moves []variant.Move, b *board.Board, s variant.StateView) *variant.Move
}

// Engine drives a full match. All exported methods are safe to call
// from the UI goroutine while an AI timer is pending.
type Engine struct {
	mu sync.Mutex

	uid      string
	cfg      Config
	mode     variant.Mode
	info     variant.Info
	maxScore int

	board    *board.Board
	boneyard *tile.Boneyard
	players  []*Player

	current  int
	round    int
	gameOver bool
	winner   int
	paused   bool

	history  []Move
	handlers []func(Event)
	sinks    []SummarySink

	selectors map[int]MoveSelector
	aiTimer   *time.Timer
	started   time.Time
	seed      uint64
}

// NewEngine validates the config and builds a match ready for
// StartGame.
func NewEngine(cfg Config) (*Engine, error) {
	mode, err := variant.New(cfg.Variant)
	if err != nil {
		return nil, err
	}
	info := mode.Info()
	n := len(cfg.Players)
	if n < info.MinPlayers || n > info.MaxPlayers {
		return nil, fmt.Errorf("variant %s needs %d-%d players, got %d",
			info.ID, info.MinPlayers, info.MaxPlayers, n)
	}
	maxScore := cfg.MaxScore
	if maxScore == 0 {
		maxScore = info.MaxScore
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = tile.RandomSeed()
	}

	e := &Engine{
		uid:       uuid.NewString(),
		cfg:       cfg,
		mode:      mode,
		info:      info,
		maxScore:  maxScore,
		board:     board.New(info.Branching),
		boneyard:  tile.NewBoneyard(info.MaxPips, seed),
		winner:    -1,
		selectors: make(map[int]MoveSelector),
		seed:      seed,
	}
	for i, pc := range cfg.Players {
		name := pc.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		team := 0
		if info.Teams {
			team = i % 2
		}
		e.players = append(e.players, newPlayer(i, name, pc.AI, team))
	}
	log.Debug().Str("game", e.uid).Str("variant", info.ID).
		Uint64("seed", seed).Msg("engine created")
	return e, nil
}

// Subscribe registers an event handler. Not safe to call once AI timers
// are running.
func (e *Engine) Subscribe(h func(Event)) {
	e.handlers = append(e.handlers, h)
}

// AddSink registers a consumer for end-of-game summaries.
func (e *Engine) AddSink(s SummarySink) {
	e.sinks = append(e.sinks, s)
}

// SetSelector installs a move-selection policy for one AI seat.
func (e *Engine) SetSelector(player int, s MoveSelector) {
	e.selectors[player] = s
}

func (e *Engine) emit(ev Event) {
	for _, h := range e.handlers {
		h(ev)
	}
}

func (e *Engine) emitError(player int, err error) error {
	e.emit(ErrorEvent{Player: player, Message: err.Error()})
	return err
}

// StartGame deals the first round and opens the turn loop.
func (e *Engine) StartGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = time.Now()
	e.emit(GameStartEvent{GameID: e.uid, Variant: e.info.ID})
	e.startRound()
}

func (e *Engine) startRound() {
	e.round++
	e.board.Reset()
	e.boneyard.Refill()
	for _, p := range e.players {
		p.resetRound()
	}
	e.mode.StartRound(e.round)

	for _, p := range e.players {
		hand, err := e.boneyard.DrawN(e.info.TilesPerPlayer)
		if err != nil {
			// The full set always covers MaxPlayers*TilesPerPlayer.
			panic(err)
		}
		for _, t := range hand {
			p.AddTile(t)
		}
		p.SortHand()
	}
	e.current = e.firstPlayer()
	log.Debug().Int("round", e.round).Int("first", e.current).Msg("round dealt")
	e.emit(RoundStartEvent{Round: e.round})
	e.emit(TurnEvent{Player: e.current})
	e.scheduleAI()
}

// firstPlayer is the holder of the highest double anywhere; a seeded
// random pick if no hand holds a double.
func (e *Engine) firstPlayer() int {
	best := -1
	bestVal := -1
	for i, p := range e.players {
		if d, ok := p.highestDouble(); ok && d.Value() > bestVal {
			best = i
			bestVal = d.Value()
		}
	}
	if best >= 0 {
		return best
	}
	return e.boneyard.Intn(len(e.players))
}

// MakeMove applies one placement for the given player. Recoverable
// rejections emit an ErrorEvent and leave state unchanged.
func (e *Engine) MakeMove(player int, t tile.Tile, pos board.Position, br board.Branch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.makeMove(player, t, pos, br)
}

func (e *Engine) makeMove(player int, t tile.Tile, pos board.Position, br board.Branch) error {
	if err := e.turnCheck(player); err != nil {
		return err
	}
	p := e.players[player]
	if !p.HasTile(t) {
		return e.emitError(player, ErrTileNotOwned)
	}
	if !e.mode.ValidateMove(t, pos, br, e.board, e) {
		return e.emitError(player, ErrIllegalPlacement)
	}
	if !e.mode.ApplyMove(t, pos, br, e.board) {
		// Defense in depth: the board disagreed with the mode.
		return e.emitError(player, ErrIllegalPlacement)
	}
	p.RemoveTile(t)
	p.tilesPlayed++

	score := e.mode.ScoreMove(t, e.board, e)
	if score > 0 {
		p.score += score
	}
	e.history = append(e.history, Move{
		Player: player, Tile: t, Position: pos, Branch: br,
		Score: score, Timestamp: time.Now(),
	})
	e.emit(MoveEvent{Player: player, Tile: t, Position: pos, Branch: br, Score: score})
	if score > 0 {
		e.emit(ScoreEvent{Player: player, Score: score})
	}
	e.afterAction(player)
	return nil
}

// Pass ends the player's turn without a placement. It is only legal
// when the player has no valid move and any required draws are done.
func (e *Engine) Pass(player int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pass(player)
}

func (e *Engine) pass(player int) error {
	if err := e.turnCheck(player); err != nil {
		return err
	}
	p := e.players[player]
	if len(e.mode.ValidMoves(p, e.board, e)) > 0 {
		return e.emitError(player, ErrHasValidMove)
	}
	if e.mode.MustDraw(p, e.board, e) && !e.drawCapReached(p) {
		return e.emitError(player, ErrMustDraw)
	}
	e.emit(PassEvent{Player: player})
	e.afterAction(player)
	return nil
}

// DrawTile moves one tile from the boneyard to the player's hand. The
// turn does not advance; the player plays or passes afterwards.
func (e *Engine) DrawTile(player int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drawTile(player)
}

func (e *Engine) drawTile(player int) error {
	if err := e.turnCheck(player); err != nil {
		return err
	}
	if !e.info.Drawable {
		return e.emitError(player, ErrDrawNotAllowed)
	}
	p := e.players[player]
	if e.drawCapReached(p) {
		return e.emitError(player, ErrDrawLimit)
	}
	t, err := e.boneyard.Draw()
	if err != nil {
		return e.emitError(player, ErrDeckExhausted)
	}
	p.AddTile(t)
	p.roundDraws++
	e.emit(DrawEvent{Player: player, Tile: t})
	if e.boneyard.TilesRemaining() == 0 {
		e.emit(DeckEmptyEvent{})
	}
	return nil
}

func (e *Engine) drawCapReached(p *Player) bool {
	return e.cfg.MaxDrawsPerRound > 0 && p.roundDraws >= e.cfg.MaxDrawsPerRound
}

func (e *Engine) turnCheck(player int) error {
	if e.gameOver {
		return e.emitError(player, ErrGameOver)
	}
	if e.paused {
		return e.emitError(player, ErrPaused)
	}
	if player != e.current {
		return e.emitError(player, ErrOutOfTurn)
	}
	return nil
}

// afterAction runs the terminal checks of the turn loop: empty hand,
// blocked round, otherwise advance.
func (e *Engine) afterAction(player int) {
	if e.players[player].HandEmpty() {
		e.players[player].roundsWon++
		e.endRound(player, false)
		return
	}
	if e.roundBlocked() {
		e.emit(BlockedEvent{})
		e.endBlockedRound()
		return
	}
	e.nextTurn()
}

// roundBlocked is true when no player has a legal move and nobody can
// draw their way out, either because the boneyard is empty or because
// every player has hit the draw cap.
func (e *Engine) roundBlocked() bool {
	if e.info.Drawable && e.boneyard.TilesRemaining() > 0 && !e.allDrawCapped() {
		return false
	}
	for _, p := range e.players {
		if len(e.mode.ValidMoves(p, e.board, e)) > 0 {
			return false
		}
	}
	return true
}

func (e *Engine) allDrawCapped() bool {
	if e.cfg.MaxDrawsPerRound == 0 {
		return false
	}
	for _, p := range e.players {
		if p.roundDraws < e.cfg.MaxDrawsPerRound {
			return false
		}
	}
	return true
}

func (e *Engine) nextTurn() {
	e.current = (e.current + 1) % len(e.players)
	e.emit(TurnEvent{Player: e.current})
	e.scheduleAI()
}

// endBlockedRound applies the blocked tie-break: lowest pip holder (or
// team) wins the losers' pips. An exact tie is a wash: nobody scores.
func (e *Engine) endBlockedRound() {
	winner, tied := e.blockedWinner()
	if tied {
		log.Debug().Int("round", e.round).Msg("blocked round washed")
		e.emit(RoundEndEvent{Winner: -1, Score: 0, Round: e.round})
		e.continueOrFinish(-1)
		return
	}
	e.players[winner].roundsWon++
	e.endRound(winner, true)
}

func (e *Engine) blockedWinner() (int, bool) {
	if e.info.Teams {
		pips := [2]int{}
		for _, p := range e.players {
			pips[p.team] += p.TotalPips()
		}
		if pips[0] == pips[1] {
			return -1, true
		}
		team := 0
		if pips[1] < pips[0] {
			team = 1
		}
		// Credit the low hand on the winning team.
		best, bestPips := -1, -1
		for i, p := range e.players {
			if p.team != team {
				continue
			}
			if best == -1 || p.TotalPips() < bestPips {
				best, bestPips = i, p.TotalPips()
			}
		}
		return best, false
	}
	best, bestPips, tied := -1, -1, false
	for i, p := range e.players {
		pips := p.TotalPips()
		switch {
		case best == -1 || pips < bestPips:
			best, bestPips, tied = i, pips, false
		case pips == bestPips:
			tied = true
		}
	}
	return best, tied
}

func (e *Engine) endRound(winner int, blocked bool) {
	award := e.mode.ScoreRound(winner, e)
	e.players[winner].score += award
	log.Debug().Int("round", e.round).Int("winner", winner).
		Int("award", award).Bool("blocked", blocked).Msg("round over")
	e.emit(RoundEndEvent{Winner: winner, Score: award, Round: e.round})
	if e.mode.RoundEnded(winner, e) {
		e.emit(SixLoveEvent{Team: e.players[winner].team})
	}
	e.continueOrFinish(winner)
}

func (e *Engine) continueOrFinish(winner int) {
	if winner >= 0 && e.scoreFor(winner) >= e.maxScore {
		e.endGame(winner)
		return
	}
	e.startRound()
}

// scoreFor is the winning total relevant to the variant: the team
// aggregate in team play, the player's own score otherwise.
func (e *Engine) scoreFor(player int) int {
	if !e.info.Teams {
		return e.players[player].score
	}
	team := e.players[player].team
	total := 0
	for _, p := range e.players {
		if p.team == team {
			total += p.score
		}
	}
	return total
}

func (e *Engine) endGame(winner int) {
	e.gameOver = true
	e.winner = winner
	e.stopAITimer()
	e.emit(GameEndEvent{Winner: winner})
	e.pushSummaries(winner)
}

func (e *Engine) pushSummaries(winner int) {
	elapsed := time.Since(e.started)
	for _, p := range e.players {
		won := p.id == winner
		if e.info.Teams {
			won = p.team == e.players[winner].team
		}
		sum := Summary{
			GameID:      e.uid,
			Player:      p.name,
			Mode:        e.info.ID,
			Won:         won,
			Score:       p.score,
			TilesPlayed: p.tilesPlayed,
			GameTime:    elapsed,
			PerfectGame: won && e.opponentScore(p) == 0,
		}
		for _, sink := range e.sinks {
			if err := sink.RecordSummary(sum); err != nil {
				log.Error().Err(err).Str("player", p.name).Msg("summary sink failed")
			}
		}
	}
}

func (e *Engine) opponentScore(p *Player) int {
	total := 0
	for _, o := range e.players {
		if o.id == p.id {
			continue
		}
		if e.info.Teams && o.team == p.team {
			continue
		}
		total += o.score
	}
	return total
}

// Pause suspends AI scheduling without touching game state.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.paused || e.gameOver {
		return
	}
	e.paused = true
	e.stopAITimer()
	e.emit(PauseEvent{})
}

// Resume re-arms the AI timer if the current player is still AI. On an
// unpaused game it only re-arms, which is how a loaded game gets its
// clock started after handlers are attached.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.paused {
		e.scheduleAI()
		return
	}
	e.paused = false
	e.emit(ResumeEvent{})
	e.scheduleAI()
}

// Restart reinitializes the match from the original config. Variant
// state (streaks, sub-states) starts fresh.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	mode, err := variant.New(e.cfg.Variant)
	if err != nil {
		return err
	}
	e.stopAITimer()
	e.mode = mode
	seed := e.cfg.Seed
	if seed == 0 {
		seed = tile.RandomSeed()
	}
	e.seed = seed
	e.boneyard = tile.NewBoneyard(e.info.MaxPips, seed)
	e.board = board.New(e.info.Branching)
	for _, p := range e.players {
		p.resetAll()
	}
	e.round = 0
	e.gameOver = false
	e.winner = -1
	e.paused = false
	e.history = nil
	e.started = time.Now()
	e.emit(RestartEvent{})
	e.startRound()
	return nil
}

// Seed returns the shuffle seed for this match.
func (e *Engine) Seed() uint64 {
	return e.seed
}

func (e *Engine) GameID() string {
	return e.uid
}

// SuggestMove returns the variant heuristic's pick among the player's
// legal moves, or nil when there is none.
func (e *Engine) SuggestMove(player int) *variant.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	if player < 0 || player >= len(e.players) {
		return nil
	}
	moves := e.mode.ValidMoves(e.players[player], e.board, e)
	return e.mode.BestMove(moves, e.board, e)
}

// History returns a copy of the move log.
func (e *Engine) History() []Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Move(nil), e.history...)
}

// NumPlayers, PlayerAt, CurrentIndex, RoundNumber and BoneyardCount
// implement variant.StateView for the mode's read-only querying.
func (e *Engine) NumPlayers() int { return len(e.players) }

func (e *Engine) PlayerAt(i int) variant.PlayerView { return e.players[i] }

func (e *Engine) CurrentIndex() int { return e.current }

func (e *Engine) RoundNumber() int { return e.round }

func (e *Engine) BoneyardCount() int { return e.boneyard.TilesRemaining() }
