// Package stud implements a five-card stud poker hand: blinds, four
// betting rounds with progressive dealing, then a showdown ranked by
// the internal/deck hand evaluator.
package stud

import (
	"math/rand"
	"time"

	"github.com/partydeck/partydeck/internal/deck"
	"github.com/partydeck/partydeck/internal/games"
)

// BettingRounds is the number of betting rounds before showdown
const BettingRounds = 4

// MinPlayers is the smallest roster that can be dealt a hand
const MinPlayers = 2

// Config holds the stakes and the turn clock
type Config struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	ActTimeout    time.Duration
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		SmallBlind:    5,
		BigBlind:      10,
		StartingChips: 1000,
		ActTimeout:    30 * time.Second,
	}
}

type seat struct {
	playerID string
	chips    int
	cards    []deck.Card
	bet      int
	totalBet int
	folded   bool
}

// Result is the outcome of a completed hand
type Result struct {
	Winners  []string             `json:"winners"`
	Pot      int                  `json:"pot"`
	Showdown bool                 `json:"showdown"`
	Ranks    map[string]string    `json:"ranks,omitempty"`
	Cards    map[string][]string  `json:"cards,omitempty"`
}

// Game is the five-card stud state machine
type Game struct {
	*games.Base

	cfg   Config
	rng   *rand.Rand
	chips []int

	d       *deck.Deck
	seats   []*seat
	betting *BettingState
	active  int
	pot     int
	result  *Result
}

// New creates a waiting stud game
func New(id string, creator games.Player, private bool, maxPlayers int, rng *rand.Rand, cfg Config, opts ...Option) *Game {
	if cfg.BigBlind <= 0 {
		cfg = DefaultConfig()
	}
	g := &Game{
		Base: games.NewBase(id, games.TypeStud, creator, private, maxPlayers),
		cfg:  cfg,
		rng:  rng,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ActiveID returns the id of the seat due to act, or "" outside betting
func (g *Game) ActiveID() string {
	if g.active < 0 || g.active >= len(g.seats) {
		return ""
	}
	return g.seats[g.active].playerID
}

// CardsOf returns a copy of a player's dealt cards. The transport layer
// delivers them privately; they appear publicly only in the showdown
// result.
func (g *Game) CardsOf(playerID string) []deck.Card {
	for _, s := range g.seats {
		if s.playerID == playerID {
			out := make([]deck.Card, len(s.cards))
			copy(out, s.cards)
			return out
		}
	}
	return nil
}

// HandResult returns the hand outcome once the game is finished
func (g *Game) HandResult() *Result {
	return g.result
}

// RemovePlayer drops a player; a seated player is folded out of the
// hand first so the betting round cannot stall on them.
func (g *Game) RemovePlayer(id string) {
	if g.Status() == games.StatusPlaying {
		for i, s := range g.seats {
			if s.playerID == id && !s.folded {
				g.forceFold(i)
				break
			}
		}
	}
	g.Base.RemovePlayer(id)
}

// HandleAction applies a gameplay action
func (g *Game) HandleAction(playerID string, action games.Action) error {
	switch a := action.(type) {
	case games.StartGame:
		return g.start(playerID)
	case games.Fold:
		return g.betAction(playerID, func(i int) error { return g.fold(i) })
	case games.Check:
		return g.betAction(playerID, func(i int) error { return g.check(i) })
	case games.Call:
		return g.betAction(playerID, func(i int) error { return g.call(i) })
	case games.Raise:
		return g.betAction(playerID, func(i int) error { return g.raise(i, a.Amount) })
	case games.Timeout:
		return g.timeout(a.Token)
	default:
		return games.Phasef("action %s is not part of the stud game", action.Name())
	}
}

func (g *Game) start(playerID string) error {
	if g.Status() != games.StatusWaiting {
		return games.Phasef("game %s already started", g.ID())
	}
	if playerID != g.Creator().ID {
		return games.Authorizationf("only the creator can start game %s", g.ID())
	}
	if g.NumPlayers() < MinPlayers {
		return games.Structuralf("need at least %d players, have %d", MinPlayers, g.NumPlayers())
	}

	g.AdvanceStatus(games.StatusPlaying)

	if g.d == nil {
		g.d = deck.New(g.rng)
	}
	g.seats = make([]*seat, 0, g.NumPlayers())
	for i, p := range g.Players() {
		chips := g.cfg.StartingChips
		if i < len(g.chips) {
			chips = g.chips[i]
		}
		g.seats = append(g.seats, &seat{playerID: p.ID, chips: chips})
	}

	g.betting = NewBettingState(len(g.seats), g.cfg.BigBlind)
	g.postBlinds()

	// Two cards to each player to open; one more between betting rounds.
	for _, s := range g.seats {
		s.cards = g.d.Deal(2)
	}

	g.NextRound()
	g.active = g.firstToAct()
	g.NextToken()
	return nil
}

// postBlinds takes the blinds from the first two seats in join order
func (g *Game) postBlinds() {
	sb, bb := g.seats[0], g.seats[1]

	sb.bet = min(g.cfg.SmallBlind, sb.chips)
	sb.totalBet = sb.bet
	sb.chips -= sb.bet

	bb.bet = min(g.cfg.BigBlind, bb.chips)
	bb.totalBet = bb.bet
	bb.chips -= bb.bet

	g.betting.CurrentBet = g.cfg.BigBlind
}

// firstToAct is the seat after the big blind, wrapping in heads-up to
// the small blind.
func (g *Game) firstToAct() int {
	return g.nextUnfolded(2 % len(g.seats))
}

func (g *Game) nextUnfolded(from int) int {
	n := len(g.seats)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if !g.seats[pos].folded {
			return pos
		}
	}
	return -1
}

// betAction gates a betting action on status, membership and turn
// ownership, then runs it.
func (g *Game) betAction(playerID string, fn func(seatIdx int) error) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in a betting round", g.ID())
	}

	idx := -1
	for i, s := range g.seats {
		if s.playerID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return games.Authorizationf("player %s is not seated in game %s", playerID, g.ID())
	}
	if g.seats[idx].folded {
		return games.Phasef("player %s has folded", playerID)
	}
	if idx != g.active {
		return games.Authorizationf("it is not player %s's turn to act", playerID)
	}

	if err := fn(idx); err != nil {
		return err
	}

	g.advance(idx)
	return nil
}

func (g *Game) fold(i int) error {
	g.seats[i].folded = true
	return nil
}

func (g *Game) check(i int) error {
	if g.seats[i].bet != g.betting.CurrentBet {
		return games.Phasef("cannot check, %d to call", g.betting.CurrentBet-g.seats[i].bet)
	}
	return nil
}

func (g *Game) call(i int) error {
	s := g.seats[i]
	toCall := g.betting.CurrentBet - s.bet
	if toCall > s.chips {
		return games.Payloadf("cannot call %d with %d chips remaining", toCall, s.chips)
	}
	s.bet += toCall
	s.totalBet += toCall
	s.chips -= toCall
	return nil
}

func (g *Game) raise(i, amount int) error {
	s := g.seats[i]
	if amount <= g.betting.CurrentBet {
		return games.Payloadf("raise to %d does not exceed the current bet %d", amount, g.betting.CurrentBet)
	}
	if amount-g.betting.CurrentBet < g.betting.MinRaise {
		return games.Payloadf("raise too small, minimum %d", g.betting.CurrentBet+g.betting.MinRaise)
	}
	if amount-s.bet > s.chips {
		return games.Payloadf("cannot raise to %d with %d chips remaining", amount, s.chips+s.bet)
	}

	put := amount - s.bet
	s.chips -= put
	s.bet = amount
	s.totalBet += put
	g.betting.RegisterRaise(i, amount)
	return nil
}

// advance moves the action on after seat i acted, closing the betting
// round or the whole hand when due.
func (g *Game) advance(acted int) {
	g.betting.MarkActed(acted)

	if g.unfoldedCount() == 1 {
		g.awardUncontested()
		return
	}

	if g.betting.Complete(g.seats) {
		g.nextBettingRound()
		return
	}

	g.active = g.nextUnfolded((acted + 1) % len(g.seats))
	g.NextToken()
}

func (g *Game) unfoldedCount() int {
	n := 0
	for _, s := range g.seats {
		if !s.folded {
			n++
		}
	}
	return n
}

// nextBettingRound sweeps bets into the pot, deals the next card and
// reopens the action, or runs the showdown after the final round.
func (g *Game) nextBettingRound() {
	for _, s := range g.seats {
		g.pot += s.bet
		s.bet = 0
	}

	if g.Round() >= BettingRounds {
		g.showdown()
		return
	}

	for _, s := range g.seats {
		if s.folded {
			continue
		}
		card, ok := g.d.DealOne()
		if ok {
			s.cards = append(s.cards, card)
		}
	}

	g.betting.Reset()
	g.NextRound()
	g.active = g.nextUnfolded(0)
	g.NextToken()
}

// awardUncontested gives the pot to the last unfolded seat, no showdown
func (g *Game) awardUncontested() {
	for _, s := range g.seats {
		g.pot += s.bet
		s.bet = 0
	}

	winner := g.seats[g.nextUnfolded(0)]
	winner.chips += g.pot
	g.result = &Result{
		Winners:  []string{winner.playerID},
		Pot:      g.pot,
		Showdown: false,
	}
	g.finish()
}

// showdown evaluates every remaining five-card hand; the best rank
// takes the pot, exact ties split it evenly with any remainder going to
// the earliest seat.
func (g *Game) showdown() {
	best := deck.HandRank(0)
	var winners []int
	ranks := make(map[string]string)
	shown := make(map[string][]string)

	for i, s := range g.seats {
		if s.folded {
			continue
		}
		rank := deck.Evaluate(s.cards)
		ranks[s.playerID] = rank.String()
		cards := make([]string, len(s.cards))
		for j, c := range s.cards {
			cards[j] = c.String()
		}
		shown[s.playerID] = cards

		switch deck.Compare(rank, best) {
		case 1:
			best = rank
			winners = []int{i}
		case 0:
			winners = append(winners, i)
		}
	}

	share := g.pot / len(winners)
	remainder := g.pot % len(winners)
	ids := make([]string, len(winners))
	for n, i := range winners {
		g.seats[i].chips += share
		if n == 0 {
			g.seats[i].chips += remainder
		}
		ids[n] = g.seats[i].playerID
	}

	g.result = &Result{
		Winners:  ids,
		Pot:      g.pot,
		Showdown: true,
		Ranks:    ranks,
		Cards:    shown,
	}
	g.finish()
}

// forceFold folds a seat out of turn, for disconnects and timeouts
func (g *Game) forceFold(i int) {
	if g.seats[i].folded {
		return
	}
	g.seats[i].folded = true
	g.betting.MarkActed(i)

	if g.unfoldedCount() == 1 {
		g.awardUncontested()
		return
	}

	if i == g.active {
		g.active = g.nextUnfolded((i + 1) % len(g.seats))
		g.NextToken()
	}

	if g.betting.Complete(g.seats) {
		g.nextBettingRound()
	}
}

// timeout folds the seat that let the turn clock lapse
func (g *Game) timeout(token uint64) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if token != g.Token() {
		return games.Phasef("timeout token %d is stale", token)
	}
	g.forceFold(g.active)
	return nil
}

func (g *Game) finish() {
	g.active = -1
	g.AdvanceStatus(games.StatusFinished)
	g.NextToken()
}

// NextDeadline reports the turn clock for the acting seat
func (g *Game) NextDeadline() (games.Deadline, bool) {
	if g.Status() != games.StatusPlaying || g.active < 0 {
		return games.Deadline{}, false
	}
	return games.Deadline{Token: g.Token(), In: g.cfg.ActTimeout}, true
}

// SeatState is the public view of one seat
type SeatState struct {
	PlayerID string `json:"player_id"`
	Chips    int    `json:"chips"`
	Bet      int    `json:"bet"`
	Folded   bool   `json:"folded"`
	Cards    int    `json:"cards"`
}

// State is the public, variant-specific portion of the snapshot
type State struct {
	BettingRound int         `json:"betting_round"`
	Pot          int         `json:"pot"`
	CurrentBet   int         `json:"current_bet"`
	MinRaise     int         `json:"min_raise"`
	ActiveID     string      `json:"active_id,omitempty"`
	Seats        []SeatState `json:"seats"`
	Result       *Result     `json:"result,omitempty"`
}

// Snapshot projects the public game state. Card faces stay private
// until the showdown result.
func (g *Game) Snapshot() games.Snapshot {
	st := State{
		BettingRound: g.Round(),
		Pot:          g.pot,
		ActiveID:     g.ActiveID(),
		Result:       g.result,
	}
	if g.betting != nil {
		st.CurrentBet = g.betting.CurrentBet
		st.MinRaise = g.betting.MinRaise
	}
	for _, s := range g.seats {
		st.Seats = append(st.Seats, SeatState{
			PlayerID: s.playerID,
			Chips:    s.chips,
			Bet:      s.bet,
			Folded:   s.folded,
			Cards:    len(s.cards),
		})
	}
	return g.Base.Snapshot(st)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
