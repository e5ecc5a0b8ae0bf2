// Package deception implements the statement/voting game: on each turn
// one player submits three statements, exactly one of them a lie, and
// everyone else votes on which statement is the lie. Correct voters
// score, and the actor scores for every voter they fooled.
package deception

import (
	"sort"
	"time"

	"github.com/partydeck/partydeck/internal/games"
)

// Phase is the turn sub-phase inside playing
type Phase string

const (
	// PhaseAwaitingStatements means the acting player owes their statement set
	PhaseAwaitingStatements Phase = "awaiting-statements"
	// PhaseAwaitingVotes means statements are public and votes are open
	PhaseAwaitingVotes Phase = "awaiting-votes"
	// PhaseRevealed means the lie is exposed and the turn is scored
	PhaseRevealed Phase = "revealed"
)

// StatementCount is the exact number of statements per turn
const StatementCount = 3

// MinPlayers is the smallest roster that can start: an actor plus two voters
const MinPlayers = 3

const (
	// CorrectVotePoints is awarded to each voter who spots the lie
	CorrectVotePoints = 10
	// FooledVoterPoints is awarded to the actor per voter who guessed wrong
	FooledVoterPoints = 5
)

// Config holds the tunable, non-structural knobs
type Config struct {
	TurnsPerPlayer   int
	StatementTimeout time.Duration
	VoteTimeout      time.Duration
	RevealDelay      time.Duration
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		TurnsPerPlayer:   2,
		StatementTimeout: 90 * time.Second,
		VoteTimeout:      45 * time.Second,
		RevealDelay:      5 * time.Second,
	}
}

// Game is the deception/voting state machine
type Game struct {
	*games.Base

	cfg Config

	phase      Phase
	actorID    string
	statements []string
	lieIndex   int
	votes      map[string]int
	skipped    bool

	winners []string
}

// New creates a waiting deception game
func New(id string, creator games.Player, private bool, maxPlayers int, cfg Config) *Game {
	if cfg.TurnsPerPlayer <= 0 {
		cfg = DefaultConfig()
	}
	return &Game{
		Base: games.NewBase(id, games.TypeDeception, creator, private, maxPlayers),
		cfg:  cfg,
	}
}

// CurrentPhase returns the current turn sub-phase
func (g *Game) CurrentPhase() Phase { return g.phase }

// ActorID returns the id of the player whose turn it is
func (g *Game) ActorID() string { return g.actorID }

// Winners returns the co-winners once the game is finished
func (g *Game) Winners() []string {
	out := make([]string, len(g.winners))
	copy(out, g.winners)
	return out
}

// RemovePlayer drops a player. An actor leaving discards the turn; a
// voter leaving takes their vote with them.
func (g *Game) RemovePlayer(id string) {
	g.Base.RemovePlayer(id)
	delete(g.votes, id)

	if g.Status() != games.StatusPlaying {
		return
	}

	if g.NumPlayers() < 2 {
		g.finish()
		return
	}

	if id == g.actorID && g.phase != PhaseRevealed {
		g.discardTurn()
	}
}

// HandleAction applies a gameplay action
func (g *Game) HandleAction(playerID string, action games.Action) error {
	switch a := action.(type) {
	case games.StartGame:
		return g.start(playerID)
	case games.SubmitStatements:
		return g.submitStatements(playerID, a.Statements, a.LieIndex)
	case games.SubmitVote:
		return g.submitVote(playerID, a.Index)
	case games.Reveal:
		return g.revealAction(playerID)
	case games.Timeout:
		return g.timeout(a.Token)
	default:
		return games.Phasef("action %s is not part of the deception game", action.Name())
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
	g.startTurn()
	return nil
}

func (g *Game) startTurn() {
	if g.Round() >= g.cfg.TurnsPerPlayer*g.NumPlayers() {
		g.finish()
		return
	}

	turn := g.NextRound()
	g.actorID = g.PlayerAt((turn - 1) % g.NumPlayers()).ID
	g.phase = PhaseAwaitingStatements
	g.statements = nil
	g.lieIndex = -1
	g.votes = make(map[string]int)
	g.skipped = false
	g.NextToken()
}

func (g *Game) submitStatements(playerID string, statements []string, lieIndex int) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if !g.HasPlayer(playerID) {
		return games.Authorizationf("player %s is not in game %s", playerID, g.ID())
	}
	if g.phase != PhaseAwaitingStatements {
		return games.Phasef("statements are not being accepted for turn %d", g.Round())
	}
	if playerID != g.actorID {
		return games.Authorizationf("it is not player %s's turn", playerID)
	}
	if len(statements) != StatementCount {
		return games.Payloadf("exactly %d statements required, got %d", StatementCount, len(statements))
	}
	if lieIndex < 0 || lieIndex >= StatementCount {
		return games.Payloadf("lie index %d out of range", lieIndex)
	}
	for i, s := range statements {
		if s == "" {
			return games.Payloadf("statement %d is empty", i)
		}
	}

	g.statements = append([]string(nil), statements...)
	g.lieIndex = lieIndex
	g.phase = PhaseAwaitingVotes
	g.NextToken()
	return nil
}

func (g *Game) submitVote(playerID string, index int) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if !g.HasPlayer(playerID) {
		return games.Authorizationf("player %s is not in game %s", playerID, g.ID())
	}
	if g.phase != PhaseAwaitingVotes {
		return games.Phasef("votes are not being accepted for turn %d", g.Round())
	}
	if playerID == g.actorID {
		return games.Authorizationf("the acting player cannot vote on their own turn")
	}
	if index < 0 || index >= StatementCount {
		return games.Payloadf("vote index %d out of range", index)
	}

	// A second vote overwrites the first.
	g.votes[playerID] = index
	return nil
}

func (g *Game) revealAction(playerID string) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if !g.HasPlayer(playerID) {
		return games.Authorizationf("player %s is not in game %s", playerID, g.ID())
	}
	if g.phase != PhaseAwaitingVotes {
		return games.Phasef("turn %d has nothing to reveal", g.Round())
	}
	if playerID != g.actorID && playerID != g.Creator().ID {
		return games.Authorizationf("only the actor or the creator can reveal")
	}

	g.reveal()
	return nil
}

// reveal scores the turn: +10 per correct voter, +5 to the actor per
// fooled voter. Voters who never voted are neither correct nor fooled.
func (g *Game) reveal() {
	for voterID, vote := range g.votes {
		if vote == g.lieIndex {
			g.AddScore(voterID, CorrectVotePoints)
		} else {
			g.AddScore(g.actorID, FooledVoterPoints)
		}
	}
	g.phase = PhaseRevealed
	g.NextToken()
}

// discardTurn abandons the turn without scoring
func (g *Game) discardTurn() {
	g.skipped = true
	g.phase = PhaseRevealed
	g.NextToken()
}

func (g *Game) timeout(token uint64) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if token != g.Token() {
		return games.Phasef("timeout token %d is stale", token)
	}

	switch g.phase {
	case PhaseAwaitingStatements:
		// The actor never produced statements; skip their turn.
		g.discardTurn()
	case PhaseAwaitingVotes:
		g.reveal()
	case PhaseRevealed:
		g.startTurn()
	}
	return nil
}

func (g *Game) finish() {
	g.AdvanceStatus(games.StatusFinished)
	g.winners = g.Leaders()
	g.NextToken()
}

// NextDeadline reports the soft deadline for the current phase
func (g *Game) NextDeadline() (games.Deadline, bool) {
	if g.Status() != games.StatusPlaying {
		return games.Deadline{}, false
	}
	d := games.Deadline{Token: g.Token()}
	switch g.phase {
	case PhaseAwaitingStatements:
		d.In = g.cfg.StatementTimeout
	case PhaseAwaitingVotes:
		d.In = g.cfg.VoteTimeout
	case PhaseRevealed:
		d.In = g.cfg.RevealDelay
	default:
		return games.Deadline{}, false
	}
	return d, true
}

// State is the public, variant-specific portion of the snapshot. The
// lie index and the individual votes stay hidden until the reveal.
type State struct {
	Phase      Phase          `json:"phase"`
	ActorID    string         `json:"actor_id"`
	Statements []string       `json:"statements,omitempty"`
	Voted      []string       `json:"voted,omitempty"`
	LieIndex   int            `json:"lie_index"`
	Votes      map[string]int `json:"votes,omitempty"`
	Skipped    bool           `json:"skipped,omitempty"`
	Winners    []string       `json:"winners,omitempty"`
}

// Snapshot projects the public game state
func (g *Game) Snapshot() games.Snapshot {
	st := State{
		Phase:    g.phase,
		ActorID:  g.actorID,
		LieIndex: -1,
	}
	if g.phase == PhaseAwaitingVotes || g.phase == PhaseRevealed {
		st.Statements = append([]string(nil), g.statements...)
	}
	if g.phase == PhaseAwaitingVotes {
		for voterID := range g.votes {
			st.Voted = append(st.Voted, voterID)
		}
		sort.Strings(st.Voted)
	}
	if g.phase == PhaseRevealed && !g.skipped {
		st.LieIndex = g.lieIndex
		st.Votes = make(map[string]int, len(g.votes))
		for voterID, vote := range g.votes {
			st.Votes[voterID] = vote
		}
	}
	st.Skipped = g.skipped
	if g.Status() == games.StatusFinished {
		st.Winners = g.Winners()
	}
	return g.Base.Snapshot(st)
}
