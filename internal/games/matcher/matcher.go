// Package matcher implements the prompt/response card-matching game: a
// rotating judge draws a prompt, everyone else plays a response card
// from a private seven-card hand, and the judge picks a winner from the
// anonymized submissions.
package matcher

import (
	"math/rand"
	"time"

	"github.com/partydeck/partydeck/internal/cards"
	"github.com/partydeck/partydeck/internal/games"
)

// Phase is the round sub-phase inside playing
type Phase string

const (
	// PhaseDealt means a prompt is out and submissions are open
	PhaseDealt Phase = "dealt"
	// PhaseJudging means all submissions are in, shuffled and shown to
	// the judge only
	PhaseJudging Phase = "judging"
	// PhaseRevealed means the round is scored and submissions are public
	PhaseRevealed Phase = "revealed"
)

// Source supplies prompt and response cards. internal/cards provides
// the static fallback; generated-content collaborators implement the
// same surface.
type Source interface {
	DrawQuestion() (cards.Card, bool)
	DrawAnswer() (cards.Card, bool)
}

// Config holds the tunable, non-structural knobs
type Config struct {
	MaxRounds     int
	HandSize      int
	SubmitTimeout time.Duration
	JudgeTimeout  time.Duration
	RevealDelay   time.Duration
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		MaxRounds:     8,
		HandSize:      7,
		SubmitTimeout: 60 * time.Second,
		JudgeTimeout:  30 * time.Second,
		RevealDelay:   5 * time.Second,
	}
}

// MinPlayers is the smallest roster that can start: a judge plus two
// submitters.
const MinPlayers = 3

type submission struct {
	playerID string
	card     cards.Card
}

// Game is the card-matching state machine
type Game struct {
	*games.Base

	cfg    Config
	source Source
	rng    *rand.Rand

	phase       Phase
	judgeID     string
	prompt      cards.Card
	hands       map[string][]cards.Card
	submissions []submission
	submitted   map[string]bool

	winnerID    string
	winningCard cards.Card
	winners     []string
}

// New creates a waiting card-matching game
func New(id string, creator games.Player, private bool, maxPlayers int, source Source, rng *rand.Rand, cfg Config) *Game {
	if cfg.MaxRounds <= 0 {
		cfg = DefaultConfig()
	}
	return &Game{
		Base:   games.NewBase(id, games.TypeMatcher, creator, private, maxPlayers),
		cfg:    cfg,
		source: source,
		rng:    rng,
		hands:  make(map[string][]cards.Card),
	}
}

// CurrentPhase returns the current round sub-phase
func (g *Game) CurrentPhase() Phase { return g.phase }

// JudgeID returns the id of the player holding the judge role this round
func (g *Game) JudgeID() string { return g.judgeID }

// HandOf returns a copy of a player's private hand. The transport layer
// delivers it to that player only; it never appears in snapshots.
func (g *Game) HandOf(playerID string) []cards.Card {
	hand := g.hands[playerID]
	out := make([]cards.Card, len(hand))
	copy(out, hand)
	return out
}

// Winners returns the co-winners once the game is finished
func (g *Game) Winners() []string {
	out := make([]string, len(g.winners))
	copy(out, g.winners)
	return out
}

// AddPlayer seats a joiner. Games in play are still listed and
// joinable, so a mid-game joiner is dealt a hand immediately; they
// submit from the current round onward and count toward its close.
func (g *Game) AddPlayer(p games.Player) error {
	if err := g.Base.AddPlayer(p); err != nil {
		return err
	}
	if g.Status() == games.StatusPlaying {
		g.refill(p.ID)
	}
	return nil
}

// RemovePlayer drops a player and their hand. If the round can no
// longer complete (the judge left, or submissions are now all in) the
// round state advances so the game does not stall.
func (g *Game) RemovePlayer(id string) {
	g.Base.RemovePlayer(id)
	delete(g.hands, id)
	delete(g.submitted, id)

	for i, s := range g.submissions {
		if s.playerID == id {
			g.submissions = append(g.submissions[:i], g.submissions[i+1:]...)
			break
		}
	}

	if g.Status() != games.StatusPlaying {
		return
	}

	if g.NumPlayers() < 2 {
		g.finish()
		return
	}

	switch g.phase {
	case PhaseDealt:
		if id == g.judgeID {
			g.judgeID = ""
			g.discardRound()
		} else if g.allSubmitted() {
			g.beginJudging()
		}
	case PhaseJudging:
		if id == g.judgeID {
			g.judgeID = ""
			g.discardRound()
		}
	}
}

// HandleAction applies a gameplay action
func (g *Game) HandleAction(playerID string, action games.Action) error {
	switch a := action.(type) {
	case games.StartGame:
		return g.start(playerID)
	case games.SubmitCard:
		return g.submitCard(playerID, a.CardID)
	case games.JudgeSubmission:
		return g.judge(playerID, a.Index)
	case games.Timeout:
		return g.timeout(a.Token)
	default:
		return games.Phasef("action %s is not part of the card-matching game", action.Name())
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
	for _, p := range g.Players() {
		g.refill(p.ID)
	}
	g.startRound()
	return nil
}

func (g *Game) startRound() {
	if g.Round() >= g.cfg.MaxRounds {
		g.finish()
		return
	}

	prompt, ok := g.source.DrawQuestion()
	if !ok {
		// Content exhausted; end on the scores accumulated so far.
		g.finish()
		return
	}

	round := g.NextRound()
	g.prompt = prompt
	g.judgeID = g.PlayerAt((round - 1) % g.NumPlayers()).ID
	g.phase = PhaseDealt
	g.submissions = nil
	g.submitted = make(map[string]bool)
	g.winnerID = ""
	g.winningCard = cards.Card{}
	g.NextToken()
}

func (g *Game) submitCard(playerID, cardID string) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if !g.HasPlayer(playerID) {
		return games.Authorizationf("player %s is not in game %s", playerID, g.ID())
	}
	if g.phase != PhaseDealt {
		return games.Phasef("submissions are closed for round %d", g.Round())
	}
	if playerID == g.judgeID {
		return games.Authorizationf("the judge does not submit a card")
	}
	if g.submitted[playerID] {
		return games.Phasef("player %s already submitted this round", playerID)
	}

	hand := g.hands[playerID]
	idx := -1
	for i, c := range hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return games.Payloadf("card %s is not in player %s's hand", cardID, playerID)
	}

	card := hand[idx]
	g.hands[playerID] = append(hand[:idx], hand[idx+1:]...)
	g.submissions = append(g.submissions, submission{playerID: playerID, card: card})
	g.submitted[playerID] = true

	if g.allSubmitted() {
		g.beginJudging()
	}
	return nil
}

func (g *Game) allSubmitted() bool {
	return len(g.submitted) >= g.NumPlayers()-1
}

// beginJudging shuffles the submissions so they lose their association
// with the submitting players before the judge sees them.
func (g *Game) beginJudging() {
	for i := len(g.submissions) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.submissions[i], g.submissions[j] = g.submissions[j], g.submissions[i]
	}
	g.phase = PhaseJudging
	g.NextToken()
}

func (g *Game) judge(playerID string, index int) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if !g.HasPlayer(playerID) {
		return games.Authorizationf("player %s is not in game %s", playerID, g.ID())
	}
	if g.phase != PhaseJudging {
		return games.Phasef("round %d is not being judged", g.Round())
	}
	if playerID != g.judgeID {
		return games.Authorizationf("player %s is not the judge this round", playerID)
	}
	if index < 0 || index >= len(g.submissions) {
		return games.Payloadf("submission index %d out of range", index)
	}

	winner := g.submissions[index]
	g.winnerID = winner.playerID
	g.winningCard = winner.card
	g.AddScore(winner.playerID, 1)
	g.reveal()
	return nil
}

// reveal scores are already applied; replenish hands and expose the
// submitter identities.
func (g *Game) reveal() {
	for id := range g.submitted {
		g.refill(id)
	}
	g.phase = PhaseRevealed
	g.NextToken()
}

// discardRound abandons the current round without awarding a point
func (g *Game) discardRound() {
	for id := range g.submitted {
		g.refill(id)
	}
	g.winnerID = ""
	g.winningCard = cards.Card{}
	g.phase = PhaseRevealed
	g.NextToken()
}

func (g *Game) refill(playerID string) {
	for len(g.hands[playerID]) < g.cfg.HandSize {
		card, ok := g.source.DrawAnswer()
		if !ok {
			return
		}
		g.hands[playerID] = append(g.hands[playerID], card)
	}
}

// timeout auto-advances a stalled phase. Stale tokens mean the phase
// already moved on; the firing is rejected so a late legitimate action
// and a timeout can only race at whichever-first granularity.
func (g *Game) timeout(token uint64) error {
	if g.Status() != games.StatusPlaying {
		return games.Phasef("game %s is not in play", g.ID())
	}
	if token != g.Token() {
		return games.Phasef("timeout token %d is stale", token)
	}

	switch g.phase {
	case PhaseDealt:
		// Missing submissions are skipped; with nothing to judge the
		// round is discarded.
		if len(g.submissions) > 0 {
			g.beginJudging()
		} else {
			g.discardRound()
		}
	case PhaseJudging:
		g.discardRound()
	case PhaseRevealed:
		g.startRound()
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
	case PhaseDealt:
		d.In = g.cfg.SubmitTimeout
	case PhaseJudging:
		d.In = g.cfg.JudgeTimeout
	case PhaseRevealed:
		d.In = g.cfg.RevealDelay
	default:
		return games.Deadline{}, false
	}
	return d, true
}

// State is the public, variant-specific portion of the snapshot
type State struct {
	Phase       Phase            `json:"phase"`
	JudgeID     string           `json:"judge_id"`
	Prompt      *cards.Card      `json:"prompt,omitempty"`
	Submitted   []string         `json:"submitted"`
	Submissions []PublicCard     `json:"submissions,omitempty"`
	Winner      *RevealedWinner  `json:"winner,omitempty"`
	Winners     []string         `json:"winners,omitempty"`
	MaxRounds   int              `json:"max_rounds"`
}

// PublicCard is a submission as shown outward: anonymous while judging,
// attributed once revealed.
type PublicCard struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	PlayerID string `json:"player_id,omitempty"`
}

// RevealedWinner names the round winner after judging
type RevealedWinner struct {
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

// Snapshot projects the public game state
func (g *Game) Snapshot() games.Snapshot {
	st := State{
		Phase:     g.phase,
		JudgeID:   g.judgeID,
		Submitted: make([]string, 0, len(g.submitted)),
		MaxRounds: g.cfg.MaxRounds,
	}
	for _, p := range g.Players() {
		if g.submitted[p.ID] {
			st.Submitted = append(st.Submitted, p.ID)
		}
	}
	if g.prompt.ID != "" {
		prompt := g.prompt
		st.Prompt = &prompt
	}
	switch g.phase {
	case PhaseJudging:
		for i, s := range g.submissions {
			st.Submissions = append(st.Submissions, PublicCard{Index: i, Text: s.card.Text})
		}
	case PhaseRevealed:
		for i, s := range g.submissions {
			st.Submissions = append(st.Submissions, PublicCard{Index: i, Text: s.card.Text, PlayerID: s.playerID})
		}
		if g.winnerID != "" {
			st.Winner = &RevealedWinner{PlayerID: g.winnerID, Text: g.winningCard.Text}
		}
	}
	if g.Status() == games.StatusFinished {
		st.Winners = g.Winners()
	}
	return g.Base.Snapshot(st)
}
