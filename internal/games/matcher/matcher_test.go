package matcher

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partydeck/partydeck/internal/cards"
	"github.com/partydeck/partydeck/internal/games"
)

func newTestGame(t *testing.T, numPlayers int) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	g := New("g1", games.Player{ID: "p1", Name: "P1"}, false, 7,
		cards.NewStaticDeck(rng), rng, DefaultConfig())
	for i := 1; i <= numPlayers; i++ {
		id := fmt.Sprintf("p%d", i)
		require.NoError(t, g.AddPlayer(games.Player{ID: id, Name: id}))
	}
	return g
}

func startedGame(t *testing.T, numPlayers int) *Game {
	t.Helper()
	g := newTestGame(t, numPlayers)
	require.NoError(t, g.HandleAction("p1", games.StartGame{}))
	return g
}

// submitAll plays the first card in hand for every non-judge
func submitAll(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.Players() {
		if p.ID == g.JudgeID() {
			continue
		}
		hand := g.HandOf(p.ID)
		require.NotEmpty(t, hand)
		require.NoError(t, g.HandleAction(p.ID, games.SubmitCard{CardID: hand[0].ID}))
	}
}

// advancePastReveal fires the reveal-delay timeout to start the next round
func advancePastReveal(t *testing.T, g *Game) {
	t.Helper()
	require.Equal(t, PhaseRevealed, g.CurrentPhase())
	require.NoError(t, g.HandleAction("", games.Timeout{Token: g.Token()}))
}

func TestStartRequiresCreator(t *testing.T) {
	g := newTestGame(t, 3)
	err := g.HandleAction("p2", games.StartGame{})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindAuthorization))
	assert.Equal(t, games.StatusWaiting, g.Status())
}

func TestStartRequiresMinimumPlayers(t *testing.T) {
	g := newTestGame(t, 2)
	err := g.HandleAction("p1", games.StartGame{})
	require.Error(t, err)
	assert.Equal(t, games.StatusWaiting, g.Status())
}

func TestStartDealsSevenCardHands(t *testing.T) {
	g := startedGame(t, 4)
	assert.Equal(t, games.StatusPlaying, g.Status())
	assert.Equal(t, PhaseDealt, g.CurrentPhase())
	assert.Equal(t, 1, g.Round())
	for _, p := range g.Players() {
		assert.Len(t, g.HandOf(p.ID), 7, "hand of %s", p.ID)
	}
}

func TestJudgeRotationFollowsJoinOrder(t *testing.T) {
	g := startedGame(t, 4)

	judged := make(map[string]int)
	for round := 1; round <= 4; round++ {
		require.Equal(t, round, g.Round())
		expected := fmt.Sprintf("p%d", round)
		assert.Equal(t, expected, g.JudgeID(), "round %d", round)
		judged[g.JudgeID()]++

		submitAll(t, g)
		require.Equal(t, PhaseJudging, g.CurrentPhase())
		require.NoError(t, g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 0}))
		advancePastReveal(t, g)
	}

	// every roster member judged exactly once before any repeats
	for id, n := range judged {
		assert.Equal(t, 1, n, "judge count for %s", id)
	}
	assert.Equal(t, "p1", g.JudgeID(), "rotation wraps to the first joiner")
}

func TestSubmittedCardLeavesHandAndIsReplenished(t *testing.T) {
	g := startedGame(t, 3)

	var submitter string
	for _, p := range g.Players() {
		if p.ID != g.JudgeID() {
			submitter = p.ID
			break
		}
	}

	hand := g.HandOf(submitter)
	played := hand[0]
	require.NoError(t, g.HandleAction(submitter, games.SubmitCard{CardID: played.ID}))

	after := g.HandOf(submitter)
	assert.Len(t, after, 6)
	for _, c := range after {
		assert.NotEqual(t, played.ID, c.ID)
	}

	// complete the round; hands refill back to exactly seven
	for _, p := range g.Players() {
		if p.ID == g.JudgeID() || p.ID == submitter {
			continue
		}
		h := g.HandOf(p.ID)
		require.NoError(t, g.HandleAction(p.ID, games.SubmitCard{CardID: h[0].ID}))
	}
	require.NoError(t, g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 0}))
	assert.Len(t, g.HandOf(submitter), 7)
}

func TestSubmitRejectsCardNotHeld(t *testing.T) {
	g := startedGame(t, 3)

	var submitter string
	for _, p := range g.Players() {
		if p.ID != g.JudgeID() {
			submitter = p.ID
			break
		}
	}

	err := g.HandleAction(submitter, games.SubmitCard{CardID: "not-a-card"})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindPayload))
	assert.Len(t, g.HandOf(submitter), 7, "hand unchanged")
}

func TestSubmitRejectsDoubleSubmission(t *testing.T) {
	g := startedGame(t, 4)

	var submitter string
	for _, p := range g.Players() {
		if p.ID != g.JudgeID() {
			submitter = p.ID
			break
		}
	}

	hand := g.HandOf(submitter)
	require.NoError(t, g.HandleAction(submitter, games.SubmitCard{CardID: hand[0].ID}))

	err := g.HandleAction(submitter, games.SubmitCard{CardID: hand[1].ID})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindPhase))
	assert.Len(t, g.HandOf(submitter), 6)
}

func TestSubmitRejectsNonParticipantAndJudge(t *testing.T) {
	g := startedGame(t, 3)

	err := g.HandleAction("stranger", games.SubmitCard{CardID: "x"})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindAuthorization))

	judgeHand := g.HandOf(g.JudgeID())
	err = g.HandleAction(g.JudgeID(), games.SubmitCard{CardID: judgeHand[0].ID})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindAuthorization))
}

func TestJudgingAwardsOnePoint(t *testing.T) {
	g := startedGame(t, 3)
	submitAll(t, g)

	snap := g.Snapshot()
	st := snap.State.(State)
	require.Len(t, st.Submissions, 2)
	// anonymized while judging
	for _, s := range st.Submissions {
		assert.Empty(t, s.PlayerID)
	}

	require.NoError(t, g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 1}))

	snap = g.Snapshot()
	st = snap.State.(State)
	require.NotNil(t, st.Winner)
	assert.Equal(t, 1, snap.Scores[st.Winner.PlayerID])
	// revealed submissions carry their submitter
	for _, s := range st.Submissions {
		assert.NotEmpty(t, s.PlayerID)
	}
}

func TestJudgeActionRejections(t *testing.T) {
	g := startedGame(t, 3)

	// judging before submissions are in
	err := g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 0})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindPhase))

	submitAll(t, g)

	var nonJudge string
	for _, p := range g.Players() {
		if p.ID != g.JudgeID() {
			nonJudge = p.ID
			break
		}
	}
	err = g.HandleAction(nonJudge, games.JudgeSubmission{Index: 0})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindAuthorization))

	err = g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 5})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindPayload))
}

func TestSubmitTimeoutSkipsMissingPlayers(t *testing.T) {
	g := startedGame(t, 4)

	// only one of three non-judges submits
	var submitter string
	for _, p := range g.Players() {
		if p.ID != g.JudgeID() {
			submitter = p.ID
			break
		}
	}
	hand := g.HandOf(submitter)
	require.NoError(t, g.HandleAction(submitter, games.SubmitCard{CardID: hand[0].ID}))

	require.NoError(t, g.HandleAction("", games.Timeout{Token: g.Token()}))
	assert.Equal(t, PhaseJudging, g.CurrentPhase(), "round proceeds with the single submission")
}

func TestJudgeTimeoutDiscardsRound(t *testing.T) {
	g := startedGame(t, 3)
	submitAll(t, g)
	require.Equal(t, PhaseJudging, g.CurrentPhase())

	require.NoError(t, g.HandleAction("", games.Timeout{Token: g.Token()}))
	assert.Equal(t, PhaseRevealed, g.CurrentPhase())

	snap := g.Snapshot()
	for _, s := range snap.Scores {
		assert.Zero(t, s, "no point awarded on a discarded round")
	}
}

func TestStaleTimeoutIsRejected(t *testing.T) {
	g := startedGame(t, 3)
	stale := g.Token()
	submitAll(t, g) // advances the phase and the token

	err := g.HandleAction("", games.Timeout{Token: stale})
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindPhase))
	assert.Equal(t, PhaseJudging, g.CurrentPhase())
}

func TestGameFinishesAfterMaxRounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cfg := DefaultConfig()
	cfg.MaxRounds = 3
	g := New("g1", games.Player{ID: "p1", Name: "P1"}, false, 7,
		cards.NewStaticDeck(rng), rng, cfg)
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, g.AddPlayer(games.Player{ID: id, Name: id}))
	}
	require.NoError(t, g.HandleAction("p1", games.StartGame{}))

	for round := 1; round <= 3; round++ {
		submitAll(t, g)
		require.NoError(t, g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 0}))
		require.NoError(t, g.HandleAction("", games.Timeout{Token: g.Token()}))
	}

	assert.Equal(t, games.StatusFinished, g.Status())
	assert.NotEmpty(t, g.Winners())
	_, ok := g.NextDeadline()
	assert.False(t, ok, "no deadline once finished")
}

func TestMidGameJoinerIsDealtAHand(t *testing.T) {
	g := startedGame(t, 3)

	require.NoError(t, g.AddPlayer(games.Player{ID: "p4", Name: "p4"}))
	assert.Len(t, g.HandOf("p4"), 7, "joiner is dealt into the running game")

	// the joiner submits like any other non-judge and the round closes
	submitAll(t, g)
	require.Equal(t, PhaseJudging, g.CurrentPhase(), "round does not stall waiting on the joiner")
	require.NoError(t, g.HandleAction(g.JudgeID(), games.JudgeSubmission{Index: 0}))

	advancePastReveal(t, g)
	assert.Len(t, g.HandOf("p4"), 7, "joiner's hand replenishes like everyone else's")
}

func TestJudgeLeavingDiscardsRound(t *testing.T) {
	g := startedGame(t, 4)
	judge := g.JudgeID()
	submitAll(t, g)
	require.Equal(t, PhaseJudging, g.CurrentPhase())

	g.RemovePlayer(judge)
	assert.Equal(t, PhaseRevealed, g.CurrentPhase())
	assert.Equal(t, 3, g.NumPlayers())
}

func TestLeavingJudgeClearedFromSnapshot(t *testing.T) {
	g := startedGame(t, 4)
	judge := g.JudgeID()
	submitAll(t, g)
	require.Equal(t, PhaseJudging, g.CurrentPhase())

	g.RemovePlayer(judge)
	require.Equal(t, PhaseRevealed, g.CurrentPhase())

	snap := g.Snapshot()
	st := snap.State.(State)
	assert.Empty(t, st.JudgeID, "a removed player is not shown as judge")

	advancePastReveal(t, g)
	assert.NotEmpty(t, g.JudgeID(), "next round seats a fresh judge")
}

func TestNextDeadlineTracksPhase(t *testing.T) {
	g := startedGame(t, 3)
	cfg := DefaultConfig()

	d, ok := g.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, cfg.SubmitTimeout, d.In)

	submitAll(t, g)
	d2, ok := g.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, cfg.JudgeTimeout, d2.In)
	assert.NotEqual(t, d.Token, d2.Token)
}
