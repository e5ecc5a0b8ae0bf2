package registry

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partydeck/partydeck/internal/games"
	"github.com/partydeck/partydeck/internal/games/stud"
)

type recordingBroadcaster struct {
	mu      sync.Mutex
	lobbies [][]games.Summary
	snaps   []games.Snapshot
}

func (b *recordingBroadcaster) PublishLobby(listing []games.Summary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lobbies = append(b.lobbies, listing)
}

func (b *recordingBroadcaster) PublishGame(snap games.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snaps = append(b.snaps, snap)
}

func (b *recordingBroadcaster) lastSnap(t *testing.T) games.Snapshot {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.snaps)
	return b.snaps[len(b.snaps)-1]
}

func newTestRegistry(clock quartz.Clock) (*Registry, *recordingBroadcaster) {
	b := &recordingBroadcaster{}
	logger := log.New(io.Discard)
	r := New(logger, clock, rand.New(rand.NewSource(1)), b, DefaultConfig())
	return r, b
}

func player(id string) games.Player {
	return games.Player{ID: id, Name: id}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	r, _ := newTestRegistry(quartz.NewReal())

	_, err := r.Create("roulette", player("p1"), false, 5)
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindStructural))
}

func TestLobbyExcludesPrivateAndFinished(t *testing.T) {
	r, _ := newTestRegistry(quartz.NewReal())

	open, err := r.Create("matcher", player("p1"), false, 5)
	require.NoError(t, err)
	_, err = r.Create("stud", player("p1"), true, 5)
	require.NoError(t, err)
	done, err := r.Create("stud", player("p1"), false, 5)
	require.NoError(t, err)

	// run the third game to completion: two players, one folds out
	_, err = r.Join(done.ID, player("p1"))
	require.NoError(t, err)
	_, err = r.Join(done.ID, player("p2"))
	require.NoError(t, err)
	_, err = r.Dispatch(done.ID, "p1", games.StartGame{})
	require.NoError(t, err)
	snap, err := r.Dispatch(done.ID, "p1", games.Fold{})
	require.NoError(t, err)
	require.Equal(t, games.StatusFinished, snap.Status)

	listing := r.ListPublic()
	require.Len(t, listing, 1)
	assert.Equal(t, open.ID, listing[0].ID)
}

func TestJoinUnknownGameRejected(t *testing.T) {
	r, _ := newTestRegistry(quartz.NewReal())

	_, err := r.Join("nope", player("p1"))
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindStructural))
}

func TestLastPlayerOutDiscardsGame(t *testing.T) {
	r, _ := newTestRegistry(quartz.NewReal())

	snap, err := r.Create("deception", player("p1"), false, 5)
	require.NoError(t, err)
	_, err = r.Join(snap.ID, player("p1"))
	require.NoError(t, err)

	require.NoError(t, r.Leave(snap.ID, "p1"))

	_, err = r.Get(snap.ID)
	require.Error(t, err)
	assert.True(t, games.IsKind(err, games.KindStructural))
}

func TestDispatchPublishesAfterMutation(t *testing.T) {
	r, b := newTestRegistry(quartz.NewReal())

	snap, err := r.Create("stud", player("p1"), false, 5)
	require.NoError(t, err)
	for _, id := range []string{"p1", "p2", "p3"} {
		_, err = r.Join(snap.ID, player(id))
		require.NoError(t, err)
	}

	_, err = r.Dispatch(snap.ID, "p1", games.StartGame{})
	require.NoError(t, err)

	last := b.lastSnap(t)
	assert.Equal(t, snap.ID, last.ID)
	assert.Equal(t, games.StatusPlaying, last.Status)
}

func TestDispatchErrorPublishesNothing(t *testing.T) {
	r, b := newTestRegistry(quartz.NewReal())

	snap, err := r.Create("stud", player("p1"), false, 5)
	require.NoError(t, err)
	_, err = r.Join(snap.ID, player("p1"))
	require.NoError(t, err)

	before := len(b.snaps)
	_, err = r.Dispatch(snap.ID, "p2", games.StartGame{})
	require.Error(t, err)
	assert.Len(t, b.snaps, before)
}

func TestPushesFollowMutationOrder(t *testing.T) {
	r, b := newTestRegistry(quartz.NewReal())

	const creates = 12
	var wg sync.WaitGroup
	for i := 0; i < creates; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := r.Create("deception", player(fmt.Sprintf("p%d", n)), false, 5)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// each create's lobby listing was built after its insert, so pushes
	// delivered in mutation order grow by exactly one game each time
	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.lobbies, creates)
	for i, listing := range b.lobbies {
		assert.Len(t, listing, i+1, "push %d", i)
	}
}

func TestDeadlineTimerFoldsActingSeat(t *testing.T) {
	mock := quartz.NewMock(t)
	r, _ := newTestRegistry(mock)
	ctx := context.Background()

	snap, err := r.Create("stud", player("p1"), false, 5)
	require.NoError(t, err)
	for _, id := range []string{"p1", "p2", "p3"} {
		_, err = r.Join(snap.ID, player(id))
		require.NoError(t, err)
	}
	_, err = r.Dispatch(snap.ID, "p1", games.StartGame{})
	require.NoError(t, err)

	mock.Advance(DefaultConfig().Stud.ActTimeout).MustWait(ctx)

	got, err := r.Get(snap.ID)
	require.NoError(t, err)
	st := got.State.(stud.State)
	assert.True(t, st.Seats[2].Folded, "the acting seat is folded on deadline")
}

func TestTimerRearmsAfterEachAction(t *testing.T) {
	mock := quartz.NewMock(t)
	r, _ := newTestRegistry(mock)
	ctx := context.Background()

	snap, err := r.Create("stud", player("p1"), false, 5)
	require.NoError(t, err)
	_, err = r.Join(snap.ID, player("p1"))
	require.NoError(t, err)
	_, err = r.Join(snap.ID, player("p2"))
	require.NoError(t, err)
	_, err = r.Dispatch(snap.ID, "p1", games.StartGame{})
	require.NoError(t, err)

	// the small blind acts; a fresh deadline now covers the big blind
	_, err = r.Dispatch(snap.ID, "p1", games.Call{})
	require.NoError(t, err)

	mock.Advance(DefaultConfig().Stud.ActTimeout).MustWait(ctx)

	got, err := r.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, games.StatusFinished, got.Status, "big blind folded out on deadline, hand ends uncontested")
	st := got.State.(stud.State)
	require.NotNil(t, st.Result)
	assert.Equal(t, []string{"p1"}, st.Result.Winners)
}
