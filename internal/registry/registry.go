// Package registry is the arena that owns every live game. All reads
// and mutations funnel through a single mutex so each game sees a
// strictly serialized stream of actions, and every successful mutation
// is followed by a state push to the broadcaster.
package registry

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/partydeck/partydeck/internal/cards"
	"github.com/partydeck/partydeck/internal/games"
	"github.com/partydeck/partydeck/internal/games/deception"
	"github.com/partydeck/partydeck/internal/games/matcher"
	"github.com/partydeck/partydeck/internal/games/stud"
)

// Broadcaster receives state pushes after mutations. The registry
// mutates first and publishes second, outside its lock, so
// implementations may read back through the registry. Pushes arrive in
// mutation order, never reordered across concurrent callers.
type Broadcaster interface {
	PublishLobby(listing []games.Summary)
	PublishGame(snap games.Snapshot)
}

// NopBroadcaster discards every push
type NopBroadcaster struct{}

func (NopBroadcaster) PublishLobby([]games.Summary) {}
func (NopBroadcaster) PublishGame(games.Snapshot)   {}

// Config bundles the per-variant tunables
type Config struct {
	Matcher   matcher.Config
	Deception deception.Config
	Stud      stud.Config
}

// DefaultConfig returns the standard tunables for every variant
func DefaultConfig() Config {
	return Config{
		Matcher:   matcher.DefaultConfig(),
		Deception: deception.DefaultConfig(),
		Stud:      stud.DefaultConfig(),
	}
}

type entry struct {
	game  games.Game
	timer *quartz.Timer
}

// Registry tracks live games by id and owns their deadline timers.
type Registry struct {
	logger      *log.Logger
	clock       quartz.Clock
	cfg         Config
	broadcaster Broadcaster

	mu      sync.Mutex
	rng     *rand.Rand
	entries map[string]*entry

	pubMu   sync.Mutex
	pubCond *sync.Cond
	pubNext uint64
	pubDone uint64
}

// New constructs an empty registry. The rng seeds each game's private
// RNG so a fixed seed reproduces a whole session.
func New(logger *log.Logger, clock quartz.Clock, rng *rand.Rand, b Broadcaster, cfg Config) *Registry {
	if b == nil {
		b = NopBroadcaster{}
	}
	r := &Registry{
		logger:      logger.With("component", "registry"),
		clock:       clock,
		cfg:         cfg,
		broadcaster: b,
		rng:         rng,
		entries:     make(map[string]*entry),
	}
	r.pubCond = sync.NewCond(&r.pubMu)
	return r
}

// publishTicketLocked reserves the next broadcast slot. Tickets are
// issued under mu in mutation order and redeemed in strict sequence,
// so a push for an older state can never overtake a newer one.
func (r *Registry) publishTicketLocked() uint64 {
	t := r.pubNext
	r.pubNext++
	return t
}

// publish runs fn once every earlier ticket has been redeemed
func (r *Registry) publish(ticket uint64, fn func()) {
	r.pubMu.Lock()
	for r.pubDone != ticket {
		r.pubCond.Wait()
	}
	r.pubMu.Unlock()

	fn()

	r.pubMu.Lock()
	r.pubDone++
	r.pubMu.Unlock()
	r.pubCond.Broadcast()
}

// Create builds a new game of the named type and registers it under a
// fresh id. The creator is recorded but joins like any other player.
func (r *Registry) Create(typeName string, creator games.Player, private bool, maxPlayers int) (games.Snapshot, error) {
	typ, err := games.ParseType(typeName)
	if err != nil {
		return games.Snapshot{}, err
	}

	r.mu.Lock()
	id := uuid.NewString()
	gameRng := rand.New(rand.NewSource(r.rng.Int63()))

	var g games.Game
	switch typ {
	case games.TypeMatcher:
		g = matcher.New(id, creator, private, maxPlayers, cards.NewStaticDeck(gameRng), gameRng, r.cfg.Matcher)
	case games.TypeDeception:
		g = deception.New(id, creator, private, maxPlayers, r.cfg.Deception)
	case games.TypeStud:
		g = stud.New(id, creator, private, maxPlayers, gameRng, r.cfg.Stud)
	}

	r.entries[id] = &entry{game: g}
	snap := g.Snapshot()
	lobby := r.lobbyLocked()
	ticket := r.publishTicketLocked()
	r.mu.Unlock()

	r.logger.Info("game created", "game", id, "type", typ, "creator", creator.ID, "private", private)
	r.publish(ticket, func() {
		r.broadcaster.PublishLobby(lobby)
	})
	return snap, nil
}

// Get returns the current snapshot of a game
func (r *Registry) Get(id string) (games.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return games.Snapshot{}, games.Structuralf("no game %s", id)
	}
	return e.game.Snapshot(), nil
}

// ListPublic returns lobby summaries for joinable games. Private and
// finished games are excluded.
func (r *Registry) ListPublic() []games.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lobbyLocked()
}

func (r *Registry) lobbyLocked() []games.Summary {
	listing := make([]games.Summary, 0, len(r.entries))
	for _, e := range r.entries {
		if e.game.Private() || e.game.Status() == games.StatusFinished {
			continue
		}
		listing = append(listing, e.game.Summary())
	}
	sort.Slice(listing, func(i, j int) bool { return listing[i].ID < listing[j].ID })
	return listing
}

// Join adds a player to a game's roster. The player's Channel handle is
// stored untouched for the transport layer to deliver through.
func (r *Registry) Join(id string, p games.Player) (games.Snapshot, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return games.Snapshot{}, games.Structuralf("no game %s", id)
	}
	if err := e.game.AddPlayer(p); err != nil {
		r.mu.Unlock()
		return games.Snapshot{}, err
	}
	snap := e.game.Snapshot()
	lobby := r.lobbyLocked()
	ticket := r.publishTicketLocked()
	r.mu.Unlock()

	r.logger.Info("player joined", "game", id, "player", p.ID)
	r.publish(ticket, func() {
		r.broadcaster.PublishGame(snap)
		r.broadcaster.PublishLobby(lobby)
	})
	return snap, nil
}

// Leave removes a player from a game. Leaving is idempotent; the last
// player out takes the game with them.
func (r *Registry) Leave(id, playerID string) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return games.Structuralf("no game %s", id)
	}
	e.game.RemovePlayer(playerID)

	var snap *games.Snapshot
	if e.game.Empty() {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(r.entries, id)
	} else {
		r.rearmLocked(id, e)
		s := e.game.Snapshot()
		snap = &s
	}
	lobby := r.lobbyLocked()
	ticket := r.publishTicketLocked()
	r.mu.Unlock()

	if snap == nil {
		r.logger.Info("game discarded", "game", id)
	} else {
		r.logger.Info("player left", "game", id, "player", playerID)
	}
	r.publish(ticket, func() {
		if snap != nil {
			r.broadcaster.PublishGame(*snap)
		}
		r.broadcaster.PublishLobby(lobby)
	})
	return nil
}

// Dispatch routes a player action into a game. On success the game's
// deadline timer is re-armed and the new state is pushed out; on
// failure nothing is published and the game is untouched.
func (r *Registry) Dispatch(id, playerID string, action games.Action) (games.Snapshot, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return games.Snapshot{}, games.Structuralf("no game %s", id)
	}

	statusBefore := e.game.Status()
	if err := e.game.HandleAction(playerID, action); err != nil {
		r.mu.Unlock()
		return games.Snapshot{}, err
	}
	r.rearmLocked(id, e)
	snap := e.game.Snapshot()
	var lobby []games.Summary
	if e.game.Status() != statusBefore {
		lobby = r.lobbyLocked()
	}
	ticket := r.publishTicketLocked()
	r.mu.Unlock()

	r.logger.Debug("action applied", "game", id, "player", playerID, "action", action.Name())
	r.publish(ticket, func() {
		r.broadcaster.PublishGame(snap)
		if lobby != nil {
			r.broadcaster.PublishLobby(lobby)
		}
	})
	return snap, nil
}

// PrivateView returns the part of a game's state only one player may
// see, such as the cards they hold. Variants without private state
// return nil.
func (r *Registry) PrivateView(id, playerID string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, games.Structuralf("no game %s", id)
	}
	switch g := e.game.(type) {
	case *matcher.Game:
		return g.HandOf(playerID), nil
	case *stud.Game:
		return g.CardsOf(playerID), nil
	}
	return nil, nil
}

// rearmLocked replaces the game's deadline timer with one for the
// current phase, or clears it when the game reports no deadline.
func (r *Registry) rearmLocked(id string, e *entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	d, ok := e.game.NextDeadline()
	if !ok {
		return
	}
	token := d.Token
	e.timer = r.clock.AfterFunc(d.In, func() {
		r.fireTimeout(id, token)
	})
}

func (r *Registry) fireTimeout(id string, token uint64) {
	if _, err := r.Dispatch(id, "", games.Timeout{Token: token}); err != nil {
		r.logger.Debug("timeout discarded", "game", id, "token", token, "err", err)
	}
}
