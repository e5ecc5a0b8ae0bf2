package games

// Base is the shared roster and lifecycle core every variant is built
// on. It owns no timers and performs no I/O; it is the single source of
// truth for roster membership, capacity, status and scores.
type Base struct {
	id         string
	typ        Type
	creator    Player
	private    bool
	maxPlayers int

	status  Status
	round   int
	players []Player
	scores  map[string]int

	token uint64
}

// NewBase creates the lifecycle core for a game. The requested capacity
// is clamped into [MinCapacity, MaxCapacity].
func NewBase(id string, typ Type, creator Player, private bool, maxPlayers int) *Base {
	return &Base{
		id:         id,
		typ:        typ,
		creator:    creator,
		private:    private,
		maxPlayers: ClampCapacity(maxPlayers),
		status:     StatusWaiting,
		scores:     make(map[string]int),
	}
}

// ID returns the game's unique identifier
func (b *Base) ID() string { return b.id }

// Type returns the game variant
func (b *Base) Type() Type { return b.typ }

// Creator returns the player who created the game
func (b *Base) Creator() Player { return b.creator }

// Private reports whether the game is hidden from the public lobby
func (b *Base) Private() bool { return b.private }

// MaxPlayers returns the clamped roster capacity
func (b *Base) MaxPlayers() int { return b.maxPlayers }

// Status returns the coarse lifecycle state
func (b *Base) Status() Status { return b.status }

// Round returns the current round counter
func (b *Base) Round() int { return b.round }

// AdvanceStatus moves the status forward. Backward transitions are
// ignored; the waiting -> playing -> finished ordering is an invariant.
func (b *Base) AdvanceStatus(s Status) {
	if s.ordinal() > b.status.ordinal() {
		b.status = s
	}
}

// NextRound increments and returns the round counter
func (b *Base) NextRound() int {
	b.round++
	return b.round
}

// AddPlayer appends a player to the roster. It rejects duplicates and
// full rosters, both structurally, without mutating anything.
func (b *Base) AddPlayer(p Player) error {
	if len(b.players) >= b.maxPlayers {
		return Structuralf("game %s is full (%d/%d)", b.id, len(b.players), b.maxPlayers)
	}
	if b.HasPlayer(p.ID) {
		return Structuralf("player %s already joined game %s", p.ID, b.id)
	}
	b.players = append(b.players, p)
	if _, ok := b.scores[p.ID]; !ok {
		b.scores[p.ID] = 0
	}
	return nil
}

// RemovePlayer removes a player if present. Removal is idempotent.
func (b *Base) RemovePlayer(id string) {
	for i, p := range b.players {
		if p.ID == id {
			b.players = append(b.players[:i], b.players[i+1:]...)
			return
		}
	}
}

// HasPlayer reports roster membership
func (b *Base) HasPlayer(id string) bool {
	_, ok := b.Player(id)
	return ok
}

// Player looks up a roster member by id
func (b *Base) Player(id string) (Player, bool) {
	for _, p := range b.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerAt returns the roster member at the given join-order position
func (b *Base) PlayerAt(i int) Player {
	return b.players[i]
}

// IndexOf returns the join-order position of a player, or -1
func (b *Base) IndexOf(id string) int {
	for i, p := range b.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Players returns a copy of the roster in join order
func (b *Base) Players() []Player {
	out := make([]Player, len(b.players))
	copy(out, b.players)
	return out
}

// NumPlayers returns the roster size
func (b *Base) NumPlayers() int { return len(b.players) }

// Empty reports whether the roster has no members
func (b *Base) Empty() bool { return len(b.players) == 0 }

// AddScore credits points to a player. Scores only ever grow; negative
// deltas are ignored.
func (b *Base) AddScore(id string, points int) {
	if points > 0 {
		b.scores[id] += points
	}
}

// Score returns a player's accumulated score
func (b *Base) Score(id string) int { return b.scores[id] }

// Leaders returns the ids holding the highest score. Ties are reported
// as co-winners.
func (b *Base) Leaders() []string {
	best := -1
	var leaders []string
	for _, p := range b.players {
		s := b.scores[p.ID]
		if s > best {
			best = s
			leaders = []string{p.ID}
		} else if s == best {
			leaders = append(leaders, p.ID)
		}
	}
	return leaders
}

// NextToken bumps and returns the deadline token. Variants call this on
// every phase change so in-flight timeouts for the old phase go stale.
func (b *Base) NextToken() uint64 {
	b.token++
	return b.token
}

// Token returns the current deadline token
func (b *Base) Token() uint64 { return b.token }

// Snapshot projects the shared fields plus the variant's public state
func (b *Base) Snapshot(state any) Snapshot {
	players := make([]PlayerInfo, len(b.players))
	for i, p := range b.players {
		players[i] = PlayerInfo{ID: p.ID, Name: p.Name, Bot: p.Bot}
	}
	scores := make(map[string]int, len(b.scores))
	for id, s := range b.scores {
		scores[id] = s
	}
	return Snapshot{
		ID:         b.id,
		Type:       b.typ,
		Creator:    PlayerInfo{ID: b.creator.ID, Name: b.creator.Name, Bot: b.creator.Bot},
		Private:    b.private,
		MaxPlayers: b.maxPlayers,
		Status:     b.status,
		Round:      b.round,
		Players:    players,
		Scores:     scores,
		State:      state,
	}
}

// Summary projects the lightweight lobby listing
func (b *Base) Summary() Summary {
	return Summary{
		ID:          b.id,
		Type:        b.typ,
		CreatorName: b.creator.Name,
		Players:     len(b.players),
		MaxPlayers:  b.maxPlayers,
		Status:      b.status,
	}
}
