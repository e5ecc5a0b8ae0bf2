package games

// PlayerInfo is the public projection of a roster member. Private hand
// data never appears here.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bot  bool   `json:"bot,omitempty"`
}

// Snapshot is the serializable, read-only projection of a game returned
// to callers and broadcast to collaborators. State carries the
// variant-specific public fields.
type Snapshot struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	Creator    PlayerInfo     `json:"creator"`
	Private    bool           `json:"private"`
	MaxPlayers int            `json:"max_players"`
	Status     Status         `json:"status"`
	Round      int            `json:"round"`
	Players    []PlayerInfo   `json:"players"`
	Scores     map[string]int `json:"scores"`
	State      any            `json:"state,omitempty"`
}

// Summary is the lightweight lobby listing for a game
type Summary struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	CreatorName string `json:"creator_name"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"max_players"`
	Status      Status `json:"status"`
}
