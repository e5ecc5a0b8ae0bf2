// Package games holds the shared lifecycle model for all party game
// variants: roster management, status progression, score tracking, the
// action vocabulary and the error taxonomy. Concrete variants live in
// the subpackages and are built on Base.
package games

import "time"

// Type identifies a game variant
type Type string

const (
	// TypeMatcher is the prompt/response card-matching game
	TypeMatcher Type = "matcher"
	// TypeDeception is the statement/voting deception game
	TypeDeception Type = "deception"
	// TypeStud is the five-card stud poker game
	TypeStud Type = "stud"
)

// ParseType validates a game type string
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeMatcher, TypeDeception, TypeStud:
		return Type(s), nil
	}
	return "", Structuralf("unknown game type %q", s)
}

// Status is the coarse lifecycle state of a game. Transitions only move
// forward: waiting -> playing -> finished.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

func (s Status) ordinal() int {
	switch s {
	case StatusWaiting:
		return 0
	case StatusPlaying:
		return 1
	case StatusFinished:
		return 2
	}
	return -1
}

// Player is a roster member. The ID is opaque and supplied by the
// identity collaborator. Channel is an opaque notification handle the
// engine never interprets, only hands back to the transport layer.
type Player struct {
	ID      string
	Name    string
	Bot     bool
	Channel any
}

// Deadline is a soft round/turn deadline owned by a game. The token
// identifies the phase the deadline belongs to; a Timeout action
// carrying a stale token is rejected.
type Deadline struct {
	Token uint64
	In    time.Duration
}

// Game is the contract every variant implements. All mutation goes
// through HandleAction; Snapshot and Summary are read-only projections.
type Game interface {
	ID() string
	Type() Type
	Status() Status
	Creator() Player
	Private() bool
	AddPlayer(Player) error
	RemovePlayer(id string)
	Empty() bool
	Snapshot() Snapshot
	Summary() Summary
	HandleAction(playerID string, action Action) error
	NextDeadline() (Deadline, bool)
}

const (
	// MinCapacity and MaxCapacity bound a game's configured maxPlayers
	MinCapacity = 3
	MaxCapacity = 7
)

// ClampCapacity forces a requested capacity into [MinCapacity, MaxCapacity]
func ClampCapacity(n int) int {
	if n < MinCapacity {
		return MinCapacity
	}
	if n > MaxCapacity {
		return MaxCapacity
	}
	return n
}
