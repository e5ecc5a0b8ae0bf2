package stud

import "github.com/partydeck/partydeck/internal/deck"

// Option customizes a stud game at construction
type Option func(*Game)

// WithDeck supplies a pre-built deck instead of a fresh shuffled one.
// Used for deterministic deals in tests.
func WithDeck(d *deck.Deck) Option {
	return func(g *Game) {
		g.d = d
	}
}

// WithChips sets individual starting stacks by join order, overriding
// the uniform Config.StartingChips.
func WithChips(chips []int) Option {
	return func(g *Game) {
		g.chips = chips
	}
}
