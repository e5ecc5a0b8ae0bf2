// Package cards provides the static prompt/response card content used
// by the card-matching game when no external content provider is
// wired in. Generated content providers implement the same drawing
// surface; game logic only ever consumes cards, never produces them.
package cards

import (
	"math/rand"

	"github.com/google/uuid"
)

// Kind distinguishes prompt cards from response cards
type Kind string

const (
	Question Kind = "question"
	Answer   Kind = "answer"
)

// Card is a single prompt or response card
type Card struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Deck is a per-game pool of prompt and response cards. Draws remove
// cards; a deck is never shared between games.
type Deck struct {
	questions []Card
	answers   []Card
}

// NewStaticDeck builds a deck from the built-in content, with fresh
// card ids and both piles shuffled by the supplied RNG.
func NewStaticDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		questions: build(Question, staticQuestions),
		answers:   build(Answer, staticAnswers),
	}
	shuffle(rng, d.questions)
	shuffle(rng, d.answers)
	return d
}

func build(kind Kind, entries []entry) []Card {
	out := make([]Card, len(entries))
	for i, e := range entries {
		out[i] = Card{
			ID:       uuid.NewString(),
			Kind:     kind,
			Text:     e.text,
			Category: e.category,
		}
	}
	return out
}

func shuffle(rng *rand.Rand, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// DrawQuestion removes and returns the top prompt card
func (d *Deck) DrawQuestion() (Card, bool) {
	if len(d.questions) == 0 {
		return Card{}, false
	}
	c := d.questions[0]
	d.questions = d.questions[1:]
	return c, true
}

// DrawAnswer removes and returns the top response card
func (d *Deck) DrawAnswer() (Card, bool) {
	if len(d.answers) == 0 {
		return Card{}, false
	}
	c := d.answers[0]
	d.answers = d.answers[1:]
	return c, true
}

// QuestionsRemaining returns the number of prompt cards left
func (d *Deck) QuestionsRemaining() int { return len(d.questions) }

// AnswersRemaining returns the number of response cards left
func (d *Deck) AnswersRemaining() int { return len(d.answers) }
