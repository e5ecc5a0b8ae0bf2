package stud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBettingCompleteRequiresActedAndMatched(t *testing.T) {
	seats := []*seat{
		{playerID: "a", bet: 10},
		{playerID: "b", bet: 10},
		{playerID: "c", bet: 5},
	}
	bs := NewBettingState(3, 10)
	bs.CurrentBet = 10
	bs.MarkActed(0)
	bs.MarkActed(1)
	bs.MarkActed(2)

	assert.False(t, bs.Complete(seats), "seat c has not matched")

	seats[2].bet = 10
	assert.True(t, bs.Complete(seats))
}

func TestBettingCompleteIgnoresFoldedSeats(t *testing.T) {
	seats := []*seat{
		{playerID: "a", bet: 10},
		{playerID: "b", folded: true},
	}
	bs := NewBettingState(2, 10)
	bs.CurrentBet = 10
	bs.MarkActed(0)

	assert.True(t, bs.Complete(seats))
}

func TestRegisterRaiseReopensAction(t *testing.T) {
	bs := NewBettingState(3, 10)
	bs.CurrentBet = 10
	bs.MarkActed(0)
	bs.MarkActed(1)

	bs.RegisterRaise(2, 30)

	assert.Equal(t, 30, bs.CurrentBet)
	assert.Equal(t, 20, bs.MinRaise, "min raise tracks the raise size")
	assert.Equal(t, []bool{false, false, true}, bs.Acted)
}

func TestResetRestoresBlindMinimum(t *testing.T) {
	bs := NewBettingState(2, 10)
	bs.RegisterRaise(0, 50)
	bs.Reset()

	assert.Zero(t, bs.CurrentBet)
	assert.Equal(t, 10, bs.MinRaise)
	assert.Equal(t, []bool{false, false}, bs.Acted)
}
