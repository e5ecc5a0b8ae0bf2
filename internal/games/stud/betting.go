package stud

// BettingState encapsulates the state of one betting round
type BettingState struct {
	CurrentBet int
	MinRaise   int
	Acted      []bool
	bigBlind   int
}

// NewBettingState creates betting state for a hand
func NewBettingState(numSeats, bigBlind int) *BettingState {
	return &BettingState{
		MinRaise: bigBlind,
		Acted:    make([]bool, numSeats),
		bigBlind: bigBlind,
	}
}

// Reset prepares the state for a new betting round
func (bs *BettingState) Reset() {
	bs.CurrentBet = 0
	bs.MinRaise = bs.bigBlind
	for i := range bs.Acted {
		bs.Acted[i] = false
	}
}

// MarkActed records that a seat has acted this round
func (bs *BettingState) MarkActed(seat int) {
	if seat >= 0 && seat < len(bs.Acted) {
		bs.Acted[seat] = true
	}
}

// RegisterRaise moves the bet level up and reopens the action: everyone
// but the raiser must act again.
func (bs *BettingState) RegisterRaise(seat, amount int) {
	bs.MinRaise = amount - bs.CurrentBet
	bs.CurrentBet = amount
	for i := range bs.Acted {
		bs.Acted[i] = false
	}
	bs.Acted[seat] = true
}

// Complete reports whether the betting round is finished: every
// still-active seat has acted and matched the current bet. Blind posts
// do not count as acting, so the big blind keeps its option.
func (bs *BettingState) Complete(seats []*seat) bool {
	for i, s := range seats {
		if s.folded {
			continue
		}
		if !bs.Acted[i] || s.bet != bs.CurrentBet {
			return false
		}
	}
	return true
}
