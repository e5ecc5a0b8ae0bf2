package deck

// HandRank represents the strength of a five-card hand.
// The high 4 bits are the hand category, the remaining bits are for
// tie-breaking, so HandRank values are totally ordered by integer
// comparison: any hand of a higher category beats any hand of a lower
// category regardless of kickers.
type HandRank uint32

const (
	HighCard HandRank = iota << 28
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Category returns the category portion of the rank
func (hr HandRank) Category() HandRank {
	return hr & 0xF0000000
}

// String returns a human-readable hand description
func (hr HandRank) String() string {
	switch hr.Category() {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Evaluate classifies exactly five cards into a HandRank. Passing any
// other number of cards yields rank 0.
func Evaluate(cards []Card) HandRank {
	if len(cards) != 5 {
		return 0
	}

	var counts [13]uint8
	rankMask := uint16(0)
	flush := true
	for i, c := range cards {
		counts[rankBit(c.Rank)]++
		rankMask |= 1 << rankBit(c.Rank)
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	straightHigh := checkStraight(rankMask)

	if flush && straightHigh > 0 {
		return StraightFlush | HandRank(straightHigh)
	}

	if quad := findCount(counts, 4); quad >= 0 {
		kicker := findCount(countsWithout(counts, quad), 1)
		return FourOfAKind | HandRank(quad)<<4 | HandRank(kicker)
	}

	trips := findCount(counts, 3)
	if trips >= 0 {
		if pair := findCount(countsWithout(counts, trips), 2); pair >= 0 {
			return FullHouse | HandRank(trips)<<4 | HandRank(pair)
		}
	}

	if flush {
		return Flush | HandRank(rankMask)
	}

	if straightHigh > 0 {
		return Straight | HandRank(straightHigh)
	}

	if trips >= 0 {
		kickers := rankMask &^ (1 << trips)
		return ThreeOfAKind | HandRank(trips)<<13 | HandRank(kickers)
	}

	pair1 := findCount(counts, 2)
	if pair1 >= 0 {
		if pair2 := findCount(countsWithout(counts, pair1), 2); pair2 >= 0 {
			kicker := rankMask &^ (1<<pair1 | 1<<pair2)
			return TwoPair | HandRank(pair1)<<17 | HandRank(pair2)<<13 | HandRank(kicker)
		}
		kickers := rankMask &^ (1 << pair1)
		return Pair | HandRank(pair1)<<13 | HandRank(kickers)
	}

	return HighCard | HandRank(rankMask)
}

// Compare compares two hand ranks and returns 1 if a wins, -1 if b wins,
// 0 for an exact tie.
func Compare(a, b HandRank) int {
	if a > b {
		return 1
	} else if a < b {
		return -1
	}
	return 0
}

// rankBit maps a Rank (2..14) to its bit position (0..12)
func rankBit(r Rank) int {
	return int(r) - 2
}

// checkStraight returns the high-card bit of a straight, or 0 if the
// mask is not five consecutive ranks. The wheel (A-2-3-4-5) reports a
// five-high straight, below the six-high straight.
func checkStraight(rankMask uint16) uint8 {
	// Ace plus 2-3-4-5
	if rankMask == 0x100F {
		return 3
	}

	for high := uint8(12); high >= 4; high-- {
		straightMask := uint16(0x1F) << (high - 4)
		if rankMask == straightMask {
			return high
		}
	}

	return 0
}

// findCount finds the highest rank bit appearing exactly n times
func findCount(counts [13]uint8, n uint8) int {
	for rank := 12; rank >= 0; rank-- {
		if counts[rank] == n {
			return rank
		}
	}
	return -1
}

// countsWithout zeroes out a rank so the next group can be located
func countsWithout(counts [13]uint8, rank int) [13]uint8 {
	counts[rank] = 0
	return counts
}
