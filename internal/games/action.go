package games

// Action is a tagged gameplay payload routed to a game instance by the
// registry. Each variant accepts its own subset and rejects the rest
// with a phase error.
type Action interface {
	// Name is the wire name of the action
	Name() string
}

// StartGame moves a waiting game into play. Only the creator may start.
type StartGame struct{}

func (StartGame) Name() string { return "start-game" }

// SubmitCard plays a response card from the acting player's private hand
// in the card-matching game.
type SubmitCard struct {
	CardID string
}

func (SubmitCard) Name() string { return "submit-card" }

// JudgeSubmission is the judge's pick among the anonymized submissions,
// by shuffled index.
type JudgeSubmission struct {
	Index int
}

func (JudgeSubmission) Name() string { return "judge-submission" }

// SubmitStatements is the deception game's statement set. Exactly three
// statements with exactly one flagged lie are required; anything else is
// rejected without touching turn state.
type SubmitStatements struct {
	Statements []string
	LieIndex   int
}

func (SubmitStatements) Name() string { return "submit-statements" }

// SubmitVote is a voter's guess at the lie index (0-2)
type SubmitVote struct {
	Index int
}

func (SubmitVote) Name() string { return "submit-vote" }

// Reveal ends the voting phase early and scores the turn
type Reveal struct{}

func (Reveal) Name() string { return "reveal" }

// Fold removes the acting player from contention for the hand
type Fold struct{}

func (Fold) Name() string { return "fold" }

// Call matches the current highest bet
type Call struct{}

func (Call) Name() string { return "call" }

// Check passes when there is no outstanding bet to match
type Check struct{}

func (Check) Name() string { return "check" }

// Raise increases the current bet to Amount
type Raise struct {
	Amount int
}

func (Raise) Name() string { return "raise" }

// Timeout is fired by the registry when a soft deadline elapses. It is
// routed through the same serialized dispatch path as player actions;
// a token that no longer matches the live phase is stale and rejected.
type Timeout struct {
	Token uint64
}

func (Timeout) Name() string { return "timeout" }
