package server

import (
	"encoding/json"
	"time"

	"github.com/partydeck/partydeck/internal/games"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	PlayerName string `json:"playerName"`
}

type CreateGameData struct {
	GameType   string `json:"gameType"`
	Private    bool   `json:"private"`
	MaxPlayers int    `json:"maxPlayers"`
}

type JoinGameData struct {
	GameID string `json:"gameId"`
}

type LeaveGameData struct {
	GameID string `json:"gameId"`
}

// GameActionData is the wire form of every in-game action. Action names
// the verb; the remaining fields carry whichever payload that verb
// needs and are ignored otherwise.
type GameActionData struct {
	GameID     string   `json:"gameId"`
	Action     string   `json:"action"`
	CardID     string   `json:"cardId,omitempty"`
	Index      int      `json:"index,omitempty"`
	Statements []string `json:"statements,omitempty"`
	LieIndex   int      `json:"lieIndex,omitempty"`
	Amount     int      `json:"amount,omitempty"`
}

// decodeAction maps a wire action onto the engine's action vocabulary
func decodeAction(data GameActionData) (games.Action, error) {
	switch data.Action {
	case "start":
		return games.StartGame{}, nil
	case "submit_card":
		return games.SubmitCard{CardID: data.CardID}, nil
	case "judge":
		return games.JudgeSubmission{Index: data.Index}, nil
	case "statements":
		return games.SubmitStatements{Statements: data.Statements, LieIndex: data.LieIndex}, nil
	case "vote":
		return games.SubmitVote{Index: data.Index}, nil
	case "reveal":
		return games.Reveal{}, nil
	case "fold":
		return games.Fold{}, nil
	case "call":
		return games.Call{}, nil
	case "check":
		return games.Check{}, nil
	case "raise":
		return games.Raise{Amount: data.Amount}, nil
	}
	return nil, games.Payloadf("unknown action %q", data.Action)
}

// Server → Client Messages

type AuthResponseData struct {
	Success    bool   `json:"success"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	Error      string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LobbyData struct {
	Games []games.Summary `json:"games"`
}

type GameLeftData struct {
	GameID string `json:"gameId"`
}

// PrivateStateData carries the slice of game state only its recipient
// may see, such as the cards in their hand.
type PrivateStateData struct {
	GameID string `json:"gameId"`
	View   any    `json:"view"`
}

// errorCode maps the engine's error taxonomy onto wire error codes
func errorCode(err error) string {
	kind, ok := games.KindOf(err)
	if !ok {
		return "internal"
	}
	switch kind {
	case games.KindStructural:
		return "rejected"
	case games.KindPhase:
		return "wrong_phase"
	case games.KindAuthorization:
		return "not_allowed"
	case games.KindPayload:
		return "bad_payload"
	}
	return "internal"
}
